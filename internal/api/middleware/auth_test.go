package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/courtside/internal/api/middleware"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/testutil"
)

type fixedSessions map[string]*auth.Session

func (f fixedSessions) ValidateSession(token string) (*auth.Session, error) {
	if session, ok := f[token]; ok {
		return session, nil
	}
	return nil, auth.ErrInvalidSession
}

const liveToken = "cs_live"

func sessions() fixedSessions {
	return fixedSessions{
		liveToken: {
			Token:   liveToken,
			CoachID: "coach-1",
			Coach:   model.Coach{ID: "coach-1", DisplayName: "Nadia"},
		},
	}
}

// coachEcho writes back the display name of the coach the request acts for
var coachEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(middleware.MustCoach(r.Context()).DisplayName))
})

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, *testutil.LogBuffer) {
	t.Helper()
	logger, logs := testutil.CaptureLogger()
	rr := httptest.NewRecorder()
	middleware.Auth(sessions(), logger)(coachEcho).ServeHTTP(rr, req)
	return rr, logs
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	for _, header := range []string{"Bearer " + liveToken, "bearer " + liveToken, "Bearer  " + liveToken + " "} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/lineups", nil)
		req.Header.Set("Authorization", header)

		rr, _ := serve(t, req)
		assert.Equal(t, http.StatusOK, rr.Code, header)
		assert.Equal(t, "Nadia", rr.Body.String(), header)
	}
}

func TestAuthFallsBackToSessionCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lineups", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: liveToken})

	rr, _ := serve(t, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Nadia", rr.Body.String())
}

func TestAuthRefusesOtherSchemes(t *testing.T) {
	for _, header := range []string{"Basic " + liveToken, liveToken, "Bearer", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/lineups", nil)
		req.Header.Set("Authorization", header)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: liveToken})

		rr, logs := serve(t, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, header)
		assert.Contains(t, rr.Body.String(), "Authentication required", header)
		require.NotNil(t, logs.Last(), header)
		assert.Equal(t, "request without usable credentials", logs.Last()["msg"], header)
	}
}

func TestAuthRejectsUnknownSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lineups/abc", nil)
	req.Header.Set("Authorization", "Bearer cs_stale")

	rr, logs := serve(t, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid or expired session")

	entry := logs.Last()
	require.NotNil(t, entry)
	assert.Equal(t, "session rejected", entry["msg"])
	assert.Equal(t, "/api/v1/lineups/abc", entry["path"])
	assert.NotContains(t, logs.String(), "cs_stale", "tokens stay out of the log")
}

func TestAuthWithoutCredentials(t *testing.T) {
	rr, logs := serve(t, httptest.NewRequest(http.MethodGet, "/api/v1/lineups", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "no session token", logs.Last()["reason"])
}

func TestMustCoachPanicsOutsideAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, middleware.SessionFrom(req.Context()))
	assert.Panics(t, func() { middleware.MustCoach(req.Context()) })

	ctx := middleware.WithSession(req.Context(), sessions()[liveToken])
	assert.Equal(t, model.CoachID("coach-1"), middleware.MustCoach(ctx).ID)
}
