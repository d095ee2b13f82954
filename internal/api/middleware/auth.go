package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/courtside/internal/api/apierr"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/auth"
)

// SessionValidator resolves a token to a live coach session
type SessionValidator interface {
	ValidateSession(token string) (*auth.Session, error)
}

type sessionKey struct{}

var (
	errNoToken           = errors.New("no session token")
	errUnsupportedScheme = errors.New("authorization scheme is not Bearer")
)

// Auth only lets requests through that carry a live coach session. The token
// is read from "Authorization: Bearer" or, without that header, from the
// editor's session cookie, so a signed-in browser can call the API too.
func Auth(sessions SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := sessionToken(r)
			if err != nil {
				logger.Debug("request without usable credentials",
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()),
				)
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := sessions.ValidateSession(token)
			if err != nil {
				logger.Debug("session rejected", slog.String("path", r.URL.Path), slog.Any("error", err))
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func sessionToken(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, _ := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", errUnsupportedScheme
		}
		return token, nil
	}

	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", errNoToken
}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFrom returns the session Auth stored in ctx, or nil
func SessionFrom(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionKey{}).(*auth.Session)
	return session
}

// MustCoach returns the coach the request acts for. It panics outside Auth.
func MustCoach(ctx context.Context) *model.Coach {
	session := SessionFrom(ctx)
	if session == nil {
		panic("api: no coach session in context")
	}
	return &session.Coach
}
