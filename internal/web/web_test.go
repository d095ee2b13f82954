package web_test

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/courtside/internal/factory"
	"github.com/mcoot/courtside/internal/testutil"
	"github.com/mcoot/courtside/internal/web"
)

var siteURL = &url.URL{Scheme: "http", Host: "courtside.test", Path: "/"}

// coachBrowser drives the web router with one coach's cookies
type coachBrowser struct {
	t      *testing.T
	router http.Handler
	jar    *cookiejar.Jar
}

func newCoachBrowser(t *testing.T) *coachBrowser {
	t.Helper()

	app, err := factory.New(factory.Config{Logger: testutil.NopLogger()})
	require.NoError(t, err)

	b := &coachBrowser{
		t: t,
		router: web.NewRouter(web.RouterConfig{
			Logger:           testutil.NopLogger(),
			AuthService:      app.AuthService,
			LineupController: app.LineupController,
		}),
	}
	b.clearCookies()
	return b
}

// otherBrowser returns a browser on the same site with its own cookies
func (b *coachBrowser) otherBrowser() *coachBrowser {
	other := &coachBrowser{t: b.t, router: b.router}
	other.clearCookies()
	return other
}

// clearCookies drops the session and any pending flash, like a fresh browser
func (b *coachBrowser) clearCookies() {
	jar, err := cookiejar.New(nil)
	require.NoError(b.t, err)
	b.jar = jar
}

func (b *coachBrowser) do(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, c := range b.jar.Cookies(siteURL) {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	b.router.ServeHTTP(rr, req)
	b.jar.SetCookies(siteURL, rr.Result().Cookies())
	return rr
}

func (b *coachBrowser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil, false)
}

func (b *coachBrowser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, form, false)
}

func (b *coachBrowser) postHTMX(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, form, true)
}

// signedIn reports whether the browser holds a session cookie
func (b *coachBrowser) signedIn() bool {
	for _, c := range b.jar.Cookies(siteURL) {
		if c.Name == "session" {
			return true
		}
	}
	return false
}

func (b *coachBrowser) signInAsGuest(name string) {
	b.t.Helper()
	rr := b.post("/auth/guest", url.Values{"display_name": {name}})
	require.Equal(b.t, http.StatusSeeOther, rr.Code)
	require.True(b.t, b.signedIn(), "guest sign-in should set a session")
}

// newLineup creates a lineup with the default roster and returns its id
func (b *coachBrowser) newLineup(name string) string {
	b.t.Helper()
	rr := b.post("/lineups", url.Values{"name": {name}})
	require.Equal(b.t, http.StatusSeeOther, rr.Code)

	id, ok := strings.CutPrefix(rr.Header().Get("Location"), "/lineups/")
	require.True(b.t, ok, "create should redirect to the editor, got %q", rr.Header().Get("Location"))
	return id
}

func (b *coachBrowser) editor(id string) *goquery.Document {
	b.t.Helper()
	rr := b.get("/lineups/" + id)
	require.Equal(b.t, http.StatusOK, rr.Code)
	return parseHTML(b.t, rr)
}

// place drops a player on the first free slot and returns the swapped editor
func (b *coachBrowser) place(id string, number int) *goquery.Document {
	b.t.Helper()
	rr := b.postHTMX("/lineups/"+id+"/court/place", url.Values{"number": {strconv.Itoa(number)}})
	require.Equal(b.t, http.StatusOK, rr.Code)
	return parseHTML(b.t, rr)
}

// followRedirect loads the Location or HX-Redirect target of rr
func (b *coachBrowser) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	b.t.Helper()
	location := rr.Header().Get("HX-Redirect")
	if location == "" {
		location = rr.Header().Get("Location")
	}
	require.NotEmpty(b.t, location, "expected a redirect")
	return b.get(location)
}

func parseHTML(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	return doc
}

func assertHas(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	assert.Positive(t, doc.Find(selector).Length(), "expected an element matching %q", selector)
}

func assertHasNo(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	assert.Zero(t, doc.Find(selector).Length(), "expected no element matching %q", selector)
}

func assertText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	sel := doc.Find(selector)
	if assert.Positive(t, sel.Length(), "expected an element matching %q", selector) {
		assert.Contains(t, sel.Text(), text, "text of %q", selector)
	}
}
