package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/auth"
)

type contextKey string

const (
	coachContextKey contextKey = "coach"

	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = auth.SessionCookieName
)

// GetCoach retrieves the authenticated coach from the request context
// Returns nil if no coach is authenticated
func GetCoach(ctx context.Context) *model.Coach {
	coach, _ := ctx.Value(coachContextKey).(*model.Coach)
	return coach
}

// Auth returns middleware that requires authentication
// Redirects to home page if not authenticated
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			coach := getCoachFromSession(r, authService)
			if coach == nil {
				// Store original URL to redirect back after auth
				redirectURL := "/?next=" + url.QueryEscape(r.URL.Path)
				http.Redirect(w, r, redirectURL, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), coachContextKey, coach)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
// Sets coach in context if authenticated, nil otherwise
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			coach := getCoachFromSession(r, authService)
			ctx := context.WithValue(r.Context(), coachContextKey, coach)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getCoachFromSession(r *http.Request, authService *auth.Service) *model.Coach {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	coach, err := authService.GetCoach(cookie.Value)
	if err != nil {
		return nil
	}

	return coach
}
