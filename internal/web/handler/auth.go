package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/web/middleware"
	"github.com/mcoot/courtside/internal/web/templates/layout"
	"github.com/mcoot/courtside/internal/web/templates/pages"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService     *auth.Service
	sessionDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, sessionDuration time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		sessionDuration: sessionDuration,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetCoach(r.Context()) != nil {
		// Already logged in, redirect to home
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	render(w, r, pages.Login(pages.LoginData{
		PageData: layout.PageData{
			Title: "Login",
			Flash: middleware.GetFlash(r.Context()),
		},
		Next: r.URL.Query().Get("next"),
	}))
}

// RegisterPage renders the registration page. A guest sees it as the way to
// keep their lineups; registered coaches are sent home.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	coach := middleware.GetCoach(r.Context())
	if coach != nil && !coach.IsGuest {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.RegisterData{
		PageData: layout.PageData{
			Title: "Register",
			Coach: coach,
			Flash: middleware.GetFlash(r.Context()),
		},
		FieldErrors: make(map[string]string),
	}
	if coach != nil {
		data.Claiming = true
		data.DisplayName = coach.DisplayName
	}
	render(w, r, pages.Register(data))
}

// CreateGuest handles guest coach creation
func (h *AuthHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	displayName := strings.TrimSpace(r.FormValue("display_name"))
	next := r.FormValue("next")

	if displayName == "" {
		middleware.SetFlash(w, middleware.FlashError, "Display name is required")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	session, err := h.authService.CreateGuestCoach(r.Context(), displayName)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Failed to create guest coach")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, middleware.FlashSuccess, "Welcome, "+session.Coach.DisplayName+"!")
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if username == "" || password == "" {
		h.renderLoginError(w, r, "Username and password are required", username, next)
		return
	}

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		h.renderLoginError(w, r, "Invalid username or password", username, next)
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, middleware.FlashSuccess, "Welcome back, "+session.Coach.DisplayName+"!")
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "Invalid form data", "", "", nil)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	displayName := strings.TrimSpace(r.FormValue("display_name"))
	password := r.FormValue("password")
	passwordConfirm := r.FormValue("password_confirm")

	fieldErrors := make(map[string]string)

	switch {
	case username == "":
		fieldErrors["username"] = "Username is required"
	case strings.ContainsAny(username, " \t"):
		fieldErrors["username"] = "Username may not contain spaces"
	case utf8.RuneCountInString(username) > auth.MaxNameLength:
		fieldErrors["username"] = "Username must be at most 20 characters"
	}

	if utf8.RuneCountInString(displayName) > auth.MaxNameLength {
		fieldErrors["display_name"] = "Display name must be at most 20 characters"
	}

	if password == "" {
		fieldErrors["password"] = "Password is required"
	} else if len(password) < auth.MinPasswordLength {
		fieldErrors["password"] = "Password must be at least 6 characters"
	}

	if password != passwordConfirm {
		fieldErrors["password_confirm"] = "Passwords do not match"
	}

	if len(fieldErrors) > 0 {
		h.renderRegisterError(w, r, "", username, displayName, fieldErrors)
		return
	}

	var (
		session *auth.Session
		err     error
	)
	guest := middleware.GetCoach(r.Context())
	if guest != nil {
		session, err = h.claimGuest(r, username, password, displayName)
	} else {
		session, err = h.authService.RegisterCoach(r.Context(), username, password, displayName)
	}
	if err != nil {
		if errors.Is(err, auth.ErrUsernameExists) {
			fieldErrors["username"] = "Username already taken"
			h.renderRegisterError(w, r, "", username, displayName, fieldErrors)
		} else {
			h.renderRegisterError(w, r, "Registration failed: "+err.Error(), username, displayName, nil)
		}
		return
	}

	if guest != nil {
		middleware.SetFlash(w, middleware.FlashSuccess, "Account created! Your lineups stay with you, "+session.Coach.DisplayName+".")
	} else {
		h.setSessionCookie(w, session.Token)
		middleware.SetFlash(w, middleware.FlashSuccess, "Account created! Welcome, "+session.Coach.DisplayName+"!")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// claimGuest registers the signed-in guest in place, keeping its session
func (h *AuthHandler) claimGuest(r *http.Request, username, password, displayName string) (*auth.Session, error) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil {
		return nil, auth.ErrInvalidSession
	}
	return h.authService.ClaimGuest(r.Context(), cookie.Value, username, password, displayName)
}

// Logout ends the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.InvalidateSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, middleware.FlashInfo, "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, username, next string) {
	render(w, r, pages.Login(pages.LoginData{
		PageData: layout.PageData{Title: "Login"},
		Username: username,
		Error:    errorMsg,
		Next:     next,
	}))
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, errorMsg, username, displayName string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}

	coach := middleware.GetCoach(r.Context())
	render(w, r, pages.Register(pages.RegisterData{
		PageData:    layout.PageData{Title: "Register", Coach: coach},
		Claiming:    coach != nil,
		Username:    username,
		DisplayName: displayName,
		Error:       errorMsg,
		FieldErrors: fieldErrors,
	}))
}
