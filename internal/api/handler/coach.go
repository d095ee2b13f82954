package handler

import (
	"net/http"

	"github.com/mcoot/courtside/internal/api/middleware"
	"github.com/mcoot/courtside/internal/api/request"
	"github.com/mcoot/courtside/internal/api/response"
	"github.com/mcoot/courtside/internal/services/auth"
)

// CoachHandler handles coach account endpoints
type CoachHandler struct {
	authService *auth.Service
}

// NewCoachHandler creates a new coach handler
func NewCoachHandler(authService *auth.Service) *CoachHandler {
	return &CoachHandler{
		authService: authService,
	}
}

// CreateGuest handles POST /api/v1/coaches/guest
func (h *CoachHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.authService.CreateGuestCoach(r.Context(), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Register handles POST /api/v1/coaches/register
func (h *CoachHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.RegisterCoach(r.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Claim handles POST /api/v1/coaches/me/claim. The guest behind the session
// becomes a registered coach and keeps its lineups and token.
func (h *CoachHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	token := middleware.SessionFrom(r.Context()).Token
	session, err := h.authService.ClaimGuest(r.Context(), token, req.Username, req.Password, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/coaches/login
func (h *CoachHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/coaches/me
func (h *CoachHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())
	response.JSON(w, http.StatusOK, response.CoachFromModel(coach))
}
