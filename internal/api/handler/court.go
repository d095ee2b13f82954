package handler

import (
	"net/http"

	"github.com/mcoot/courtside/internal/api/middleware"
	"github.com/mcoot/courtside/internal/api/request"
	"github.com/mcoot/courtside/internal/api/response"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/lineup"
)

// CourtHandler handles placement endpoints
type CourtHandler struct {
	controller *lineup.Controller
}

// NewCourtHandler creates a new court handler
func NewCourtHandler(controller *lineup.Controller) *CourtHandler {
	return &CourtHandler{
		controller: controller,
	}
}

// Place handles POST /api/v1/lineups/{id}/court
func (h *CourtHandler) Place(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	var req request.PlaceRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	var slot *model.RotationSlot
	if req.Slot != nil {
		s := model.RotationSlot(*req.Slot)
		slot = &s
	}

	l, err := h.controller.PlacePlayer(r.Context(), lineupID(r), coach.ID, model.PlayerNumber(req.Number), slot)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.WriteLineup(w, http.StatusOK, l)
}

// Move handles PATCH /api/v1/lineups/{id}/court/{number}
func (h *CourtHandler) Move(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	number, err := playerNumber(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.MoveRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Slot == nil {
		WriteError(w, NewInvalidRequestError("slot is required"))
		return
	}

	l, err := h.controller.MovePlayer(r.Context(), lineupID(r), coach.ID, number, model.RotationSlot(*req.Slot))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.WriteLineup(w, http.StatusOK, l)
}

// Remove handles DELETE /api/v1/lineups/{id}/court/{number}
func (h *CourtHandler) Remove(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	number, err := playerNumber(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	l, err := h.controller.RemovePlayer(r.Context(), lineupID(r), coach.ID, number)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.WriteLineup(w, http.StatusOK, l)
}

// Clear handles DELETE /api/v1/lineups/{id}/court
func (h *CourtHandler) Clear(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	l, err := h.controller.ClearCourt(r.Context(), lineupID(r), coach.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.WriteLineup(w, http.StatusOK, l)
}
