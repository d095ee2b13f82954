package handler

import (
	"errors"
	"net/http"

	"github.com/mcoot/courtside/internal/api/middleware"
	"github.com/mcoot/courtside/internal/api/request"
	"github.com/mcoot/courtside/internal/api/response"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/lineup"
	"github.com/mcoot/courtside/internal/services/roster"
)

// PlayerHandler handles roster player endpoints
type PlayerHandler struct {
	controller *lineup.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller *lineup.Controller) *PlayerHandler {
	return &PlayerHandler{
		controller: controller,
	}
}

// Rename handles PATCH /api/v1/lineups/{id}/players/{number}
func (h *PlayerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	number, err := playerNumber(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.RenameRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	l, p, err := h.controller.RenamePlayer(r.Context(), lineupID(r), coach.ID, number, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RenameResponse{
		Player:  response.PlayerFromModel(*p, l.Court.IsOnCourt(p.Number)),
		Message: roster.RenameConfirmation(p),
		Lineup:  response.LineupFromModel(l),
	})
}

// Action handles POST /api/v1/lineups/{id}/players/{number}/actions.
// An empty action or value is a cancelled prompt and answers 204 without
// changing anything.
func (h *PlayerHandler) Action(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	number, err := playerNumber(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ActionRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.controller.Perform(r.Context(), lineupID(r), coach.ID, lineup.Action{
		Player:  number,
		Command: req.Action,
		Value:   req.Value,
	})
	if errors.Is(err, model.ErrEmptyInput) {
		response.NoContent(w)
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponse{
		Action:  string(result.Kind),
		Message: result.Message,
		Lineup:  response.LineupFromModel(result.Lineup),
	})
}
