package handler

import (
	"net/http"

	"github.com/mcoot/courtside/internal/api/middleware"
	"github.com/mcoot/courtside/internal/api/request"
	"github.com/mcoot/courtside/internal/api/response"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/lineup"
)

// LineupHandler handles lineup CRUD endpoints
type LineupHandler struct {
	controller *lineup.Controller
}

// NewLineupHandler creates a new lineup handler
func NewLineupHandler(controller *lineup.Controller) *LineupHandler {
	return &LineupHandler{
		controller: controller,
	}
}

// Create handles POST /api/v1/lineups
func (h *LineupHandler) Create(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	var req request.CreateLineupRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			WriteError(w, err)
			return
		}
	}

	params := lineup.CreateParams{
		Name:             req.Name,
		SubstitutionSlot: model.SlotPolicy(req.SubstitutionSlot),
	}
	for _, p := range req.Roster {
		params.Roster = append(params.Roster, model.Player{
			Number: model.PlayerNumber(p.Number),
			Name:   p.Name,
			Libero: p.Libero,
		})
	}

	l, err := h.controller.CreateLineup(r.Context(), coach.ID, params)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.WriteLineup(w, http.StatusCreated, l)
}

// List handles GET /api/v1/lineups
func (h *LineupHandler) List(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	lineups, err := h.controller.ListLineups(r.Context(), coach.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LineupListFromModel(lineups))
}

// Get handles GET /api/v1/lineups/{id}
func (h *LineupHandler) Get(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	l, err := h.controller.GetLineup(r.Context(), lineupID(r), coach.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.WriteLineup(w, http.StatusOK, l)
}

// Delete handles DELETE /api/v1/lineups/{id}
func (h *LineupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	if err := h.controller.DeleteLineup(r.Context(), lineupID(r), coach.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
