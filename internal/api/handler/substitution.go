package handler

import (
	"net/http"

	"github.com/mcoot/courtside/internal/api/middleware"
	"github.com/mcoot/courtside/internal/api/request"
	"github.com/mcoot/courtside/internal/api/response"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/lineup"
)

// SubstitutionHandler handles substitution endpoints
type SubstitutionHandler struct {
	controller *lineup.Controller
}

// NewSubstitutionHandler creates a new substitution handler
func NewSubstitutionHandler(controller *lineup.Controller) *SubstitutionHandler {
	return &SubstitutionHandler{
		controller: controller,
	}
}

// Substitute handles POST /api/v1/lineups/{id}/substitutions
func (h *SubstitutionHandler) Substitute(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	var req request.SubstituteRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	l, entry, err := h.controller.Substitute(r.Context(), lineupID(r), coach.ID,
		model.PlayerNumber(req.Outgoing), model.PlayerNumber(req.Incoming))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubstitutionResponse{
		Log:    response.LogEntryFromModel(*entry),
		Lineup: response.LineupFromModel(l),
	})
}

// LiberoIn handles POST /api/v1/lineups/{id}/libero
func (h *SubstitutionHandler) LiberoIn(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	var req request.LiberoRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	l, entry, err := h.controller.LiberoIn(r.Context(), lineupID(r), coach.ID,
		model.PlayerNumber(req.Libero), model.PlayerNumber(req.Target))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubstitutionResponse{
		Log:    response.LogEntryFromModel(*entry),
		Lineup: response.LineupFromModel(l),
	})
}

// Candidates handles GET /api/v1/lineups/{id}/substitutions/candidates?player=N
func (h *SubstitutionHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	number, err := lineup.ParsePlayerNumber(r.URL.Query().Get("player"))
	if err != nil {
		WriteError(w, NewInvalidRequestError("player query parameter must be a player number"))
		return
	}

	l, err := h.controller.GetLineup(r.Context(), lineupID(r), coach.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	candidates, err := h.controller.Candidates(r.Context(), l.ID, coach.ID, number)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.CandidatesResponse{
		Player:     int(number),
		Candidates: make([]response.Player, len(candidates)),
	}
	if p := l.Player(number); p != nil {
		resp.Libero = p.Libero
	}
	for i, c := range candidates {
		resp.Candidates[i] = response.PlayerFromModel(c, l.Court.IsOnCourt(c.Number))
	}

	response.JSON(w, http.StatusOK, resp)
}
