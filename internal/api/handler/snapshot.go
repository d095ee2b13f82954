package handler

import (
	"net/http"

	"github.com/mcoot/courtside/internal/api/middleware"
	"github.com/mcoot/courtside/internal/api/response"
	"github.com/mcoot/courtside/internal/services/lineup"
)

// SnapshotHandler handles save/restore endpoints
type SnapshotHandler struct {
	controller *lineup.Controller
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(controller *lineup.Controller) *SnapshotHandler {
	return &SnapshotHandler{
		controller: controller,
	}
}

// Save handles POST /api/v1/lineups/{id}/snapshot
func (h *SnapshotHandler) Save(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	snap, err := h.controller.SaveSnapshot(r.Context(), lineupID(r), coach.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SnapshotFromModel(snap))
}

// Get handles GET /api/v1/lineups/{id}/snapshot
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	snap, err := h.controller.GetSnapshot(r.Context(), lineupID(r), coach.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SnapshotFromModel(snap))
}

// Restore handles POST /api/v1/lineups/{id}/snapshot/restore
func (h *SnapshotHandler) Restore(w http.ResponseWriter, r *http.Request) {
	coach := middleware.MustCoach(r.Context())

	l, err := h.controller.RestoreSnapshot(r.Context(), lineupID(r), coach.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.WriteLineup(w, http.StatusOK, l)
}
