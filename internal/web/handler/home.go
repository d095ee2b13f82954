package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/lineup"
	"github.com/mcoot/courtside/internal/web/middleware"
	"github.com/mcoot/courtside/internal/web/templates/layout"
	"github.com/mcoot/courtside/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	controller *lineup.Controller
	logger     *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(controller *lineup.Controller, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		controller: controller,
		logger:     logger,
	}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	coach := middleware.GetCoach(r.Context())
	flash := middleware.GetFlash(r.Context())
	next := r.URL.Query().Get("next")

	var lineups []*model.Lineup
	if coach != nil {
		var err error
		lineups, err = h.controller.ListLineups(r.Context(), coach.ID)
		if err != nil {
			h.logger.Error("failed to list lineups",
				slog.String("coach_id", string(coach.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Home",
			Coach: coach,
			Flash: flash,
		},
		Next:    next,
		Lineups: lineups,
	}

	render(w, r, pages.Home(data))
}
