package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/courtside/internal/api/apierr"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/lineup"
	"github.com/mcoot/courtside/internal/services/roster"
	"github.com/mcoot/courtside/internal/web/middleware"
	"github.com/mcoot/courtside/internal/web/templates/components"
	"github.com/mcoot/courtside/internal/web/templates/layout"
	"github.com/mcoot/courtside/internal/web/templates/pages"
)

// LineupHandler handles the lineup editor pages and form posts.
// Edits answer htmx requests with the re-rendered editor fragment and
// plain form posts with a redirect back to the editor.
type LineupHandler struct {
	controller *lineup.Controller
	logger     *slog.Logger
}

// NewLineupHandler creates a new LineupHandler
func NewLineupHandler(controller *lineup.Controller, logger *slog.Logger) *LineupHandler {
	return &LineupHandler{
		controller: controller,
		logger:     logger,
	}
}

// Create handles lineup creation from the home page
func (h *LineupHandler) Create(w http.ResponseWriter, r *http.Request) {
	coach := middleware.GetCoach(r.Context())

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	l, err := h.controller.CreateLineup(r.Context(), coach.ID, lineup.CreateParams{
		Name:             strings.TrimSpace(r.FormValue("name")),
		SubstitutionSlot: model.SlotPolicy(r.FormValue("substitution_slot")),
	})
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, apierr.Message(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Lineup created!")
	http.Redirect(w, r, editorPath(l.ID), http.StatusSeeOther)
}

// View renders the editor page
func (h *LineupHandler) View(w http.ResponseWriter, r *http.Request) {
	coach := middleware.GetCoach(r.Context())

	l, err := h.controller.GetLineup(r.Context(), lineupID(r), coach.ID)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, apierr.Message(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	render(w, r, pages.Lineup(pages.LineupData{
		PageData: layout.PageData{
			Title: l.Name,
			Coach: coach,
			Flash: middleware.GetFlash(r.Context()),
		},
		Lineup: l,
	}))
}

// Delete removes the lineup and returns home
func (h *LineupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	coach := middleware.GetCoach(r.Context())

	if err := h.controller.DeleteLineup(r.Context(), lineupID(r), coach.ID); err != nil {
		middleware.SetFlash(w, middleware.FlashError, apierr.Message(err))
	} else {
		middleware.SetFlash(w, middleware.FlashInfo, "Lineup deleted")
	}

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Place drops a player onto the court. An empty slot field means the
// first free slot.
func (h *LineupHandler) Place(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error) {
		number, err := lineup.ParsePlayerNumber(r.FormValue("number"))
		if err != nil {
			return nil, "", err
		}

		var slot *model.RotationSlot
		if raw := strings.TrimSpace(r.FormValue("slot")); raw != "" {
			s, err := parseSlot(raw)
			if err != nil {
				return nil, "", err
			}
			slot = &s
		}

		l, err := h.controller.PlacePlayer(r.Context(), id, coach, number, slot)
		return l, "", err
	})
}

// Move moves an on-court player to another slot
func (h *LineupHandler) Move(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error) {
		number, err := pathNumber(r)
		if err != nil {
			return nil, "", err
		}
		slot, err := parseSlot(r.FormValue("slot"))
		if err != nil {
			return nil, "", err
		}

		l, err := h.controller.MovePlayer(r.Context(), id, coach, number, slot)
		return l, "", err
	})
}

// Remove takes a player off the court
func (h *LineupHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error) {
		number, err := pathNumber(r)
		if err != nil {
			return nil, "", err
		}

		l, err := h.controller.RemovePlayer(r.Context(), id, coach, number)
		return l, "", err
	})
}

// Clear empties the court
func (h *LineupHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error) {
		l, err := h.controller.ClearCourt(r.Context(), id, coach)
		return l, "Court cleared", err
	})
}

// Substitute swaps an on-court player for a bench player
func (h *LineupHandler) Substitute(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error) {
		outgoing, err := lineup.ParsePlayerNumber(r.FormValue("outgoing"))
		if err != nil {
			return nil, "", err
		}
		incoming, err := lineup.ParsePlayerNumber(r.FormValue("incoming"))
		if err != nil {
			return nil, "", err
		}

		l, entry, err := h.controller.Substitute(r.Context(), id, coach, outgoing, incoming)
		if err != nil {
			return nil, "", err
		}
		return l, entry.Text, nil
	})
}

// LiberoIn brings the libero on for a back-row player
func (h *LineupHandler) LiberoIn(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error) {
		libero, err := lineup.ParsePlayerNumber(r.FormValue("libero"))
		if err != nil {
			return nil, "", err
		}
		target, err := lineup.ParsePlayerNumber(r.FormValue("target"))
		if err != nil {
			return nil, "", err
		}

		l, entry, err := h.controller.LiberoIn(r.Context(), id, coach, libero, target)
		if err != nil {
			return nil, "", err
		}
		return l, entry.Text, nil
	})
}

// Action runs a typed "sub"/"name" command against a player
func (h *LineupHandler) Action(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error) {
		number, err := pathNumber(r)
		if err != nil {
			return nil, "", err
		}

		result, err := h.controller.Perform(r.Context(), id, coach, lineup.Action{
			Player:  number,
			Command: r.FormValue("action"),
			Value:   r.FormValue("value"),
		})
		if err != nil {
			return nil, "", err
		}
		return result.Lineup, result.Message, nil
	})
}

// Rename sets a roster player's name
func (h *LineupHandler) Rename(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error) {
		number, err := pathNumber(r)
		if err != nil {
			return nil, "", err
		}

		l, p, err := h.controller.RenamePlayer(r.Context(), id, coach, number, r.FormValue("name"))
		if err != nil {
			return nil, "", err
		}
		return l, roster.RenameConfirmation(p), nil
	})
}

// SaveSnapshot stores the court setup
func (h *LineupHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error) {
		if _, err := h.controller.SaveSnapshot(r.Context(), id, coach); err != nil {
			return nil, "", err
		}
		l, err := h.controller.GetLineup(r.Context(), id, coach)
		return l, "Setup saved", err
	})
}

// RestoreSnapshot replaces the court with the saved setup
func (h *LineupHandler) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error) {
		l, err := h.controller.RestoreSnapshot(r.Context(), id, coach)
		return l, "Setup restored", err
	})
}

type editFunc func(id model.LineupID, coach model.CoachID) (*model.Lineup, string, error)

// edit runs fn and answers with the editor fragment (htmx) or a redirect.
// Empty input is a cancelled prompt and changes nothing.
func (h *LineupHandler) edit(w http.ResponseWriter, r *http.Request, fn editFunc) {
	coach := middleware.GetCoach(r.Context())
	id := lineupID(r)

	if err := r.ParseForm(); err != nil {
		h.respondError(w, r, id, coach.ID, apierr.NewInvalidRequestError("Invalid form data"))
		return
	}

	l, message, err := fn(id, coach.ID)
	if errors.Is(err, model.ErrEmptyInput) {
		if isHTMX(r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Redirect(w, r, editorPath(id), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.respondError(w, r, id, coach.ID, err)
		return
	}

	var notice *layout.FlashMessage
	if message != "" {
		notice = &layout.FlashMessage{Type: middleware.FlashSuccess, Message: message}
	}

	if isHTMX(r) {
		render(w, r, components.Editor(l, notice))
		return
	}
	if notice != nil {
		middleware.SetFlash(w, notice.Type, notice.Message)
	}
	http.Redirect(w, r, editorPath(id), http.StatusSeeOther)
}

func (h *LineupHandler) respondError(w http.ResponseWriter, r *http.Request, id model.LineupID, coach model.CoachID, err error) {
	message := apierr.Message(err)
	if apierr.Status(err) >= http.StatusInternalServerError {
		h.logger.Error("lineup edit failed",
			slog.String("lineup_id", string(id)),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		message = "Something went wrong. Please try again."
	}

	if isHTMX(r) {
		// Re-render the unchanged editor so the warning shows in place
		l, loadErr := h.controller.GetLineup(r.Context(), id, coach)
		if loadErr == nil {
			render(w, r, components.Editor(l, &layout.FlashMessage{Type: middleware.FlashError, Message: message}))
			return
		}
		middleware.SetFlash(w, middleware.FlashError, apierr.Message(loadErr))
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middleware.SetFlash(w, middleware.FlashError, message)
	if errors.Is(err, model.ErrLineupNotFound) || errors.Is(err, model.ErrNotOwner) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, editorPath(id), http.StatusSeeOther)
}

func editorPath(id model.LineupID) string {
	return "/lineups/" + string(id)
}

func lineupID(r *http.Request) model.LineupID {
	return model.LineupID(mux.Vars(r)["id"])
}

func pathNumber(r *http.Request) (model.PlayerNumber, error) {
	return lineup.ParsePlayerNumber(mux.Vars(r)["number"])
}

func parseSlot(raw string) (model.RotationSlot, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, model.ErrInvalidSlot
	}
	return model.RotationSlot(n), nil
}
