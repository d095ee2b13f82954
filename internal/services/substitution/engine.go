package substitution

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/courtside/internal/dependencies/clock"
	"github.com/mcoot/courtside/internal/dependencies/random"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/court"
)

// Engine performs player-for-player and libero substitutions and records
// each successful one in the lineup's log
type Engine struct {
	court  *court.Service
	random random.Random
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new substitution Engine
func New(courtService *court.Service, random random.Random, clock clock.Clock, logger *slog.Logger) *Engine {
	return &Engine{
		court:  courtService,
		random: random,
		clock:  clock,
		logger: logger,
	}
}

// Candidates returns every roster member except the outgoing player
func (e *Engine) Candidates(lineup *model.Lineup, outgoing model.PlayerNumber) []model.Player {
	var candidates []model.Player
	for _, p := range lineup.Roster {
		if p.Number != outgoing {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

// BackRowCandidates returns the players a libero may come in for: every non-libero
func (e *Engine) BackRowCandidates(lineup *model.Lineup) []model.Player {
	var candidates []model.Player
	for _, p := range lineup.Roster {
		if !p.Libero {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

// Substitute takes the outgoing player off court and brings the incoming
// player on. A libero cannot be the outgoing player; liberos leave through
// LiberoIn. Nothing changes and no log line is written unless every check passes.
func (e *Engine) Substitute(lineup *model.Lineup, outgoing, incoming model.PlayerNumber) (*model.LogEntry, error) {
	out := lineup.Player(outgoing)
	if out == nil {
		return nil, model.ErrPlayerNotFound
	}
	if out.Libero {
		return nil, fmt.Errorf("%w: %s is a libero", model.ErrInvalidPlayerReference, outgoing)
	}
	outEntry := lineup.Court.Entry(outgoing)
	if outEntry == nil {
		return nil, model.ErrNotOnCourt
	}
	in := findCandidate(e.Candidates(lineup, outgoing), incoming)
	if in == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidPlayerReference, incoming)
	}
	if lineup.Court.IsOnCourt(incoming) {
		return nil, model.ErrAlreadyOnCourt
	}

	var vacated *model.RotationSlot
	if outEntry.HasSlot() {
		slot := *outEntry.Slot
		vacated = &slot
	}

	e.court.RemovePlayer(&lineup.Court, outgoing)

	slot := e.incomingSlot(lineup, *in, vacated)
	if _, err := e.court.Place(&lineup.Court, *in, slot); err != nil {
		return nil, err
	}

	entry := e.appendLog(lineup, model.LogKindSubstitution, *out, *in,
		fmt.Sprintf("%s → %s", out.Label(), in.Label()))

	e.logger.Info("player substituted",
		slog.String("lineup_id", string(lineup.ID)),
		slog.Int("outgoing", int(outgoing)),
		slog.Int("incoming", int(incoming)),
		slog.Int("slot", int(slot)),
	)
	return entry, nil
}

// LiberoIn brings the libero on for a non-libero. The target leaves court if
// present and the libero lands on a random slot coordinate. A libero already
// on court is moved to the new coordinate, unlike Drop, which leaves an
// already placed player's entry alone.
func (e *Engine) LiberoIn(lineup *model.Lineup, liberoNumber, target model.PlayerNumber) (*model.LogEntry, error) {
	lib := lineup.Player(liberoNumber)
	if lib == nil {
		return nil, model.ErrPlayerNotFound
	}
	if !lib.Libero {
		return nil, fmt.Errorf("%w: %s is not a libero", model.ErrInvalidPlayerReference, liberoNumber)
	}
	out := findCandidate(e.BackRowCandidates(lineup), target)
	if out == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidPlayerReference, target)
	}

	e.court.RemovePlayer(&lineup.Court, target)

	slot := e.court.FindFreePosition(&lineup.Court, *lib)
	var err error
	if lineup.Court.IsOnCourt(liberoNumber) {
		_, err = e.court.Move(&lineup.Court, *lib, slot)
	} else {
		_, err = e.court.Place(&lineup.Court, *lib, slot)
	}
	if err != nil {
		return nil, err
	}

	entry := e.appendLog(lineup, model.LogKindLibero, *out, *lib,
		fmt.Sprintf("Libero %s in for %s", lib.Label(), out.Label()))

	e.logger.Info("libero substituted",
		slog.String("lineup_id", string(lineup.ID)),
		slog.Int("libero", int(liberoNumber)),
		slog.Int("target", int(target)),
	)
	return entry, nil
}

// incomingSlot picks where the incoming player goes according to the lineup's policy
func (e *Engine) incomingSlot(lineup *model.Lineup, in model.Player, vacated *model.RotationSlot) model.RotationSlot {
	if lineup.Config.SubstitutionSlot == model.SlotPolicyRandom {
		free := lineup.Court.FreeSlots()
		if len(free) > 0 {
			return free[e.random.Intn(len(free))]
		}
	}
	if vacated != nil {
		return *vacated
	}
	return e.court.FindFreePosition(&lineup.Court, in)
}

func (e *Engine) appendLog(lineup *model.Lineup, kind model.LogKind, out, in model.Player, text string) *model.LogEntry {
	lineup.Log = append(lineup.Log, model.LogEntry{
		Kind:     kind,
		Outgoing: out.Number,
		Incoming: in.Number,
		Text:     text,
		At:       e.clock.Now(),
	})
	return &lineup.Log[len(lineup.Log)-1]
}

func findCandidate(candidates []model.Player, number model.PlayerNumber) *model.Player {
	for i := range candidates {
		if candidates[i].Number == number {
			return &candidates[i]
		}
	}
	return nil
}
