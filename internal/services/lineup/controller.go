package lineup

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/courtside/internal/dependencies/clock"
	"github.com/mcoot/courtside/internal/dependencies/random"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/court"
	"github.com/mcoot/courtside/internal/services/roster"
	"github.com/mcoot/courtside/internal/services/snapshot"
	"github.com/mcoot/courtside/internal/services/substitution"
	"github.com/mcoot/courtside/internal/storage"
)

const (
	// LineupIDLength is the length of generated lineup IDs
	LineupIDLength = 8
	// LineupIDAlphabet is the characters used in lineup IDs (avoid confusing chars)
	LineupIDAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"
	// DefaultName is used when a lineup is created without a name
	DefaultName = "New lineup"
)

// CreateParams are the optional settings for a new lineup
type CreateParams struct {
	Name             string
	Roster           []model.Player // defaults to model.DefaultRoster()
	SubstitutionSlot model.SlotPolicy
}

// Controller is the single owner of lineup state. Every mutation loads the
// lineup, checks ownership, applies one operation and saves, under one lock.
type Controller struct {
	mu sync.Mutex

	storage      storage.Storage
	roster       *roster.Service
	court        *court.Service
	substitution *substitution.Engine
	snapshot     *snapshot.Service
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a new lineup Controller
func NewController(
	storage storage.Storage,
	rosterService *roster.Service,
	courtService *court.Service,
	substitutionEngine *substitution.Engine,
	snapshotService *snapshot.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		roster:       rosterService,
		court:        courtService,
		substitution: substitutionEngine,
		snapshot:     snapshotService,
		clock:        clock,
		random:       random,
		logger:       logger,
	}
}

// CreateLineup creates an empty court for the coach
func (c *Controller) CreateLineup(ctx context.Context, owner model.CoachID, params CreateParams) (*model.Lineup, error) {
	players := params.Roster
	if len(players) == 0 {
		players = model.DefaultRoster()
	} else if err := roster.Validate(players); err != nil {
		return nil, err
	}

	config := model.DefaultLineupConfig()
	if params.SubstitutionSlot != "" {
		if !params.SubstitutionSlot.IsValid() {
			return nil, model.ErrInvalidPolicy
		}
		config.SubstitutionSlot = params.SubstitutionSlot
	}

	name := params.Name
	if name == "" {
		name = DefaultName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var id model.LineupID
	for {
		id = model.LineupID(c.random.String(LineupIDLength, LineupIDAlphabet))
		exists, err := c.storage.LineupExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	now := c.clock.Now()
	lineup := &model.Lineup{
		ID:        id,
		OwnerID:   owner,
		Name:      name,
		Roster:    append([]model.Player(nil), players...),
		Config:    config,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveLineup(ctx, lineup); err != nil {
		c.logger.Error("failed to save lineup",
			slog.String("lineup_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("lineup created",
		slog.String("lineup_id", string(id)),
		slog.String("owner_id", string(owner)),
		slog.Int("roster_size", len(lineup.Roster)),
		slog.String("substitution_slot", string(config.SubstitutionSlot)),
	)
	return lineup, nil
}

// GetLineup returns a lineup owned by the coach
func (c *Controller) GetLineup(ctx context.Context, id model.LineupID, coach model.CoachID) (*model.Lineup, error) {
	return c.load(ctx, id, coach)
}

// ListLineups returns the coach's lineups, oldest first
func (c *Controller) ListLineups(ctx context.Context, coach model.CoachID) ([]*model.Lineup, error) {
	return c.storage.GetLineupsForCoach(ctx, coach)
}

// DeleteLineup removes a lineup and its snapshot
func (c *Controller) DeleteLineup(ctx context.Context, id model.LineupID, coach model.CoachID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.load(ctx, id, coach); err != nil {
		return err
	}
	if err := c.storage.DeleteLineup(ctx, id); err != nil {
		return err
	}

	c.logger.Info("lineup deleted", slog.String("lineup_id", string(id)))
	return nil
}

// PlacePlayer puts a roster player on court. A nil slot is the drop gesture:
// the first free slot, or a random coordinate for a libero.
func (c *Controller) PlacePlayer(ctx context.Context, id model.LineupID, coach model.CoachID, number model.PlayerNumber, slot *model.RotationSlot) (*model.Lineup, error) {
	return c.mutate(ctx, id, coach, func(l *model.Lineup) error {
		p, err := c.roster.Find(l, number)
		if err != nil {
			return err
		}
		if slot == nil {
			_, err = c.court.Drop(&l.Court, *p)
		} else {
			_, err = c.court.Place(&l.Court, *p, *slot)
		}
		return err
	})
}

// MovePlayer re-snaps an on-court player to another slot
func (c *Controller) MovePlayer(ctx context.Context, id model.LineupID, coach model.CoachID, number model.PlayerNumber, slot model.RotationSlot) (*model.Lineup, error) {
	return c.mutate(ctx, id, coach, func(l *model.Lineup) error {
		p, err := c.roster.Find(l, number)
		if err != nil {
			return err
		}
		_, err = c.court.Move(&l.Court, *p, slot)
		return err
	})
}

// RemovePlayer takes a player off court; removing an absent player is a no-op
func (c *Controller) RemovePlayer(ctx context.Context, id model.LineupID, coach model.CoachID, number model.PlayerNumber) (*model.Lineup, error) {
	return c.mutate(ctx, id, coach, func(l *model.Lineup) error {
		c.court.RemovePlayer(&l.Court, number)
		return nil
	})
}

// ClearCourt removes every player from court
func (c *Controller) ClearCourt(ctx context.Context, id model.LineupID, coach model.CoachID) (*model.Lineup, error) {
	return c.mutate(ctx, id, coach, func(l *model.Lineup) error {
		c.court.Clear(&l.Court)
		return nil
	})
}

// Candidates returns who may come on for the given player: non-liberos for a
// libero, everyone else otherwise
func (c *Controller) Candidates(ctx context.Context, id model.LineupID, coach model.CoachID, number model.PlayerNumber) ([]model.Player, error) {
	l, err := c.load(ctx, id, coach)
	if err != nil {
		return nil, err
	}
	p, err := c.roster.Find(l, number)
	if err != nil {
		return nil, err
	}
	if p.Libero {
		return c.substitution.BackRowCandidates(l), nil
	}
	return c.substitution.Candidates(l, number), nil
}

// Substitute swaps the outgoing player for the incoming one
func (c *Controller) Substitute(ctx context.Context, id model.LineupID, coach model.CoachID, outgoing, incoming model.PlayerNumber) (*model.Lineup, *model.LogEntry, error) {
	var entry *model.LogEntry
	l, err := c.mutate(ctx, id, coach, func(l *model.Lineup) error {
		var err error
		entry, err = c.substitution.Substitute(l, outgoing, incoming)
		return err
	})
	return l, entry, err
}

// LiberoIn brings the libero on for the target player
func (c *Controller) LiberoIn(ctx context.Context, id model.LineupID, coach model.CoachID, libero, target model.PlayerNumber) (*model.Lineup, *model.LogEntry, error) {
	var entry *model.LogEntry
	l, err := c.mutate(ctx, id, coach, func(l *model.Lineup) error {
		var err error
		entry, err = c.substitution.LiberoIn(l, libero, target)
		return err
	})
	return l, entry, err
}

// RenamePlayer changes a player's display name
func (c *Controller) RenamePlayer(ctx context.Context, id model.LineupID, coach model.CoachID, number model.PlayerNumber, name string) (*model.Lineup, *model.Player, error) {
	var player *model.Player
	l, err := c.mutate(ctx, id, coach, func(l *model.Lineup) error {
		p, err := c.roster.Rename(l, number, name)
		if err != nil {
			return err
		}
		renamed := *p
		player = &renamed
		return nil
	})
	return l, player, err
}

// SaveSnapshot stores the current court setup
func (c *Controller) SaveSnapshot(ctx context.Context, id model.LineupID, coach model.CoachID) (*model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, err := c.load(ctx, id, coach)
	if err != nil {
		return nil, err
	}
	return c.snapshot.Save(ctx, l)
}

// GetSnapshot returns the saved court setup
func (c *Controller) GetSnapshot(ctx context.Context, id model.LineupID, coach model.CoachID) (*model.Snapshot, error) {
	if _, err := c.load(ctx, id, coach); err != nil {
		return nil, err
	}
	return c.snapshot.Load(ctx, id)
}

// RestoreSnapshot replaces the court with the saved setup
func (c *Controller) RestoreSnapshot(ctx context.Context, id model.LineupID, coach model.CoachID) (*model.Lineup, error) {
	return c.mutate(ctx, id, coach, func(l *model.Lineup) error {
		_, err := c.snapshot.Restore(ctx, l)
		return err
	})
}

// load reads a lineup and checks the coach owns it
func (c *Controller) load(ctx context.Context, id model.LineupID, coach model.CoachID) (*model.Lineup, error) {
	l, err := c.storage.GetLineup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(coach) {
		return nil, model.ErrNotOwner
	}
	return l, nil
}

// mutate runs fn against the stored lineup and saves the result. Nothing is
// saved when fn fails.
func (c *Controller) mutate(ctx context.Context, id model.LineupID, coach model.CoachID, fn func(*model.Lineup) error) (*model.Lineup, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, err := c.load(ctx, id, coach)
	if err != nil {
		return nil, err
	}
	if err := fn(l); err != nil {
		return nil, err
	}

	l.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveLineup(ctx, l); err != nil {
		c.logger.Error("failed to save lineup",
			slog.String("lineup_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return l, nil
}
