package storage

import (
	"context"

	"github.com/mcoot/courtside/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Coach operations
	SaveCoach(ctx context.Context, coach *model.Coach) error
	GetCoach(ctx context.Context, id model.CoachID) (*model.Coach, error)
	DeleteCoach(ctx context.Context, id model.CoachID) error

	// Registered coach operations
	SaveRegisteredCoach(ctx context.Context, rc *model.RegisteredCoach) error
	GetRegisteredCoach(ctx context.Context, coachID model.CoachID) (*model.RegisteredCoach, error)
	GetRegisteredCoachByUsername(ctx context.Context, username string) (*model.RegisteredCoach, error)

	// Lineup operations
	SaveLineup(ctx context.Context, lineup *model.Lineup) error
	GetLineup(ctx context.Context, id model.LineupID) (*model.Lineup, error)
	GetLineupsForCoach(ctx context.Context, coachID model.CoachID) ([]*model.Lineup, error)
	DeleteLineup(ctx context.Context, id model.LineupID) error
	LineupExists(ctx context.Context, id model.LineupID) (bool, error)

	// Snapshot operations. The stored value is an opaque JSON string kept
	// under the lineup's fixed snapshot key; a save replaces the previous one.
	SaveSnapshot(ctx context.Context, lineupID model.LineupID, data string) error
	GetSnapshot(ctx context.Context, lineupID model.LineupID) (string, error)
	DeleteSnapshot(ctx context.Context, lineupID model.LineupID) error
}
