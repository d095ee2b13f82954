package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mcoot/courtside/internal/dependencies/clock"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/storage"
)

// Service saves and restores a lineup's court setup
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new snapshot Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Records flattens the court into snapshot records, in court order
func Records(lineup *model.Lineup) []model.SnapshotRecord {
	records := make([]model.SnapshotRecord, 0, len(lineup.Court.Entries))
	for _, e := range lineup.Court.Entries {
		record := model.SnapshotRecord{
			ID:     model.ElementID(e.PlayerNumber),
			Number: e.PlayerNumber,
			Top:    e.Position.Y,
			Left:   e.Position.X,
		}
		if p := lineup.Player(e.PlayerNumber); p != nil {
			record.Libero = p.Libero
		}
		if e.HasSlot() {
			slot := *e.Slot
			record.Rotation = &slot
		}
		records = append(records, record)
	}
	return records
}

// Save writes the current court setup under the lineup's snapshot key,
// replacing any earlier snapshot
func (s *Service) Save(ctx context.Context, lineup *model.Lineup) (*model.Snapshot, error) {
	records := Records(lineup)
	data, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}

	if err := s.storage.SaveSnapshot(ctx, lineup.ID, string(data)); err != nil {
		s.logger.Error("failed to save snapshot",
			slog.String("lineup_id", string(lineup.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("snapshot saved",
		slog.String("lineup_id", string(lineup.ID)),
		slog.Int("records", len(records)),
	)
	return &model.Snapshot{LineupID: lineup.ID, Records: records}, nil
}

// Load reads a lineup's saved snapshot
func (s *Service) Load(ctx context.Context, lineupID model.LineupID) (*model.Snapshot, error) {
	data, err := s.storage.GetSnapshot(ctx, lineupID)
	if err != nil {
		return nil, err
	}

	var records []model.SnapshotRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidSnapshot, err)
	}
	return &model.Snapshot{LineupID: lineupID, Records: records}, nil
}

// Restore replaces the lineup's court with the saved snapshot. The court is
// only touched once every record has been checked against the roster.
func (s *Service) Restore(ctx context.Context, lineup *model.Lineup) (*model.Snapshot, error) {
	snap, err := s.Load(ctx, lineup.ID)
	if err != nil {
		return nil, err
	}

	restored, err := s.buildCourt(lineup, snap.Records)
	if err != nil {
		return nil, err
	}
	lineup.Court = restored

	s.logger.Info("snapshot restored",
		slog.String("lineup_id", string(lineup.ID)),
		slog.Int("records", len(snap.Records)),
	)
	return snap, nil
}

func (s *Service) buildCourt(lineup *model.Lineup, records []model.SnapshotRecord) (model.Court, error) {
	var c model.Court
	now := s.clock.Now()
	seen := make(map[model.PlayerNumber]bool, len(records))

	for _, r := range records {
		p := lineup.Player(r.Number)
		if p == nil {
			return model.Court{}, fmt.Errorf("%w: unknown player %s", model.ErrInvalidSnapshot, r.Number)
		}
		if seen[r.Number] {
			return model.Court{}, fmt.Errorf("%w: %s appears twice", model.ErrInvalidSnapshot, r.Number)
		}
		seen[r.Number] = true

		if r.Libero != p.Libero {
			return model.Court{}, fmt.Errorf("%w: libero flag for %s", model.ErrInvalidSnapshot, r.Number)
		}

		entry := model.PlacementEntry{
			PlayerNumber: r.Number,
			Position:     model.Coordinate{X: r.Left, Y: r.Top},
			PlacedAt:     now,
		}
		if !p.Libero {
			if r.Rotation == nil || !r.Rotation.IsValid() {
				return model.Court{}, fmt.Errorf("%w: %s has no rotation slot", model.ErrInvalidSnapshot, r.Number)
			}
			if !c.IsSlotFree(*r.Rotation) {
				return model.Court{}, fmt.Errorf("%w: slot %d taken twice", model.ErrInvalidSnapshot, *r.Rotation)
			}
			slot := *r.Rotation
			entry.Slot = &slot
		} else if r.Rotation != nil {
			return model.Court{}, fmt.Errorf("%w: libero %s has a rotation slot", model.ErrInvalidSnapshot, r.Number)
		}
		c.Entries = append(c.Entries, entry)
	}

	c.RefreshOccupancy()
	return c, nil
}
