package snapshot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/courtside/internal/dependencies/mocks"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/storage/memory"
	"github.com/mcoot/courtside/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	lineup  *model.Lineup
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	slot := model.RotationSlot(1)
	s.lineup = &model.Lineup{
		ID:     "lineup-1",
		Roster: model.DefaultRoster(),
		Court: model.Court{
			Entries: []model.PlacementEntry{
				{PlayerNumber: 2, Slot: &slot, Position: slot.Coordinate()},
				{PlayerNumber: 7, Position: model.Coordinate{X: 400, Y: 100}},
			},
		},
	}
	s.lineup.Court.RefreshOccupancy()
}

// Save tests

func (s *ServiceSuite) TestSaveTwoPlayersWritesTwoRecords() {
	snap, err := s.service.Save(s.ctx, s.lineup)
	s.Require().NoError(err)
	s.Len(snap.Records, 2)

	raw, err := s.storage.GetSnapshot(s.ctx, "lineup-1")
	s.Require().NoError(err)

	var decoded []map[string]any
	s.Require().NoError(json.Unmarshal([]byte(raw), &decoded))
	s.Require().Len(decoded, 2)

	s.Equal(map[string]any{
		"id":       "player-2",
		"number":   float64(2),
		"top":      float64(300),
		"left":     float64(250),
		"libero":   false,
		"rotation": float64(1),
	}, decoded[0])
	s.Equal(map[string]any{
		"id":       "player-7",
		"number":   float64(7),
		"top":      float64(100),
		"left":     float64(400),
		"libero":   true,
		"rotation": nil,
	}, decoded[1])
}

func (s *ServiceSuite) TestSaveEmptyCourtWritesEmptyArray() {
	s.lineup.Court.Clear()

	_, err := s.service.Save(s.ctx, s.lineup)
	s.Require().NoError(err)

	raw, _ := s.storage.GetSnapshot(s.ctx, "lineup-1")
	s.Equal("[]", raw)
}

func (s *ServiceSuite) TestSaveOverwritesPrevious() {
	_, _ = s.service.Save(s.ctx, s.lineup)
	s.lineup.Court.Remove(7)
	_, _ = s.service.Save(s.ctx, s.lineup)

	snap, err := s.service.Load(s.ctx, "lineup-1")
	s.Require().NoError(err)
	s.Len(snap.Records, 1)
}

// Load tests

func (s *ServiceSuite) TestLoadNotFound() {
	_, err := s.service.Load(s.ctx, "lineup-1")
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

func (s *ServiceSuite) TestLoadCorruptData() {
	_ = s.storage.SaveSnapshot(s.ctx, "lineup-1", "not json")

	_, err := s.service.Load(s.ctx, "lineup-1")
	s.ErrorIs(err, model.ErrInvalidSnapshot)
}

// Restore tests

func (s *ServiceSuite) TestRestoreRoundTrip() {
	_, _ = s.service.Save(s.ctx, s.lineup)
	s.lineup.Court.Clear()

	_, err := s.service.Restore(s.ctx, s.lineup)
	s.Require().NoError(err)

	s.Len(s.lineup.Court.Entries, 2)
	s.Equal(model.RotationSlot(1), *s.lineup.Court.Entry(2).Slot)
	s.Nil(s.lineup.Court.Entry(7).Slot)
	s.Equal(model.Coordinate{X: 400, Y: 100}, s.lineup.Court.Entry(7).Position)
	s.True(s.lineup.Court.Occupied[1])
}

func (s *ServiceSuite) TestRestoreUnknownPlayerLeavesCourtUnchanged() {
	_ = s.storage.SaveSnapshot(s.ctx, "lineup-1",
		`[{"id":"player-42","number":42,"top":300,"left":100,"libero":false,"rotation":0}]`)

	_, err := s.service.Restore(s.ctx, s.lineup)
	s.ErrorIs(err, model.ErrInvalidSnapshot)
	s.Len(s.lineup.Court.Entries, 2)
}

func (s *ServiceSuite) TestRestoreRejectsDuplicateSlots() {
	_ = s.storage.SaveSnapshot(s.ctx, "lineup-1",
		`[{"id":"player-1","number":1,"top":300,"left":100,"libero":false,"rotation":0},`+
			`{"id":"player-2","number":2,"top":300,"left":100,"libero":false,"rotation":0}]`)

	_, err := s.service.Restore(s.ctx, s.lineup)
	s.ErrorIs(err, model.ErrInvalidSnapshot)
}

func (s *ServiceSuite) TestRestoreRejectsLiberoMismatch() {
	_ = s.storage.SaveSnapshot(s.ctx, "lineup-1",
		`[{"id":"player-7","number":7,"top":300,"left":100,"libero":false,"rotation":0}]`)

	_, err := s.service.Restore(s.ctx, s.lineup)
	s.ErrorIs(err, model.ErrInvalidSnapshot)
}

func (s *ServiceSuite) TestRestoreRejectsMissingRotation() {
	_ = s.storage.SaveSnapshot(s.ctx, "lineup-1",
		`[{"id":"player-3","number":3,"top":300,"left":100,"libero":false,"rotation":null}]`)

	_, err := s.service.Restore(s.ctx, s.lineup)
	s.ErrorIs(err, model.ErrInvalidSnapshot)
}

func (s *ServiceSuite) TestRestoreWithoutSnapshot() {
	_, err := s.service.Restore(s.ctx, s.lineup)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}
