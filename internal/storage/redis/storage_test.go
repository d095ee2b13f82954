package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/courtside/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestCoachTTL = time.Hour
	cfg.LineupTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func newLineup(id model.LineupID, owner model.CoachID, createdAt time.Time) *model.Lineup {
	slot := model.RotationSlot(2)
	return &model.Lineup{
		ID:      id,
		OwnerID: owner,
		Name:    "Saturday",
		Roster:  model.DefaultRoster(),
		Court: model.Court{
			Entries: []model.PlacementEntry{
				{PlayerNumber: 3, Slot: &slot, Position: slot.Coordinate()},
				{PlayerNumber: 7, Position: model.Coordinate{X: 40, Y: 200}},
			},
		},
		Config:    model.DefaultLineupConfig(),
		CreatedAt: createdAt,
	}
}

// Coach tests

func (s *StorageSuite) TestSaveAndGetCoach() {
	coach := &model.Coach{
		ID:          "coach-1",
		DisplayName: "Alice",
		CreatedAt:   time.Now(),
	}

	err := s.storage.SaveCoach(s.ctx, coach)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCoach(s.ctx, "coach-1")
	s.Require().NoError(err)
	s.Equal(coach.ID, retrieved.ID)
	s.Equal(coach.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetCoachNotFound() {
	_, err := s.storage.GetCoach(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrCoachNotFound)
}

func (s *StorageSuite) TestDeleteCoach() {
	_ = s.storage.SaveCoach(s.ctx, &model.Coach{ID: "coach-1", DisplayName: "Alice"})

	err := s.storage.DeleteCoach(s.ctx, "coach-1")
	s.Require().NoError(err)

	_, err = s.storage.GetCoach(s.ctx, "coach-1")
	s.ErrorIs(err, model.ErrCoachNotFound)
}

func (s *StorageSuite) TestGuestCoachTTL() {
	guest := &model.Coach{ID: "guest-1", IsGuest: true}
	registered := &model.Coach{ID: "registered-1"}

	_ = s.storage.SaveCoach(s.ctx, guest)
	_ = s.storage.SaveCoach(s.ctx, registered)

	s.True(s.mini.TTL(coachKey(guest.ID)) > 0, "Guest coach should have TTL")
	s.Equal(time.Duration(0), s.mini.TTL(coachKey(registered.ID)), "Registered coach should not have TTL")
}

func (s *StorageSuite) TestClaimedGuestStopsExpiring() {
	guest := &model.Coach{ID: "guest-1", DisplayName: "Ines", IsGuest: true}
	s.Require().NoError(s.storage.SaveCoach(s.ctx, guest))
	s.Require().True(s.mini.TTL(coachKey(guest.ID)) > 0)

	claimed := *guest
	claimed.IsGuest = false
	s.Require().NoError(s.storage.SaveCoach(s.ctx, &claimed))
	s.Require().NoError(s.storage.SaveRegisteredCoach(s.ctx, &model.RegisteredCoach{
		CoachID: guest.ID, Username: "ines", PasswordHash: "hash",
	}))

	s.Equal(time.Duration(0), s.mini.TTL(coachKey(guest.ID)))
	s.mini.FastForward(2 * time.Hour)

	stored, err := s.storage.GetCoach(s.ctx, guest.ID)
	s.Require().NoError(err)
	s.False(stored.IsGuest)
	account, err := s.storage.GetRegisteredCoachByUsername(s.ctx, "ines")
	s.Require().NoError(err)
	s.Equal(guest.ID, account.CoachID)
}

// Registered coach tests

func (s *StorageSuite) TestGetRegisteredCoachByUsername() {
	rc := &model.RegisteredCoach{
		CoachID:      "coach-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	s.Require().NoError(s.storage.SaveRegisteredCoach(s.ctx, rc))

	retrieved, err := s.storage.GetRegisteredCoachByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.CoachID("coach-1"), retrieved.CoachID)
	s.Equal("hash123", retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetRegisteredCoachByUsernameNotFound() {
	_, err := s.storage.GetRegisteredCoachByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrCoachNotFound)
}

// Lineup tests

func (s *StorageSuite) TestSaveAndGetLineup() {
	lineup := newLineup("lineup-1", "coach-1", time.Now())

	err := s.storage.SaveLineup(s.ctx, lineup)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetLineup(s.ctx, "lineup-1")
	s.Require().NoError(err)
	s.Equal(lineup.Name, retrieved.Name)
	s.Equal(lineup.Roster, retrieved.Roster)
	s.Require().Len(retrieved.Court.Entries, 2)
	s.Require().NotNil(retrieved.Court.Entries[0].Slot)
	s.Equal(model.RotationSlot(2), *retrieved.Court.Entries[0].Slot)
	s.Nil(retrieved.Court.Entries[1].Slot, "libero entry keeps no slot")
}

func (s *StorageSuite) TestGetLineupNotFound() {
	_, err := s.storage.GetLineup(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrLineupNotFound)
}

func (s *StorageSuite) TestGetLineupsForCoach() {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	_ = s.storage.SaveLineup(s.ctx, newLineup("second", "coach-1", base.Add(time.Minute)))
	_ = s.storage.SaveLineup(s.ctx, newLineup("first", "coach-1", base))
	_ = s.storage.SaveLineup(s.ctx, newLineup("other", "coach-2", base))

	lineups, err := s.storage.GetLineupsForCoach(s.ctx, "coach-1")
	s.Require().NoError(err)
	s.Require().Len(lineups, 2)
	s.Equal(model.LineupID("first"), lineups[0].ID)
	s.Equal(model.LineupID("second"), lineups[1].ID)
}

func (s *StorageSuite) TestGetLineupsForCoachEmpty() {
	lineups, err := s.storage.GetLineupsForCoach(s.ctx, "nobody")
	s.Require().NoError(err)
	s.NotNil(lineups)
	s.Empty(lineups)
}

func (s *StorageSuite) TestLineupTTL() {
	_ = s.storage.SaveLineup(s.ctx, newLineup("lineup-1", "coach-1", time.Now()))

	s.True(s.mini.TTL(lineupKey("lineup-1")) > 0, "Lineup should have TTL")
	s.True(s.mini.TTL(lineupsForCoachIndexKey("coach-1")) > 0, "Index should have TTL")
}

func (s *StorageSuite) TestDeleteLineupRemovesIndexAndSnapshot() {
	_ = s.storage.SaveLineup(s.ctx, newLineup("lineup-1", "coach-1", time.Now()))
	_ = s.storage.SaveSnapshot(s.ctx, "lineup-1", `[]`)

	err := s.storage.DeleteLineup(s.ctx, "lineup-1")
	s.Require().NoError(err)

	exists, err := s.storage.LineupExists(s.ctx, "lineup-1")
	s.Require().NoError(err)
	s.False(exists)

	_, err = s.storage.GetSnapshot(s.ctx, "lineup-1")
	s.ErrorIs(err, model.ErrSnapshotNotFound)

	lineups, err := s.storage.GetLineupsForCoach(s.ctx, "coach-1")
	s.Require().NoError(err)
	s.Empty(lineups)
}

func (s *StorageSuite) TestDeleteMissingLineup() {
	err := s.storage.DeleteLineup(s.ctx, "nonexistent")
	s.NoError(err)
}

// Snapshot tests

func (s *StorageSuite) TestSnapshotStoredUnderFixedKey() {
	err := s.storage.SaveSnapshot(s.ctx, "lineup-1", `[{"id":"player-1"}]`)
	s.Require().NoError(err)

	raw, err := s.mini.Get("courtside:lineup:lineup-1:courtSetup")
	s.Require().NoError(err)
	s.Equal(`[{"id":"player-1"}]`, raw)
	s.Equal(time.Duration(0), s.mini.TTL(snapshotKey("lineup-1")), "Snapshot should not expire")
}

func (s *StorageSuite) TestSnapshotOverwrite() {
	_ = s.storage.SaveSnapshot(s.ctx, "lineup-1", `[1]`)
	_ = s.storage.SaveSnapshot(s.ctx, "lineup-1", `[2]`)

	data, err := s.storage.GetSnapshot(s.ctx, "lineup-1")
	s.Require().NoError(err)
	s.Equal(`[2]`, data)
}

func (s *StorageSuite) TestGetSnapshotNotFound() {
	_, err := s.storage.GetSnapshot(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

func (s *StorageSuite) TestDeleteSnapshot() {
	_ = s.storage.SaveSnapshot(s.ctx, "lineup-1", `[]`)

	s.Require().NoError(s.storage.DeleteSnapshot(s.ctx, "lineup-1"))

	_, err := s.storage.GetSnapshot(s.ctx, "lineup-1")
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}
