package lineup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/courtside/internal/dependencies/mocks"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/court"
	"github.com/mcoot/courtside/internal/services/roster"
	"github.com/mcoot/courtside/internal/services/snapshot"
	"github.com/mcoot/courtside/internal/services/substitution"
	"github.com/mcoot/courtside/internal/storage/memory"
	"github.com/mcoot/courtside/internal/testutil"
)

const coach model.CoachID = "coach-1"

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()

	courtService := court.New(s.random, s.clock, logger)
	s.controller = NewController(
		s.storage,
		roster.New(logger),
		courtService,
		substitution.New(courtService, s.random, s.clock, logger),
		snapshot.New(s.storage, s.clock, logger),
		s.clock,
		s.random,
		logger,
	)
	s.ctx = context.Background()
}

func (s *ControllerSuite) createLineup() *model.Lineup {
	s.random.QueueString("abc12345")
	l, err := s.controller.CreateLineup(s.ctx, coach, CreateParams{})
	s.Require().NoError(err)
	return l
}

func (s *ControllerSuite) place(id model.LineupID, numbers ...model.PlayerNumber) *model.Lineup {
	var l *model.Lineup
	for _, n := range numbers {
		var err error
		l, err = s.controller.PlacePlayer(s.ctx, id, coach, n, nil)
		s.Require().NoError(err)
	}
	return l
}

// CreateLineup tests

func (s *ControllerSuite) TestCreateLineupDefaults() {
	l := s.createLineup()

	s.Equal(model.LineupID("abc12345"), l.ID)
	s.Equal(coach, l.OwnerID)
	s.Equal(DefaultName, l.Name)
	s.Equal(model.DefaultRoster(), l.Roster)
	s.Equal(model.SlotPolicyRandom, l.Config.SubstitutionSlot)
	s.Empty(l.Court.Entries)
}

func (s *ControllerSuite) TestCreateLineupRetriesTakenID() {
	s.createLineup()
	s.random.QueueString("abc12345", "zzz99999")

	l, err := s.controller.CreateLineup(s.ctx, coach, CreateParams{Name: "Second"})
	s.Require().NoError(err)
	s.Equal(model.LineupID("zzz99999"), l.ID)
}

func (s *ControllerSuite) TestCreateLineupCustomRoster() {
	s.random.QueueString("custom01")
	players := []model.Player{{Number: 10, Name: "Kai"}, {Number: 11, Name: "Lee", Libero: true}}

	l, err := s.controller.CreateLineup(s.ctx, coach, CreateParams{Roster: players, SubstitutionSlot: model.SlotPolicyPreserve})
	s.Require().NoError(err)
	s.Equal(players, l.Roster)
	s.Equal(model.SlotPolicyPreserve, l.Config.SubstitutionSlot)
}

func (s *ControllerSuite) TestCreateLineupInvalidRoster() {
	_, err := s.controller.CreateLineup(s.ctx, coach, CreateParams{
		Roster: []model.Player{{Number: 1}, {Number: 1}},
	})
	s.ErrorIs(err, model.ErrDuplicatePlayerNumber)
}

func (s *ControllerSuite) TestCreateLineupInvalidPolicy() {
	_, err := s.controller.CreateLineup(s.ctx, coach, CreateParams{SubstitutionSlot: "sideways"})
	s.ErrorIs(err, model.ErrInvalidPolicy)
}

// Ownership tests

func (s *ControllerSuite) TestOtherCoachCannotReadOrMutate() {
	l := s.createLineup()

	_, err := s.controller.GetLineup(s.ctx, l.ID, "intruder")
	s.ErrorIs(err, model.ErrNotOwner)

	_, err = s.controller.PlacePlayer(s.ctx, l.ID, "intruder", 1, nil)
	s.ErrorIs(err, model.ErrNotOwner)

	err = s.controller.DeleteLineup(s.ctx, l.ID, "intruder")
	s.ErrorIs(err, model.ErrNotOwner)
}

func (s *ControllerSuite) TestGetLineupNotFound() {
	_, err := s.controller.GetLineup(s.ctx, "missing", coach)
	s.ErrorIs(err, model.ErrLineupNotFound)
}

func (s *ControllerSuite) TestListAndDelete() {
	l := s.createLineup()

	lineups, err := s.controller.ListLineups(s.ctx, coach)
	s.Require().NoError(err)
	s.Len(lineups, 1)

	s.Require().NoError(s.controller.DeleteLineup(s.ctx, l.ID, coach))

	lineups, err = s.controller.ListLineups(s.ctx, coach)
	s.Require().NoError(err)
	s.Empty(lineups)
}

// Court tests

func (s *ControllerSuite) TestPlacePlayerDropIsPersisted() {
	l := s.createLineup()
	s.clock.Advance(time.Minute)

	updated := s.place(l.ID, 1, 2)
	s.Equal(model.RotationSlot(1), *updated.Court.Entry(2).Slot)
	s.Equal(s.clock.CurrentTime, updated.UpdatedAt)

	stored, err := s.controller.GetLineup(s.ctx, l.ID, coach)
	s.Require().NoError(err)
	s.Len(stored.Court.Entries, 2)
	s.True(stored.Court.Occupied[0])
	s.True(stored.Court.Occupied[1])
}

func (s *ControllerSuite) TestPlacePlayerAtSlot() {
	l := s.createLineup()
	slot := model.RotationSlot(4)

	updated, err := s.controller.PlacePlayer(s.ctx, l.ID, coach, 3, &slot)
	s.Require().NoError(err)
	s.Equal(model.RotationSlot(4), *updated.Court.Entry(3).Slot)
}

func (s *ControllerSuite) TestPlaceUnknownPlayer() {
	l := s.createLineup()
	_, err := s.controller.PlacePlayer(s.ctx, l.ID, coach, 99, nil)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestFailedMutationIsNotSaved() {
	l := s.createLineup()
	s.place(l.ID, 1, 2)

	_, err := s.controller.MovePlayer(s.ctx, l.ID, coach, 1, 1)
	s.ErrorIs(err, model.ErrSlotOccupied)

	stored, _ := s.controller.GetLineup(s.ctx, l.ID, coach)
	s.Equal(model.RotationSlot(0), *stored.Court.Entry(1).Slot)
}

func (s *ControllerSuite) TestMoveRemoveClear() {
	l := s.createLineup()
	s.place(l.ID, 1, 2, 3)

	updated, err := s.controller.MovePlayer(s.ctx, l.ID, coach, 1, 5)
	s.Require().NoError(err)
	s.Equal(model.RotationSlot(5), *updated.Court.Entry(1).Slot)

	updated, err = s.controller.RemovePlayer(s.ctx, l.ID, coach, 2)
	s.Require().NoError(err)
	s.False(updated.Court.IsOnCourt(2))

	updated, err = s.controller.RemovePlayer(s.ctx, l.ID, coach, 2)
	s.Require().NoError(err, "removal is idempotent")
	s.Len(updated.Court.Entries, 2)

	updated, err = s.controller.ClearCourt(s.ctx, l.ID, coach)
	s.Require().NoError(err)
	s.Empty(updated.Court.Entries)
}

// Substitution tests

func (s *ControllerSuite) TestSubstitute() {
	l := s.createLineup()
	s.place(l.ID, 1)
	s.random.QueueIntn(2)

	updated, entry, err := s.controller.Substitute(s.ctx, l.ID, coach, 1, 3)
	s.Require().NoError(err)

	s.Equal("#1 Alice → #3 Charlie", entry.Text)
	s.Len(updated.Log, 1)
	s.Equal(model.RotationSlot(2), *updated.Court.Entry(3).Slot)
}

func (s *ControllerSuite) TestSubstituteInvalidReferenceNoLog() {
	l := s.createLineup()
	s.place(l.ID, 1)

	_, _, err := s.controller.Substitute(s.ctx, l.ID, coach, 1, 42)
	s.ErrorIs(err, model.ErrInvalidPlayerReference)

	stored, _ := s.controller.GetLineup(s.ctx, l.ID, coach)
	s.Empty(stored.Log)
	s.True(stored.Court.IsOnCourt(1))
}

func (s *ControllerSuite) TestLiberoIn() {
	l := s.createLineup()
	s.place(l.ID, 1, 2)
	s.random.QueueIntn(2)

	updated, entry, err := s.controller.LiberoIn(s.ctx, l.ID, coach, 7, 2)
	s.Require().NoError(err)

	s.Equal("Libero #7 Libby in for #2 Bob", entry.Text)
	s.True(updated.Court.IsOnCourt(7))
	s.False(updated.Court.IsOnCourt(2))
}

func (s *ControllerSuite) TestCandidates() {
	l := s.createLineup()

	candidates, err := s.controller.Candidates(s.ctx, l.ID, coach, 1)
	s.Require().NoError(err)
	s.Len(candidates, 6)

	candidates, err = s.controller.Candidates(s.ctx, l.ID, coach, 7)
	s.Require().NoError(err)
	s.Len(candidates, 6)
	for _, p := range candidates {
		s.False(p.Libero)
	}
}

// Rename tests

func (s *ControllerSuite) TestRenamePlayer() {
	l := s.createLineup()

	updated, p, err := s.controller.RenamePlayer(s.ctx, l.ID, coach, 2, "Robert")
	s.Require().NoError(err)
	s.Equal("Robert", p.Name)
	s.Equal("Robert", updated.Player(2).Name)
}

func (s *ControllerSuite) TestRenameEmptyIsNoOp() {
	l := s.createLineup()

	_, _, err := s.controller.RenamePlayer(s.ctx, l.ID, coach, 2, "")
	s.ErrorIs(err, model.ErrEmptyInput)

	stored, _ := s.controller.GetLineup(s.ctx, l.ID, coach)
	s.Equal("Bob", stored.Player(2).Name)
}

// Snapshot tests

func (s *ControllerSuite) TestSnapshotSaveAndRestore() {
	l := s.createLineup()
	s.place(l.ID, 1, 2)

	snap, err := s.controller.SaveSnapshot(s.ctx, l.ID, coach)
	s.Require().NoError(err)
	s.Len(snap.Records, 2)

	_, err = s.controller.ClearCourt(s.ctx, l.ID, coach)
	s.Require().NoError(err)

	restored, err := s.controller.RestoreSnapshot(s.ctx, l.ID, coach)
	s.Require().NoError(err)
	s.Len(restored.Court.Entries, 2)

	loaded, err := s.controller.GetSnapshot(s.ctx, l.ID, coach)
	s.Require().NoError(err)
	s.Equal(snap.Records, loaded.Records)
}

func (s *ControllerSuite) TestGetSnapshotNotFound() {
	l := s.createLineup()
	_, err := s.controller.GetSnapshot(s.ctx, l.ID, coach)
	s.ErrorIs(err, model.ErrSnapshotNotFound)
}

// Concurrency

func (s *ControllerSuite) TestConcurrentDropsKeepSlotsExclusive() {
	l := s.createLineup()

	var wg sync.WaitGroup
	for n := 1; n <= 6; n++ {
		wg.Add(1)
		go func(n model.PlayerNumber) {
			defer wg.Done()
			_, _ = s.controller.PlacePlayer(s.ctx, l.ID, coach, n, nil)
		}(model.PlayerNumber(n))
	}
	wg.Wait()

	stored, err := s.controller.GetLineup(s.ctx, l.ID, coach)
	s.Require().NoError(err)
	s.Len(stored.Court.Entries, 6)
	s.Equal([model.SlotCount]bool{true, true, true, true, true, true}, stored.Court.Occupied)
}
