package substitution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/courtside/internal/dependencies/mocks"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/court"
	"github.com/mcoot/courtside/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
	random *mocks.MockRandom
	clock  *mocks.MockClock
	court  *court.Service
	engine *Engine
	lineup *model.Lineup
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.court = court.New(s.random, s.clock, testutil.NopLogger())
	s.engine = New(s.court, s.random, s.clock, testutil.NopLogger())
	s.lineup = &model.Lineup{
		ID:     "lineup-1",
		Roster: model.DefaultRoster(),
		Config: model.DefaultLineupConfig(),
	}
}

func (s *EngineSuite) drop(numbers ...model.PlayerNumber) {
	for _, n := range numbers {
		_, err := s.court.Drop(&s.lineup.Court, *s.lineup.Player(n))
		s.Require().NoError(err)
	}
}

func (s *EngineSuite) slotOf(n model.PlayerNumber) model.RotationSlot {
	entry := s.lineup.Court.Entry(n)
	s.Require().NotNil(entry)
	s.Require().NotNil(entry.Slot)
	return *entry.Slot
}

// Candidates tests

func (s *EngineSuite) TestCandidatesExcludeOutgoing() {
	candidates := s.engine.Candidates(s.lineup, 1)

	s.Len(candidates, 6)
	for _, p := range candidates {
		s.NotEqual(model.PlayerNumber(1), p.Number)
	}
}

func (s *EngineSuite) TestBackRowCandidatesExcludeLiberos() {
	candidates := s.engine.BackRowCandidates(s.lineup)

	s.Len(candidates, 6)
	for _, p := range candidates {
		s.False(p.Libero)
	}
}

// Substitute tests

func (s *EngineSuite) TestSubstituteScenario() {
	s.drop(1)
	s.Equal(model.RotationSlot(0), s.slotOf(1))
	s.random.QueueIntn(4)

	entry, err := s.engine.Substitute(s.lineup, 1, 3)
	s.Require().NoError(err)

	s.Equal("#1 Alice → #3 Charlie", entry.Text)
	s.Equal(model.LogKindSubstitution, entry.Kind)
	s.Equal(model.PlayerNumber(1), entry.Outgoing)
	s.Equal(model.PlayerNumber(3), entry.Incoming)
	s.False(s.lineup.Court.IsOnCourt(1))
	s.Equal(model.RotationSlot(4), s.slotOf(3))
	s.Equal([]int{model.SlotCount}, s.random.IntnCalls)
	s.Len(s.lineup.Log, 1)
}

func (s *EngineSuite) TestSubstitutePreservesVacatedSlot() {
	s.lineup.Config.SubstitutionSlot = model.SlotPolicyPreserve
	s.drop(1, 2, 3)

	_, err := s.engine.Substitute(s.lineup, 2, 5)
	s.Require().NoError(err)

	s.Equal(model.RotationSlot(1), s.slotOf(5))
	s.Equal([model.SlotCount]bool{true, true, true, false, false, false}, s.lineup.Court.Occupied)
}

func (s *EngineSuite) TestSubstituteRandomPolicyPicksFreeSlot() {
	s.drop(1, 2, 3)
	// After #2 leaves the free slots are 1, 3, 4, 5; index 2 is slot 4
	s.random.QueueIntn(2)

	_, err := s.engine.Substitute(s.lineup, 2, 5)
	s.Require().NoError(err)

	s.Equal(model.RotationSlot(4), s.slotOf(5))
	s.Equal([]int{4}, s.random.IntnCalls)
}

func (s *EngineSuite) TestSubstituteInvalidReferenceLeavesStateUnchanged() {
	s.drop(1, 2)
	before := append([]model.PlacementEntry(nil), s.lineup.Court.Entries...)

	_, err := s.engine.Substitute(s.lineup, 1, 99)
	s.ErrorIs(err, model.ErrInvalidPlayerReference)

	_, err = s.engine.Substitute(s.lineup, 1, 1)
	s.ErrorIs(err, model.ErrInvalidPlayerReference)

	s.Equal(before, s.lineup.Court.Entries)
	s.Empty(s.lineup.Log)
}

func (s *EngineSuite) TestSubstituteOutgoingNotOnCourt() {
	_, err := s.engine.Substitute(s.lineup, 1, 3)
	s.ErrorIs(err, model.ErrNotOnCourt)
	s.Empty(s.lineup.Log)
}

func (s *EngineSuite) TestSubstituteUnknownOutgoing() {
	_, err := s.engine.Substitute(s.lineup, 42, 3)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *EngineSuite) TestSubstituteIncomingAlreadyOnCourt() {
	s.drop(1, 3)

	_, err := s.engine.Substitute(s.lineup, 1, 3)
	s.ErrorIs(err, model.ErrAlreadyOnCourt)
	s.True(s.lineup.Court.IsOnCourt(1))
	s.Empty(s.lineup.Log)
}

func (s *EngineSuite) TestSubstituteRejectsLiberoOutgoing() {
	s.drop(1, 7)
	before := append([]model.PlacementEntry(nil), s.lineup.Court.Entries...)

	_, err := s.engine.Substitute(s.lineup, 7, 3)
	s.ErrorIs(err, model.ErrInvalidPlayerReference)
	s.Contains(err.Error(), "#7 is a libero")

	s.True(s.lineup.Court.IsOnCourt(7))
	s.False(s.lineup.Court.IsOnCourt(3))
	s.Equal(before, s.lineup.Court.Entries)
	s.Empty(s.lineup.Log)
}

func (s *EngineSuite) TestSubstituteLogTimestamp() {
	s.drop(1)
	s.clock.Set(time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC))

	entry, err := s.engine.Substitute(s.lineup, 1, 3)
	s.Require().NoError(err)
	s.Equal(time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC), entry.At)
}

// LiberoIn tests

func (s *EngineSuite) TestLiberoInScenario() {
	s.drop(1, 2)
	s.random.QueueIntn(3)

	entry, err := s.engine.LiberoIn(s.lineup, 7, 2)
	s.Require().NoError(err)

	s.Equal("Libero #7 Libby in for #2 Bob", entry.Text)
	s.Equal(model.LogKindLibero, entry.Kind)
	s.False(s.lineup.Court.IsOnCourt(2))

	libero := s.lineup.Court.Entry(7)
	s.Require().NotNil(libero)
	s.Nil(libero.Slot)
	s.Equal(model.RotationSlot(3).Coordinate(), libero.Position)
	s.False(s.lineup.Court.Occupied[1], "vacated slot is free")
}

func (s *EngineSuite) TestLiberoInRepositionsLiberoAlreadyOnCourt() {
	s.drop(1, 2)
	s.random.QueueIntn(0, 5)
	s.drop(7)

	_, err := s.engine.LiberoIn(s.lineup, 7, 1)
	s.Require().NoError(err)

	s.Equal(model.RotationSlot(5).Coordinate(), s.lineup.Court.Entry(7).Position)
	s.Len(s.lineup.Court.Entries, 2)
}

func (s *EngineSuite) TestLiberoInTargetNotOnCourt() {
	_, err := s.engine.LiberoIn(s.lineup, 7, 4)
	s.Require().NoError(err)
	s.True(s.lineup.Court.IsOnCourt(7))
}

func (s *EngineSuite) TestLiberoInInvalidTarget() {
	s.drop(1)

	_, err := s.engine.LiberoIn(s.lineup, 7, 99)
	s.ErrorIs(err, model.ErrInvalidPlayerReference)

	_, err = s.engine.LiberoIn(s.lineup, 7, 7)
	s.ErrorIs(err, model.ErrInvalidPlayerReference)

	s.False(s.lineup.Court.IsOnCourt(7))
	s.Empty(s.lineup.Log)
}

func (s *EngineSuite) TestLiberoInRequiresLibero() {
	_, err := s.engine.LiberoIn(s.lineup, 3, 2)
	s.ErrorIs(err, model.ErrInvalidPlayerReference)
}
