package court

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/courtside/internal/dependencies/mocks"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/testutil"
)

var (
	alice  = model.Player{Number: 1, Name: "Alice"}
	bob    = model.Player{Number: 2, Name: "Bob"}
	libero = model.Player{Number: 7, Name: "Libby", Libero: true}
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	clock   *mocks.MockClock
	service *Service
	court   *model.Court
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.random, s.clock, testutil.NopLogger())
	s.court = &model.Court{}
}

func (s *ServiceSuite) fill(n int) {
	for i := 1; i <= n; i++ {
		_, err := s.service.Drop(s.court, model.Player{Number: model.PlayerNumber(i)})
		s.Require().NoError(err)
	}
}

// FindFreePosition tests

func (s *ServiceSuite) TestFindFreePositionEmptyCourt() {
	s.Equal(model.RotationSlot(0), s.service.FindFreePosition(s.court, alice))
}

func (s *ServiceSuite) TestFindFreePositionSkipsOccupied() {
	_, _ = s.service.Place(s.court, alice, 0)
	_, _ = s.service.Place(s.court, bob, 2)

	s.Equal(model.RotationSlot(1), s.service.FindFreePosition(s.court, model.Player{Number: 3}))
}

func (s *ServiceSuite) TestFindFreePositionFullCourtFallsBackToZero() {
	s.fill(6)
	s.Equal(model.RotationSlot(0), s.service.FindFreePosition(s.court, model.Player{Number: 8}))
}

func (s *ServiceSuite) TestFindFreePositionLiberoIsRandom() {
	s.random.QueueIntn(4)

	slot := s.service.FindFreePosition(s.court, libero)

	s.Equal(model.RotationSlot(4), slot)
	s.Equal([]int{model.SlotCount}, s.random.IntnCalls)
}

// Place tests

func (s *ServiceSuite) TestPlaceRecordsSlotAndCoordinate() {
	entry, err := s.service.Place(s.court, alice, 3)
	s.Require().NoError(err)

	s.Require().NotNil(entry.Slot)
	s.Equal(model.RotationSlot(3), *entry.Slot)
	s.Equal(model.Coordinate{X: 100, Y: 100}, entry.Position)
	s.Equal(s.clock.CurrentTime, entry.PlacedAt)
	s.True(s.court.Occupied[3])
}

func (s *ServiceSuite) TestPlaceLiberoHasNoSlot() {
	entry, err := s.service.Place(s.court, libero, 1)
	s.Require().NoError(err)

	s.Nil(entry.Slot)
	s.Equal(model.Coordinate{X: 250, Y: 300}, entry.Position)
	s.False(s.court.Occupied[1])
}

func (s *ServiceSuite) TestPlaceLiberoDoesNotDisplaceOccupant() {
	_, _ = s.service.Place(s.court, alice, 1)
	_, err := s.service.Place(s.court, libero, 1)
	s.Require().NoError(err)

	s.True(s.court.IsOnCourt(alice.Number))
	occupant, taken := s.court.Occupant(1)
	s.True(taken)
	s.Equal(alice.Number, occupant)
}

func (s *ServiceSuite) TestPlaceAlreadyOnCourtIsUnchanged() {
	_, _ = s.service.Place(s.court, alice, 2)

	entry, err := s.service.Place(s.court, alice, 4)
	s.Require().NoError(err)

	s.Equal(model.RotationSlot(2), *entry.Slot)
	s.Len(s.court.Entries, 1)
}

func (s *ServiceSuite) TestPlaceOccupiedSlotDisplacesOccupant() {
	_, _ = s.service.Place(s.court, alice, 0)

	_, err := s.service.Place(s.court, bob, 0)
	s.Require().NoError(err)

	s.False(s.court.IsOnCourt(alice.Number))
	occupant, _ := s.court.Occupant(0)
	s.Equal(bob.Number, occupant)
}

func (s *ServiceSuite) TestPlaceInvalidSlot() {
	_, err := s.service.Place(s.court, alice, 6)
	s.ErrorIs(err, model.ErrInvalidSlot)
	s.Empty(s.court.Entries)
}

func (s *ServiceSuite) TestAtMostOnePlayerPerSlot() {
	for i := 1; i <= 10; i++ {
		_, err := s.service.Drop(s.court, model.Player{Number: model.PlayerNumber(i)})
		s.Require().NoError(err)
	}

	counts := map[model.RotationSlot]int{}
	for _, e := range s.court.Entries {
		s.Require().NotNil(e.Slot)
		counts[*e.Slot]++
	}
	for slot, n := range counts {
		s.Equal(1, n, "slot %d", slot)
	}
}

// Drop tests

func (s *ServiceSuite) TestDropFillsSlotsInOrder() {
	s.fill(3)

	for i, e := range s.court.Entries {
		s.Equal(model.RotationSlot(i), *e.Slot)
	}
	s.Equal([model.SlotCount]bool{true, true, true, false, false, false}, s.court.Occupied)
}

func (s *ServiceSuite) TestDropLiberoUsesRandomCoordinate() {
	s.random.QueueIntn(5)

	entry, err := s.service.Drop(s.court, libero)
	s.Require().NoError(err)

	s.Nil(entry.Slot)
	s.Equal(model.Coordinate{X: 400, Y: 100}, entry.Position)
}

// RemovePlayer tests

func (s *ServiceSuite) TestRemoveThenPlaceRestoresOccupancy() {
	_, _ = s.service.Place(s.court, alice, 4)

	s.True(s.service.RemovePlayer(s.court, alice.Number))
	s.False(s.court.Occupied[4])

	_, err := s.service.Place(s.court, alice, 4)
	s.Require().NoError(err)
	s.True(s.court.Occupied[4])
}

func (s *ServiceSuite) TestRemoveIsIdempotent() {
	_, _ = s.service.Place(s.court, alice, 0)

	s.True(s.service.RemovePlayer(s.court, alice.Number))
	s.False(s.service.RemovePlayer(s.court, alice.Number))
	s.Empty(s.court.Entries)
}

// RefreshOccupancy tests

func (s *ServiceSuite) TestRefreshOccupancyMatchesEntries() {
	slot := model.RotationSlot(5)
	s.court.Entries = []model.PlacementEntry{
		{PlayerNumber: 1, Slot: &slot},
		{PlayerNumber: 7},
	}

	s.service.RefreshOccupancy(s.court)

	s.Equal([model.SlotCount]bool{false, false, false, false, false, true}, s.court.Occupied)
}

// Move tests

func (s *ServiceSuite) TestMoveToFreeSlot() {
	_, _ = s.service.Place(s.court, alice, 0)

	entry, err := s.service.Move(s.court, alice, 5)
	s.Require().NoError(err)

	s.Equal(model.RotationSlot(5), *entry.Slot)
	s.Equal(model.Coordinate{X: 400, Y: 100}, entry.Position)
	s.False(s.court.Occupied[0])
	s.True(s.court.Occupied[5])
}

func (s *ServiceSuite) TestMoveToOccupiedSlot() {
	_, _ = s.service.Place(s.court, alice, 0)
	_, _ = s.service.Place(s.court, bob, 1)

	_, err := s.service.Move(s.court, alice, 1)
	s.ErrorIs(err, model.ErrSlotOccupied)
	s.Equal(model.RotationSlot(0), *s.court.Entry(alice.Number).Slot)
}

func (s *ServiceSuite) TestMoveToOwnSlot() {
	_, _ = s.service.Place(s.court, alice, 2)

	_, err := s.service.Move(s.court, alice, 2)
	s.NoError(err)
}

func (s *ServiceSuite) TestMoveLiberoKeepsNoSlot() {
	_, _ = s.service.Place(s.court, alice, 0)
	_, _ = s.service.Place(s.court, libero, 3)

	entry, err := s.service.Move(s.court, libero, 0)
	s.Require().NoError(err)

	s.Nil(entry.Slot)
	s.Equal(model.Coordinate{X: 100, Y: 300}, entry.Position)
}

func (s *ServiceSuite) TestMoveNotOnCourt() {
	_, err := s.service.Move(s.court, alice, 1)
	s.ErrorIs(err, model.ErrNotOnCourt)
}

func (s *ServiceSuite) TestMoveInvalidSlot() {
	_, _ = s.service.Place(s.court, alice, 0)
	_, err := s.service.Move(s.court, alice, -1)
	s.ErrorIs(err, model.ErrInvalidSlot)
}

// Clear tests

func (s *ServiceSuite) TestClear() {
	s.fill(4)

	s.service.Clear(s.court)

	s.Empty(s.court.Entries)
	s.Equal([model.SlotCount]bool{}, s.court.Occupied)
}
