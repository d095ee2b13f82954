package court

import (
	"log/slog"

	"github.com/mcoot/courtside/internal/dependencies/clock"
	"github.com/mcoot/courtside/internal/dependencies/random"
	"github.com/mcoot/courtside/internal/model"
)

// Service places players into rotation slots and keeps slot occupancy consistent
type Service struct {
	random random.Random
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new court Service
func New(random random.Random, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		clock:  clock,
		logger: logger,
	}
}

// FindFreePosition picks the slot a dropped player lands on.
// Liberos get a uniformly random slot, used only for its coordinate.
// Everyone else gets the lowest free slot, or slot 0 when the court is full.
func (s *Service) FindFreePosition(court *model.Court, player model.Player) model.RotationSlot {
	if player.Libero {
		return model.RotationSlot(s.random.Intn(model.SlotCount))
	}
	for _, slot := range model.AllSlots() {
		if court.IsSlotFree(slot) {
			return slot
		}
	}
	return 0
}

// Place puts the player on court at the slot's coordinate. A player who is
// already on court keeps their existing entry. A non-libero placed on an
// occupied slot displaces the previous occupant.
func (s *Service) Place(court *model.Court, player model.Player, slot model.RotationSlot) (*model.PlacementEntry, error) {
	if !slot.IsValid() {
		return nil, model.ErrInvalidSlot
	}
	if existing := court.Entry(player.Number); existing != nil {
		return existing, nil
	}

	entry := model.PlacementEntry{
		PlayerNumber: player.Number,
		Position:     slot.Coordinate(),
		PlacedAt:     s.clock.Now(),
	}

	if !player.Libero {
		if occupant, taken := court.Occupant(slot); taken {
			court.Remove(occupant)
			s.logger.Debug("slot occupant displaced",
				slog.Int("slot", int(slot)),
				slog.Int("displaced", int(occupant)),
				slog.Int("number", int(player.Number)),
			)
		}
		entrySlot := slot
		entry.Slot = &entrySlot
	}

	court.Entries = append(court.Entries, entry)
	court.RefreshOccupancy()
	return court.Entry(player.Number), nil
}

// Drop is the drop-onto-court gesture: find a position and place there
func (s *Service) Drop(court *model.Court, player model.Player) (*model.PlacementEntry, error) {
	return s.Place(court, player, s.FindFreePosition(court, player))
}

// RemovePlayer deletes the player's entry if present. Removing a player who
// is not on court is a no-op.
func (s *Service) RemovePlayer(court *model.Court, number model.PlayerNumber) bool {
	return court.Remove(number)
}

// RefreshOccupancy recomputes which slots are occupied
func (s *Service) RefreshOccupancy(court *model.Court) {
	court.RefreshOccupancy()
}

// Move re-snaps an on-court player to another slot. Non-liberos take the
// slot and need it free; liberos only move to its coordinate.
func (s *Service) Move(court *model.Court, player model.Player, slot model.RotationSlot) (*model.PlacementEntry, error) {
	if !slot.IsValid() {
		return nil, model.ErrInvalidSlot
	}
	entry := court.Entry(player.Number)
	if entry == nil {
		return nil, model.ErrNotOnCourt
	}

	if !player.Libero {
		if occupant, taken := court.Occupant(slot); taken && occupant != player.Number {
			return nil, model.ErrSlotOccupied
		}
		entrySlot := slot
		entry.Slot = &entrySlot
	}
	entry.Position = slot.Coordinate()

	court.RefreshOccupancy()
	return entry, nil
}

// Clear removes every player from court
func (s *Service) Clear(court *model.Court) {
	court.Clear()
}
