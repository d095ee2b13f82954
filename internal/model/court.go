package model

import "time"

// SlotCount is the number of rotation slots on one side of the court
const SlotCount = 6

// RotationSlot is one of the six court zones a non-libero occupies
type RotationSlot int

// Coordinate is a position on the court surface, in pixels
type Coordinate struct {
	X int
	Y int
}

// slotCoordinates are the fixed court positions of each slot.
// Back row first (zones 1, 6, 5), then front row (zones 2, 3, 4).
var slotCoordinates = [SlotCount]Coordinate{
	{X: 100, Y: 300},
	{X: 250, Y: 300},
	{X: 400, Y: 300},
	{X: 100, Y: 100},
	{X: 250, Y: 100},
	{X: 400, Y: 100},
}

// slotZones maps slots to the volleyball zone numbers painted on court
var slotZones = [SlotCount]int{1, 6, 5, 2, 3, 4}

// AllSlots returns every rotation slot in scan order
func AllSlots() []RotationSlot {
	slots := make([]RotationSlot, SlotCount)
	for i := range slots {
		slots[i] = RotationSlot(i)
	}
	return slots
}

// IsValid returns true if the slot is within 0..5
func (s RotationSlot) IsValid() bool {
	return s >= 0 && s < SlotCount
}

// Coordinate returns the court position of the slot
func (s RotationSlot) Coordinate() Coordinate {
	if !s.IsValid() {
		return Coordinate{}
	}
	return slotCoordinates[s]
}

// Zone returns the volleyball zone number (1-6) for the slot
func (s RotationSlot) Zone() int {
	if !s.IsValid() {
		return 0
	}
	return slotZones[s]
}

// IsBackRow returns true for the three slots along the baseline
func (s RotationSlot) IsBackRow() bool {
	return s >= 0 && s < 3
}

// PlacementEntry records one player on court
type PlacementEntry struct {
	PlayerNumber PlayerNumber
	Slot         *RotationSlot // nil for liberos
	Position     Coordinate
	PlacedAt     time.Time
}

// HasSlot returns true if the entry holds a rotation slot
func (e PlacementEntry) HasSlot() bool {
	return e.Slot != nil
}

// Court is the set of placements for one lineup
type Court struct {
	Entries  []PlacementEntry // insertion order
	Occupied [SlotCount]bool  // derived from Entries by RefreshOccupancy
}

// Entry returns the placement for a player, or nil if not on court
func (c *Court) Entry(number PlayerNumber) *PlacementEntry {
	for i := range c.Entries {
		if c.Entries[i].PlayerNumber == number {
			return &c.Entries[i]
		}
	}
	return nil
}

// IsOnCourt returns true if the player has a placement
func (c *Court) IsOnCourt(number PlayerNumber) bool {
	return c.Entry(number) != nil
}

// Occupant returns the non-libero player holding the slot
func (c *Court) Occupant(slot RotationSlot) (PlayerNumber, bool) {
	for _, e := range c.Entries {
		if e.Slot != nil && *e.Slot == slot {
			return e.PlayerNumber, true
		}
	}
	return 0, false
}

// IsSlotFree returns true if no non-libero holds the slot
func (c *Court) IsSlotFree(slot RotationSlot) bool {
	_, taken := c.Occupant(slot)
	return !taken
}

// FreeSlots returns unoccupied slots in ascending order
func (c *Court) FreeSlots() []RotationSlot {
	var free []RotationSlot
	for _, slot := range AllSlots() {
		if c.IsSlotFree(slot) {
			free = append(free, slot)
		}
	}
	return free
}

// RefreshOccupancy recomputes the occupied-slot markers from the entries
func (c *Court) RefreshOccupancy() {
	c.Occupied = [SlotCount]bool{}
	for _, e := range c.Entries {
		if e.Slot != nil && e.Slot.IsValid() {
			c.Occupied[*e.Slot] = true
		}
	}
}

// Remove deletes the player's entry and reports whether one existed
func (c *Court) Remove(number PlayerNumber) bool {
	for i := range c.Entries {
		if c.Entries[i].PlayerNumber == number {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			c.RefreshOccupancy()
			return true
		}
	}
	return false
}

// Clear removes every placement
func (c *Court) Clear() {
	c.Entries = nil
	c.RefreshOccupancy()
}
