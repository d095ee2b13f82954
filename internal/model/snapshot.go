package model

import "fmt"

// SnapshotKey is the fixed name a lineup's court setup is saved under
const SnapshotKey = "courtSetup"

// SnapshotRecord is the flat, serialized form of one placement
type SnapshotRecord struct {
	ID       string        `json:"id"`
	Number   PlayerNumber  `json:"number"`
	Top      int           `json:"top"`
	Left     int           `json:"left"`
	Libero   bool          `json:"libero"`
	Rotation *RotationSlot `json:"rotation"`
}

// ElementID returns the on-court element id for a player ("player-7")
func ElementID(number PlayerNumber) string {
	return fmt.Sprintf("player-%d", number)
}

// Snapshot is a saved court setup
type Snapshot struct {
	LineupID LineupID
	Records  []SnapshotRecord
}
