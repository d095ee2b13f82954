package model

import "time"

// LineupID uniquely identifies a lineup
type LineupID string

// SlotPolicy decides where an incoming substitute is placed
type SlotPolicy string

const (
	SlotPolicyPreserve SlotPolicy = "preserve" // take the outgoing player's slot
	SlotPolicyRandom   SlotPolicy = "random"   // any free slot, uniformly
)

// IsValid returns true for known policies
func (p SlotPolicy) IsValid() bool {
	return p == SlotPolicyPreserve || p == SlotPolicyRandom
}

// LineupConfig holds per-lineup settings
type LineupConfig struct {
	SubstitutionSlot SlotPolicy
}

// DefaultLineupConfig returns the default lineup configuration
func DefaultLineupConfig() LineupConfig {
	return LineupConfig{
		SubstitutionSlot: SlotPolicyRandom,
	}
}

// LogKind distinguishes the two substitution variants
type LogKind string

const (
	LogKindSubstitution LogKind = "substitution"
	LogKindLibero       LogKind = "libero"
)

// LogEntry is one line of the substitution log
type LogEntry struct {
	Kind     LogKind
	Outgoing PlayerNumber
	Incoming PlayerNumber
	Text     string
	At       time.Time
}

// Lineup is the full editing state for one coach's court arrangement
type Lineup struct {
	ID        LineupID
	OwnerID   CoachID
	Name      string
	Roster    []Player
	Court     Court
	Log       []LogEntry
	Config    LineupConfig
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Player returns the roster entry with the given number, or nil
func (l *Lineup) Player(number PlayerNumber) *Player {
	for i := range l.Roster {
		if l.Roster[i].Number == number {
			return &l.Roster[i]
		}
	}
	return nil
}

// OnCourt returns the roster entries of players currently placed, in court order
func (l *Lineup) OnCourt() []Player {
	players := make([]Player, 0, len(l.Court.Entries))
	for _, e := range l.Court.Entries {
		if p := l.Player(e.PlayerNumber); p != nil {
			players = append(players, *p)
		}
	}
	return players
}

// Bench returns roster entries not currently on court
func (l *Lineup) Bench() []Player {
	var bench []Player
	for _, p := range l.Roster {
		if !l.Court.IsOnCourt(p.Number) {
			bench = append(bench, p)
		}
	}
	return bench
}

// IsOwnedBy returns true if the coach owns this lineup
func (l *Lineup) IsOwnedBy(coachID CoachID) bool {
	return l.OwnerID == coachID
}
