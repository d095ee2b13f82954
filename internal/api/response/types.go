package response

import (
	"time"

	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/auth"
)

// Coach represents a coach in API responses
type Coach struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// CoachFromModel converts a model.Coach to a response Coach
func CoachFromModel(c *model.Coach) Coach {
	return Coach{
		ID:          string(c.ID),
		DisplayName: c.DisplayName,
		IsGuest:     c.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Coach        Coach  `json:"coach"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Coach:        CoachFromModel(&s.Coach),
		SessionToken: s.Token,
	}
}

// Player represents a roster entry
type Player struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Libero  bool   `json:"libero"`
	OnCourt bool   `json:"on_court"`
}

// PlayerFromModel converts a model.Player; onCourt is read from the lineup's court
func PlayerFromModel(p model.Player, onCourt bool) Player {
	return Player{
		Number:  int(p.Number),
		Name:    p.Name,
		Libero:  p.Libero,
		OnCourt: onCourt,
	}
}

// Placement represents one player on court
type Placement struct {
	Number   int       `json:"number"`
	Name     string    `json:"name"`
	Libero   bool      `json:"libero"`
	Slot     *int      `json:"slot"`
	X        int       `json:"x"`
	Y        int       `json:"y"`
	PlacedAt time.Time `json:"placed_at"`
}

// Slot represents one rotation slot and who holds it
type Slot struct {
	Slot     int  `json:"slot"`
	Zone     int  `json:"zone"`
	X        int  `json:"x"`
	Y        int  `json:"y"`
	BackRow  bool `json:"back_row"`
	Occupied bool `json:"occupied"`
	Player   *int `json:"player"`
}

// Court represents the court: its six slots and every placement
type Court struct {
	Slots      []Slot      `json:"slots"`
	Placements []Placement `json:"placements"`
}

// CourtFromModel converts a lineup's court
func CourtFromModel(l *model.Lineup) Court {
	slots := make([]Slot, 0, model.SlotCount)
	for _, s := range model.AllSlots() {
		c := s.Coordinate()
		slot := Slot{
			Slot:     int(s),
			Zone:     s.Zone(),
			X:        c.X,
			Y:        c.Y,
			BackRow:  s.IsBackRow(),
			Occupied: l.Court.Occupied[s],
		}
		if n, ok := l.Court.Occupant(s); ok {
			num := int(n)
			slot.Player = &num
		}
		slots = append(slots, slot)
	}

	placements := make([]Placement, 0, len(l.Court.Entries))
	for _, e := range l.Court.Entries {
		p := Placement{
			Number:   int(e.PlayerNumber),
			X:        e.Position.X,
			Y:        e.Position.Y,
			PlacedAt: e.PlacedAt,
		}
		if rp := l.Player(e.PlayerNumber); rp != nil {
			p.Name = rp.Name
			p.Libero = rp.Libero
		}
		if e.Slot != nil {
			slot := int(*e.Slot)
			p.Slot = &slot
		}
		placements = append(placements, p)
	}

	return Court{Slots: slots, Placements: placements}
}

// LogEntry represents one line of the substitution log
type LogEntry struct {
	Kind     string    `json:"kind"`
	Outgoing int       `json:"outgoing"`
	Incoming int       `json:"incoming"`
	Text     string    `json:"text"`
	At       time.Time `json:"at"`
}

// LogEntryFromModel converts model.LogEntry
func LogEntryFromModel(e model.LogEntry) LogEntry {
	return LogEntry{
		Kind:     string(e.Kind),
		Outgoing: int(e.Outgoing),
		Incoming: int(e.Incoming),
		Text:     e.Text,
		At:       e.At,
	}
}

// Lineup represents a full lineup in API responses
type Lineup struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	SubstitutionSlot string     `json:"substitution_slot"`
	Roster           []Player   `json:"roster"`
	Court            Court      `json:"court"`
	Log              []LogEntry `json:"log"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// LineupFromModel converts model.Lineup
func LineupFromModel(l *model.Lineup) Lineup {
	roster := make([]Player, len(l.Roster))
	for i, p := range l.Roster {
		roster[i] = PlayerFromModel(p, l.Court.IsOnCourt(p.Number))
	}

	log := make([]LogEntry, len(l.Log))
	for i, e := range l.Log {
		log[i] = LogEntryFromModel(e)
	}

	return Lineup{
		ID:               string(l.ID),
		Name:             l.Name,
		SubstitutionSlot: string(l.Config.SubstitutionSlot),
		Roster:           roster,
		Court:            CourtFromModel(l),
		Log:              log,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// LineupSummary is a lineup in list responses
type LineupSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OnCourt   int       `json:"on_court"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineupListResponse is the response for listing lineups
type LineupListResponse struct {
	Lineups []LineupSummary `json:"lineups"`
}

// LineupListFromModel converts a slice of lineups
func LineupListFromModel(lineups []*model.Lineup) LineupListResponse {
	summaries := make([]LineupSummary, len(lineups))
	for i, l := range lineups {
		summaries[i] = LineupSummary{
			ID:        string(l.ID),
			Name:      l.Name,
			OnCourt:   len(l.Court.Entries),
			UpdatedAt: l.UpdatedAt,
		}
	}
	return LineupListResponse{Lineups: summaries}
}

// SubstitutionResponse is the response after a substitution or libero-in
type SubstitutionResponse struct {
	Log    LogEntry `json:"log"`
	Lineup Lineup   `json:"lineup"`
}

// CandidatesResponse lists who may come on for a player
type CandidatesResponse struct {
	Player     int      `json:"player"`
	Libero     bool     `json:"libero"`
	Candidates []Player `json:"candidates"`
}

// RenameResponse is the response after renaming a player
type RenameResponse struct {
	Player  Player `json:"player"`
	Message string `json:"message"`
	Lineup  Lineup `json:"lineup"`
}

// ActionResponse is the response after a free-text action
type ActionResponse struct {
	Action  string `json:"action"`
	Message string `json:"message"`
	Lineup  Lineup `json:"lineup"`
}

// SnapshotRecord is one saved placement
type SnapshotRecord struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Top      int    `json:"top"`
	Left     int    `json:"left"`
	Libero   bool   `json:"libero"`
	Rotation *int   `json:"rotation"`
}

// Snapshot is a saved court setup
type Snapshot struct {
	LineupID string           `json:"lineup_id"`
	Key      string           `json:"key"`
	Records  []SnapshotRecord `json:"records"`
}

// SnapshotFromModel converts model.Snapshot
func SnapshotFromModel(s *model.Snapshot) Snapshot {
	records := make([]SnapshotRecord, len(s.Records))
	for i, r := range s.Records {
		records[i] = SnapshotRecord{
			ID:     r.ID,
			Number: int(r.Number),
			Top:    r.Top,
			Left:   r.Left,
			Libero: r.Libero,
		}
		if r.Rotation != nil {
			rot := int(*r.Rotation)
			records[i].Rotation = &rot
		}
	}
	return Snapshot{
		LineupID: string(s.LineupID),
		Key:      model.SnapshotKey,
		Records:  records,
	}
}
