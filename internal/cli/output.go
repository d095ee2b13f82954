package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/courtside/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errW, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Coach:
		o.printCoach(v)
	case response.AuthResponse:
		o.printCoach(v.Coach)
		o.printf("Token: %s\n", v.SessionToken)
	case response.Lineup:
		o.printLineup(v)
	case response.LineupListResponse:
		o.printLineupList(v)
	case response.SubstitutionResponse:
		o.printf("%s\n", v.Log.Text)
		o.printCourt(v.Lineup.Court)
	case response.CandidatesResponse:
		o.printCandidates(v)
	case response.RenameResponse:
		o.printf("%s\n", v.Message)
	case response.ActionResponse:
		o.printf("%s\n", v.Message)
	case response.Snapshot:
		o.printSnapshot(v)
	case HealthResult:
		o.printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printCoach(c response.Coach) {
	guestStr := "no"
	if c.IsGuest {
		guestStr = "yes"
	}
	o.printf("Coach: %s (%s)\n", c.DisplayName, c.ID)
	o.printf("Guest: %s\n", guestStr)
}

func (o *Output) printLineup(l response.Lineup) {
	o.printf("Lineup: %s (%s)\n", l.Name, l.ID)
	o.printf("Substitutes take: %s slot\n", l.SubstitutionSlot)
	o.printCourt(l.Court)

	o.printf("Roster:\n")
	for _, p := range l.Roster {
		o.printf("  #%d %s%s\n", p.Number, p.Name, playerMarks(p))
	}

	if len(l.Log) > 0 {
		o.printf("Log:\n")
		for _, e := range l.Log {
			o.printf("  %s\n", e.Text)
		}
	}
}

// printCourt draws the front row above the back row, zone by zone
func (o *Output) printCourt(c response.Court) {
	names := make(map[int]string, len(c.Placements))
	var liberos []string
	for _, p := range c.Placements {
		label := fmt.Sprintf("#%d %s", p.Number, p.Name)
		if p.Slot == nil {
			liberos = append(liberos, label)
			continue
		}
		names[*p.Slot] = label
	}

	row := func(title string, backRow bool) {
		cells := make([]string, 0, 3)
		for _, s := range c.Slots {
			if s.BackRow != backRow {
				continue
			}
			name, ok := names[s.Slot]
			if !ok {
				name = "-"
			}
			cells = append(cells, fmt.Sprintf("[Z%d %s]", s.Zone, name))
		}
		o.printf("  %-5s %s\n", title, strings.Join(cells, " "))
	}

	o.printf("Court:\n")
	row("Front", false)
	row("Back", true)
	if len(liberos) > 0 {
		o.printf("  Libero %s\n", strings.Join(liberos, ", "))
	}
}

func (o *Output) printLineupList(list response.LineupListResponse) {
	if len(list.Lineups) == 0 {
		o.printf("No lineups\n")
		return
	}
	for _, l := range list.Lineups {
		o.printf("%s  %-20s %d on court\n", l.ID, l.Name, l.OnCourt)
	}
}

func (o *Output) printCandidates(c response.CandidatesResponse) {
	kind := "Substitutes"
	if c.Libero {
		kind = "Libero can replace"
	}
	o.printf("%s for #%d:\n", kind, c.Player)
	for _, p := range c.Candidates {
		o.printf("  #%d %s%s\n", p.Number, p.Name, playerMarks(p))
	}
}

func playerMarks(p response.Player) string {
	marks := ""
	if p.Libero {
		marks += " [libero]"
	}
	if p.OnCourt {
		marks += " [on court]"
	}
	return marks
}

func (o *Output) printSnapshot(s response.Snapshot) {
	o.printf("Snapshot %s for %s (%d players)\n", s.Key, s.LineupID, len(s.Records))
	for _, r := range s.Records {
		rotation := "libero"
		if r.Rotation != nil {
			rotation = fmt.Sprintf("slot %d", *r.Rotation)
		}
		o.printf("  %s top=%d left=%d %s\n", r.ID, r.Top, r.Left, rotation)
	}
}
