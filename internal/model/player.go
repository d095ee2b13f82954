package model

import (
	"fmt"
	"strconv"
)

// PlayerNumber is a player's shirt number and the roster identity key
type PlayerNumber int

// String renders the number the way it is shown on court ("#7")
func (n PlayerNumber) String() string {
	return "#" + strconv.Itoa(int(n))
}

// Player is a roster entry. Only Name changes after creation.
type Player struct {
	Number PlayerNumber
	Name   string
	Libero bool
}

// Label returns "#<number> <name>", as used in substitution log lines
func (p Player) Label() string {
	return fmt.Sprintf("%s %s", p.Number, p.Name)
}

// RosterLabel returns the label shown in the roster list
func (p Player) RosterLabel() string {
	if p.Libero {
		return p.Label() + " (Libero)"
	}
	return p.Label()
}

// DefaultRoster returns the squad every new lineup starts with
func DefaultRoster() []Player {
	return []Player{
		{Number: 1, Name: "Alice"},
		{Number: 2, Name: "Bob"},
		{Number: 3, Name: "Charlie"},
		{Number: 4, Name: "Diana"},
		{Number: 5, Name: "Evan"},
		{Number: 6, Name: "Fiona"},
		{Number: 7, Name: "Libby", Libero: true},
	}
}
