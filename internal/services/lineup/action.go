package lineup

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/roster"
)

// ActionKind is a free-text command typed against a player
type ActionKind string

const (
	ActionSub  ActionKind = "sub"
	ActionName ActionKind = "name"
)

// Action is a command typed against an on-court player: "sub" with the
// incoming player's number, or "name" with the new name
type Action struct {
	Player  model.PlayerNumber
	Command string
	Value   string
}

// ActionResult is the outcome of Perform
type ActionResult struct {
	Kind    ActionKind
	Lineup  *model.Lineup
	Log     *model.LogEntry // set for substitutions
	Player  *model.Player   // set for renames
	Message string
}

// ParseAction matches "sub" or "name", ignoring case
func ParseAction(text string) (ActionKind, error) {
	if text == "" {
		return "", model.ErrEmptyInput
	}
	switch {
	case strings.EqualFold(text, string(ActionSub)):
		return ActionSub, nil
	case strings.EqualFold(text, string(ActionName)):
		return ActionName, nil
	}
	return "", model.ErrUnknownAction
}

// ParsePlayerNumber reads a player reference such as "3" or "#3"
func ParsePlayerNumber(text string) (model.PlayerNumber, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, model.ErrEmptyInput
	}
	n, err := strconv.Atoi(strings.TrimPrefix(text, "#"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidPlayerReference, text)
	}
	return model.PlayerNumber(n), nil
}

// Perform runs a free-text action. A libero's "sub" is a libero-in for the
// named player; anyone else's is a regular substitution.
func (c *Controller) Perform(ctx context.Context, id model.LineupID, coach model.CoachID, action Action) (*ActionResult, error) {
	kind, err := ParseAction(action.Command)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ActionName:
		l, p, err := c.RenamePlayer(ctx, id, coach, action.Player, action.Value)
		if err != nil {
			return nil, err
		}
		return &ActionResult{
			Kind:    kind,
			Lineup:  l,
			Player:  p,
			Message: roster.RenameConfirmation(p),
		}, nil

	default:
		target, err := ParsePlayerNumber(action.Value)
		if err != nil {
			return nil, err
		}

		current, err := c.GetLineup(ctx, id, coach)
		if err != nil {
			return nil, err
		}
		p, err := c.roster.Find(current, action.Player)
		if err != nil {
			return nil, err
		}

		var (
			l     *model.Lineup
			entry *model.LogEntry
		)
		if p.Libero {
			l, entry, err = c.LiberoIn(ctx, id, coach, action.Player, target)
		} else {
			l, entry, err = c.Substitute(ctx, id, coach, action.Player, target)
		}
		if err != nil {
			return nil, err
		}
		return &ActionResult{
			Kind:    kind,
			Lineup:  l,
			Log:     entry,
			Message: entry.Text,
		}, nil
	}
}
