package roster

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/courtside/internal/model"
)

// Service provides roster lookups and the rename operation
type Service struct {
	logger *slog.Logger
}

// New creates a new roster Service
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Validate checks a custom roster: at least one player, positive and unique numbers
func Validate(roster []model.Player) error {
	if len(roster) == 0 {
		return model.ErrEmptyRoster
	}
	seen := make(map[model.PlayerNumber]bool, len(roster))
	for _, p := range roster {
		if p.Number <= 0 {
			return fmt.Errorf("%w: %d", model.ErrInvalidPlayerNumber, p.Number)
		}
		if seen[p.Number] {
			return fmt.Errorf("%w: %s", model.ErrDuplicatePlayerNumber, p.Number)
		}
		seen[p.Number] = true
	}
	return nil
}

// Find returns the roster entry with the given number
func (s *Service) Find(lineup *model.Lineup, number model.PlayerNumber) (*model.Player, error) {
	p := lineup.Player(number)
	if p == nil {
		return nil, model.ErrPlayerNotFound
	}
	return p, nil
}

// Rename overwrites a player's display name. The name is stored exactly as
// given; an empty name is rejected with ErrEmptyInput and nothing changes.
func (s *Service) Rename(lineup *model.Lineup, number model.PlayerNumber, name string) (*model.Player, error) {
	if name == "" {
		return nil, model.ErrEmptyInput
	}
	p, err := s.Find(lineup, number)
	if err != nil {
		return nil, err
	}

	old := p.Name
	p.Name = name

	s.logger.Debug("player renamed",
		slog.String("lineup_id", string(lineup.ID)),
		slog.Int("number", int(number)),
		slog.String("old_name", old),
		slog.String("new_name", name),
	)
	return p, nil
}

// RenameConfirmation is the message shown after a successful rename
func RenameConfirmation(p *model.Player) string {
	return "Name updated: " + p.Label()
}
