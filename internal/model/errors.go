package model

import "errors"

// Common errors used across the application
var (
	// Roster errors
	ErrPlayerNotFound         = errors.New("player not found")
	ErrInvalidPlayerReference = errors.New("invalid player number")
	ErrInvalidPlayerNumber    = errors.New("player number must be positive")
	ErrDuplicatePlayerNumber  = errors.New("player number already in roster")
	ErrEmptyRoster            = errors.New("roster has no players")

	// Input errors
	ErrEmptyInput    = errors.New("empty or cancelled input")
	ErrUnknownAction = errors.New(`unknown action, type "sub" or "name"`)

	// Court errors
	ErrInvalidSlot    = errors.New("invalid rotation slot")
	ErrSlotOccupied   = errors.New("rotation slot is already occupied")
	ErrNotOnCourt     = errors.New("player is not on court")
	ErrAlreadyOnCourt = errors.New("player is already on court")

	// Lineup errors
	ErrLineupNotFound = errors.New("lineup not found")
	ErrNotOwner       = errors.New("coach does not own this lineup")
	ErrInvalidPolicy  = errors.New("invalid substitution slot policy")

	// Snapshot errors
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidSnapshot  = errors.New("snapshot does not match roster")

	// Coach errors
	ErrCoachNotFound = errors.New("coach not found")
)
