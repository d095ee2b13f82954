package model

import "time"

// CoachID uniquely identifies a coach across the system
type CoachID string

// Coach is the person editing lineups
type Coach struct {
	ID          CoachID
	DisplayName string
	IsGuest     bool // true for unregistered coaches
	CreatedAt   time.Time
}

// RegisteredCoach extends Coach with authentication data
// Stored separately so the password hash never travels with a session
type RegisteredCoach struct {
	CoachID      CoachID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
