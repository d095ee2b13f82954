package redis

import (
	"fmt"

	"github.com/mcoot/courtside/internal/model"
)

// Key prefix for all courtside data
const keyPrefix = "courtside"

// coachKey returns the Redis key for a Coach
func coachKey(id model.CoachID) string {
	return fmt.Sprintf("%s:coach:%s", keyPrefix, id)
}

// registeredCoachKey returns the Redis key for a RegisteredCoach
func registeredCoachKey(coachID model.CoachID) string {
	return fmt.Sprintf("%s:registered_coach:%s", keyPrefix, coachID)
}

// usernameIndexKey returns the Redis key for the username -> coach_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// lineupKey returns the Redis key for a Lineup
func lineupKey(id model.LineupID) string {
	return fmt.Sprintf("%s:lineup:%s", keyPrefix, id)
}

// lineupsForCoachIndexKey returns the Redis key for the SET of a coach's lineup keys
func lineupsForCoachIndexKey(coachID model.CoachID) string {
	return fmt.Sprintf("%s:idx:lineups_for_coach:%s", keyPrefix, coachID)
}

// snapshotKey returns the Redis key holding a lineup's saved court setup
func snapshotKey(lineupID model.LineupID) string {
	return fmt.Sprintf("%s:lineup:%s:%s", keyPrefix, lineupID, model.SnapshotKey)
}
