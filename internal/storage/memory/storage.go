package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are deep-copied on the way in and out so callers never share
// state with the store.
type Storage struct {
	mu sync.RWMutex

	coaches           map[model.CoachID]*model.Coach
	registeredCoaches map[model.CoachID]*model.RegisteredCoach
	usernameIndex     map[string]model.CoachID
	lineups           map[model.LineupID]*model.Lineup
	snapshots         map[model.LineupID]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		coaches:           make(map[model.CoachID]*model.Coach),
		registeredCoaches: make(map[model.CoachID]*model.RegisteredCoach),
		usernameIndex:     make(map[string]model.CoachID),
		lineups:           make(map[model.LineupID]*model.Lineup),
		snapshots:         make(map[model.LineupID]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Coach operations

func (s *Storage) SaveCoach(ctx context.Context, coach *model.Coach) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *coach
	s.coaches[coach.ID] = &c
	return nil
}

func (s *Storage) GetCoach(ctx context.Context, id model.CoachID) (*model.Coach, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coach, ok := s.coaches[id]
	if !ok {
		return nil, model.ErrCoachNotFound
	}
	c := *coach
	return &c, nil
}

func (s *Storage) DeleteCoach(ctx context.Context, id model.CoachID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.coaches, id)
	return nil
}

// Registered coach operations

func (s *Storage) SaveRegisteredCoach(ctx context.Context, rc *model.RegisteredCoach) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *rc
	s.registeredCoaches[rc.CoachID] = &c
	s.usernameIndex[rc.Username] = rc.CoachID
	return nil
}

func (s *Storage) GetRegisteredCoach(ctx context.Context, coachID model.CoachID) (*model.RegisteredCoach, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rc, ok := s.registeredCoaches[coachID]
	if !ok {
		return nil, model.ErrCoachNotFound
	}
	c := *rc
	return &c, nil
}

func (s *Storage) GetRegisteredCoachByUsername(ctx context.Context, username string) (*model.RegisteredCoach, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coachID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrCoachNotFound
	}
	rc, ok := s.registeredCoaches[coachID]
	if !ok {
		return nil, model.ErrCoachNotFound
	}
	c := *rc
	return &c, nil
}

// Lineup operations

func (s *Storage) SaveLineup(ctx context.Context, lineup *model.Lineup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineups[lineup.ID] = cloneLineup(lineup)
	return nil
}

func (s *Storage) GetLineup(ctx context.Context, id model.LineupID) (*model.Lineup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lineup, ok := s.lineups[id]
	if !ok {
		return nil, model.ErrLineupNotFound
	}
	return cloneLineup(lineup), nil
}

func (s *Storage) GetLineupsForCoach(ctx context.Context, coachID model.CoachID) ([]*model.Lineup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lineups := []*model.Lineup{}
	for _, lineup := range s.lineups {
		if lineup.OwnerID == coachID {
			lineups = append(lineups, cloneLineup(lineup))
		}
	}
	sort.Slice(lineups, func(i, j int) bool {
		return lineups[i].CreatedAt.Before(lineups[j].CreatedAt)
	})
	return lineups, nil
}

func (s *Storage) DeleteLineup(ctx context.Context, id model.LineupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lineups, id)
	delete(s.snapshots, id)
	return nil
}

func (s *Storage) LineupExists(ctx context.Context, id model.LineupID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.lineups[id]
	return ok, nil
}

// Snapshot operations

func (s *Storage) SaveSnapshot(ctx context.Context, lineupID model.LineupID, data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[lineupID] = data
	return nil
}

func (s *Storage) GetSnapshot(ctx context.Context, lineupID model.LineupID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.snapshots[lineupID]
	if !ok {
		return "", model.ErrSnapshotNotFound
	}
	return data, nil
}

func (s *Storage) DeleteSnapshot(ctx context.Context, lineupID model.LineupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, lineupID)
	return nil
}

// cloneLineup copies every slice and pointer so stored lineups are isolated
func cloneLineup(l *model.Lineup) *model.Lineup {
	c := *l
	c.Roster = append([]model.Player(nil), l.Roster...)
	c.Log = append([]model.LogEntry(nil), l.Log...)
	c.Court.Entries = make([]model.PlacementEntry, len(l.Court.Entries))
	for i, e := range l.Court.Entries {
		if e.Slot != nil {
			slot := *e.Slot
			e.Slot = &slot
		}
		c.Court.Entries[i] = e
	}
	return &c
}
