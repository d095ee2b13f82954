package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Coach operations

func (s *Storage) SaveCoach(ctx context.Context, coach *model.Coach) error {
	data, err := json.Marshal(coach)
	if err != nil {
		return err
	}

	// Apply TTL only for guest coaches
	var ttl time.Duration
	if coach.IsGuest {
		ttl = s.cfg.GuestCoachTTL
	}
	return s.client.Set(ctx, coachKey(coach.ID), data, ttl).Err()
}

func (s *Storage) GetCoach(ctx context.Context, id model.CoachID) (*model.Coach, error) {
	data, err := s.client.Get(ctx, coachKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCoachNotFound
		}
		return nil, err
	}

	var coach model.Coach
	if err := json.Unmarshal(data, &coach); err != nil {
		return nil, err
	}
	return &coach, nil
}

func (s *Storage) DeleteCoach(ctx context.Context, id model.CoachID) error {
	return s.client.Del(ctx, coachKey(id)).Err()
}

// Registered coach operations

func (s *Storage) SaveRegisteredCoach(ctx context.Context, rc *model.RegisteredCoach) error {
	data, err := json.Marshal(rc)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredCoachKey(rc.CoachID), data, 0) // No TTL
	pipe.Set(ctx, usernameIndexKey(rc.Username), string(rc.CoachID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredCoach(ctx context.Context, coachID model.CoachID) (*model.RegisteredCoach, error) {
	data, err := s.client.Get(ctx, registeredCoachKey(coachID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCoachNotFound
		}
		return nil, err
	}

	var rc model.RegisteredCoach
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

func (s *Storage) GetRegisteredCoachByUsername(ctx context.Context, username string) (*model.RegisteredCoach, error) {
	coachIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCoachNotFound
		}
		return nil, err
	}

	return s.GetRegisteredCoach(ctx, model.CoachID(coachIDStr))
}

// Lineup operations

func (s *Storage) SaveLineup(ctx context.Context, lineup *model.Lineup) error {
	data, err := json.Marshal(lineup)
	if err != nil {
		return err
	}

	lKey := lineupKey(lineup.ID)
	indexKey := lineupsForCoachIndexKey(lineup.OwnerID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, lKey, data, s.cfg.LineupTTL)
	pipe.SAdd(ctx, indexKey, lKey)
	if s.cfg.LineupTTL > 0 {
		pipe.Expire(ctx, indexKey, s.cfg.LineupTTL) // Keep index TTL in sync
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetLineup(ctx context.Context, id model.LineupID) (*model.Lineup, error) {
	data, err := s.client.Get(ctx, lineupKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrLineupNotFound
		}
		return nil, err
	}

	var lineup model.Lineup
	if err := json.Unmarshal(data, &lineup); err != nil {
		return nil, err
	}
	return &lineup, nil
}

func (s *Storage) GetLineupsForCoach(ctx context.Context, coachID model.CoachID) ([]*model.Lineup, error) {
	lineupKeys, err := s.client.SMembers(ctx, lineupsForCoachIndexKey(coachID)).Result()
	if err != nil {
		return nil, err
	}

	if len(lineupKeys) == 0 {
		return []*model.Lineup{}, nil
	}

	values, err := s.client.MGet(ctx, lineupKeys...).Result()
	if err != nil {
		return nil, err
	}

	lineups := make([]*model.Lineup, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Lineup may have expired
		}
		var lineup model.Lineup
		if err := json.Unmarshal([]byte(val.(string)), &lineup); err != nil {
			continue // Skip invalid data
		}
		lineups = append(lineups, &lineup)
	}

	sort.Slice(lineups, func(i, j int) bool {
		return lineups[i].CreatedAt.Before(lineups[j].CreatedAt)
	})
	return lineups, nil
}

func (s *Storage) DeleteLineup(ctx context.Context, id model.LineupID) error {
	lineup, err := s.GetLineup(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrLineupNotFound) {
			return s.client.Del(ctx, snapshotKey(id)).Err()
		}
		return err
	}

	lKey := lineupKey(id)
	pipe := s.client.Pipeline()
	pipe.Del(ctx, lKey)
	pipe.Del(ctx, snapshotKey(id))
	pipe.SRem(ctx, lineupsForCoachIndexKey(lineup.OwnerID), lKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) LineupExists(ctx context.Context, id model.LineupID) (bool, error) {
	exists, err := s.client.Exists(ctx, lineupKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Snapshot operations

func (s *Storage) SaveSnapshot(ctx context.Context, lineupID model.LineupID, data string) error {
	return s.client.Set(ctx, snapshotKey(lineupID), data, s.cfg.SnapshotTTL).Err()
}

func (s *Storage) GetSnapshot(ctx context.Context, lineupID model.LineupID) (string, error) {
	data, err := s.client.Get(ctx, snapshotKey(lineupID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrSnapshotNotFound
		}
		return "", err
	}
	return data, nil
}

func (s *Storage) DeleteSnapshot(ctx context.Context, lineupID model.LineupID) error {
	return s.client.Del(ctx, snapshotKey(lineupID)).Err()
}
