// Package auth owns coach identities and the sessions that prove them.
//
// A lineup belongs to a coach ID, never to a session or a username. Guest
// coaches can later claim a username and password without changing that ID,
// so everything they built as a guest stays theirs.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/courtside/internal/dependencies/clock"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/storage"
)

const (
	// MinPasswordLength is the shortest password accepted for an account
	MinPasswordLength = 6
	// MaxNameLength caps usernames and display names, in characters
	MaxNameLength = 20
	// SessionCookieName is the cookie both the editor and the API read the token from
	SessionCookieName = "session"

	defaultGuestName = "Guest coach"
	tokenPrefix      = "cs_"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidUsername    = errors.New("username is required, may not contain spaces and is at most 20 characters")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrAlreadyRegistered  = errors.New("coach already has an account")
)

// Session ties a bearer token to the coach whose lineups it may edit
type Session struct {
	Token     string
	CoachID   model.CoachID
	Coach     model.Coach
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Service creates coaches and tracks their sessions in memory
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	sessionDuration time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		logger:          logger,
		sessionDuration: cfg.SessionDuration,
		sessions:        make(map[string]*Session),
	}
}

// CreateGuestCoach starts a coach with no account. Guests expire with their
// storage TTL unless they claim an account first.
func (s *Service) CreateGuestCoach(ctx context.Context, displayName string) (*Session, error) {
	coach := &model.Coach{
		ID:          model.CoachID(uuid.NewString()),
		DisplayName: displayNameOr(displayName, defaultGuestName),
		IsGuest:     true,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.storage.SaveCoach(ctx, coach); err != nil {
		return nil, err
	}

	s.logger.Info("guest coach created", slog.String("coach_id", string(coach.ID)))
	return s.startSession(coach), nil
}

// RegisterCoach creates a coach with an account and no lineups.
// The display name defaults to the username.
func (s *Service) RegisterCoach(ctx context.Context, username, password, displayName string) (*Session, error) {
	coach := &model.Coach{
		ID:        model.CoachID(uuid.NewString()),
		CreatedAt: s.clock.Now(),
	}
	account, err := s.newAccount(ctx, coach.ID, username, password)
	if err != nil {
		return nil, err
	}
	coach.DisplayName = displayNameOr(displayName, account.Username)

	if err := s.save(ctx, coach, account); err != nil {
		return nil, err
	}

	s.logger.Info("coach registered",
		slog.String("coach_id", string(coach.ID)),
		slog.String("username", account.Username),
	)
	return s.startSession(coach), nil
}

// ClaimGuest gives the guest coach behind token a username and password.
// The coach ID is kept, so the coach's lineups and open sessions carry over.
// An empty display name keeps the guest's.
func (s *Service) ClaimGuest(ctx context.Context, token, username, password, displayName string) (*Session, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	if !session.Coach.IsGuest {
		return nil, ErrAlreadyRegistered
	}

	account, err := s.newAccount(ctx, session.CoachID, username, password)
	if err != nil {
		return nil, err
	}
	coach := session.Coach
	coach.IsGuest = false
	coach.DisplayName = displayNameOr(displayName, coach.DisplayName)

	if err := s.save(ctx, &coach, account); err != nil {
		return nil, err
	}
	s.refreshSessions(coach)

	lineups, err := s.storage.GetLineupsForCoach(ctx, coach.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("guest coach claimed account",
		slog.String("coach_id", string(coach.ID)),
		slog.String("username", account.Username),
		slog.Int("lineups", len(lineups)),
	)
	return s.ValidateSession(token)
}

// Login starts a new session for a registered coach. Usernames match
// case-insensitively.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = normalizeUsername(username)
	account, err := s.storage.GetRegisteredCoachByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrCoachNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	coach, err := s.storage.GetCoach(ctx, account.CoachID)
	if err != nil {
		return nil, err
	}
	return s.startSession(coach), nil
}

// ValidateSession returns the live session for token. Expired sessions are
// dropped on sight.
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.InvalidateSession(token)
		return nil, ErrInvalidSession
	}

	copied := *session
	return &copied, nil
}

// InvalidateSession ends one session. Unknown tokens are ignored.
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// GetCoach returns the coach for a session token
func (s *Service) GetCoach(token string) (*model.Coach, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	return &session.Coach, nil
}

// CleanExpiredSessions drops every expired session and reports how many went
func (s *Service) CleanExpiredSessions() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// newAccount checks the credentials and hashes the password for coachID
func (s *Service) newAccount(ctx context.Context, coachID model.CoachID, username, password string) (*model.RegisteredCoach, error) {
	username = normalizeUsername(username)
	if username == "" || strings.ContainsAny(username, " \t\n") || utf8.RuneCountInString(username) > MaxNameLength {
		return nil, ErrInvalidUsername
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	_, err := s.storage.GetRegisteredCoachByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrCoachNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	return &model.RegisteredCoach{
		CoachID:      coachID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *Service) save(ctx context.Context, coach *model.Coach, account *model.RegisteredCoach) error {
	if err := s.storage.SaveCoach(ctx, coach); err != nil {
		return err
	}
	return s.storage.SaveRegisteredCoach(ctx, account)
}

func (s *Service) startSession(coach *model.Coach) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:     newToken(),
		CoachID:   coach.ID,
		Coach:     *coach,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	copied := *session
	return &copied
}

// refreshSessions points every open session of coach at its latest state
func (s *Service) refreshSessions(coach model.Coach) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.sessions {
		if session.CoachID == coach.ID {
			session.Coach = coach
		}
	}
}

func newToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(b)
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// displayNameOr collapses whitespace in name and cuts it to MaxNameLength
// characters, falling back when nothing is left
func displayNameOr(name, fallback string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return fallback
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
	}
	return name
}
