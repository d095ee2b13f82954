package factory

import (
	"context"
	"time"

	"github.com/mcoot/courtside/internal/dependencies/mocks"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/services/lineup"
	"github.com/mcoot/courtside/internal/storage"
	"github.com/mcoot/courtside/internal/storage/memory"
	"github.com/mcoot/courtside/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage creates a test App over the given storage backend
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// SeedLineup creates a guest coach and an empty default lineup with the given ID
func (t *TestApp) SeedLineup(ctx context.Context, id model.LineupID) (*auth.Session, *model.Lineup, error) {
	session, err := t.AuthService.CreateGuestCoach(ctx, "Coach")
	if err != nil {
		return nil, nil, err
	}

	t.MockRandom.QueueString(string(id))
	l, err := t.LineupController.CreateLineup(ctx, session.CoachID, lineup.CreateParams{})
	if err != nil {
		return nil, nil, err
	}
	return session, l, nil
}
