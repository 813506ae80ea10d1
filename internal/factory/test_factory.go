package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/tilepath/internal/dependencies/mocks"
	"github.com/mcoot/tilepath/internal/services/auth"
	"github.com/mcoot/tilepath/internal/storage/memory"
	"github.com/mcoot/tilepath/internal/testutil"
)

// TestSecret signs tokens in test apps
const TestSecret = "test-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()

	app, err := newWithDependencies(store, mockClock, mockIDs, Config{
		JWTSecret:   TestSecret,
		AuthConfig:  auth.DefaultConfig(),
		BcryptCost:  bcrypt.MinCost,
		PhoneRegion: "US",
	}, testutil.NopLogger())
	if err != nil {
		panic(err) // only fails on an empty secret
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}
