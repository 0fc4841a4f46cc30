package factory

import (
	"time"

	"github.com/mcoot/assemblie-checkin/internal/dependencies/mocks"
	"github.com/mcoot/assemblie-checkin/internal/services/attendance"
	"github.com/mcoot/assemblie-checkin/internal/services/auth"
	"github.com/mcoot/assemblie-checkin/internal/storage/memory"
	"github.com/mcoot/assemblie-checkin/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockIDs    *mocks.MockIDGen
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockIDs := mocks.NewMockIDGen()

	app := newWithDependencies(store, mockClock, mockRandom, mockIDs,
		auth.DefaultConfig(), attendance.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockIDs:    mockIDs,
	}
}
