package testutil

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mfolio/mf-portfolio-tracker/internal/model"
	"github.com/mfolio/mf-portfolio-tracker/internal/service"
	"github.com/mfolio/mf-portfolio-tracker/internal/store"
)

// Date builds a midnight-UTC time for the given calendar day. Transaction
// dates carry no time-of-day component, so tests use this everywhere.
//
// Example usage:
//
//	d := testutil.Date(2023, 6, 1)
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}

// MakeInstrumentName generates a unique instrument name for testing.
//
// Example usage:
//
//	name := testutil.MakeInstrumentName("Index Fund")
//	// Returns: "Index Fund XYZ789"
func MakeInstrumentName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// NewTestStore opens a store backed by a file in the test's temp directory.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "portfolio.json"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return st
}

// NewTestPortfolioService creates a PortfolioService over a temp-dir store
// and the given NAV provider, with default gains thresholds.
func NewTestPortfolioService(t *testing.T, nav service.NAVProvider) (*service.PortfolioService, *store.Store) {
	t.Helper()

	st := NewTestStore(t)
	svc := service.NewPortfolioService(st, nav, service.DefaultGainsConfig(), zerolog.Nop())
	return svc, st
}

// MockNAVProvider is a mock implementation of service.NAVProvider. It
// returns predefined prices instead of calling the API.
type MockNAVProvider struct {
	// NAVs maps instrument ID to the NAV to return.
	NAVs map[string]model.NAV
	// MockError is the error to return from LatestNAVs.
	MockError error
	// QueryCount tracks how many times LatestNAVs was called.
	QueryCount int
}

// NewMockNAVProvider creates a mock provider with no prices configured.
func NewMockNAVProvider() *MockNAVProvider {
	return &MockNAVProvider{NAVs: make(map[string]model.NAV)}
}

// WithNAV configures the price returned for an instrument, dated yesterday.
func (m *MockNAVProvider) WithNAV(instrumentID string, value float64) *MockNAVProvider {
	m.NAVs[instrumentID] = model.NAV{
		Date:  time.Now().AddDate(0, 0, -1),
		Value: value,
	}
	return m
}

// WithError configures the mock to return the specified error.
func (m *MockNAVProvider) WithError(err error) *MockNAVProvider {
	m.MockError = err
	return m
}

// LatestNAVs returns the configured NAVs for the requested instruments.
// Instruments without a configured NAV are omitted, matching the real
// client's partial-result behavior.
func (m *MockNAVProvider) LatestNAVs(_ context.Context, instrumentIDs []string) (map[string]model.NAV, error) {
	m.QueryCount++
	if m.MockError != nil {
		return nil, m.MockError
	}

	out := make(map[string]model.NAV, len(instrumentIDs))
	for _, id := range instrumentIDs {
		if nav, ok := m.NAVs[id]; ok {
			out[id] = nav
		}
	}
	return out, nil
}
