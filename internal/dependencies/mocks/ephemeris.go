package mocks

import (
	"context"
	"time"

	"github.com/solhaven/astrocade/internal/services/ephemeris"
)

// MockEphemeris is a scriptable ephemeris computer for testing
type MockEphemeris struct {
	Chart ephemeris.Chart
	Err   error

	// Calls counts invocations; tests assert the adapter is skipped when
	// earlier steps fail
	Calls int

	// LastAt, LastLat, LastLon record the most recent invocation
	LastAt  time.Time
	LastLat float64
	LastLon float64
}

// Ensure MockEphemeris implements Computer
var _ ephemeris.Computer = (*MockEphemeris)(nil)

// NewMockEphemeris creates a MockEphemeris returning the given chart
func NewMockEphemeris(chart ephemeris.Chart) *MockEphemeris {
	return &MockEphemeris{Chart: chart}
}

// Compute returns the scripted chart or error
func (m *MockEphemeris) Compute(ctx context.Context, at time.Time, lat, lon float64) (*ephemeris.Chart, error) {
	m.Calls++
	m.LastAt = at
	m.LastLat = lat
	m.LastLon = lon
	if m.Err != nil {
		return nil, m.Err
	}
	chart := m.Chart
	return &chart, nil
}
