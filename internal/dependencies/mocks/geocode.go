package mocks

import (
	"context"

	"github.com/solhaven/astrocade/internal/services/geocode"
)

// MockGeocoder is a scriptable geocoder for testing
type MockGeocoder struct {
	Place geocode.Place
	Err   error

	// Calls records every lookup query in order
	Calls []string
}

// Ensure MockGeocoder implements Geocoder
var _ geocode.Geocoder = (*MockGeocoder)(nil)

// NewMockGeocoder creates a MockGeocoder returning the given place
func NewMockGeocoder(place geocode.Place) *MockGeocoder {
	return &MockGeocoder{Place: place}
}

// Lookup returns the scripted place or error
func (m *MockGeocoder) Lookup(ctx context.Context, query string) (geocode.Place, error) {
	m.Calls = append(m.Calls, query)
	if m.Err != nil {
		return geocode.Place{}, m.Err
	}
	return m.Place, nil
}
