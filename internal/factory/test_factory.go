package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/solhaven/astrocade/internal/dependencies/mocks"
	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/services/ephemeris"
	"github.com/solhaven/astrocade/internal/services/geocode"
	"github.com/solhaven/astrocade/internal/services/identity"
	"github.com/solhaven/astrocade/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockGeocoder  *mocks.MockGeocoder
	MockEphemeris *mocks.MockEphemeris
	MockProvider  *mocks.MockProvider
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New(mockClock)

	mockGeocoder := mocks.NewMockGeocoder(geocode.Place{
		Lat:  40.7128,
		Lon:  -74.0060,
		Name: "New York",
	})
	mockEphemeris := mocks.NewMockEphemeris(ephemeris.Chart{
		SunLongitude:  95.5,
		MoonLongitude: 212.3,
		AscendantSign: "Virgo",
		MidheavenSign: "Gemini",
		Raw:           []byte(`{"observed":{}}`),
	})
	mockProvider := &mocks.MockProvider{
		Profile: identity.Profile{
			ID:       model.Identity("123456789"),
			Username: "stargazer",
		},
	}

	identityCfg := identity.Config{
		SessionDuration: time.Hour,
		Secret:          "test-secret",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, mockGeocoder, mockEphemeris, identityCfg, logger)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockGeocoder:  mockGeocoder,
		MockEphemeris: mockEphemeris,
		MockProvider:  mockProvider,
	}
}
