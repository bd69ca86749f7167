package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/solhaven/astrocade/internal/dependencies/clock"
	"github.com/solhaven/astrocade/internal/presence"
	"github.com/solhaven/astrocade/internal/services/chart"
	"github.com/solhaven/astrocade/internal/services/ephemeris"
	"github.com/solhaven/astrocade/internal/services/geocode"
	"github.com/solhaven/astrocade/internal/services/identity"
	"github.com/solhaven/astrocade/internal/services/playersync"
	"github.com/solhaven/astrocade/internal/storage"
	"github.com/solhaven/astrocade/internal/storage/memory"
	redisstorage "github.com/solhaven/astrocade/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.PlayerStore

	// External dependencies
	Clock clock.Clock

	// Services
	IdentityService *identity.Service
	SyncService     *playersync.Service
	ChartService    *chart.Service
	PresenceHub     *presence.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// IdentityConfig holds session settings
	// If zero value, defaults to identity.DefaultConfig()
	IdentityConfig identity.Config
	// GeocodeConfig configures the geocoding client
	GeocodeConfig geocode.Config
	// EphemerisConfig configures the ephemeris client
	EphemerisConfig ephemeris.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	var store storage.PlayerStore
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	identityCfg := cfg.IdentityConfig
	if identityCfg.SessionDuration == 0 {
		identityCfg.SessionDuration = identity.DefaultConfig().SessionDuration
	}

	geocoder := geocode.NewClient(cfg.GeocodeConfig, logger)
	eph := ephemeris.NewClient(cfg.EphemerisConfig, logger)

	return newWithDependencies(store, clk, geocoder, eph, identityCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.PlayerStore, clk clock.Clock, geocoder geocode.Geocoder, eph ephemeris.Computer, identityCfg identity.Config, logger *slog.Logger) *App {
	identityService := identity.New(clk, identityCfg)
	syncService := playersync.New(store, logger)
	chartService := chart.New(geocoder, eph, logger)
	hub := presence.NewHub(logger)

	return &App{
		Store:           store,
		Clock:           clk,
		IdentityService: identityService,
		SyncService:     syncService,
		ChartService:    chartService,
		PresenceHub:     hub,
	}
}
