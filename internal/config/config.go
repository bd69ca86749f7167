package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from the environment
// with an optional .env overlay.
type Config struct {
	Port        int
	StorageType string
	RedisURL    string

	SessionSecret   string
	SessionDuration time.Duration

	DiscordClientID     string
	DiscordClientSecret string
	DiscordCallbackURL  string

	GeocoderBaseURL  string
	EphemerisBaseURL string
	EphemerisAPIKey  string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getenvInt("PORT", 8080),
		StorageType: getenv("STORAGE_TYPE", "memory"),
		RedisURL:    getenv("REDIS_URL", "redis://localhost:6379"),

		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionDuration: getenvDuration("SESSION_DURATION", 24*time.Hour),

		DiscordClientID:     os.Getenv("DISCORD_CLIENT_ID"),
		DiscordClientSecret: os.Getenv("DISCORD_CLIENT_SECRET"),
		DiscordCallbackURL:  getenv("DISCORD_CALLBACK_URL", "http://localhost:8080/auth/discord/callback"),

		GeocoderBaseURL:  getenv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		EphemerisBaseURL: os.Getenv("EPHEMERIS_BASE_URL"),
		EphemerisAPIKey:  os.Getenv("EPHEMERIS_API_KEY"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.DiscordClientID == "" || c.DiscordClientSecret == "" {
		return fmt.Errorf("DISCORD_CLIENT_ID and DISCORD_CLIENT_SECRET are required")
	}
	if c.StorageType != "memory" && c.StorageType != "redis" {
		return fmt.Errorf("STORAGE_TYPE must be 'memory' or 'redis', got %q", c.StorageType)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
