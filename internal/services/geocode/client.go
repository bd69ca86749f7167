package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/solhaven/astrocade/internal/model"
)

// Place is a resolved location
type Place struct {
	Lat  float64
	Lon  float64
	Name string
}

// Geocoder resolves a free-text place name to coordinates
type Geocoder interface {
	Lookup(ctx context.Context, query string) (Place, error)
}

// Config holds settings for the geocoding client
type Config struct {
	// BaseURL of a Nominatim-compatible search endpoint
	BaseURL string
	// UserAgent identifies this service to the lookup provider, which
	// requires a descriptive agent string
	UserAgent string
	Timeout   time.Duration
}

// DefaultConfig returns default geocoder configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://nominatim.openstreetmap.org",
		UserAgent: "astrocade-server",
		Timeout:   10 * time.Second,
	}
}

// Client is an HTTP geocoding client
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure Client implements the interface
var _ Geocoder = (*Client)(nil)

// NewClient creates a new geocoding client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With(slog.String("component", "geocode")),
	}
}

// searchResult is the shape of one entry in the lookup response.
// Coordinates arrive as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup resolves a place name to the coordinates of its first match.
// Zero matches is model.ErrInvalidLocation; any transport or shape failure
// is model.ErrUpstream with the raw detail logged, never surfaced.
func (c *Client) Lookup(ctx context.Context, query string) (Place, error) {
	u := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/search?format=json&q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Place{}, fmt.Errorf("%w: building geocode request: %v", model.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("geocode lookup failed", slog.String("query", query), slog.Any("error", err))
		return Place{}, fmt.Errorf("%w: geocode lookup", model.ErrUpstream)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("geocode lookup returned non-200",
			slog.String("query", query),
			slog.Int("status", resp.StatusCode))
		return Place{}, fmt.Errorf("%w: geocode lookup status %d", model.ErrUpstream, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		c.logger.Error("geocode lookup returned unexpected content type",
			slog.String("query", query),
			slog.String("content_type", ct))
		return Place{}, fmt.Errorf("%w: geocode content type %q", model.ErrUpstream, ct)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.logger.Error("geocode response undecodable", slog.String("query", query), slog.Any("error", err))
		return Place{}, fmt.Errorf("%w: decoding geocode response", model.ErrUpstream)
	}

	if len(results) == 0 {
		return Place{}, fmt.Errorf("%w: %q", model.ErrInvalidLocation, query)
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("%w: geocode latitude %q", model.ErrUpstream, first.Lat)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("%w: geocode longitude %q", model.ErrUpstream, first.Lon)
	}

	return Place{Lat: lat, Lon: lon, Name: first.DisplayName}, nil
}
