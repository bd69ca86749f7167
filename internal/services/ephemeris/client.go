package ephemeris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/solhaven/astrocade/internal/model"
)

// Chart holds the outputs of a horoscope computation: apparent body
// longitudes in decimal degrees, sign labels for the chart angles, and the
// raw payload for callers that want the full chart.
type Chart struct {
	SunLongitude  float64
	MoonLongitude float64
	AscendantSign string
	MidheavenSign string
	Raw           json.RawMessage
}

// Computer produces a chart for a UTC instant at given coordinates
type Computer interface {
	Compute(ctx context.Context, at time.Time, lat, lon float64) (*Chart, error)
}

// Config holds settings for the ephemeris client
type Config struct {
	// BaseURL of the ephemeris/horoscope service
	BaseURL string
	// APIKey is sent as a bearer token when set
	APIKey  string
	Timeout time.Duration
}

// DefaultConfig returns default ephemeris configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:9000",
		Timeout: 30 * time.Second,
	}
}

// Client is an HTTP client for the ephemeris service. All numerical work
// is delegated upstream; this adapter only validates the response shape.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure Client implements the interface
var _ Computer = (*Client)(nil)

// NewClient creates a new ephemeris client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With(slog.String("component", "ephemeris")),
	}
}

// horoscopeRequest is the upstream request body
type horoscopeRequest struct {
	Datetime    string  `json:"datetime"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	HouseSystem string  `json:"houseSystem"`
	Zodiac      string  `json:"zodiac"`
}

// horoscopeResponse is the upstream response shape. Pointer fields make a
// missing section detectable so shape mismatches fail fast.
type horoscopeResponse struct {
	Observed *struct {
		Sun *struct {
			ApparentLongitudeDd float64 `json:"apparentLongitudeDd"`
		} `json:"sun"`
		Moon *struct {
			ApparentLongitudeDd float64 `json:"apparentLongitudeDd"`
		} `json:"moon"`
	} `json:"observed"`
	Angles *struct {
		Ascendant *struct {
			Sign string `json:"sign"`
		} `json:"ascendant"`
		Midheaven *struct {
			Sign string `json:"sign"`
		} `json:"midheaven"`
	} `json:"angles"`
}

// Compute requests a horoscope for the given UTC instant and coordinates.
// Any transport, status or shape failure is model.ErrUpstream; the raw
// detail is logged server-side only.
func (c *Client) Compute(ctx context.Context, at time.Time, lat, lon float64) (*Chart, error) {
	reqBody := horoscopeRequest{
		Datetime:    at.UTC().Format(time.RFC3339),
		Latitude:    lat,
		Longitude:   lon,
		HouseSystem: "whole-sign",
		Zodiac:      "tropical",
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding horoscope request: %v", model.ErrUpstream, err)
	}

	u := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/v1/horoscope"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: building horoscope request: %v", model.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("horoscope request failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: horoscope request", model.ErrUpstream)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("horoscope request returned non-200", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: horoscope status %d", model.ErrUpstream, resp.StatusCode)
	}

	var buf bytes.Buffer
	var parsed horoscopeResponse
	if err := json.NewDecoder(io.TeeReader(resp.Body, &buf)).Decode(&parsed); err != nil {
		c.logger.Error("horoscope response undecodable", slog.Any("error", err))
		return nil, fmt.Errorf("%w: decoding horoscope response", model.ErrUpstream)
	}

	if parsed.Observed == nil || parsed.Observed.Sun == nil || parsed.Observed.Moon == nil ||
		parsed.Angles == nil || parsed.Angles.Ascendant == nil || parsed.Angles.Midheaven == nil {
		c.logger.Error("horoscope response missing required fields")
		return nil, fmt.Errorf("%w: horoscope response shape", model.ErrUpstream)
	}

	return &Chart{
		SunLongitude:  parsed.Observed.Sun.ApparentLongitudeDd,
		MoonLongitude: parsed.Observed.Moon.ApparentLongitudeDd,
		AscendantSign: parsed.Angles.Ascendant.Sign,
		MidheavenSign: parsed.Angles.Midheaven.Sign,
		Raw:           json.RawMessage(buf.Bytes()),
	}, nil
}
