package ephemeris

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/solhaven/astrocade/internal/model"
)

type ClientSuite struct {
	suite.Suite
	ctx context.Context
	at  time.Time
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
	s.at = time.Date(1986, 4, 23, 6, 21, 0, 0, time.UTC)
}

func (s *ClientSuite) newClient(handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	s.T().Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(cfg, logger)
}

func (s *ClientSuite) TestComputeParsesChart() {
	client := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/v1/horoscope", r.URL.Path)

		var req map[string]any
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.Equal("1986-04-23T06:21:00Z", req["datetime"])
		s.InDelta(40.7128, req["latitude"].(float64), 1e-9)
		s.Equal("whole-sign", req["houseSystem"])
		s.Equal("tropical", req["zodiac"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"observed": {
				"sun":  {"apparentLongitudeDd": 32.7},
				"moon": {"apparentLongitudeDd": 160.2}
			},
			"angles": {
				"ascendant": {"sign": "Gemini"},
				"midheaven": {"sign": "Aquarius"}
			}
		}`))
	})

	chart, err := client.Compute(s.ctx, s.at, 40.7128, -74.0060)
	s.Require().NoError(err)
	s.InDelta(32.7, chart.SunLongitude, 1e-9)
	s.InDelta(160.2, chart.MoonLongitude, 1e-9)
	s.Equal("Gemini", chart.AscendantSign)
	s.Equal("Aquarius", chart.MidheavenSign)
	s.NotEmpty(chart.Raw)
}

func (s *ClientSuite) TestComputeMissingSectionIsUpstreamError() {
	client := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"observed": {"sun": {"apparentLongitudeDd": 32.7}}}`))
	})

	_, err := client.Compute(s.ctx, s.at, 40.7128, -74.0060)
	s.ErrorIs(err, model.ErrUpstream)
}

func (s *ClientSuite) TestComputeNon200IsUpstreamError() {
	client := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Compute(s.ctx, s.at, 40.7128, -74.0060)
	s.ErrorIs(err, model.ErrUpstream)
}

func (s *ClientSuite) TestComputeUndecodableBodyIsUpstreamError() {
	client := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.Compute(s.ctx, s.at, 40.7128, -74.0060)
	s.ErrorIs(err, model.ErrUpstream)
}
