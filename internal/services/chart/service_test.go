package chart_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/solhaven/astrocade/internal/dependencies/mocks"
	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/services/chart"
	"github.com/solhaven/astrocade/internal/services/ephemeris"
	"github.com/solhaven/astrocade/internal/services/geocode"
)

type ServiceTestSuite struct {
	suite.Suite
	geocoder *mocks.MockGeocoder
	eph      *mocks.MockEphemeris
	service  *chart.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.geocoder = &mocks.MockGeocoder{
		Place: geocode.Place{Lat: 40.7128, Lon: -74.0060, Name: "New York"},
	}
	s.eph = &mocks.MockEphemeris{
		Chart: ephemeris.Chart{
			SunLongitude:  95.5,
			MoonLongitude: 212.3,
			AscendantSign: "Virgo",
			MidheavenSign: "Gemini",
			Raw:           json.RawMessage(`{"observed":{}}`),
		},
	}
	s.service = chart.New(s.geocoder, s.eph, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *ServiceTestSuite) TestComputeSuccess() {
	result, err := s.service.Compute(context.Background(), "1990-07-16", "14:30", "New York")
	s.Require().NoError(err)

	s.Require().Equal("Cancer", result.SunSign)
	s.Require().Equal("Scorpio", result.MoonSign)
	s.Require().Equal("Virgo", result.AscendantSign)
	s.Require().Equal("Gemini", result.MidheavenSign)
	s.Require().JSONEq(`{"observed":{}}`, string(result.Chart))

	s.Require().Equal([]string{"New York"}, s.geocoder.Calls)
	s.Require().Equal(1, s.eph.Calls)
	s.Require().Equal(time.Date(1990, 7, 16, 14, 30, 0, 0, time.UTC), s.eph.LastAt)
	s.Require().Equal(40.7128, s.eph.LastLat)
	s.Require().Equal(-74.0060, s.eph.LastLon)
}

func (s *ServiceTestSuite) TestComputeWithSeconds() {
	_, err := s.service.Compute(context.Background(), "1990-07-16", "14:30:45", "New York")
	s.Require().NoError(err)
	s.Require().Equal(time.Date(1990, 7, 16, 14, 30, 45, 0, time.UTC), s.eph.LastAt)
}

func (s *ServiceTestSuite) TestComputeMissingDate() {
	_, err := s.service.Compute(context.Background(), "", "14:30", "New York")
	s.Require().ErrorIs(err, model.ErrInvalidInput)
	s.Require().Empty(s.geocoder.Calls)
	s.Require().Zero(s.eph.Calls)
}

func (s *ServiceTestSuite) TestComputeMalformedTimestamp() {
	_, err := s.service.Compute(context.Background(), "July 16 1990", "2pm", "New York")
	s.Require().ErrorIs(err, model.ErrInvalidInput)
	s.Require().Zero(s.eph.Calls)
}

func (s *ServiceTestSuite) TestComputeUnknownLocation() {
	s.geocoder.Err = model.ErrInvalidLocation

	_, err := s.service.Compute(context.Background(), "1990-07-16", "14:30", "Nowhereville")
	s.Require().ErrorIs(err, model.ErrInvalidLocation)
	s.Require().Zero(s.eph.Calls)
}

func (s *ServiceTestSuite) TestComputeEphemerisFailure() {
	s.eph.Err = model.ErrUpstream

	_, err := s.service.Compute(context.Background(), "1990-07-16", "14:30", "New York")
	s.Require().ErrorIs(err, model.ErrUpstream)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
