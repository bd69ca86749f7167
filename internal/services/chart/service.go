package chart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/services/ephemeris"
	"github.com/solhaven/astrocade/internal/services/geocode"
)

// birthLayouts are the accepted layouts for a composed birth timestamp.
// A timestamp that matches neither is rejected, never defaulted.
var birthLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// Service computes natal charts from birth details
type Service struct {
	geocoder  geocode.Geocoder
	ephemeris ephemeris.Computer
	logger    *slog.Logger
}

// New creates a new chart service
func New(geocoder geocode.Geocoder, eph ephemeris.Computer, logger *slog.Logger) *Service {
	return &Service{
		geocoder:  geocoder,
		ephemeris: eph,
		logger:    logger,
	}
}

// Compute geocodes the birth location, queries the ephemeris at the birth
// moment, and derives zodiac signs from the returned longitudes.
func (s *Service) Compute(ctx context.Context, birthDate, birthTime, birthLocation string) (*model.ChartResult, error) {
	at, err := parseBirthTimestamp(birthDate, birthTime)
	if err != nil {
		return nil, err
	}

	place, err := s.geocoder.Lookup(ctx, birthLocation)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("resolved birth location",
		"query", birthLocation,
		"lat", place.Lat,
		"lon", place.Lon)

	chart, err := s.ephemeris.Compute(ctx, at, place.Lat, place.Lon)
	if err != nil {
		return nil, err
	}

	return &model.ChartResult{
		SunSign:       model.SignForLongitude(chart.SunLongitude),
		MoonSign:      model.SignForLongitude(chart.MoonLongitude),
		AscendantSign: chart.AscendantSign,
		MidheavenSign: chart.MidheavenSign,
		Chart:         chart.Raw,
	}, nil
}

// parseBirthTimestamp composes the date and time fields into a UTC
// timestamp. Empty or malformed inputs are invalid input, not a default
// date.
func parseBirthTimestamp(birthDate, birthTime string) (time.Time, error) {
	if birthDate == "" || birthTime == "" {
		return time.Time{}, fmt.Errorf("%w: birth date and time are required", model.ErrInvalidInput)
	}

	composed := birthDate + "T" + birthTime + "Z"
	for _, layout := range birthLayouts {
		if at, err := time.Parse(layout, composed); err == nil {
			return at, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: unparseable birth timestamp %q", model.ErrInvalidInput, composed)
}
