package model

import (
	"encoding/json"
	"math"
)

// ZodiacSigns lists the twelve tropical zodiac signs in ecliptic order,
// each spanning a fixed 30 degrees of longitude starting at 0 Aries.
var ZodiacSigns = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignForLongitude maps an ecliptic longitude in decimal degrees to its
// zodiac sign label. Longitudes outside [0, 360) are normalized first, so
// 360.0 and -330.0 both resolve to Aries.
func SignForLongitude(degrees float64) string {
	norm := math.Mod(degrees, 360)
	if norm < 0 {
		norm += 360
	}
	return ZodiacSigns[int(norm/30)%12]
}

// ChartResult is a request-scoped chart computation: the four derived sign
// labels plus the raw payload from the ephemeris computation. It is never
// persisted directly; callers fold selected fields into a PlayerRecord
// update explicitly.
type ChartResult struct {
	SunSign       string          `json:"sunSign"`
	MoonSign      string          `json:"moonSign"`
	AscendantSign string          `json:"ascendantSign"`
	MidheavenSign string          `json:"midheavenSign"`
	Chart         json.RawMessage `json:"chart,omitempty"`
}
