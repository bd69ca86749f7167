package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignForLongitude(t *testing.T) {
	tests := []struct {
		name      string
		longitude float64
		want      string
	}{
		{"zero degrees is Aries", 0.0, "Aries"},
		{"just below first boundary is Aries", 29.999, "Aries"},
		{"exact boundary starts Taurus", 30.0, "Taurus"},
		{"mid Leo", 135.0, "Leo"},
		{"end of circle is Pisces", 359.999, "Pisces"},
		{"full circle wraps to Aries", 360.0, "Aries"},
		{"beyond full circle", 390.5, "Taurus"},
		{"negative longitude normalizes", -30.0, "Pisces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SignForLongitude(tt.longitude))
		})
	}
}
