package response

import (
	"time"

	"github.com/solhaven/astrocade/internal/model"
)

// Player represents a player record in API responses
type Player struct {
	ID            string    `json:"id"`
	Currency      int64     `json:"currency"`
	CreatedAt     time.Time `json:"createdAt"`
	BirthDate     string    `json:"birthDate,omitempty"`
	BirthTime     string    `json:"birthTime,omitempty"`
	BirthLocation string    `json:"birthLocation,omitempty"`
	SunSign       string    `json:"sunSign,omitempty"`
	MoonSign      string    `json:"moonSign,omitempty"`
	AscendantSign string    `json:"ascendantSign,omitempty"`
	MidheavenSign string    `json:"midheavenSign,omitempty"`
}

// PlayerFromModel converts a model.PlayerRecord to a response Player
func PlayerFromModel(rec *model.PlayerRecord) Player {
	return Player{
		ID:            string(rec.ID),
		Currency:      rec.Currency,
		CreatedAt:     rec.CreatedAt,
		BirthDate:     rec.BirthDate,
		BirthTime:     rec.BirthTime,
		BirthLocation: rec.BirthLocation,
		SunSign:       rec.SunSign,
		MoonSign:      rec.MoonSign,
		AscendantSign: rec.AscendantSign,
		MidheavenSign: rec.MidheavenSign,
	}
}

// PlayerEnvelope wraps a player record; the player field is null when no
// record exists rather than omitted.
type PlayerEnvelope struct {
	Player *Player `json:"player"`
}

// ChartResponse wraps a computed chart result
type ChartResponse struct {
	Result *model.ChartResult `json:"result"`
}

// MessageResponse is a plain message envelope used by the record update
// endpoint
type MessageResponse struct {
	Message string `json:"message"`
}

// IdentityResponse exposes the authenticated player's external identity
type IdentityResponse struct {
	DiscordUserID string `json:"discordUserId"`
}

// HealthResponse is the health check response
type HealthResponse struct {
	Status string `json:"status"`
}
