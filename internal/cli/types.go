package cli

import "encoding/json"

// Player response type (matches API)
type Player struct {
	ID            string `json:"id"`
	Currency      int64  `json:"currency"`
	CreatedAt     string `json:"createdAt"`
	BirthDate     string `json:"birthDate,omitempty"`
	BirthTime     string `json:"birthTime,omitempty"`
	BirthLocation string `json:"birthLocation,omitempty"`
	SunSign       string `json:"sunSign,omitempty"`
	MoonSign      string `json:"moonSign,omitempty"`
	AscendantSign string `json:"ascendantSign,omitempty"`
	MidheavenSign string `json:"midheavenSign,omitempty"`
}

// PlayerEnvelope wraps a player record
type PlayerEnvelope struct {
	Player *Player `json:"player"`
}

// ChartResult response type
type ChartResult struct {
	SunSign       string          `json:"sunSign"`
	MoonSign      string          `json:"moonSign"`
	AscendantSign string          `json:"ascendantSign"`
	MidheavenSign string          `json:"midheavenSign"`
	Chart         json.RawMessage `json:"chart,omitempty"`
}

// ChartEnvelope wraps a chart result
type ChartEnvelope struct {
	Result ChartResult `json:"result"`
}

// MessageResult response type
type MessageResult struct {
	Message string `json:"message"`
}

// IdentityResult response type
type IdentityResult struct {
	DiscordUserID string `json:"discordUserId"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}
