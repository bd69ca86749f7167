package request

// ChartRequest is the request body for computing a natal chart
type ChartRequest struct {
	BirthDate     string `json:"birthDate"`
	BirthTime     string `json:"birthTime"`
	BirthLocation string `json:"birthLocation"`
}

// AstroData carries the derived sign labels on a record update. The
// values are stored verbatim as submitted; the server does not
// recompute them against the birth fields.
type AstroData struct {
	SunSign       string `json:"sunSign"`
	MoonSign      string `json:"moonSign"`
	AscendantSign string `json:"ascendantSign"`
	MidheavenSign string `json:"midheavenSign"`
}

// UpdatePlayerRecordRequest is the request body for updating a player
// record's birth and sign fields. DiscordUserID may be omitted, in
// which case the session's identity is used.
type UpdatePlayerRecordRequest struct {
	DiscordUserID string    `json:"discordUserId"`
	BirthDate     string    `json:"birthDate"`
	BirthTime     string    `json:"birthTime"`
	BirthLocation string    `json:"birthLocation"`
	AstroData     AstroData `json:"astroData"`
}
