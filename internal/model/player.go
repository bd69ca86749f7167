package model

import "time"

// Identity is the stable external user identifier assigned by the
// identity provider. It is the primary key for a player record.
type Identity string

// PlayerRecord is the persisted per-player economy and chart state.
// Exactly one record exists per identity; creation is idempotent.
type PlayerRecord struct {
	ID        Identity  `json:"id"`
	Currency  int64     `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`

	// Birth data, supplied by the player. Overwritten wholesale on update.
	BirthDate     string `json:"birthDate,omitempty"`
	BirthTime     string `json:"birthTime,omitempty"`
	BirthLocation string `json:"birthLocation,omitempty"`

	// Derived signs, stored verbatim as submitted.
	SunSign       string `json:"sunSign,omitempty"`
	MoonSign      string `json:"moonSign,omitempty"`
	AscendantSign string `json:"ascendantSign,omitempty"`
	MidheavenSign string `json:"midheavenSign,omitempty"`
}

// PlayerUpdate is the field set for a partial record update. The identity,
// currency and creation timestamp are never touched by an update.
type PlayerUpdate struct {
	BirthDate     string
	BirthTime     string
	BirthLocation string
	SunSign       string
	MoonSign      string
	AscendantSign string
	MidheavenSign string
}

// Apply overwrites the record's mutable fields with the update's values.
func (u PlayerUpdate) Apply(rec *PlayerRecord) {
	rec.BirthDate = u.BirthDate
	rec.BirthTime = u.BirthTime
	rec.BirthLocation = u.BirthLocation
	rec.SunSign = u.SunSign
	rec.MoonSign = u.MoonSign
	rec.AscendantSign = u.AscendantSign
	rec.MidheavenSign = u.MidheavenSign
}

// PlayerSummary is the request-scoped snapshot of the current player that
// the messaging layer receives at connection-attach time. It is built fresh
// per request and never shared across requests.
type PlayerSummary struct {
	ID          Identity `json:"id"`
	DisplayName string   `json:"displayName"`
	Currency    int64    `json:"currency"`
}
