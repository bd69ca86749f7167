package storage

import (
	"context"

	"github.com/solhaven/astrocade/internal/model"
)

// PlayerStore defines the interface for player record persistence.
// It is a single-collection store keyed by external identity.
type PlayerStore interface {
	// GetPlayer returns the record for an identity, or
	// model.ErrPlayerNotFound if none exists. A miss is not exceptional.
	GetPlayer(ctx context.Context, id model.Identity) (*model.PlayerRecord, error)

	// CreatePlayerIfAbsent lazily provisions a record for an identity.
	// It is safe under concurrent calls for the same identity: at most one
	// record is ever created, backed by a storage-level uniqueness
	// guarantee rather than application locking. Losing the creation race
	// returns the winner's record, never an error.
	CreatePlayerIfAbsent(ctx context.Context, id model.Identity) (*model.PlayerRecord, error)

	// UpdatePlayerFields performs a partial update of an existing record.
	// Returns model.ErrPlayerNotFound if no record exists; it never
	// creates a record as a side effect.
	UpdatePlayerFields(ctx context.Context, id model.Identity, update model.PlayerUpdate) error
}
