package memory

import (
	"context"
	"sync"

	"github.com/solhaven/astrocade/internal/dependencies/clock"
	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/storage"
)

// Storage is an in-memory implementation of the player store. The mutex
// stands in for the storage-level uniqueness guarantee Redis provides.
type Storage struct {
	mu    sync.RWMutex
	clock clock.Clock

	players map[model.Identity]model.PlayerRecord
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		clock:   clk,
		players: make(map[model.Identity]model.PlayerRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.PlayerStore = (*Storage)(nil)

func (s *Storage) GetPlayer(ctx context.Context, id model.Identity) (*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &rec, nil
}

func (s *Storage) CreatePlayerIfAbsent(ctx context.Context, id model.Identity) (*model.PlayerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.players[id]; ok {
		return &rec, nil
	}

	rec := model.PlayerRecord{
		ID:        id,
		Currency:  0,
		CreatedAt: s.clock.Now().UTC(),
	}
	s.players[id] = rec
	return &rec, nil
}

func (s *Storage) UpdatePlayerFields(ctx context.Context, id model.Identity, update model.PlayerUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}

	update.Apply(&rec)
	s.players[id] = rec
	return nil
}

// Len returns the number of stored records (for tests)
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
