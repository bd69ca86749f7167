package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/solhaven/astrocade/internal/dependencies/clock"
	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/storage"
)

// Number of attempts for the optimistic update transaction before giving up
const maxUpdateAttempts = 3

// Storage is a Redis-backed implementation of the player store. Records are
// stored as JSON documents keyed by identity; the key itself is the
// uniqueness constraint that makes creation idempotent.
type Storage struct {
	client *redis.Client
	clock  clock.Clock
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		clock:  clk,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, clk clock.Clock, cfg Config) *Storage {
	return &Storage{
		client: client,
		clock:  clk,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.PlayerStore = (*Storage)(nil)

func (s *Storage) GetPlayer(ctx context.Context, id model.Identity) (*model.PlayerRecord, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rec model.PlayerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Storage) CreatePlayerIfAbsent(ctx context.Context, id model.Identity) (*model.PlayerRecord, error) {
	rec := model.PlayerRecord{
		ID:        id,
		Currency:  0,
		CreatedAt: s.clock.Now().UTC(),
	}

	data, err := json.Marshal(&rec)
	if err != nil {
		return nil, err
	}

	// SETNX is the uniqueness constraint: a failed insert means another
	// request won the race, so re-fetch and return the existing record.
	created, err := s.client.SetNX(ctx, playerKey(id), data, 0).Result()
	if err != nil {
		return nil, err
	}
	if created {
		return &rec, nil
	}
	return s.GetPlayer(ctx, id)
}

func (s *Storage) UpdatePlayerFields(ctx context.Context, id model.Identity, update model.PlayerUpdate) error {
	key := playerKey(id)

	// Read-modify-write under WATCH so a concurrent update cannot be
	// clobbered. A missing key fails the update; it never creates.
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrPlayerNotFound
			}
			return err
		}

		var rec model.PlayerRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}

		update.Apply(&rec)

		out, err := json.Marshal(&rec)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < maxUpdateAttempts; i++ {
		err = s.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}
