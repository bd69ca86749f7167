package playersync

import (
	"context"
	"log/slog"

	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/services/identity"
	"github.com/solhaven/astrocade/internal/storage"
)

// Service lazily provisions player records for authenticated sessions.
// Every gated request passes through Sync, so a player's first visit
// after login creates their record without a separate signup step.
type Service struct {
	store  storage.PlayerStore
	logger *slog.Logger
}

// New creates a new playersync service
func New(store storage.PlayerStore, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Sync ensures a record exists for the session's identity and returns it
// alongside a summary for the messaging layer. The summary's display name
// comes from the session, not the stored record.
func (s *Service) Sync(ctx context.Context, session *identity.Session) (*model.PlayerRecord, model.PlayerSummary, error) {
	rec, err := s.store.CreatePlayerIfAbsent(ctx, session.Identity)
	if err != nil {
		s.logger.Error("player record sync failed",
			"player_id", session.Identity,
			"error", err)
		return nil, model.PlayerSummary{}, err
	}

	summary := model.PlayerSummary{
		ID:          rec.ID,
		DisplayName: session.DisplayName,
		Currency:    rec.Currency,
	}

	return rec, summary, nil
}
