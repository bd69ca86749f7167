package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/services/identity"
	"github.com/solhaven/astrocade/internal/services/playersync"
)

type contextKey string

const (
	playerContextKey  contextKey = "player"
	summaryContextKey contextKey = "summary"
	sessionContextKey contextKey = "session"
)

// RecordSync gates a route on a valid session and synchronizes the
// player record before the handler runs. An unauthenticated request is
// redirected to redirectTo; a store failure is a server error, the
// request never proceeds with a missing record.
func RecordSync(ident *identity.Service, sync *playersync.Service, logger *slog.Logger, redirectTo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := ident.SessionFromRequest(r)
			if err != nil {
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}

			rec, summary, err := sync.Sync(r.Context(), session)
			if err != nil {
				logger.Error("record sync failed",
					slog.String("player_id", string(session.Identity)),
					slog.Any("error", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, session)
			ctx = context.WithValue(ctx, playerContextKey, rec)
			ctx = context.WithValue(ctx, summaryContextKey, summary)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPlayer returns the synchronized player record from the request context
func GetPlayer(ctx context.Context) *model.PlayerRecord {
	rec, _ := ctx.Value(playerContextKey).(*model.PlayerRecord)
	return rec
}

// MustGetPlayer returns the synchronized player record or panics
func MustGetPlayer(ctx context.Context) *model.PlayerRecord {
	rec := GetPlayer(ctx)
	if rec == nil {
		panic("no player in context - sync middleware not applied?")
	}
	return rec
}

// GetSummary returns the request-scoped player summary from the context
func GetSummary(ctx context.Context) (model.PlayerSummary, bool) {
	summary, ok := ctx.Value(summaryContextKey).(model.PlayerSummary)
	return summary, ok
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *identity.Session {
	session, _ := ctx.Value(sessionContextKey).(*identity.Session)
	return session
}
