package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/solhaven/astrocade/internal/api/handler"
	"github.com/solhaven/astrocade/internal/api/middleware"
	"github.com/solhaven/astrocade/internal/presence"
	"github.com/solhaven/astrocade/internal/services/chart"
	"github.com/solhaven/astrocade/internal/services/identity"
	"github.com/solhaven/astrocade/internal/services/playersync"
	"github.com/solhaven/astrocade/internal/storage"
	webhandler "github.com/solhaven/astrocade/internal/web/handler"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger          *slog.Logger
	IdentityService *identity.Service
	Provider        identity.Provider
	SyncService     *playersync.Service
	ChartService    *chart.Service
	Store           storage.PlayerStore
	PresenceHub     *presence.Hub
}

// NewRouter creates the router with all routes configured. Gated routes
// run the record sync middleware, so every handler behind it sees a
// provisioned player record.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	recordHandler := handler.NewRecordHandler(cfg.Store, cfg.IdentityService)
	chartHandler := handler.NewChartHandler(cfg.ChartService, cfg.Logger)
	eventsHandler := handler.NewEventsHandler(cfg.PresenceHub)
	homeHandler := webhandler.NewHomeHandler()
	authHandler := webhandler.NewAuthHandler(cfg.Provider, cfg.IdentityService, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Public routes: the landing page and the login flow must stay
	// reachable without a session.
	r.HandleFunc("/", homeHandler.Index).Methods(http.MethodGet)
	r.HandleFunc("/auth/discord", authHandler.BeginLogin).Methods(http.MethodGet)
	r.HandleFunc("/auth/discord/callback", authHandler.Callback).Methods(http.MethodGet)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)
	r.HandleFunc("/api/health", healthHandler).Methods(http.MethodGet)

	// Probe endpoint: 404s rather than redirecting when logged out.
	r.HandleFunc("/get-discord-user-id", recordHandler.GetDiscordUserID).Methods(http.MethodGet)

	// The logged-in page bounces back to the landing page when the
	// session is missing; API routes bounce into the login flow.
	pageSync := middleware.RecordSync(cfg.IdentityService, cfg.SyncService, cfg.Logger, "/")
	apiSync := middleware.RecordSync(cfg.IdentityService, cfg.SyncService, cfg.Logger, "/auth/discord")

	r.Handle("/home", pageSync(http.HandlerFunc(homeHandler.Home))).Methods(http.MethodGet)

	r.Handle("/api/player", apiSync(http.HandlerFunc(recordHandler.GetPlayer))).Methods(http.MethodGet)
	r.Handle("/api/player-record", apiSync(http.HandlerFunc(recordHandler.GetPlayerRecord))).Methods(http.MethodGet)
	r.Handle("/update-player-record", apiSync(http.HandlerFunc(recordHandler.UpdatePlayerRecord))).Methods(http.MethodPatch)
	r.Handle("/astro", apiSync(http.HandlerFunc(chartHandler.ComputeChart))).Methods(http.MethodPost)
	r.Handle("/events", apiSync(http.HandlerFunc(eventsHandler.Stream))).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
