package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solhaven/astrocade/internal/api"
	"github.com/solhaven/astrocade/internal/config"
	"github.com/solhaven/astrocade/internal/factory"
	"github.com/solhaven/astrocade/internal/services/ephemeris"
	"github.com/solhaven/astrocade/internal/services/geocode"
	"github.com/solhaven/astrocade/internal/services/identity"
	redisstorage "github.com/solhaven/astrocade/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		IdentityConfig: identity.Config{
			SessionDuration: cfg.SessionDuration,
			Secret:          cfg.SessionSecret,
		},
		GeocodeConfig: geocode.Config{
			BaseURL: cfg.GeocoderBaseURL,
		},
		EphemerisConfig: ephemeris.Config{
			BaseURL: cfg.EphemerisBaseURL,
			APIKey:  cfg.EphemerisAPIKey,
		},
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// A storage connection failure is fatal; the process does not limp
	// along without its record store.
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	go app.PresenceHub.Run()

	// Periodic session cleanup
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			app.IdentityService.CleanExpiredSessions()
		}
	}()

	provider := identity.NewDiscord(identity.DiscordConfig{
		ClientID:     cfg.DiscordClientID,
		ClientSecret: cfg.DiscordClientSecret,
		CallbackURL:  cfg.DiscordCallbackURL,
	}, logger)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		IdentityService: app.IdentityService,
		Provider:        provider,
		SyncService:     app.SyncService,
		ChartService:    app.ChartService,
		Store:           app.Store,
		PresenceHub:     app.PresenceHub,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		app.PresenceHub.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
