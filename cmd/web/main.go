package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-market/internal/api"
	"campus-market/internal/apiclient"
	"campus-market/internal/config"
	"campus-market/internal/database"
	"campus-market/internal/handler"
	"campus-market/internal/media"
	"campus-market/internal/provider"
	"campus-market/internal/router"
	"campus-market/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting marketplace web shell")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStore()

	uploader, mediaDir, err := newUploader(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize media uploads: %w", err)
	}
	if cfg.Media.MountPath() == "" {
		// MEDIA_BASE_URL names another host that serves the directory.
		mediaDir = ""
	}

	// One client for the whole process. The login redirect after a 401 goes to
	// the per-request navigator installed by MarketplaceProvider.
	client := apiclient.New(cfg.API, store, nil, logger)
	catalogue := api.NewCatalogue(client)
	session := api.NewSession(store, catalogue.Auth, logger)

	pages := handler.NewPageHandler(cfg.API.LoginPath, uploader, logger)

	mux := router.New(router.Deps{
		Pages:     pages,
		Catalogue: catalogue,
		Session:   session,
		Theme:     provider.Theme(cfg.Theme.Default),
		LoginPath: cfg.API.LoginPath,
		MediaDir:  mediaDir,
		MediaPath: cfg.Media.MountPath(),
		Logger:    logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("api", client.BaseURL()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// openStore builds the configured credential store and its cleanup func.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		logger.Info().Msg("using in-memory storage; sessions end with the process")
		return storage.NewMemoryStore(), func() {}, nil

	case "postgres":
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewPostgresStore(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := storage.NewRedisStore(ctx, client, cfg.Redis.KeyPrefix, logger)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return store, func() { client.Close() }, nil

	default:
		store, err := storage.NewFileStore(cfg.Storage.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

// newUploader returns the listing image uploader and, when images are kept
// locally, the directory to serve them from.
func newUploader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (media.Uploader, string, error) {
	local, err := media.NewLocalUploader(cfg.Media.Dir, cfg.Media.BaseURL, logger)
	if err != nil {
		return nil, "", err
	}

	if !cfg.S3.Enabled {
		logger.Info().Str("dir", cfg.Media.Dir).Msg("using local directory for listing images (S3 disabled)")
		return local, cfg.Media.Dir, nil
	}

	s3Uploader, err := media.NewS3Uploader(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 uploader, falling back to local directory only")
		return local, cfg.Media.Dir, nil
	}

	return media.NewFallbackUploader(s3Uploader, local, logger), cfg.Media.Dir, nil
}
