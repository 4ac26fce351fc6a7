package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/itzgeebee/top-movies/internal/server"
	"github.com/itzgeebee/top-movies/internal/services"
	"github.com/itzgeebee/top-movies/internal/shared"
	"github.com/itzgeebee/top-movies/internal/web"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

// Serve starts the movie tracking web server and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	logger := r.commandLogger(cmd, "serve")
	config := r.loadConfig(cmd)

	apiKey, err := shared.APIKey()
	if err != nil {
		return err
	}

	movies, db, err := r.openRepository(config)
	if err != nil {
		return err
	}
	defer db.Close()

	var cache *redis.Client
	if config.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		defer cache.Close()
		logger.Info("metadata response caching enabled", "addr", config.Redis.Addr)
	}

	metadata, err := services.NewClient(services.ClientConfig{
		BaseURL:      config.Metadata.BaseURL,
		APIKey:       apiKey,
		ImageBaseURL: config.Metadata.ImageBaseURL,
		Language:     config.Metadata.Language,
		Timeout:      time.Duration(config.Metadata.TimeoutSeconds) * time.Second,
		RateLimit:    config.Metadata.RateLimit,
		Logger:       logger,
		Redis:        cache,
	})
	if err != nil {
		return err
	}

	handlers, err := web.NewHandlers(movies, metadata, logger)
	if err != nil {
		return err
	}

	router := server.NewRouter()
	router.Use(server.RequestID(), server.RequestLogger(logger))
	router.Handler(handlers)

	httpServer := &http.Server{
		Addr:    config.Server.Addr(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
