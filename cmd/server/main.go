package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"stockroom/internal/app/server/api"
	"stockroom/internal/config"
	"stockroom/internal/domain/resource"
	"stockroom/internal/infrastructure/storage/memory"
	"stockroom/internal/infrastructure/storage/postgres"
	"stockroom/internal/infrastructure/storage/sqlite"
	"stockroom/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	defs := resource.Defaults()
	if cfg.Resources.Path != "" {
		var err error
		defs, err = config.LoadDefinitions(cfg.Resources.Path)
		if err != nil {
			return err
		}
	}
	registry, err := resource.NewRegistry(defs)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	log.Info("resource registry loaded", "resources", names)

	repo, closeRepo, err := buildRepository(cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.New(registry, repo, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildRepository picks the storage backend from configuration: postgres
// when DATABASE_URI is set, sqlite when STORAGE_PATH is set, otherwise the
// in-memory store.
func buildRepository(cfg *config.Config, log *slog.Logger) (resource.Repository, func(), error) {
	switch {
	case cfg.DB.DatabaseURI != "":
		storage, err := postgres.New(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres storage: %w", err)
		}
		log.Info("storage backend selected", "backend", "postgres")
		return postgres.NewResourceRepository(storage.Pool(), log), func() { _ = storage.Close() }, nil

	case cfg.Storage.Path != "":
		repo, err := sqlite.NewResourceRepository(cfg.Storage.Path, log)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite storage: %w", err)
		}
		log.Info("storage backend selected", "backend", "sqlite", "path", cfg.Storage.Path)
		return repo, func() { _ = repo.Close() }, nil

	default:
		log.Info("storage backend selected", "backend", "memory")
		return memory.NewResourceRepository(log), func() {}, nil
	}
}
