package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/dna-planner/internal/config"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/metrics"
	"github.com/KirkDiggler/dna-planner/internal/orchestrators/planner"
	"github.com/KirkDiggler/dna-planner/internal/pkg/clock"
	"github.com/KirkDiggler/dna-planner/internal/pkg/idgen"
	"github.com/KirkDiggler/dna-planner/internal/redis"
	"github.com/KirkDiggler/dna-planner/internal/repositories/history"
	"github.com/KirkDiggler/dna-planner/internal/repositories/roster"
)

const redisPingTimeout = 5 * time.Second

// buildService wires repositories, metrics and the clock into a planner.
// The returned func releases the history store.
func buildService(cfg *config.Config) (planner.Service, func(), error) {
	rosterRepo, err := roster.NewFile(&roster.FileConfig{
		Dir:          cfg.DataDir,
		RosterFile:   cfg.Files.Roster,
		RecipeFile:   cfg.Files.Recipes,
		WishlistFile: cfg.Files.Wishlist,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create roster repository")
	}

	historyRepo, closeFn, err := openHistory(cfg, cfg.History.Store)
	if err != nil {
		return nil, nil, err
	}

	svc, err := planner.NewOrchestrator(&planner.Config{
		RosterRepo:  rosterRepo,
		HistoryRepo: historyRepo,
		Clock:       clock.New(),
		Metrics:     metrics.New(&metrics.Config{TextfilePath: cfg.MetricsTextfile()}),
		ParentLevel: cfg.ParentLevel(),
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	return svc, closeFn, nil
}

// openHistory opens the history store of the given backend using the
// backend settings in cfg
func openHistory(cfg *config.Config, backend string) (history.Repository, func(), error) {
	factory := &history.FactoryConfig{
		Backend:        backend,
		FilePath:       cfg.HistoryFile(),
		SQLitePath:     cfg.SQLitePath(),
		RedisKeyPrefix: cfg.History.Redis.KeyPrefix,
		IDGenerator:    idgen.NewUUID("snapshot"),
	}

	var client redis.Client
	if backend == history.BackendRedis {
		var err error
		client, err = redis.NewClient(cfg.History.Redis.Addr, &redis.Options{
			DB:       cfg.History.Redis.DB,
			Password: cfg.History.Redis.Password,
		})
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
		}

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := redis.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "redis at %s", cfg.History.Redis.Addr)
		}
		factory.RedisClient = client
	}

	repo, err := history.New(factory)
	if err != nil {
		if client != nil {
			_ = client.Close()
		}
		return nil, nil, errors.Wrapf(err, "failed to open %s history", backend)
	}

	closeFn := func() {
		if err := history.CloseIfSupported(repo); err != nil {
			slog.Warn("Failed to close history store", "backend", backend, "error", err)
		}
		if client != nil {
			_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
		}
	}
	return repo, closeFn, nil
}
