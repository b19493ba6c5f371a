package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/xp-optimizer/internal/config"
	"github.com/KirkDiggler/xp-optimizer/internal/engine"
	"github.com/KirkDiggler/xp-optimizer/internal/engine/branchbound"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/clock"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/xp-optimizer/internal/redis"
	optimizationresult "github.com/KirkDiggler/xp-optimizer/internal/repositories/optimization_result"
)

const redisPingTimeout = 5 * time.Second

// setupLogging installs the default slog logger
func setupLogging(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// newOptimizerService wires the solver and orchestrator from cfg
func newOptimizerService(
	cfg *config.Config, bus events.EventBus, repo optimizationresult.Repository,
) (optimizer.Service, error) {
	solver, err := branchbound.New(&branchbound.Config{MaxNodes: cfg.MaxNodes})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create solver")
	}

	return optimizer.NewOrchestrator(&optimizer.Config{
		Solver: solver,
		SolverOptions: engine.Options{
			MaxNodes:  cfg.MaxNodes,
			WarmStart: cfg.WarmStart,
		},
		EventBus:    bus,
		IDGenerator: idgen.NewUUID("run"),
		Clock:       clock.New(),
		ResultRepo:  repo,
		CacheTTL:    cfg.CacheTTL,
	})
}

// newResultRepository connects to Redis when configured. An unreachable
// server falls back to the in-memory cache.
func newResultRepository(ctx context.Context, cfg *config.Config) (optimizationresult.Repository, func(), error) {
	noop := func() {}
	if !cfg.UseRedis() {
		return optimizationresult.NewInMemory(nil), noop, nil
	}

	client, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{DB: cfg.RedisDB})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create redis client")
	}
	closeClient := func() {
		if err := client.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}

	if err := redisclient.Ping(ctx, client, redisPingTimeout); err != nil {
		slog.Warn("Redis unreachable, caching results in memory",
			"addr", cfg.RedisAddr,
			"error", err,
		)
		closeClient()
		return optimizationresult.NewInMemory(nil), noop, nil
	}

	repo, err := optimizationresult.NewRedisRepository(&optimizationresult.Config{
		Client:     client,
		Clock:      clock.New(),
		DefaultTTL: cfg.CacheTTL,
	})
	if err != nil {
		closeClient()
		return nil, nil, err
	}

	slog.Info("Caching results in redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return repo, closeClient, nil
}
