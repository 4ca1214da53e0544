package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-narrator/internal/config"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-narrator/internal/redis"
	dicesession "github.com/KirkDiggler/rpg-narrator/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-narrator/internal/repositories/saves"
)

// closers collects cleanup funcs and runs them in reverse
type closers []func()

func (c *closers) add(fn func()) {
	*c = append(*c, fn)
}

func (c closers) close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// connectRedis returns a reachable client, or an Unavailable error
func connectRedis(ctx context.Context, cfg *config.Config) (redisclient.Client, error) {
	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, err
	}
	if err := redisclient.Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// openSaves builds the configured save backend
func openSaves(ctx context.Context, cfg *config.Config, cleanup *closers) (saves.Repository, error) {
	switch cfg.SaveBackend {
	case config.BackendRedis:
		client, err := connectRedis(ctx, cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open redis save backend")
		}
		cleanup.add(func() { _ = client.Close() })
		return saves.NewRedisRepository(&saves.RedisConfig{Client: client})

	case config.BackendSQLite:
		repo, err := saves.NewSQLiteRepository(ctx, &saves.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, errors.Wrap(err, "failed to open sqlite save backend")
		}
		cleanup.add(func() {
			if err := repo.Close(); err != nil {
				slog.Warn("Failed to close save database", "error", err)
			}
		})
		return repo, nil

	default:
		return saves.NewFileRepository(&saves.FileConfig{Dir: cfg.SaveDir})
	}
}

// openRollLog connects the d20 roll log. Rolls still happen without it;
// they are just not recorded.
func openRollLog(ctx context.Context, cfg *config.Config, clk clock.Clock, cleanup *closers) dicesession.Repository {
	client, err := connectRedis(ctx, cfg)
	if err != nil {
		slog.Warn("Roll log disabled", "redis_addr", cfg.RedisAddr, "error", err)
		return nil
	}
	cleanup.add(func() { _ = client.Close() })

	repo, err := dicesession.NewRedisRepository(&dicesession.Config{Client: client, Clock: clk, TTL: cfg.RollTTL})
	if err != nil {
		slog.Warn("Roll log disabled", "error", err)
		return nil
	}
	return repo
}

// newCombat builds the combat orchestrator around the toolkit's default roller
func newCombat(cfg *config.Config, clk clock.Clock, rollLog dicesession.Repository, delay bool) (combat.Service, error) {
	rollDelay := cfg.DiceDelay
	if !delay {
		rollDelay = 0
	}
	return combat.NewOrchestrator(&combat.Config{
		Roller:    dice.DefaultRoller,
		Clock:     clk,
		RollLog:   rollLog,
		RollDelay: rollDelay,
	})
}
