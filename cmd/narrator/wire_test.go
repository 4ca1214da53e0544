package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-narrator/internal/config"
	"github.com/KirkDiggler/rpg-narrator/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-narrator/internal/repositories/saves"
	"github.com/KirkDiggler/rpg-narrator/internal/savegame"
	"github.com/KirkDiggler/rpg-narrator/internal/testutils"
)

func TestClosersRunInReverse(t *testing.T) {
	var order []int
	var c closers
	c.add(func() { order = append(order, 1) })
	c.add(func() { order = append(order, 2) })
	c.close()

	assert.Equal(t, []int{2, 1}, order)
}

func TestOpenSaves(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	testCases := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "file", cfg: &config.Config{SaveBackend: config.BackendFile, SaveDir: filepath.Join(dir, "saves")}},
		{name: "sqlite", cfg: &config.Config{SaveBackend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "narrator.db")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var cleanup closers
			defer cleanup.close()

			repo, err := openSaves(ctx, tc.cfg, &cleanup)
			require.NoError(t, err)

			doc := savegame.New(testutils.NewTestGameState(), nil, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
			_, err = repo.Save(ctx, saves.SaveInput{Slot: "slot-1", Document: doc})
			require.NoError(t, err)

			out, err := repo.List(ctx, saves.ListInput{})
			require.NoError(t, err)
			require.Len(t, out.Saves, 1)
			assert.Equal(t, "slot-1", out.Saves[0].Slot)
			assert.Equal(t, "Dwarf", out.Saves[0].Race)
		})
	}
}

func TestOpenSaves_RedisUnreachable(t *testing.T) {
	var cleanup closers
	defer cleanup.close()

	cfg := &config.Config{SaveBackend: config.BackendRedis, RedisAddr: "127.0.0.1:1"}
	_, err := openSaves(context.Background(), cfg, &cleanup)
	assert.Error(t, err)
}

func TestNewCombat_NoDelayForCLI(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	cfg := &config.Config{DiceDelay: 3500 * time.Millisecond}

	svc, err := newCombat(cfg, clk, nil, false)
	require.NoError(t, err)

	out, err := svc.RollForAction(context.Background(), &combat.RollForActionInput{GameID: "cli", Action: "I roll the die"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, out.Roll, 1)
	assert.LessOrEqual(t, out.Roll, 20)
	assert.Equal(t, []time.Duration{0}, clk.Sleeps())
}
