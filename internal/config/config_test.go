package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/internal/games"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "casino.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Credits.Starting)
	assert.Equal(t, 100, cfg.Credits.TopUpThreshold)
	assert.Equal(t, 1000, cfg.Credits.TopUpAmount)
	assert.Equal(t, 500, cfg.Credits.Deposit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 50, cfg.HistorySize)
	assert.True(t, cfg.SoundEnabled())
	assert.Len(t, cfg.Games, len(games.AllGames))
	require.NoError(t, cfg.Validate())

	defaults := map[games.Game]int{
		games.GameSlots: 10, games.GameBlackjack: 25, games.GameRoulette: 10,
		games.GamePoker: 25, games.GameBaccarat: 50, games.GameDice: 25,
	}
	for g, bet := range defaults {
		assert.Equal(t, bet, cfg.Game(g).DefaultBet, g)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
log_level    = "debug"
history_size = 10
sound        = false

credits {
  starting = 250
}

listen {
  address = "0.0.0.0:8080"
}

game "blackjack" {
  default_bet = 50
  min_bet     = 10
  max_bet     = 500
}

game "dice" {
  chips = [1, 2, 3]
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.HistorySize)
	assert.False(t, cfg.SoundEnabled())
	assert.Equal(t, 250, cfg.Credits.Starting)
	assert.Equal(t, 1000, cfg.Credits.TopUpAmount)
	assert.Equal(t, "0.0.0.0:8080", cfg.Listen.Address)

	bj := cfg.Game(games.GameBlackjack)
	assert.Equal(t, 50, bj.DefaultBet)
	assert.Equal(t, games.Limits{Min: 10, Max: 500}, bj.Limits())
	assert.Equal(t, 5, bj.Step, "unset step keeps the default")

	dice := cfg.Game(games.GameDice)
	assert.Equal(t, []int{1, 2, 3}, dice.Chips)
	assert.Equal(t, 25, dice.DefaultBet)

	assert.Equal(t, 10, cfg.Game(games.GameSlots).DefaultBet)
}

func TestLoadRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"syntax", `credits {`},
		{"unknown game", `game "keno" {}`},
		{"bad log level", `log_level = "loud"`},
		{"negative bet", `game "slots" { min_bet = -1 }`},
		{"max below min", `game "slots" {
  min_bet = 10
  max_bet = 5
}`},
		{"default outside limits", `game "roulette" {
  default_bet = 500
  max_bet     = 100
}`},
		{"duplicate game", `game "dice" {}
game "dice" {}`},
		{"bad address", `listen { address = "nowhere" }`},
		{"zero chip", `game "poker" { chips = [0, 5] }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestNextBet(t *testing.T) {
	t.Parallel()

	bj := Default().Game(games.GameBlackjack)
	assert.Equal(t, 30, bj.NextBet(25, 1))
	assert.Equal(t, 20, bj.NextBet(25, -1))
	assert.Equal(t, 5, bj.NextBet(5, -1), "never below the minimum")

	slots := Default().Game(games.GameSlots)
	assert.Equal(t, 25, slots.NextBet(10, 1))
	assert.Equal(t, 5, slots.NextBet(10, -1))
	assert.Equal(t, 100, slots.NextBet(100, 1))
	assert.Equal(t, 5, slots.NextBet(5, -1))
	assert.Equal(t, 10, slots.NextBet(7, 1))

	capped := GameConfig{MinBet: 5, MaxBet: 20, Step: 10}
	assert.Equal(t, 20, capped.NextBet(15, 1))
}
