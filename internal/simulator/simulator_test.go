package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/internal/games"
)

func TestRunReportsEveryGame(t *testing.T) {
	t.Parallel()

	report, err := Run(context.Background(), Config{Rounds: 2000, Seed: 12345, Workers: 4})
	require.NoError(t, err)
	require.Len(t, report.Games, len(games.AllGames))

	for i, g := range report.Games {
		assert.Equal(t, games.AllGames[i], g.Game)
		assert.Equal(t, Strategies[g.Game], g.Strategy)
		assert.Equal(t, 2000, g.Summary.Rounds, g.Game)
		assert.Equal(t, 2000*10, g.Summary.Wagered, g.Game)
		assert.Equal(t, g.Summary.Rounds, g.Summary.Wins+g.Summary.Losses+g.Summary.Pushes)
		assert.Greater(t, g.Summary.Wins, 0, g.Game)
		assert.Greater(t, g.Summary.ReturnToPlayer, 0.0, g.Game)
		assert.LessOrEqual(t, g.Summary.CI95[0], g.Summary.Mean)
		assert.GreaterOrEqual(t, g.Summary.CI95[1], g.Summary.Mean)
	}
}

func TestRunIsReproducible(t *testing.T) {
	t.Parallel()

	cfg := Config{Games: []games.Game{games.GameBlackjack, games.GamePoker}, Rounds: 25_000, Seed: 7}

	cfg.Workers = 1
	a, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Workers = 8
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	for i := range a.Games {
		assert.Equal(t, a.Games[i].Summary, b.Games[i].Summary)
	}
}

func TestRouletteRedReturn(t *testing.T) {
	t.Parallel()

	// Red pays even money on 18 of 37 pockets: RTP 36/37.
	report, err := Run(context.Background(), Config{
		Games: []games.Game{games.GameRoulette}, Rounds: 200_000, Seed: 1, Workers: 4,
	})
	require.NoError(t, err)
	assert.InDelta(t, 36.0/37.0, report.Games[0].Summary.ReturnToPlayer, 0.01)
	assert.Zero(t, report.Games[0].Summary.Pushes)
}

func TestRunRejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Config{})
	assert.Error(t, err)

	_, err = Run(context.Background(), Config{Rounds: 10, Games: []games.Game{"craps"}})
	assert.ErrorContains(t, err, "craps")
}

func TestRunStopsWhenCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{Rounds: 50_000, Timeout: time.Minute})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	report, err := Run(context.Background(), Config{Games: []games.Game{games.GameDice}, Rounds: 100, Seed: 3})
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, WriteJSON(path, report))
	require.NoError(t, WriteJSON(path, report), "overwrites an existing report")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Games[0].Summary, decoded.Games[0].Summary)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")

	assert.Error(t, WriteJSON("/nonexistent/dir/report.json", report))
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	report, err := Run(context.Background(), Config{Games: []games.Game{games.GameSlots}, Rounds: 100})
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, report)
	assert.Contains(t, buf.String(), "RETURN TO PLAYER")
	assert.Contains(t, buf.String(), "slots")
	assert.Contains(t, buf.String(), "spin")
}
