package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Bind(&cli.Globals))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestPlayIsTheDefaultCommand(t *testing.T) {
	_, ctx := parse(t)
	assert.Equal(t, "play", ctx.Command())
}

func TestSimulateFlags(t *testing.T) {
	cli, ctx := parse(t, "simulate", "-g", "dice,slots", "-n", "500", "--seed", "9")
	assert.Equal(t, "simulate", ctx.Command())
	assert.Equal(t, []string{"dice", "slots"}, cli.Simulate.Games)
	assert.Equal(t, 500, cli.Simulate.Rounds)
	require.NotNil(t, cli.Seed)
	assert.EqualValues(t, 9, *cli.Seed)
}

func TestMissingConfigUsesDefaults(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), Debug: true}
	cfg, err := g.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Positive(t, cfg.Credits.Starting)
}

func TestSimulateWritesReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	seed := int64(3)
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), Seed: &seed}
	cmd := &SimulateCmd{Games: []string{"dice"}, Rounds: 200, Bet: 10, Workers: 2, Output: out}
	require.NoError(t, cmd.Run(g))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"game": "dice"`)
}

func TestSimulateRejectsUnknownGame(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl")}
	cmd := &SimulateCmd{Games: []string{"craps"}, Rounds: 10}
	assert.Error(t, cmd.Run(g))
}
