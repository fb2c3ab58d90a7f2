package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/lox/minicasino/internal/games"
	"github.com/lox/minicasino/internal/simulator"
)

// SimulateCmd plays many rounds of each game with a fixed strategy.
type SimulateCmd struct {
	Games   []string      `short:"g" sep:"," help:"Games to simulate (default: all)"`
	Rounds  int           `short:"n" default:"100000" help:"Rounds per game"`
	Bet     int           `default:"10" help:"Stake per round"`
	Workers int           `short:"w" help:"Parallel workers (default: number of CPUs)"`
	Timeout time.Duration `default:"5m" help:"Give up after this long"`
	Output  string        `short:"o" type:"path" help:"Also write the report as JSON"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := g.newLogger(os.Stderr, cfg).WithPrefix("simulate")

	selected := make([]games.Game, 0, len(c.Games))
	for _, name := range c.Games {
		game, err := games.ParseGame(name)
		if err != nil {
			return err
		}
		selected = append(selected, game)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, stop := signalContext(logger)
	defer stop()

	report, err := simulator.Run(ctx, simulator.Config{
		Games:   selected,
		Rounds:  c.Rounds,
		Bet:     c.Bet,
		Seed:    g.seed(logger),
		Workers: workers,
		Timeout: c.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, report)

	if c.Output != "" {
		if err := simulator.WriteJSON(c.Output, report); err != nil {
			return err
		}
		logger.Info("Wrote report", "file", c.Output)
	}
	return nil
}
