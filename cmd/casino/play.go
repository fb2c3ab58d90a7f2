package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/minicasino/internal/casino"
	"github.com/lox/minicasino/internal/console"
	"github.com/lox/minicasino/internal/tui"
)

// PlayCmd runs the interactive terminal casino.
type PlayCmd struct {
	LogFile string `default:"casino.log" env:"CASINO_LOG_FILE" help:"Where to write logs while the terminal UI is running"`
	NoColor bool   `env:"NO_COLOR" help:"Disable colors"`
	Credits int    `help:"Starting credits, overriding the config file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Credits > 0 {
		cfg.Credits.Starting = c.Credits
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	logger := g.newLogger(logFile, cfg)
	defer closeQuietly(logger, logFile, "log file")

	if c.NoColor {
		tui.DisableColor()
	}

	session, err := casino.New(cfg,
		casino.WithRNG(g.source(logger)),
		casino.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	logger.Info("Session started", "credits", session.Balance())

	model := tui.NewTUIModel(console.New(session, console.WithLogger(logger)), logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	stats := session.Stats()
	logger.Info("Session finished",
		"credits", session.Balance(),
		"played", stats.GamesPlayed,
		"biggest_win", stats.BiggestWin)
	fmt.Printf("Leaving with %d credits after %d rounds.\n", session.Balance(), stats.GamesPlayed)
	return nil
}
