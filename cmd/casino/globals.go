package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/minicasino/internal/config"
	"github.com/lox/minicasino/internal/randutil"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config string `short:"c" default:"casino.hcl" env:"CASINO_CONFIG" type:"path" help:"Configuration file"`
	Debug  bool   `env:"CASINO_DEBUG" help:"Enable debug logging"`
	Seed   *int64 `env:"CASINO_SEED" help:"Deterministic RNG seed (optional)"`
}

func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func (g *Globals) newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func (g *Globals) seed(logger *log.Logger) int64 {
	if g.Seed != nil {
		logger.Info("Using deterministic seed", "seed", *g.Seed)
		return *g.Seed
	}
	seed := time.Now().UnixNano()
	logger.Debug("Using random seed", "seed", seed)
	return seed
}

func (g *Globals) source(logger *log.Logger) randutil.Source {
	return randutil.NewSource(g.seed(logger))
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Debug("Received shutdown signal")
	}()
	return ctx, stop
}

func closeQuietly(logger *log.Logger, c io.Closer, what string) {
	if err := c.Close(); err != nil {
		logger.Error(fmt.Sprintf("Failed to close %s", what), "error", err)
	}
}
