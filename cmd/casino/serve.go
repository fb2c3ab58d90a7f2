package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lox/minicasino/internal/casino"
	"github.com/lox/minicasino/internal/console"
	"github.com/lox/minicasino/internal/metrics"
	"github.com/lox/minicasino/internal/notify"
	"github.com/lox/minicasino/internal/server"
)

// ServeCmd exposes one session over HTTP with metrics and a live event feed.
type ServeCmd struct {
	Addr string `env:"CASINO_ADDR" help:"Listen address (default: from config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := g.newLogger(os.Stderr, cfg)

	addr := cfg.Listen.Address
	if c.Addr != "" {
		addr = c.Addr
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	hub := notify.NewHub(logger)

	session, err := casino.New(cfg,
		casino.WithRNG(g.source(logger)),
		casino.WithLogger(logger),
		casino.WithMetrics(m),
		casino.WithSinks(hub),
	)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	ctx, stop := signalContext(logger)
	defer stop()

	s := server.NewServer(addr, console.New(session, console.WithLogger(logger)), hub, m, logger)
	return s.Start(ctx)
}
