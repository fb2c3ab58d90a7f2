// Package simulator estimates each game's return to player by playing many
// rounds with a fixed strategy.
package simulator

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/minicasino/internal/credits"
	"github.com/lox/minicasino/internal/games"
	"github.com/lox/minicasino/internal/randutil"
	"github.com/lox/minicasino/internal/statistics"
)

// roundsPerChunk is the unit of work handed to a worker. Chunks are seeded
// by index, so a report does not depend on the number of workers.
const roundsPerChunk = 10_000

// Config holds configuration for running simulations
type Config struct {
	Games   []games.Game
	Rounds  int
	Bet     int
	Seed    int64
	Workers int
	Timeout time.Duration
	Logger  *log.Logger
}

// GameReport is the result for one game.
type GameReport struct {
	Game     games.Game             `json:"game"`
	Strategy string                 `json:"strategy"`
	Stats    *statistics.Statistics `json:"-"`
	Summary  Summary                `json:"summary"`
}

// Summary is the part of the statistics worth keeping in a report file.
type Summary struct {
	Rounds         int        `json:"rounds"`
	Wins           int        `json:"wins"`
	Losses         int        `json:"losses"`
	Pushes         int        `json:"pushes"`
	Wagered        int        `json:"wagered"`
	Paid           int        `json:"paid"`
	MaxPayout      int        `json:"max_payout"`
	ReturnToPlayer float64    `json:"rtp"`
	HitRate        float64    `json:"hit_rate"`
	Mean           float64    `json:"mean"`
	StdDev         float64    `json:"stddev"`
	StdError       float64    `json:"stderr"`
	CI95           [2]float64 `json:"ci95"`
}

// Report is the result of a simulation run.
type Report struct {
	Seed    int64         `json:"seed"`
	Rounds  int           `json:"rounds"`
	Bet     int           `json:"bet"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Games   []GameReport  `json:"games"`
}

func (c *Config) applyDefaults() {
	if len(c.Games) == 0 {
		c.Games = games.AllGames
	}
	if c.Bet <= 0 {
		c.Bet = 10
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}

// Run plays cfg.Rounds rounds of every configured game and reports the
// statistics per game. It stops early with an error when ctx is cancelled
// or the timeout passes.
func Run(ctx context.Context, cfg Config) (Report, error) {
	cfg.applyDefaults()
	if cfg.Rounds <= 0 {
		return Report{}, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	logger := cfg.Logger.WithPrefix("simulator")
	start := time.Now()

	chunks := (cfg.Rounds + roundsPerChunk - 1) / roundsPerChunk
	results := make([][]*statistics.Statistics, len(cfg.Games))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for gi, game := range cfg.Games {
		results[gi] = make([]*statistics.Statistics, chunks)
		for ci := range chunks {
			rounds := min(roundsPerChunk, cfg.Rounds-ci*roundsPerChunk)
			seed := randutil.Derive(cfg.Seed, gi*chunks+ci)
			g.Go(func() error {
				stats, err := playChunk(ctx, game, rounds, cfg.Bet, seed)
				if err != nil {
					return fmt.Errorf("%s chunk %d (seed %d): %w", game, ci, seed, err)
				}
				results[gi][ci] = stats
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Seed: cfg.Seed, Rounds: cfg.Rounds, Bet: cfg.Bet, Elapsed: time.Since(start)}
	for gi, game := range cfg.Games {
		stats := &statistics.Statistics{}
		for _, s := range results[gi] {
			stats.Merge(s)
		}
		if err := stats.Validate(); err != nil {
			return Report{}, fmt.Errorf("statistics validation failed for %s: %w", game, err)
		}
		report.Games = append(report.Games, GameReport{
			Game:     game,
			Strategy: Strategies[game],
			Stats:    stats,
			Summary:  summarise(stats),
		})
		logger.Debug("Game simulated", "game", game, "rounds", stats.Rounds, "rtp", stats.ReturnToPlayer())
	}
	logger.Info("Simulation finished", "games", len(report.Games), "rounds", cfg.Rounds, "elapsed", report.Elapsed)
	return report, nil
}

// playChunk plays rounds on a fresh table with its own ledger and RNG.
func playChunk(ctx context.Context, game games.Game, rounds, bet int, seed int64) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	ledger := credits.NewLedger(math.MaxInt32)
	record := games.OnSettle(func(s games.Settlement) {
		stats.Add(statistics.RoundResult{Stake: s.Stake, Payout: s.Payout, Result: s.Result})
	})

	p, err := newPlayer(game, ledger, randutil.NewSource(seed), record)
	if err != nil {
		return nil, err
	}

	for i := range rounds {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		// Keep the stake affordable however the chunk is going.
		if ledger.Balance() < bet {
			ledger.Reset()
		}
		if err := p.play(bet); err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
	}
	if stats.Rounds != rounds {
		return nil, fmt.Errorf("played %d rounds but %d settled", rounds, stats.Rounds)
	}
	return stats, nil
}

func summarise(s *statistics.Statistics) Summary {
	low, high := s.ConfidenceInterval95()
	return Summary{
		Rounds:         s.Rounds,
		Wins:           s.Wins,
		Losses:         s.Losses,
		Pushes:         s.Pushes,
		Wagered:        s.Wagered,
		Paid:           s.Paid,
		MaxPayout:      s.MaxPayout,
		ReturnToPlayer: s.ReturnToPlayer(),
		HitRate:        s.HitRate(),
		Mean:           s.Mean(),
		StdDev:         s.StdDev(),
		StdError:       s.StdError(),
		CI95:           [2]float64{low, high},
	}
}
