// Package statistics accumulates per-round results of a simulated game and
// summarises the player's return per unit staked.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/minicasino/internal/games"
)

// RoundResult is the outcome of a single simulated round.
type RoundResult struct {
	Stake  int
	Payout int
	Result games.Result
}

// Net is the round's return per unit staked: -1 for a lost round, 0 for a
// push, 1 for an even-money win.
func (r RoundResult) Net() float64 {
	if r.Stake == 0 {
		return 0
	}
	return float64(r.Payout-r.Stake) / float64(r.Stake)
}

// Statistics tracks the results of one game.
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Every net result, for median and percentiles

	Wins   int
	Losses int
	Pushes int

	Wagered   int
	Paid      int
	MaxPayout int
}

// Add incorporates a round result.
func (s *Statistics) Add(r RoundResult) {
	net := r.Net()
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	switch r.Result {
	case games.Win:
		s.Wins++
	case games.Push:
		s.Pushes++
	default:
		s.Losses++
	}

	s.Wagered += r.Stake
	s.Paid += r.Payout
	s.MaxPayout = max(s.MaxPayout, r.Payout)
}

// Merge folds other into s. Values keep their order: s first, then other.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Wagered += other.Wagered
	s.Paid += other.Paid
	s.MaxPayout = max(s.MaxPayout, other.MaxPayout)
}

// Mean returns the average net result per unit staked.
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of the net results.
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ReturnToPlayer is the share of wagered credits paid back.
func (s *Statistics) ReturnToPlayer() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return float64(s.Paid) / float64(s.Wagered)
}

// HitRate is the share of rounds won.
func (s *Statistics) HitRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// Median returns the median net result.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the net result at percentile p (0.0 to 1.0).
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	out := make([]float64, len(s.Values))
	copy(out, s.Values)
	sort.Float64s(out)
	return out
}

// Validate checks that the counters agree with each other.
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}
	if n := s.Wins + s.Losses + s.Pushes; n != s.Rounds {
		return fmt.Errorf("wins, losses and pushes (%d) do not add up to rounds (%d)", n, s.Rounds)
	}
	// Nothing is paid without a win or push.
	if s.Wins+s.Pushes == 0 && s.Paid != 0 {
		return fmt.Errorf("paid %d credits without a winning round", s.Paid)
	}
	return nil
}
