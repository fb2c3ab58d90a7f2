package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/internal/games"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Zero(t, stats.ReturnToPlayer())
	assert.Zero(t, stats.HitRate())
	assert.Error(t, stats.Validate())
}

func TestRoundResultNet(t *testing.T) {
	tests := []struct {
		name string
		r    RoundResult
		want float64
	}{
		{"loss", RoundResult{Stake: 10, Payout: 0, Result: games.Loss}, -1},
		{"push", RoundResult{Stake: 10, Payout: 10, Result: games.Push}, 0},
		{"even money", RoundResult{Stake: 10, Payout: 20, Result: games.Win}, 1},
		{"banker", RoundResult{Stake: 100, Payout: 195, Result: games.Win}, 0.95},
		{"no stake", RoundResult{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.r.Net(), 1e-9)
		})
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}
	for _, r := range []RoundResult{
		{Stake: 10, Payout: 20, Result: games.Win},
		{Stake: 10, Payout: 0, Result: games.Loss},
		{Stake: 10, Payout: 10, Result: games.Push},
		{Stake: 10, Payout: 0, Result: games.Loss},
		{Stake: 10, Payout: 40, Result: games.Win},
	} {
		stats.Add(r)
	}

	require.NoError(t, stats.Validate())
	assert.Equal(t, 5, stats.Rounds)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 2, stats.Losses)
	assert.Equal(t, 1, stats.Pushes)
	assert.Equal(t, 50, stats.Wagered)
	assert.Equal(t, 70, stats.Paid)
	assert.Equal(t, 40, stats.MaxPayout)

	// Net values: 1, -1, 0, -1, 3
	assert.InDelta(t, 0.4, stats.Mean(), 1e-9)
	assert.InDelta(t, 2.8, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(2.8), stats.StdDev(), 1e-9)
	assert.InDelta(t, math.Sqrt(2.8)/math.Sqrt(5), stats.StdError(), 1e-9)
	assert.InDelta(t, 0, stats.Median(), 1e-9)
	assert.InDelta(t, -1, stats.Percentile(0), 1e-9)
	assert.InDelta(t, 3, stats.Percentile(1), 1e-9)
	assert.InDelta(t, 1.4, stats.ReturnToPlayer(), 1e-9)
	assert.InDelta(t, 0.4, stats.HitRate(), 1e-9)

	low, high := stats.ConfidenceInterval95()
	assert.Less(t, low, stats.Mean())
	assert.Greater(t, high, stats.Mean())
	assert.InDelta(t, stats.Mean(), (low+high)/2, 1e-9)
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	rounds := []RoundResult{
		{Stake: 5, Payout: 0, Result: games.Loss},
		{Stake: 5, Payout: 15, Result: games.Win},
		{Stake: 5, Payout: 5, Result: games.Push},
		{Stake: 5, Payout: 0, Result: games.Loss},
	}
	for i, r := range rounds {
		all.Add(r)
		if i < 2 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(b)
	assert.Equal(t, all, a)
	require.NoError(t, a.Validate())
}

func TestStatistics_ValidateCatchesMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Stake: 10, Result: games.Loss})
	stats.Rounds++
	assert.Error(t, stats.Validate())
}
