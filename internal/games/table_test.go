package games

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		limits Limits
		amount int
		want   bool
	}{
		{"zero", Limits{}, 0, false},
		{"negative", Limits{}, -5, false},
		{"unbounded", Limits{}, 1_000_000, true},
		{"below min", Limits{Min: 5}, 4, false},
		{"at min", Limits{Min: 5}, 5, true},
		{"at max", Limits{Min: 5, Max: 100}, 100, true},
		{"above max", Limits{Min: 5, Max: 100}, 101, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.limits.Allows(tt.amount))
		})
	}
}

func TestParseGame(t *testing.T) {
	t.Parallel()

	for _, g := range AllGames {
		got, err := ParseGame(string(g))
		require.NoError(t, err)
		assert.Equal(t, g, got)
	}
	_, err := ParseGame("keno")
	assert.Error(t, err)
}

func TestGrossPayoutFloors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 48, grossPayout(25, decimal.RequireFromString("1.95")))
	assert.Equal(t, 97, grossPayout(50, decimal.RequireFromString("1.95")))
	assert.Equal(t, 0, grossPayout(25, decimal.Zero))
}

func TestSettlementReporting(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	var seen []Settlement
	ledger := newLedger(100)
	d := NewDice(ledger, script(t, 2, 4), WithClock(clock), OnSettle(func(s Settlement) {
		seen = append(seen, s)
	}))

	require.NoError(t, d.Configure(DiceExact, 8))
	s, err := d.Roll(10)
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, s, seen[0])
	assert.Equal(t, GameDice, s.Game)
	assert.Equal(t, clock.Now(), s.SettledAt)
	assert.Equal(t, d.RoundID(), s.RoundID)
	assert.Equal(t, 10, s.Stake)
	assert.Equal(t, 70, s.Payout)
	assert.Equal(t, 60, s.Net())
	assert.Equal(t, 160, ledger.Balance())

	last, ok := d.LastSettlement()
	require.True(t, ok)
	assert.Equal(t, s, last)
}

func TestRejectedActionsLeaveBalance(t *testing.T) {
	t.Parallel()

	ledger := newLedger(20)
	slots := NewSlots(ledger, seeded(), WithLimits(Limits{Min: 5, Max: 10}))

	_, err := slots.Spin(0)
	assert.ErrorIs(t, err, ErrInvalidWager)
	_, err = slots.Spin(15)
	assert.ErrorIs(t, err, ErrInvalidWager)
	assert.Equal(t, 20, ledger.Balance())
	assert.Equal(t, SlotsBetting, slots.State())

	assert.True(t, slots.Affordable(10))
	assert.False(t, slots.Affordable(15))

	ledger.Subtract(15)
	_, err = slots.Spin(10)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 5, ledger.Balance())
	_, ok := slots.LastSettlement()
	assert.False(t, ok)
}

func TestNilCollaboratorsPanic(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewSlots(nil, seeded()) })
	assert.Panics(t, func() { NewBlackjack(newLedger(10), nil) })
}
