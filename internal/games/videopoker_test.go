package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/notify"
)

func TestVideoPokerDrawKeepsHeldCards(t *testing.T) {
	t.Parallel()

	ledger := newLedger(100)
	events := &eventLog{}
	p := NewVideoPoker(ledger, seeded(),
		WithNotifier(events),
		WithDecks(stacked("As Ad 3c 7h 9s Ks 2d 4c", cards.PokerValue)))

	require.NoError(t, p.Deal(10))
	assert.Equal(t, PokerDraw, p.State())
	assert.Equal(t, 90, ledger.Balance())
	assert.Equal(t, "A♠ A♦ 3♣ 7♥ 9♠", cards.FormatCards(p.Hand()))

	require.NoError(t, p.ToggleHold(0))
	require.NoError(t, p.ToggleHold(1))
	assert.Equal(t, [5]bool{true, true, false, false, false}, p.Held())

	s, err := p.Draw()
	require.NoError(t, err)
	assert.Equal(t, "A♠ A♦ K♠ 2♦ 4♣", cards.FormatCards(p.Hand()))
	assert.Equal(t, "Pair", s.Label)
	assert.Equal(t, 50, s.Payout)
	assert.Equal(t, 140, ledger.Balance())
	assert.Equal(t, PokerSettled, p.State())
	assert.Equal(t, []notify.Event{
		notify.EventCard, notify.EventClick, notify.EventClick, notify.EventCard, notify.EventWin,
	}, events.events)
}

func TestVideoPokerHoldToggleIsIdempotentInPairs(t *testing.T) {
	t.Parallel()

	ledger := newLedger(100)
	p := NewVideoPoker(ledger, seeded())
	require.NoError(t, p.Deal(10))
	hand := p.Hand()

	require.NoError(t, p.ToggleHold(3))
	assert.True(t, p.Held()[3])
	require.NoError(t, p.ToggleHold(3))

	assert.Equal(t, [5]bool{}, p.Held())
	assert.Equal(t, hand, p.Hand())
	assert.Equal(t, 90, ledger.Balance())
	assert.Equal(t, PokerDraw, p.State())
}

func TestVideoPokerHoldAllKeepsHand(t *testing.T) {
	t.Parallel()

	events := &eventLog{}
	p := NewVideoPoker(newLedger(100), seeded(),
		WithNotifier(events),
		WithDecks(stacked("Ts Js Qs Ks As", cards.PokerValue)))
	require.NoError(t, p.Deal(10))
	for i := range cards.PokerHandSize {
		require.NoError(t, p.ToggleHold(i))
	}

	s, err := p.Draw()
	require.NoError(t, err)
	assert.Equal(t, "Straight Flush", s.Label)
	assert.Equal(t, 2500, s.Payout)
	assert.Equal(t, notify.EventJackpot, events.events[len(events.events)-1])
}

func TestVideoPokerLosingHand(t *testing.T) {
	t.Parallel()

	ledger := newLedger(100)
	p := NewVideoPoker(ledger, seeded(),
		WithDecks(stacked("2s 5d 8c Jh Ks 3h 6c 9d 4s", cards.PokerValue)))
	require.NoError(t, p.Deal(10))
	require.NoError(t, p.ToggleHold(4))

	s, err := p.Draw()
	require.NoError(t, err)
	assert.Equal(t, Loss, s.Result)
	assert.Equal(t, "High Card", s.Label)
	assert.Equal(t, 90, ledger.Balance())
}

func TestVideoPokerGuards(t *testing.T) {
	t.Parallel()

	p := NewVideoPoker(newLedger(100), seeded())
	assert.ErrorIs(t, p.ToggleHold(0), ErrWrongState)
	_, err := p.Draw()
	assert.ErrorIs(t, err, ErrWrongState)
	_, ok := p.Evaluation()
	assert.False(t, ok)

	require.NoError(t, p.Deal(10))
	assert.ErrorIs(t, p.Deal(10), ErrWrongState)
	assert.ErrorIs(t, p.ToggleHold(5), ErrInvalidPosition)
	assert.ErrorIs(t, p.ToggleHold(-1), ErrInvalidPosition)
	_, ok = p.Evaluation()
	assert.True(t, ok)

	_, err = p.Draw()
	require.NoError(t, err)
	assert.ErrorIs(t, p.ToggleHold(0), ErrWrongState)
	require.NoError(t, p.NewRound())
	assert.Empty(t, p.Hand())
}
