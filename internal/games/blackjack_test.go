package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/notify"
)

func newTestBlackjack(t *testing.T, ledger Ledger, deal string) (*Blackjack, *eventLog) {
	t.Helper()
	events := &eventLog{}
	bj := NewBlackjack(ledger, seeded(),
		WithNotifier(events),
		WithDecks(stacked(deal, cards.BlackjackValue)))
	return bj, events
}

func TestBlackjackPushRefundsStake(t *testing.T) {
	t.Parallel()

	// Player 10+7, dealer 6+5 draws a 6 to stand on 17.
	ledger := newLedger(1000)
	bj, events := newTestBlackjack(t, ledger, "Th 7c 6d 5s 6h")

	require.NoError(t, bj.Deal(25))
	assert.Equal(t, 975, ledger.Balance())
	assert.Equal(t, 17, bj.PlayerTotal())

	require.NoError(t, bj.Stand())
	assert.Equal(t, BlackjackSettled, bj.State())
	assert.Equal(t, 17, cards.BlackjackTotal(bj.DealerCards()))
	assert.Len(t, bj.DealerCards(), 3)

	s, ok := bj.LastSettlement()
	require.True(t, ok)
	assert.Equal(t, Push, s.Result)
	assert.Equal(t, 25, s.Payout)
	assert.Equal(t, 1000, ledger.Balance())
	assert.Equal(t, []notify.Event{notify.EventCard, notify.EventCard, notify.EventCoin}, events.events)
}

func TestBlackjackHoleCard(t *testing.T) {
	t.Parallel()

	bj, _ := newTestBlackjack(t, newLedger(100), "Th 9c 6d Ts 8h")
	require.NoError(t, bj.Deal(10))

	assert.True(t, bj.HoleHidden())
	require.Len(t, bj.DealerCards(), 1)
	assert.Equal(t, "6♦", bj.DealerCards()[0].String())
	assert.Equal(t, 6, bj.DealerTotal())
	assert.Equal(t, []string{"10♥", "9♣"}, []string{bj.PlayerCards()[0].String(), bj.PlayerCards()[1].String()})

	require.NoError(t, bj.Stand())
	assert.False(t, bj.HoleHidden())
	assert.Len(t, bj.DealerCards(), 3)
}

func TestBlackjackOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		deal    string
		hits    int
		result  Result
		balance int
		event   notify.Event
	}{
		{"dealer busts", "Th 9c 6d Ts 8h", 0, Win, 110, notify.EventWin},
		{"player higher", "Th 9c Td 8s", 0, Win, 110, notify.EventWin},
		{"dealer higher", "Th 7c Td 9s", 0, Loss, 90, notify.EventLose},
		{"player busts", "Th 6c 9d 7s Kh", 1, Loss, 90, notify.EventLose},
		{"soft hand survives a hit", "Ah 6c Td 7s Th", 1, Push, 100, notify.EventCoin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newLedger(100)
			bj, events := newTestBlackjack(t, ledger, tt.deal)
			require.NoError(t, bj.Deal(10))
			for range tt.hits {
				require.NoError(t, bj.Hit())
			}
			if bj.State() == BlackjackPlayerTurn {
				require.NoError(t, bj.Stand())
			}

			s, ok := bj.LastSettlement()
			require.True(t, ok)
			assert.Equal(t, tt.result, s.Result)
			assert.Equal(t, tt.balance, ledger.Balance())
			assert.Equal(t, tt.event, events.events[len(events.events)-1])
			assert.Equal(t, BlackjackSettled, bj.State())
			assert.False(t, bj.HoleHidden())
		})
	}
}

func TestBlackjackStateGuards(t *testing.T) {
	t.Parallel()

	ledger := newLedger(100)
	bj, events := newTestBlackjack(t, ledger, "Th 7c Td 9s")

	assert.ErrorIs(t, bj.Hit(), ErrWrongState)
	assert.ErrorIs(t, bj.Stand(), ErrWrongState)
	assert.ErrorIs(t, bj.NewRound(), ErrWrongState)
	assert.Empty(t, events.events)

	require.NoError(t, bj.Deal(10))
	assert.ErrorIs(t, bj.Deal(10), ErrWrongState)
	assert.Equal(t, 90, ledger.Balance())
	assert.Len(t, bj.PlayerCards(), 2)

	require.NoError(t, bj.Stand())
	assert.ErrorIs(t, bj.Hit(), ErrWrongState)
	assert.Len(t, bj.PlayerCards(), 2)

	require.NoError(t, bj.NewRound())
	assert.Equal(t, BlackjackBetting, bj.State())
	assert.Empty(t, bj.PlayerCards())
	assert.Equal(t, "Place your bet", bj.Message())
}

func TestBlackjackInsufficientFunds(t *testing.T) {
	t.Parallel()

	ledger := newLedger(20)
	bj, events := newTestBlackjack(t, ledger, "Th 7c Td 9s")

	assert.ErrorIs(t, bj.Deal(25), ErrInsufficientFunds)
	assert.Equal(t, 20, ledger.Balance())
	assert.Equal(t, BlackjackBetting, bj.State())
	assert.Empty(t, events.events)
}

func TestBlackjackShuffledRounds(t *testing.T) {
	t.Parallel()

	ledger := newLedger(10_000)
	bj := NewBlackjack(ledger, seeded())
	for range 200 {
		require.NoError(t, bj.Deal(10))
		for bj.State() == BlackjackPlayerTurn && bj.PlayerTotal() < 15 {
			require.NoError(t, bj.Hit())
		}
		if bj.State() == BlackjackPlayerTurn {
			require.NoError(t, bj.Stand())
		}
		require.Equal(t, BlackjackSettled, bj.State())
		if bj.PlayerTotal() <= cards.BlackjackBust {
			assert.GreaterOrEqual(t, cards.BlackjackTotal(bj.DealerCards()), DealerStandsOn)
		}
	}
}
