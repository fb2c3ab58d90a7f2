package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/internal/games"
	"github.com/lox/minicasino/internal/notify"
)

func TestObserveSettlement(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.ObserveSettlement(games.Settlement{
		Game:    games.GameBlackjack,
		Stake:   25,
		Outcome: games.Outcome{Result: games.Win, Payout: 50},
	})
	m.ObserveSettlement(games.Settlement{
		Game:    games.GameBlackjack,
		Stake:   25,
		Outcome: games.Outcome{Result: games.Push, Payout: 25},
	})
	m.ObserveSettlement(games.Settlement{
		Game:    games.GameSlots,
		Stake:   10,
		Outcome: games.Outcome{Result: games.Loss},
	})

	assert.InDelta(t, 1, testutil.ToFloat64(m.Rounds.WithLabelValues("blackjack", "win")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Rounds.WithLabelValues("blackjack", "push")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Rounds.WithLabelValues("slots", "loss")), 0)
	assert.InDelta(t, 50, testutil.ToFloat64(m.Wagered.WithLabelValues("blackjack")), 0)
	assert.InDelta(t, 75, testutil.ToFloat64(m.Paid.WithLabelValues("blackjack")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.Paid.WithLabelValues("slots")), 0)
}

func TestEventsAndBalance(t *testing.T) {
	t.Parallel()

	m := New(nil)
	var sink notify.Notifier = m
	sink.Notify(notify.EventWin)
	sink.Notify(notify.EventWin)
	sink.Notify(notify.EventCard)
	m.SetBalance(4975)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Events.WithLabelValues("win")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Events.WithLabelValues("card")), 0)
	assert.InDelta(t, 4975, testutil.ToFloat64(m.Balance), 0)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.SetBalance(5000)
	m.Notify(notify.EventSpin)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "casino_balance_credits 5000")
	assert.Contains(t, string(body), `casino_events_total{event="spin"} 1`)
}
