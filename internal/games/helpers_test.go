package games

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/credits"
	"github.com/lox/minicasino/internal/notify"
)

// scriptedSource returns pre-chosen values from Intn.
type scriptedSource struct {
	t      *testing.T
	values []int
}

func script(t *testing.T, values ...int) *scriptedSource {
	return &scriptedSource{t: t, values: values}
}

func (s *scriptedSource) Intn(n int) int {
	s.t.Helper()
	require.NotEmpty(s.t, s.values, "scripted source exhausted")
	v := s.values[0]
	s.values = s.values[1:]
	require.Less(s.t, v, n, "scripted value out of range")
	return v
}

type eventLog struct {
	events []notify.Event
}

func (l *eventLog) Notify(e notify.Event) { l.events = append(l.events, e) }

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func stacked(s string, values cards.ValueScheme) *cards.Deck {
	return cards.NewStackedDeck(cards.MustParseCards(s, values)...)
}

func newLedger(balance int) *credits.Ledger {
	return credits.NewLedger(balance)
}
