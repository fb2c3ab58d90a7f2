package cards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		in    string
		rank  Rank
		suit  Suit
		value int
	}{
		{"As", Ace, Spades, 11},
		{"Th", Ten, Hearts, 10},
		{"10d", Ten, Diamonds, 10},
		{"Kc", King, Clubs, 10},
		{"7s", Seven, Spades, 7},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseCard(tt.in, BlackjackValue)
			require.NoError(t, err)
			assert.Equal(t, tt.rank, c.Rank)
			assert.Equal(t, tt.suit, c.Suit)
			assert.Equal(t, tt.value, c.Value)
		})
	}

	for _, bad := range []string{"", "A", "1s", "Ax", "100s"} {
		_, err := ParseCard(bad, BlackjackValue)
		assert.Error(t, err, bad)
	}
}

func TestValueSchemes(t *testing.T) {
	assert.Equal(t, 11, BlackjackValue(Ace))
	assert.Equal(t, 10, BlackjackValue(Queen))
	assert.Equal(t, 9, BlackjackValue(Nine))

	assert.Equal(t, 1, BaccaratValue(Ace))
	assert.Equal(t, 0, BaccaratValue(King))
	assert.Equal(t, 10, BaccaratValue(Ten))

	assert.Equal(t, 14, PokerValue(Ace))
	assert.Equal(t, 11, PokerValue(Jack))
	assert.Equal(t, 13, PokerValue(King))
	assert.Equal(t, 2, PokerValue(Two))
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Ace, Spades, PokerValue).String())
	assert.Equal(t, "10♥", NewCard(Ten, Hearts, PokerValue).String())
	assert.True(t, Diamonds.Red())
	assert.False(t, Clubs.Red())
}

func TestNewDeckHasEveryCardOnce(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(42)), BaccaratValue)
	require.Equal(t, DeckSize, deck.Remaining())

	seen := make(map[[2]uint8]bool)
	for deck.Remaining() > 0 {
		c := deck.Deal()
		key := [2]uint8{uint8(c.Suit), uint8(c.Rank)}
		require.False(t, seen[key], "duplicate card %s", c)
		seen[key] = true
		assert.Equal(t, BaccaratValue(c.Rank), c.Value)
	}
	assert.Len(t, seen, DeckSize)
}

func TestDeckIsDeterministicForSeed(t *testing.T) {
	a := NewDeck(rand.New(rand.NewSource(7)), PokerValue).DealN(10)
	b := NewDeck(rand.New(rand.NewSource(7)), PokerValue).DealN(10)
	c := NewDeck(rand.New(rand.NewSource(8)), PokerValue).DealN(10)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestShuffleIsRoughlyUniform(t *testing.T) {
	// Count where the ace of spades lands over many shuffles. A biased
	// comparator sort would skew this heavily toward its starting slot.
	rng := rand.New(rand.NewSource(1))
	const trials = 52 * 400
	positions := make([]int, DeckSize)
	for range trials {
		deck := NewDeck(rng, PokerValue)
		for i := 0; deck.Remaining() > 0; i++ {
			c := deck.Deal()
			if c.Rank == Ace && c.Suit == Spades {
				positions[i]++
			}
		}
	}

	for i, n := range positions {
		assert.InDelta(t, 400, n, 120, "position %d", i)
	}
}

func TestStackedDeckDealsInOrder(t *testing.T) {
	hand := MustParseCards("As Kd 7h", BlackjackValue)
	deck := NewStackedDeck(hand...)

	assert.Equal(t, hand[0], deck.Deal())
	assert.Equal(t, hand[1:], deck.DealN(2))
	assert.Zero(t, deck.Remaining())
}

func TestDealFromEmptyDeckPanics(t *testing.T) {
	deck := NewStackedDeck()
	assert.Panics(t, func() { deck.Deal() })
}

func TestNewDeckRequiresRNG(t *testing.T) {
	assert.Panics(t, func() { NewDeck(nil, PokerValue) })
}
