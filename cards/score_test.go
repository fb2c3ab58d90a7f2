package cards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlackjackTotal(t *testing.T) {
	tests := []struct {
		name     string
		hand     string
		expected int
	}{
		{"empty", "", 0},
		{"hard 17", "Th 7c", 17},
		{"soft 17", "As 6d", 17},
		{"blackjack", "As Kd", 21},
		{"two aces", "As Ad", 12},
		{"soft ace demoted", "As 6d 9c", 16},
		{"three aces and nine", "As Ad Ac 9h", 12},
		{"four aces", "As Ad Ac Ah", 14},
		{"bust", "Kh Qd 5c", 25},
		{"ace kept soft when possible", "Ah 2c 3d 4s", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := MustParseCards(tt.hand, BlackjackValue)
			assert.Equal(t, tt.expected, BlackjackTotal(hand))
		})
	}
}

func TestBlackjackTotalNeverReducesMoreThanAces(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for range 5000 {
		deck := NewDeck(rng, BlackjackValue)
		hand := deck.DealN(2 + rng.Intn(6))

		raw, aces := 0, 0
		for _, c := range hand {
			raw += c.Value
			if c.Rank == Ace {
				aces++
			}
		}

		total := BlackjackTotal(hand)
		reduction := raw - total
		assert.GreaterOrEqual(t, reduction, 0)
		assert.LessOrEqual(t, reduction, aces*10, "hand %s", FormatCards(hand))
		assert.Zero(t, reduction%10)
		if reduction < aces*10 {
			// An ace is still counted as 11, so demoting it must have busted.
			assert.LessOrEqual(t, total, BlackjackBust)
		}
	}
}

func TestIsBust(t *testing.T) {
	assert.True(t, IsBust(MustParseCards("Kh Qd 2c", BlackjackValue)))
	assert.False(t, IsBust(MustParseCards("Kh Ad", BlackjackValue)))
}

func TestBaccaratTotal(t *testing.T) {
	tests := []struct {
		hand     string
		expected int
	}{
		{"As 2d", 3},
		{"5h 3c", 8},
		{"Kh Qd", 0},
		{"9s 9d", 8},
		{"Ts 5d 7c", 2},
		{"As Kd 8c", 9},
	}

	for _, tt := range tests {
		t.Run(tt.hand, func(t *testing.T) {
			hand := MustParseCards(tt.hand, BaccaratValue)
			assert.Equal(t, tt.expected, BaccaratTotal(hand))
		})
	}
}

func TestScoringReadsValueTags(t *testing.T) {
	faceValue := func(r Rank) int { return int(r) }

	// Under a scheme that counts faces at rank value, K+Q is 25 rather than 20.
	assert.Equal(t, 25, BlackjackTotal(MustParseCards("Kh Qd", faceValue)))
	assert.Equal(t, 5, BaccaratTotal(MustParseCards("Kh Qd", faceValue)))

	// An ace tagged as 1 is not a soft ace and is never demoted.
	assert.Equal(t, 21, BlackjackTotal(MustParseCards("As Kh Td", faceValue)))
}
