package cards

import (
	"fmt"
	"sort"
)

// HandType enumerates video poker hand categories ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// PokerHandSize is the number of cards in a video poker hand.
const PokerHandSize = 5

var handMultipliers = [...]int{
	HighCard:      0,
	Pair:          5,
	TwoPair:       10,
	ThreeOfAKind:  15,
	Straight:      20,
	Flush:         30,
	FullHouse:     45,
	FourOfAKind:   125,
	StraightFlush: 250,
}

// String returns a human-readable hand description.
func (ht HandType) String() string {
	switch ht {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Multiplier is the paytable factor applied to the bet. High card pays nothing.
func (ht HandType) Multiplier() int {
	if int(ht) >= len(handMultipliers) {
		return 0
	}
	return handMultipliers[ht]
}

// HandResult is the classification of a five card hand.
type HandResult struct {
	Type       HandType
	Name       string
	Multiplier int
}

// Rank is the numeric strength of the classification (0 = high card).
func (hr HandResult) Rank() int {
	return int(hr.Type)
}

// EvaluateHand classifies exactly five cards. Straights are five consecutive
// poker values with the ace high only, so A-2-3-4-5 is not a straight.
// Categories are tested strongest first and the first match wins. Straights
// are read from the cards' tagged values, so hands should carry PokerValue.
func EvaluateHand(hand []Card) HandResult {
	if len(hand) != PokerHandSize {
		panic(fmt.Sprintf("video poker hands have %d cards, got %d", PokerHandSize, len(hand)))
	}

	ht := classify(hand)
	return HandResult{Type: ht, Name: ht.String(), Multiplier: ht.Multiplier()}
}

func classify(hand []Card) HandType {
	values := make([]int, len(hand))
	counts := make(map[int]int, len(hand))
	flush := true
	for i, c := range hand {
		values[i] = c.Value
		counts[values[i]]++
		if c.Suit != hand[0].Suit {
			flush = false
		}
	}
	sort.Ints(values)

	straight := true
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			straight = false
			break
		}
	}

	groups := make([]int, 0, len(counts))
	for _, n := range counts {
		groups = append(groups, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(groups)))

	switch {
	case straight && flush:
		return StraightFlush
	case groups[0] == 4:
		return FourOfAKind
	case groups[0] == 3 && groups[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case groups[0] == 3:
		return ThreeOfAKind
	case groups[0] == 2 && groups[1] == 2:
		return TwoPair
	case groups[0] == 2:
		return Pair
	default:
		return HighCard
	}
}

// PairedPositions returns the indexes of cards that belong to a group of two or
// more equal ranks. Strategy code uses it to decide what to hold.
func PairedPositions(hand []Card) []int {
	counts := make(map[Rank]int, len(hand))
	for _, c := range hand {
		counts[c.Rank]++
	}
	var out []int
	for i, c := range hand {
		if counts[c.Rank] >= 2 {
			out = append(out, i)
		}
	}
	return out
}
