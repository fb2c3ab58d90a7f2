package cards

import (
	"fmt"
	"strings"
)

// Suit is one of the four French suits.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in deck-building order.
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the suit symbol.
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Red reports whether the suit is printed in red.
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

// Rank is a card rank from Ace (1) to King (13).
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in deck-building order.
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the rank label ("A", "2" ... "10", "J", "Q", "K").
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", r)
		}
		return "?"
	}
}

// IsFace reports whether the rank is a Jack, Queen or King.
func (r Rank) IsFace() bool {
	return r >= Jack && r <= King
}

// ValueScheme maps a rank to its numeric value for a particular game.
type ValueScheme func(Rank) int

// BlackjackValue counts an ace as 11 (reducible to 1 when scoring) and faces as 10.
func BlackjackValue(r Rank) int {
	switch {
	case r == Ace:
		return 11
	case r.IsFace():
		return 10
	default:
		return int(r)
	}
}

// BaccaratValue counts an ace as 1 and faces as 0.
func BaccaratValue(r Rank) int {
	switch {
	case r.IsFace():
		return 0
	default:
		return int(r)
	}
}

// PokerValue counts an ace as 14 (high only) and faces as 11-13.
func PokerValue(r Rank) int {
	if r == Ace {
		return 14
	}
	return int(r)
}

// Card is a dealt playing card. Value is tagged by the game's ValueScheme
// when the card is created and never changes afterwards. Scoring reads it.
type Card struct {
	Suit  Suit
	Rank  Rank
	Value int
}

// NewCard creates a card tagged with the value from the given scheme.
func NewCard(rank Rank, suit Suit, values ValueScheme) Card {
	return Card{Suit: suit, Rank: rank, Value: values(rank)}
}

// String returns the card label, e.g. "A♠" or "10♥".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// ParseCard parses a string like "As", "Th", "10d" or "Qc" into a card tagged
// with the given value scheme.
func ParseCard(s string, values ValueScheme) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	rankPart, suitPart := s[:len(s)-1], s[len(s)-1]

	var rank Rank
	switch strings.ToUpper(rankPart) {
	case "A":
		rank = Ace
	case "2":
		rank = Two
	case "3":
		rank = Three
	case "4":
		rank = Four
	case "5":
		rank = Five
	case "6":
		rank = Six
	case "7":
		rank = Seven
	case "8":
		rank = Eight
	case "9":
		rank = Nine
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		return Card{}, fmt.Errorf("invalid rank: %q", rankPart)
	}

	var suit Suit
	switch suitPart {
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit: %c", suitPart)
	}

	return NewCard(rank, suit, values), nil
}

// MustParseCards parses space separated cards and panics on error. It is
// intended for tests and fixtures.
func MustParseCards(s string, values ValueScheme) []Card {
	fields := strings.Fields(s)
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f, values)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// FormatCards joins card labels with single spaces.
func FormatCards(hand []Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
