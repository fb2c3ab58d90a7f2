package cards

// Source is the randomness a deck needs. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// DeckSize is the number of cards in a full deck.
const DeckSize = 52

// Deck is an ordered stack of cards dealt from the end.
type Deck struct {
	cards []Card
}

// NewDeck creates all 52 cards tagged with the given value scheme and
// shuffles them with the provided source.
func NewDeck(rng Source, values ValueScheme) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	if values == nil {
		panic("value scheme is required for deck creation")
	}

	d := &Deck{cards: make([]Card, 0, DeckSize)}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(rank, suit, values))
		}
	}

	d.Shuffle(rng)
	return d
}

// NewStackedDeck creates an unshuffled deck that deals exactly the given
// cards, first card first. Useful for deterministic scenarios.
func NewStackedDeck(dealOrder ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(dealOrder))}
	for i, c := range dealOrder {
		d.cards[len(dealOrder)-1-i] = c
	}
	return d
}

// Shuffle applies a Fisher-Yates shuffle to the remaining cards.
func (d *Deck) Shuffle(rng Source) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the card at the end of the deck. Dealing from an
// empty deck means the deck was built wrong and panics.
func (d *Deck) Deal() Card {
	if len(d.cards) == 0 {
		panic("deal from empty deck")
	}
	last := len(d.cards) - 1
	c := d.cards[last]
	d.cards = d.cards[:last]
	return c
}

// DealN deals n cards in deal order.
func (d *Deck) DealN(n int) []Card {
	out := make([]Card, n)
	for i := range out {
		out[i] = d.Deal()
	}
	return out
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
