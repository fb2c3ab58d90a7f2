// Package cards provides the playing cards shared by the table games:
// a 52-card deck shuffled with Fisher-Yates from an injected source and dealt
// from the end, per-game value schemes, and the three scoring rules
// (blackjack totals with soft aces, baccarat modulo-10 totals and five card
// video poker classification).
//
// Decks are created fresh for each round:
//
//	rng := rand.New(rand.NewSource(42))
//	deck := cards.NewDeck(rng, cards.BlackjackValue)
//	hand := deck.DealN(2)
//	total := cards.BlackjackTotal(hand)
//
// For scripted scenarios use NewStackedDeck, which deals its arguments in order.
package cards
