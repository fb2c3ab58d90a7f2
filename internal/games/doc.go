// Package games implements the round state machines of the six table games:
// Slots, Blackjack, Roulette, VideoPoker, Baccarat and Dice.
//
// Every game owns at most one round at a time. A round moves through explicit
// states (betting, resolution, settled) driven by player actions. Actions that
// are not valid in the current state, or that the balance cannot cover, return
// a sentinel error and change nothing, so a UI may call them freely.
//
// # Basic Usage
//
//	ledger := credits.NewLedger(5000)
//	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
//	bj := games.NewBlackjack(ledger, rng)
//	if err := bj.Deal(25); err == nil {
//	    bj.Hit()
//	    bj.Stand()
//	}
//	s, _ := bj.LastSettlement()
//
// # Money flow
//
// The stake is debited before any randomness is drawn and the payout is
// credited when the round settles, so a round never pays out without having
// collected its stake. Abandoning a round (calling nothing further) keeps the
// stake.
//
// # Deterministic Testing
//
// Randomness comes from the injected cards.Source. Card games can also be
// handed pre-built decks with WithDecks; each new round consumes the next one.
//
//	deck := cards.NewStackedDeck(cards.MustParseCards("Th 7c 6d 5s 6h", cards.BlackjackValue)...)
//	bj := games.NewBlackjack(ledger, rng, games.WithDecks(deck))
package games
