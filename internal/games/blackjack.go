package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/notify"
)

// DealerStandsOn is the total at which the dealer stops drawing.
const DealerStandsOn = 17

// BlackjackState is the state of a blackjack round.
type BlackjackState uint8

const (
	BlackjackBetting BlackjackState = iota
	BlackjackPlayerTurn
	BlackjackDealerTurn
	BlackjackSettled
)

func (s BlackjackState) String() string {
	switch s {
	case BlackjackBetting:
		return "betting"
	case BlackjackPlayerTurn:
		return "player turn"
	case BlackjackDealerTurn:
		return "dealer turn"
	case BlackjackSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Blackjack is a single-deck, single-hand blackjack table. There is no
// splitting, doubling, insurance or natural bonus.
type Blackjack struct {
	table
	state      BlackjackState
	deck       *cards.Deck
	player     []cards.Card
	dealer     []cards.Card
	holeHidden bool
}

// NewBlackjack creates a blackjack table debiting and crediting ledger.
func NewBlackjack(ledger Ledger, rng cards.Source, opts ...Option) *Blackjack {
	b := &Blackjack{table: newTable(GameBlackjack, ledger, rng, opts)}
	b.message = "Place your bet"
	return b
}

// State returns the round state.
func (b *Blackjack) State() BlackjackState { return b.state }

// PlayerCards returns the player's hand.
func (b *Blackjack) PlayerCards() []cards.Card {
	return append([]cards.Card(nil), b.player...)
}

// DealerCards returns the dealer cards the player can see. While the hole
// card is face down only the first card is returned.
func (b *Blackjack) DealerCards() []cards.Card {
	if b.holeHidden && len(b.dealer) > 1 {
		return append([]cards.Card(nil), b.dealer[:1]...)
	}
	return append([]cards.Card(nil), b.dealer...)
}

// HoleHidden reports whether the dealer's second card is face down.
func (b *Blackjack) HoleHidden() bool { return b.holeHidden }

// PlayerTotal is the best total of the player's hand.
func (b *Blackjack) PlayerTotal() int { return cards.BlackjackTotal(b.player) }

// DealerTotal is the total of the visible dealer cards.
func (b *Blackjack) DealerTotal() int { return cards.BlackjackTotal(b.DealerCards()) }

// Deal debits bet and deals two cards to the player, then two to the dealer. The
// dealer's second card stays hidden until the player stands or busts.
func (b *Blackjack) Deal(bet int) error {
	if b.state != BlackjackBetting && b.state != BlackjackSettled {
		return b.reject("deal", ErrWrongState)
	}
	if err := b.checkWager(bet); err != nil {
		return b.reject("deal", err)
	}
	if err := b.collect(bet); err != nil {
		return b.reject("deal", err)
	}

	b.deck = b.newDeck(cards.BlackjackValue)
	b.player = b.player[:0]
	b.dealer = b.dealer[:0]
	b.player = append(b.player, b.deck.Deal(), b.deck.Deal())
	b.dealer = append(b.dealer, b.deck.Deal(), b.deck.Deal())
	b.holeHidden = true
	b.state = BlackjackPlayerTurn
	b.message = "Hit or Stand?"
	b.notify(notify.EventCard)

	b.logger.Debug("Dealt", "round", b.roundID,
		"player", cards.FormatCards(b.player), "upcard", b.dealer[0])
	return nil
}

// Hit draws a card for the player. Going over 21 loses immediately.
func (b *Blackjack) Hit() error {
	if b.state != BlackjackPlayerTurn {
		return b.reject("hit", ErrWrongState)
	}

	b.player = append(b.player, b.deck.Deal())
	b.notify(notify.EventCard)

	if cards.IsBust(b.player) {
		b.holeHidden = false
		b.state = BlackjackSettled
		b.message = "Bust! Dealer wins"
		b.notify(notify.EventLose)
		b.settle(Outcome{Result: Loss, Multiplier: decimal.Zero, Label: "Bust"})
	}
	return nil
}

// Stand reveals the hole card, plays the dealer out and settles.
func (b *Blackjack) Stand() error {
	if b.state != BlackjackPlayerTurn {
		return b.reject("stand", ErrWrongState)
	}

	b.state = BlackjackDealerTurn
	b.holeHidden = false
	b.message = "Dealer's turn..."
	for cards.BlackjackTotal(b.dealer) < DealerStandsOn {
		b.dealer = append(b.dealer, b.deck.Deal())
		b.notify(notify.EventCard)
	}
	b.logger.Debug("Dealer done", "round", b.roundID, "dealer", cards.FormatCards(b.dealer))

	player := cards.BlackjackTotal(b.player)
	dealer := cards.BlackjackTotal(b.dealer)
	var o Outcome
	switch {
	case dealer > cards.BlackjackBust:
		o = outcomeFor(b.stake, decimal.NewFromInt(2), "Dealer busts")
		b.message = fmt.Sprintf("Dealer busts! You win %d", o.Payout)
		b.notify(notify.EventWin)
	case player > dealer:
		o = outcomeFor(b.stake, decimal.NewFromInt(2), "Player wins")
		b.message = fmt.Sprintf("You win %d!", o.Payout)
		b.notify(notify.EventWin)
	case dealer > player:
		o = outcomeFor(b.stake, decimal.Zero, "Dealer wins")
		b.message = "Dealer wins"
		b.notify(notify.EventLose)
	default:
		o = outcomeFor(b.stake, decimal.NewFromInt(1), "Push")
		o.Result = Push
		b.message = "Push! Bet returned"
		b.notify(notify.EventCoin)
	}

	b.state = BlackjackSettled
	b.settle(o)
	return nil
}

// NewRound clears a settled hand back to betting.
func (b *Blackjack) NewRound() error {
	if b.state != BlackjackSettled {
		return b.reject("new round", ErrWrongState)
	}
	b.state = BlackjackBetting
	b.player = nil
	b.dealer = nil
	b.holeHidden = false
	b.message = "Place your bet"
	return nil
}
