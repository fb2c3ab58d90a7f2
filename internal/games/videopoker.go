package games

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/notify"
)

const pokerJackpotAbove = 50

// ErrInvalidPosition is returned when a hold toggle names no card.
var ErrInvalidPosition = errors.New("no card at that position")

// PokerState is the state of a video poker round.
type PokerState uint8

const (
	PokerBetting PokerState = iota
	PokerDraw
	PokerSettled
)

func (s PokerState) String() string {
	switch s {
	case PokerBetting:
		return "betting"
	case PokerDraw:
		return "draw"
	case PokerSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// VideoPoker is five-card draw against the pay table, one draw per round.
type VideoPoker struct {
	table
	state PokerState
	deck  *cards.Deck
	hand  []cards.Card
	held  [cards.PokerHandSize]bool
}

// NewVideoPoker creates a video poker machine debiting and crediting ledger.
func NewVideoPoker(ledger Ledger, rng cards.Source, opts ...Option) *VideoPoker {
	p := &VideoPoker{table: newTable(GamePoker, ledger, rng, opts)}
	p.message = "Deal to start"
	return p
}

// State returns the round state.
func (p *VideoPoker) State() PokerState { return p.state }

// Hand returns the five cards showing.
func (p *VideoPoker) Hand() []cards.Card { return append([]cards.Card(nil), p.hand...) }

// Held returns the hold flags by position.
func (p *VideoPoker) Held() [cards.PokerHandSize]bool { return p.held }

// Evaluation classifies the hand showing. It reports false before the first
// deal.
func (p *VideoPoker) Evaluation() (cards.HandResult, bool) {
	if len(p.hand) != cards.PokerHandSize {
		return cards.HandResult{}, false
	}
	return cards.EvaluateHand(p.hand), true
}

// Deal debits bet and deals five fresh cards with no holds.
func (p *VideoPoker) Deal(bet int) error {
	if p.state == PokerDraw {
		return p.reject("deal", ErrWrongState)
	}
	if err := p.checkWager(bet); err != nil {
		return p.reject("deal", err)
	}
	if err := p.collect(bet); err != nil {
		return p.reject("deal", err)
	}

	p.deck = p.newDeck(cards.PokerValue)
	p.hand = p.deck.DealN(cards.PokerHandSize)
	p.held = [cards.PokerHandSize]bool{}
	p.state = PokerDraw
	p.message = "Select cards to hold, then draw"
	p.notify(notify.EventCard)

	p.logger.Debug("Dealt", "round", p.roundID, "hand", cards.FormatCards(p.hand))
	return nil
}

// ToggleHold flips the hold flag of the card at position i.
func (p *VideoPoker) ToggleHold(i int) error {
	if p.state != PokerDraw {
		return p.reject("hold", ErrWrongState)
	}
	if i < 0 || i >= cards.PokerHandSize {
		return p.reject("hold", ErrInvalidPosition)
	}
	p.held[i] = !p.held[i]
	p.notify(notify.EventClick)
	return nil
}

// Draw replaces every card not held, scores the final hand and settles.
func (p *VideoPoker) Draw() (Settlement, error) {
	if p.state != PokerDraw {
		return Settlement{}, p.reject("draw", ErrWrongState)
	}

	for i := range p.hand {
		if !p.held[i] {
			p.hand[i] = p.deck.Deal()
		}
	}
	p.notify(notify.EventCard)

	hr := cards.EvaluateHand(p.hand)
	o := outcomeFor(p.stake, decimal.NewFromInt(int64(hr.Multiplier)), hr.Name)
	p.state = PokerSettled
	switch {
	case o.Payout == 0:
		p.message = "No winning hand"
		p.notify(notify.EventLose)
	case hr.Multiplier > pokerJackpotAbove:
		p.message = fmt.Sprintf("%s! You win %d", hr.Name, o.Payout)
		p.notify(notify.EventJackpot)
	default:
		p.message = fmt.Sprintf("%s! You win %d", hr.Name, o.Payout)
		p.notify(notify.EventWin)
	}
	return p.settle(o), nil
}

// NewRound clears a settled hand back to betting.
func (p *VideoPoker) NewRound() error {
	if p.state != PokerSettled {
		return p.reject("new round", ErrWrongState)
	}
	p.state = PokerBetting
	p.hand = nil
	p.held = [cards.PokerHandSize]bool{}
	p.message = "Deal to start"
	return nil
}
