package games

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/notify"
)

// Side is a baccarat betting target.
type Side uint8

const (
	SidePlayer Side = iota
	SideBanker
	SideTie
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideBanker:
		return "banker"
	case SideTie:
		return "tie"
	default:
		return "unknown"
	}
}

// ParseSide resolves "player", "banker" or "tie".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player", "p":
		return SidePlayer, nil
	case "banker", "b":
		return SideBanker, nil
	case "tie", "t":
		return SideTie, nil
	}
	return 0, fmt.Errorf("%w: unknown side %q", ErrInvalidBet, s)
}

// Gross payout factors. Banker wins carry a five percent commission.
var (
	playerFactor = decimal.NewFromInt(2)
	bankerFactor = decimal.RequireFromString("1.95")
	tieFactor    = decimal.NewFromInt(9)
)

// Factor is the gross payout factor of a winning bet on s.
func (s Side) Factor() decimal.Decimal {
	switch s {
	case SideBanker:
		return bankerFactor
	case SideTie:
		return tieFactor
	default:
		return playerFactor
	}
}

// thirdCardLimit is the highest two-card total that still draws.
const thirdCardLimit = 5

// BaccaratState is the state of a baccarat round.
type BaccaratState uint8

const (
	BaccaratBetting BaccaratState = iota
	BaccaratDealing
	BaccaratSettled
)

func (s BaccaratState) String() string {
	switch s {
	case BaccaratBetting:
		return "betting"
	case BaccaratDealing:
		return "dealing"
	case BaccaratSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Baccarat is a punto banco table with a simplified drawing rule: only when
// both hands total five or less does the player draw, and then the banker
// draws too if its own two cards total five or less.
type Baccarat struct {
	table
	state  BaccaratState
	side   Side
	player []cards.Card
	banker []cards.Card
	winner Side
}

// NewBaccarat creates a baccarat table debiting and crediting ledger.
func NewBaccarat(ledger Ledger, rng cards.Source, opts ...Option) *Baccarat {
	b := &Baccarat{table: newTable(GameBaccarat, ledger, rng, opts)}
	b.message = "Choose Player, Banker or Tie"
	return b
}

// State returns the round state.
func (b *Baccarat) State() BaccaratState { return b.state }

// Side returns the side backed in the current or last round.
func (b *Baccarat) Side() Side { return b.side }

// Winner returns the winning side of the last coup.
func (b *Baccarat) Winner() Side { return b.winner }

// PlayerCards returns the player hand.
func (b *Baccarat) PlayerCards() []cards.Card { return append([]cards.Card(nil), b.player...) }

// BankerCards returns the banker hand.
func (b *Baccarat) BankerCards() []cards.Card { return append([]cards.Card(nil), b.banker...) }

// PlayerTotal is the baccarat total of the player hand.
func (b *Baccarat) PlayerTotal() int { return cards.BaccaratTotal(b.player) }

// BankerTotal is the baccarat total of the banker hand.
func (b *Baccarat) BankerTotal() int { return cards.BaccaratTotal(b.banker) }

// Deal debits bet on side, plays the coup out and settles.
func (b *Baccarat) Deal(bet int, side Side) (Settlement, error) {
	if b.state == BaccaratDealing {
		return Settlement{}, b.reject("deal", ErrWrongState)
	}
	if side > SideTie {
		return Settlement{}, b.reject("deal", ErrInvalidBet)
	}
	if err := b.checkWager(bet); err != nil {
		return Settlement{}, b.reject("deal", err)
	}
	if err := b.collect(bet); err != nil {
		return Settlement{}, b.reject("deal", err)
	}

	b.side = side
	b.state = BaccaratDealing
	b.message = "Dealing..."
	b.notify(notify.EventCard)

	deck := b.newDeck(cards.BaccaratValue)
	b.player = []cards.Card{deck.Deal(), deck.Deal()}
	b.banker = []cards.Card{deck.Deal(), deck.Deal()}

	if b.PlayerTotal() <= thirdCardLimit && b.BankerTotal() <= thirdCardLimit {
		b.player = append(b.player, deck.Deal())
		if b.BankerTotal() <= thirdCardLimit {
			b.banker = append(b.banker, deck.Deal())
		}
	}

	pt, bt := b.PlayerTotal(), b.BankerTotal()
	switch {
	case pt > bt:
		b.winner = SidePlayer
	case bt > pt:
		b.winner = SideBanker
	default:
		b.winner = SideTie
	}
	b.logger.Debug("Coup played", "round", b.roundID,
		"player", cards.FormatCards(b.player), "banker", cards.FormatCards(b.banker),
		"winner", b.winner)

	label := fmt.Sprintf("Tie %d-%d", pt, bt)
	switch b.winner {
	case SidePlayer:
		label = fmt.Sprintf("Player wins %d-%d", pt, bt)
	case SideBanker:
		label = fmt.Sprintf("Banker wins %d-%d", pt, bt)
	}

	var o Outcome
	b.state = BaccaratSettled
	switch {
	case side != b.winner:
		o = outcomeFor(bet, decimal.Zero, label)
		b.message = fmt.Sprintf("%s. You lose", label)
		b.notify(notify.EventLose)
	case side == SideTie:
		o = outcomeFor(bet, side.Factor(), label)
		b.message = fmt.Sprintf("%s! You win %d", label, o.Payout)
		b.notify(notify.EventJackpot)
	default:
		o = outcomeFor(bet, side.Factor(), label)
		b.message = fmt.Sprintf("%s! You win %d", label, o.Payout)
		b.notify(notify.EventWin)
	}
	return b.settle(o), nil
}

// NewRound clears a settled coup back to betting.
func (b *Baccarat) NewRound() error {
	if b.state != BaccaratSettled {
		return b.reject("new round", ErrWrongState)
	}
	b.state = BaccaratBetting
	b.player = nil
	b.banker = nil
	b.message = "Choose Player, Banker or Tie"
	return nil
}
