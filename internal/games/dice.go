package games

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/notify"
)

// Target bounds for a dice bet.
const (
	MinDiceTarget = 2
	MaxDiceTarget = 11

	diceJackpotAbove = 3
	diceFaces        = 6
)

// DiceBet is the kind of dice wager.
type DiceBet uint8

const (
	DiceUnder DiceBet = iota
	DiceOver
	DiceExact
)

func (k DiceBet) String() string {
	switch k {
	case DiceUnder:
		return "under"
	case DiceOver:
		return "over"
	case DiceExact:
		return "exact"
	default:
		return "unknown"
	}
}

// ParseDiceBet resolves "under", "over" or "exact".
func ParseDiceBet(s string) (DiceBet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "under", "<":
		return DiceUnder, nil
	case "over", ">":
		return DiceOver, nil
	case "exact", "=":
		return DiceExact, nil
	}
	return 0, fmt.Errorf("%w: unknown dice bet %q", ErrInvalidBet, s)
}

// DiceMultiplier is the winnings multiplier for a bet: a win returns the
// stake times (multiplier + 1). Seven is the most likely sum and pays less.
func DiceMultiplier(kind DiceBet, target int) int {
	switch kind {
	case DiceExact:
		if target == 7 {
			return 4
		}
		return 6
	default:
		if target == 7 {
			return 1
		}
		return 2
	}
}

// DiceWins reports whether sum satisfies the bet.
func DiceWins(kind DiceBet, target, sum int) bool {
	switch kind {
	case DiceUnder:
		return sum < target
	case DiceOver:
		return sum > target
	case DiceExact:
		return sum == target
	default:
		return false
	}
}

// DiceState is the state of a dice round.
type DiceState uint8

const (
	DiceBetting DiceState = iota
	DiceRolling
	DiceSettled
)

func (s DiceState) String() string {
	switch s {
	case DiceBetting:
		return "betting"
	case DiceRolling:
		return "rolling"
	case DiceSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Dice rolls two six-sided dice against an under/over/exact target.
type Dice struct {
	table
	state  DiceState
	kind   DiceBet
	target int
	dice   [2]int
}

// NewDice creates a dice table debiting and crediting ledger. The default
// bet is over seven.
func NewDice(ledger Ledger, rng cards.Source, opts ...Option) *Dice {
	d := &Dice{
		table:  newTable(GameDice, ledger, rng, opts),
		kind:   DiceOver,
		target: 7,
		dice:   [2]int{1, 1},
	}
	d.message = "Pick a target and roll"
	return d
}

// State returns the round state.
func (d *Dice) State() DiceState { return d.state }

// Dice returns the faces of the last roll.
func (d *Dice) Dice() [2]int { return d.dice }

// Sum is the total of the last roll.
func (d *Dice) Sum() int { return d.dice[0] + d.dice[1] }

// Bet returns the configured bet kind and target.
func (d *Dice) Bet() (DiceBet, int) { return d.kind, d.target }

// Configure sets the bet kind and target for the following rolls.
func (d *Dice) Configure(kind DiceBet, target int) error {
	if d.state == DiceRolling {
		return d.reject("configure", ErrWrongState)
	}
	if kind > DiceExact || target < MinDiceTarget || target > MaxDiceTarget {
		return d.reject("configure", ErrInvalidBet)
	}
	d.kind = kind
	d.target = target
	return nil
}

// Roll debits bet, rolls both dice and settles against the configured bet.
func (d *Dice) Roll(bet int) (Settlement, error) {
	if d.state == DiceRolling {
		return Settlement{}, d.reject("roll", ErrWrongState)
	}
	if err := d.checkWager(bet); err != nil {
		return Settlement{}, d.reject("roll", err)
	}
	if err := d.collect(bet); err != nil {
		return Settlement{}, d.reject("roll", err)
	}

	d.state = DiceRolling
	d.message = "Rolling..."
	d.notify(notify.EventSpin)

	d.dice = [2]int{d.rng.Intn(diceFaces) + 1, d.rng.Intn(diceFaces) + 1}
	sum := d.Sum()

	var o Outcome
	m := DiceMultiplier(d.kind, d.target)
	label := fmt.Sprintf("Rolled %d", sum)
	d.state = DiceSettled
	switch {
	case !DiceWins(d.kind, d.target, sum):
		o = outcomeFor(bet, decimal.Zero, label)
		d.message = fmt.Sprintf("%s. You lose", label)
		d.notify(notify.EventLose)
	case m > diceJackpotAbove:
		o = outcomeFor(bet, decimal.NewFromInt(int64(m+1)), label)
		d.message = fmt.Sprintf("%s! You win %d", label, o.Payout)
		d.notify(notify.EventJackpot)
	default:
		o = outcomeFor(bet, decimal.NewFromInt(int64(m+1)), label)
		d.message = fmt.Sprintf("%s! You win %d", label, o.Payout)
		d.notify(notify.EventWin)
	}
	return d.settle(o), nil
}
