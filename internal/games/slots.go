package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/notify"
)

// Symbol is a slot reel symbol.
type Symbol uint8

const (
	Cherry Symbol = iota
	Lemon
	Orange
	Grape
	Star
	Diamond
	SevenSlot
	Bell
)

// Symbols is the reel strip; each spin picks uniformly from it.
var Symbols = [...]Symbol{Cherry, Lemon, Orange, Grape, Star, Diamond, SevenSlot, Bell}

var symbolInfo = [...]struct {
	name       string
	glyph      string
	multiplier int
}{
	Cherry:    {"Cherry", "🍒", 2},
	Lemon:     {"Lemon", "🍋", 3},
	Orange:    {"Orange", "🍊", 4},
	Grape:     {"Grape", "🍇", 5},
	Star:      {"Star", "⭐", 10},
	Diamond:   {"Diamond", "💎", 20},
	SevenSlot: {"Slot", "🎰", 50},
	Bell:      {"Bell", "🔔", 100},
}

func (s Symbol) String() string {
	if int(s) < len(symbolInfo) {
		return symbolInfo[s].name
	}
	return fmt.Sprintf("Symbol(%d)", s)
}

// Glyph is the symbol as drawn on the reel.
func (s Symbol) Glyph() string {
	if int(s) < len(symbolInfo) {
		return symbolInfo[s].glyph
	}
	return "?"
}

// Multiplier is the three-of-a-kind payout factor.
func (s Symbol) Multiplier() int {
	if int(s) < len(symbolInfo) {
		return symbolInfo[s].multiplier
	}
	return 0
}

const (
	slotsReels         = 3
	slotsPairFactor    = 2
	slotsJackpotAbove  = 20
	slotsIdleMessage   = "Spin to win!"
	slotsLosingMessage = "Try again!"
)

// Reels is one spin result, left to right.
type Reels [slotsReels]Symbol

// SlotsState is the state of a slots round.
type SlotsState uint8

const (
	SlotsBetting SlotsState = iota
	SlotsSpinning
	SlotsSettled
)

func (s SlotsState) String() string {
	switch s {
	case SlotsBetting:
		return "betting"
	case SlotsSpinning:
		return "spinning"
	case SlotsSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// EvaluateReels scores a spin. Three of a kind pays the symbol multiplier,
// exactly two matching reels pay double, anything else pays nothing.
func EvaluateReels(r Reels, bet int) Outcome {
	switch {
	case r[0] == r[1] && r[1] == r[2]:
		return outcomeFor(bet, decimal.NewFromInt(int64(r[0].Multiplier())),
			fmt.Sprintf("Three %ss", r[0]))
	case r[0] == r[1] || r[1] == r[2] || r[0] == r[2]:
		return outcomeFor(bet, decimal.NewFromInt(slotsPairFactor), "Two of a kind")
	default:
		return outcomeFor(bet, decimal.Zero, "No match")
	}
}

// Slots is a three-reel slot machine.
type Slots struct {
	table
	state SlotsState
	reels Reels
}

// NewSlots creates a slot machine debiting and crediting ledger.
func NewSlots(ledger Ledger, rng cards.Source, opts ...Option) *Slots {
	s := &Slots{
		table: newTable(GameSlots, ledger, rng, opts),
		reels: Reels{Cherry, Cherry, Cherry},
	}
	s.message = slotsIdleMessage
	return s
}

// State returns the round state.
func (s *Slots) State() SlotsState { return s.state }

// Reels returns the symbols currently showing.
func (s *Slots) Reels() Reels { return s.reels }

// Spin debits bet, spins all three reels and settles.
func (s *Slots) Spin(bet int) (Settlement, error) {
	if s.state == SlotsSpinning {
		return Settlement{}, s.reject("spin", ErrWrongState)
	}
	if err := s.checkWager(bet); err != nil {
		return Settlement{}, s.reject("spin", err)
	}
	if err := s.collect(bet); err != nil {
		return Settlement{}, s.reject("spin", err)
	}

	s.state = SlotsSpinning
	s.message = "Spinning..."
	s.notify(notify.EventSpin)

	for i := range s.reels {
		s.reels[i] = Symbols[s.rng.Intn(len(Symbols))]
	}

	outcome := EvaluateReels(s.reels, bet)
	s.state = SlotsSettled
	switch {
	case outcome.Payout == 0:
		s.message = slotsLosingMessage
		s.notify(notify.EventLose)
	case outcome.Multiplier.GreaterThan(decimal.NewFromInt(slotsJackpotAbove)):
		s.message = fmt.Sprintf("JACKPOT! %s pays %d", outcome.Label, outcome.Payout)
		s.notify(notify.EventJackpot)
	default:
		s.message = fmt.Sprintf("%s! You win %d", outcome.Label, outcome.Payout)
		s.notify(notify.EventWin)
	}
	return s.settle(outcome), nil
}
