package games

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/notify"
)

const (
	// Straight-up bets return 36 times the stake, even-money bets twice.
	numberPayoutFactor = 36
	evenPayoutFactor   = 2
	rouletteJackpotX   = 10
	roulettePockets    = 37
)

// WheelOrder is the single-zero wheel as the pockets sit around it.
var WheelOrder = [roulettePockets]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10,
	5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Color is the color of a pocket.
type Color uint8

const (
	Green Color = iota
	Red
	Black
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "green"
	}
}

// ColorOf returns the color of pocket n.
func ColorOf(n int) Color {
	switch {
	case n == 0:
		return Green
	case redNumbers[n]:
		return Red
	default:
		return Black
	}
}

// Pocket is a wheel result.
type Pocket struct {
	Number int
	Color  Color
}

func (p Pocket) String() string {
	return fmt.Sprintf("%d %s", p.Number, p.Color)
}

// BetType is a kind of roulette bet.
type BetType uint8

const (
	BetNumber BetType = iota
	BetRed
	BetBlack
	BetOdd
	BetEven
	BetLow
	BetHigh
)

var betTypeNames = [...]string{
	BetNumber: "number",
	BetRed:    "red",
	BetBlack:  "black",
	BetOdd:    "odd",
	BetEven:   "even",
	BetLow:    "low",
	BetHigh:   "high",
}

func (t BetType) String() string {
	if int(t) < len(betTypeNames) {
		return betTypeNames[t]
	}
	return "unknown"
}

// ParseBetType resolves a bet type name such as "red" or "number".
func ParseBetType(s string) (BetType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range betTypeNames {
		if name == s {
			return BetType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown bet type %q", ErrInvalidBet, s)
}

// Bet is a wager on the roulette layout. Value is the pocket for number bets
// and zero otherwise.
type Bet struct {
	Type   BetType
	Value  int
	Amount int
}

func (b Bet) String() string {
	if b.Type == BetNumber {
		return fmt.Sprintf("%d on %d", b.Amount, b.Value)
	}
	return fmt.Sprintf("%d on %s", b.Amount, b.Type)
}

// Wins reports whether the bet wins on pocket n. Zero wins only a number bet
// placed on it.
func (b Bet) Wins(n int) bool {
	switch b.Type {
	case BetNumber:
		return b.Value == n
	case BetRed:
		return ColorOf(n) == Red
	case BetBlack:
		return ColorOf(n) == Black
	case BetOdd:
		return n > 0 && n%2 == 1
	case BetEven:
		return n > 0 && n%2 == 0
	case BetLow:
		return n >= 1 && n <= 18
	case BetHigh:
		return n >= 19 && n <= 36
	default:
		return false
	}
}

// Payout is the gross amount returned for the bet on pocket n.
func (b Bet) Payout(n int) int {
	if !b.Wins(n) {
		return 0
	}
	if b.Type == BetNumber {
		return b.Amount * numberPayoutFactor
	}
	return b.Amount * evenPayoutFactor
}

// BetResult is one bet's share of a spin.
type BetResult struct {
	Bet
	Payout int
}

// RouletteState is the state of a roulette round.
type RouletteState uint8

const (
	RouletteBetting RouletteState = iota
	RouletteSpinning
	RouletteSettled
)

func (s RouletteState) String() string {
	switch s {
	case RouletteBetting:
		return "betting"
	case RouletteSpinning:
		return "spinning"
	case RouletteSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Roulette is a single-zero roulette table with inside number bets and the
// six even-money outside bets.
type Roulette struct {
	table
	state   RouletteState
	bets    []Bet
	result  *Pocket
	results []BetResult
}

// NewRoulette creates a roulette table debiting and crediting ledger.
func NewRoulette(ledger Ledger, rng cards.Source, opts ...Option) *Roulette {
	r := &Roulette{table: newTable(GameRoulette, ledger, rng, opts)}
	r.message = "Place your bets"
	return r
}

// State returns the round state.
func (r *Roulette) State() RouletteState { return r.state }

// Bets returns the bets on the layout in placement order.
func (r *Roulette) Bets() []Bet { return append([]Bet(nil), r.bets...) }

// TotalStake is the sum of all bets on the layout.
func (r *Roulette) TotalStake() int {
	total := 0
	for _, b := range r.bets {
		total += b.Amount
	}
	return total
}

// Result returns the last winning pocket, if the wheel has been spun.
func (r *Roulette) Result() (Pocket, bool) {
	if r.result == nil {
		return Pocket{}, false
	}
	return *r.result, true
}

// BetResults returns how each bet of the last spin fared.
func (r *Roulette) BetResults() []BetResult { return append([]BetResult(nil), r.results...) }

// PlaceBet adds amount to the layout. A second bet of the same type and value
// increases the existing one, and the combined bet must stay within the table
// maximum. The layout total may never exceed the balance.
// Placing a bet after a settled spin starts a new round.
func (r *Roulette) PlaceBet(t BetType, value, amount int) error {
	if r.state == RouletteSpinning {
		return r.reject("place bet", ErrWrongState)
	}
	if int(t) >= len(betTypeNames) {
		return r.reject("place bet", ErrInvalidBet)
	}
	if t == BetNumber {
		if value < 0 || value > 36 {
			return r.reject("place bet", ErrInvalidBet)
		}
	} else {
		value = 0
	}
	if !r.limits.Allows(amount) {
		return r.reject("place bet", ErrInvalidWager)
	}

	// A settled wheel starts from an empty layout, but only once the bet is
	// accepted.
	layout := r.bets
	if r.state == RouletteSettled {
		layout = nil
	}
	existing := -1
	staked := 0
	for i, b := range layout {
		staked += b.Amount
		if b.Type == t && b.Value == value {
			existing = i
		}
	}
	if existing >= 0 && r.limits.Max > 0 && layout[existing].Amount+amount > r.limits.Max {
		return r.reject("place bet", ErrInvalidWager)
	}
	if staked+amount > r.ledger.Balance() {
		return r.reject("place bet", ErrInsufficientFunds)
	}

	if r.state == RouletteSettled {
		_ = r.NewRound()
	}
	for i := range r.bets {
		if r.bets[i].Type == t && r.bets[i].Value == value {
			r.bets[i].Amount += amount
			r.message = fmt.Sprintf("Total bet: %d", r.TotalStake())
			return nil
		}
	}
	r.bets = append(r.bets, Bet{Type: t, Value: value, Amount: amount})
	r.message = fmt.Sprintf("Total bet: %d", r.TotalStake())
	return nil
}

// ClearBets removes every bet from the layout.
func (r *Roulette) ClearBets() error {
	if r.state != RouletteBetting {
		return r.reject("clear bets", ErrWrongState)
	}
	r.bets = nil
	r.message = "Place your bets"
	return nil
}

// Spin debits the layout total, spins the wheel and pays every winning bet.
// The layout is cleared afterwards.
func (r *Roulette) Spin() (Settlement, error) {
	if r.state != RouletteBetting {
		return Settlement{}, r.reject("spin", ErrWrongState)
	}
	if len(r.bets) == 0 {
		return Settlement{}, r.reject("spin", ErrNoBets)
	}
	stake := r.TotalStake()
	if err := r.collect(stake); err != nil {
		return Settlement{}, r.reject("spin", err)
	}

	r.state = RouletteSpinning
	r.message = "Spinning..."
	r.notify(notify.EventRoulette)

	n := WheelOrder[r.rng.Intn(roulettePockets)]
	pocket := Pocket{Number: n, Color: ColorOf(n)}
	r.result = &pocket

	payout := 0
	r.results = r.results[:0]
	for _, b := range r.bets {
		p := b.Payout(n)
		payout += p
		r.results = append(r.results, BetResult{Bet: b, Payout: p})
	}
	r.bets = nil
	r.state = RouletteSettled

	o := Outcome{
		Result:     Loss,
		Multiplier: decimal.NewFromInt(int64(payout)).Div(decimal.NewFromInt(int64(stake))),
		Payout:     payout,
		Label:      pocket.String(),
	}
	switch {
	case payout == 0:
		r.message = fmt.Sprintf("%s. Better luck next time!", pocket)
		r.notify(notify.EventLose)
	case payout > stake*rouletteJackpotX:
		o.Result = Win
		r.message = fmt.Sprintf("%s! You win %d", pocket, payout)
		r.notify(notify.EventJackpot)
	default:
		o.Result = Win
		r.message = fmt.Sprintf("%s! You win %d", pocket, payout)
		r.notify(notify.EventWin)
	}
	return r.settle(o), nil
}

// NewRound clears a settled spin back to an empty layout.
func (r *Roulette) NewRound() error {
	if r.state != RouletteSettled {
		return r.reject("new round", ErrWrongState)
	}
	r.state = RouletteBetting
	r.bets = nil
	r.message = "Place your bets"
	return nil
}
