package games

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/notify"
)

// Game names a table game.
type Game string

const (
	GameSlots     Game = "slots"
	GameBlackjack Game = "blackjack"
	GameRoulette  Game = "roulette"
	GamePoker     Game = "poker"
	GameBaccarat  Game = "baccarat"
	GameDice      Game = "dice"
)

// AllGames lists the games in lobby order.
var AllGames = []Game{GameSlots, GameBlackjack, GameRoulette, GamePoker, GameBaccarat, GameDice}

// ParseGame resolves a game name.
func ParseGame(s string) (Game, error) {
	for _, g := range AllGames {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown game: %q", s)
}

// Rejected actions return one of these and leave the round untouched.
var (
	ErrWrongState        = errors.New("action not valid in the current state")
	ErrInsufficientFunds = errors.New("insufficient credits")
	ErrInvalidWager      = errors.New("wager outside table limits")
	ErrInvalidBet        = errors.New("invalid bet")
	ErrNoBets            = errors.New("no bets placed")
)

// Ledger is the credits balance the games debit and credit.
type Ledger interface {
	Balance() int
	Affordable(amount int) bool
	Add(amount int)
	Subtract(amount int) bool
}

// Result is the coarse result of a settled round.
type Result uint8

const (
	Loss Result = iota
	Win
	Push
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Push:
		return "push"
	default:
		return "loss"
	}
}

// Outcome is what a round resolved to. Multiplier is the gross factor applied
// to the stake: Payout = floor(stake * Multiplier).
type Outcome struct {
	Result     Result
	Multiplier decimal.Decimal
	Payout     int
	Label      string
}

// Settlement is a settled round as reported to observers.
type Settlement struct {
	RoundID   uuid.UUID
	Game      Game
	Stake     int
	SettledAt time.Time
	Outcome
}

// Net is the change in balance caused by the round.
func (s Settlement) Net() int {
	return s.Payout - s.Stake
}

// Limits bounds a single wager. Max of zero means only the balance limits it.
type Limits struct {
	Min int
	Max int
}

// Allows reports whether amount is a legal wager under the limits.
func (l Limits) Allows(amount int) bool {
	if amount <= 0 || amount < l.Min {
		return false
	}
	return l.Max == 0 || amount <= l.Max
}

// Option configures a game during creation.
type Option func(*tableConfig)

type tableConfig struct {
	notifier notify.Notifier
	logger   *log.Logger
	clock    quartz.Clock
	limits   Limits
	decks    []*cards.Deck
	hooks    []func(Settlement)
}

// WithNotifier sets the sink for transition events.
func WithNotifier(n notify.Notifier) Option {
	return func(c *tableConfig) { c.notifier = n }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *tableConfig) { c.logger = l }
}

// WithClock sets the clock used to timestamp settlements.
func WithClock(clock quartz.Clock) Option {
	return func(c *tableConfig) { c.clock = clock }
}

// WithLimits sets the wager limits.
func WithLimits(l Limits) Option {
	return func(c *tableConfig) { c.limits = l }
}

// WithDecks queues pre-built decks; each round of a card game takes the next
// one and falls back to a freshly shuffled deck once they run out.
func WithDecks(decks ...*cards.Deck) Option {
	return func(c *tableConfig) { c.decks = append(c.decks, decks...) }
}

// OnSettle registers a callback run after every settlement, once the payout
// has been credited.
func OnSettle(fn func(Settlement)) Option {
	return func(c *tableConfig) { c.hooks = append(c.hooks, fn) }
}

// table holds what every game shares: money, randomness and reporting.
type table struct {
	game     Game
	ledger   Ledger
	rng      cards.Source
	notifier notify.Notifier
	logger   *log.Logger
	clock    quartz.Clock
	limits   Limits
	decks    []*cards.Deck
	hooks    []func(Settlement)

	roundID uuid.UUID
	stake   int
	message string
	last    *Settlement
}

func newTable(game Game, ledger Ledger, rng cards.Source, opts []Option) table {
	if ledger == nil {
		panic("ledger is required for " + string(game))
	}
	if rng == nil {
		panic("rng is required for " + string(game))
	}

	cfg := &tableConfig{
		notifier: notify.Nop,
		limits:   Limits{Min: 1},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}

	return table{
		game:     game,
		ledger:   ledger,
		rng:      rng,
		notifier: cfg.notifier,
		logger:   cfg.logger.WithPrefix(string(game)),
		clock:    cfg.clock,
		limits:   cfg.limits,
		decks:    cfg.decks,
		hooks:    cfg.hooks,
	}
}

// Game returns the table's game.
func (t *table) Game() Game { return t.game }

// Message is the human-readable status line for the current state.
func (t *table) Message() string { return t.message }

// Stake is the amount debited for the current or last round.
func (t *table) Stake() int { return t.stake }

// RoundID identifies the current or last round. Zero before the first round.
func (t *table) RoundID() uuid.UUID { return t.roundID }

// Limits returns the wager limits.
func (t *table) Limits() Limits { return t.limits }

// Affordable reports whether amount is a legal wager the balance covers.
func (t *table) Affordable(amount int) bool {
	return t.limits.Allows(amount) && t.ledger.Affordable(amount)
}

// LastSettlement returns the most recent settlement, if any.
func (t *table) LastSettlement() (Settlement, bool) {
	if t.last == nil {
		return Settlement{}, false
	}
	return *t.last, true
}

func (t *table) reject(action string, err error) error {
	t.logger.Debug("Action rejected", "action", action, "reason", err)
	return err
}

func (t *table) checkWager(amount int) error {
	if !t.limits.Allows(amount) {
		return ErrInvalidWager
	}
	if !t.ledger.Affordable(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// collect debits the stake and opens a new round.
func (t *table) collect(amount int) error {
	if !t.ledger.Subtract(amount) {
		return ErrInsufficientFunds
	}
	t.roundID = uuid.New()
	t.stake = amount
	t.last = nil
	t.logger.Debug("Stake collected", "round", t.roundID, "stake", amount)
	return nil
}

func (t *table) newDeck(values cards.ValueScheme) *cards.Deck {
	if len(t.decks) > 0 {
		d := t.decks[0]
		t.decks = t.decks[1:]
		return d
	}
	return cards.NewDeck(t.rng, values)
}

func (t *table) notify(e notify.Event) {
	t.notifier.Notify(e)
}

// settle credits the payout and reports the settlement.
func (t *table) settle(o Outcome) Settlement {
	if o.Payout > 0 {
		t.ledger.Add(o.Payout)
	}

	s := Settlement{
		RoundID:   t.roundID,
		Game:      t.game,
		Stake:     t.stake,
		SettledAt: t.clock.Now(),
		Outcome:   o,
	}
	t.last = &s

	t.logger.Info("Round settled",
		"round", s.RoundID,
		"stake", s.Stake,
		"payout", s.Payout,
		"result", s.Result,
		"label", s.Label)

	for _, hook := range t.hooks {
		hook(s)
	}
	return s
}

// grossPayout returns floor(stake * multiplier).
func grossPayout(stake int, multiplier decimal.Decimal) int {
	return int(decimal.NewFromInt(int64(stake)).Mul(multiplier).Floor().IntPart())
}

func outcomeFor(stake int, multiplier decimal.Decimal, label string) Outcome {
	payout := grossPayout(stake, multiplier)
	result := Loss
	if payout > 0 {
		result = Win
	}
	return Outcome{Result: result, Multiplier: multiplier, Payout: payout, Label: label}
}
