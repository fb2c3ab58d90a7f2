// Package casino wires the six games to one shared credits balance and keeps
// the session-wide bookkeeping: statistics, recent rounds, bet sizes, top-ups
// and the sound switch.
package casino

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/config"
	"github.com/lox/minicasino/internal/credits"
	"github.com/lox/minicasino/internal/games"
	"github.com/lox/minicasino/internal/metrics"
	"github.com/lox/minicasino/internal/notify"
	"github.com/lox/minicasino/internal/randutil"
)

// Option configures a Session.
type Option func(*options)

type options struct {
	rng       cards.Source
	logger    *log.Logger
	clock     quartz.Clock
	metrics   *metrics.Metrics
	sinks     []notify.Notifier
	gameOpts  map[games.Game][]games.Option
	onSettled []func(games.Settlement)
}

// WithRNG sets the randomness shared by every game.
func WithRNG(rng cards.Source) Option {
	return func(o *options) { o.rng = rng }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the clock used for settlement timestamps.
func WithClock(c quartz.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithMetrics records settlements, events and the balance.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithSinks adds notification sinks behind the sound switch.
func WithSinks(sinks ...notify.Notifier) Option {
	return func(o *options) { o.sinks = append(o.sinks, sinks...) }
}

// WithGameOptions passes extra options to one game's constructor.
func WithGameOptions(g games.Game, opts ...games.Option) Option {
	return func(o *options) { o.gameOpts[g] = append(o.gameOpts[g], opts...) }
}

// OnSettled registers a callback run after the session has recorded a
// settlement.
func OnSettled(fn func(games.Settlement)) Option {
	return func(o *options) { o.onSettled = append(o.onSettled, fn) }
}

// Session is one player's visit. Game actions are not safe for concurrent
// use; the balance, statistics and history may be read from any goroutine.
type Session struct {
	cfg     *config.Config
	ledger  *credits.Ledger
	sound   *notify.Switch
	events  notify.Notifier
	logger  *log.Logger
	metrics *metrics.Metrics
	opts    *options

	slots     *games.Slots
	blackjack *games.Blackjack
	roulette  *games.Roulette
	poker     *games.VideoPoker
	baccarat  *games.Baccarat
	dice      *games.Dice
	bets      map[games.Game]int

	statsMu sync.Mutex
	stats   Stats
	history *lru.Cache[uuid.UUID, games.Settlement]
}

// New opens a session with the configured starting credits.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	o := &options{gameOpts: make(map[games.Game][]games.Option)}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}
	if o.rng == nil {
		o.rng = randutil.NewSource(time.Now().UnixNano())
	}

	history, err := lru.New[uuid.UUID, games.Settlement](cfg.HistorySize)
	if err != nil {
		return nil, fmt.Errorf("failed to create history: %w", err)
	}

	logger := o.logger.WithPrefix("casino")
	sound := notify.NewSwitch(notify.NewMulti(logger, o.sinks...))
	sound.SetEnabled(cfg.SoundEnabled())

	events := []notify.Notifier{notify.NewLogger(logger), sound}
	if o.metrics != nil {
		events = append(events, o.metrics)
	}

	s := &Session{
		cfg:     cfg,
		ledger:  credits.NewLedger(cfg.Credits.Starting),
		sound:   sound,
		events:  notify.NewMulti(logger, events...),
		logger:  logger,
		metrics: o.metrics,
		opts:    o,
		bets:    make(map[games.Game]int, len(games.AllGames)),
		stats:   newStats(),
		history: history,
	}
	for _, g := range games.AllGames {
		s.bets[g] = cfg.Game(g).DefaultBet
		s.open(g)
	}
	s.publishBalance()

	logger.Info("Session opened", "credits", s.ledger.Balance())
	return s, nil
}

func (s *Session) gameOptions(g games.Game) []games.Option {
	opts := []games.Option{
		games.WithLogger(s.opts.logger),
		games.WithClock(s.opts.clock),
		games.WithNotifier(s.events),
		games.WithLimits(s.cfg.Game(g).Limits()),
		games.OnSettle(s.record),
	}
	return append(opts, s.opts.gameOpts[g]...)
}

// open creates a fresh table for g, dropping whatever round it had.
func (s *Session) open(g games.Game) {
	opts := s.gameOptions(g)
	switch g {
	case games.GameSlots:
		s.slots = games.NewSlots(s.ledger, s.opts.rng, opts...)
	case games.GameBlackjack:
		s.blackjack = games.NewBlackjack(s.ledger, s.opts.rng, opts...)
	case games.GameRoulette:
		s.roulette = games.NewRoulette(s.ledger, s.opts.rng, opts...)
	case games.GamePoker:
		s.poker = games.NewVideoPoker(s.ledger, s.opts.rng, opts...)
	case games.GameBaccarat:
		s.baccarat = games.NewBaccarat(s.ledger, s.opts.rng, opts...)
	case games.GameDice:
		s.dice = games.NewDice(s.ledger, s.opts.rng, opts...)
	}
}

// Slots returns the slot machine.
func (s *Session) Slots() *games.Slots { return s.slots }

// Blackjack returns the blackjack table.
func (s *Session) Blackjack() *games.Blackjack { return s.blackjack }

// Roulette returns the roulette table.
func (s *Session) Roulette() *games.Roulette { return s.roulette }

// Poker returns the video poker machine.
func (s *Session) Poker() *games.VideoPoker { return s.poker }

// Baccarat returns the baccarat table.
func (s *Session) Baccarat() *games.Baccarat { return s.baccarat }

// Dice returns the dice table.
func (s *Session) Dice() *games.Dice { return s.dice }

// Config returns the session configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Balance returns the current credits.
func (s *Session) Balance() int { return s.ledger.Balance() }

// Affordable reports whether the balance covers amount.
func (s *Session) Affordable(amount int) bool { return s.ledger.Affordable(amount) }

// Bet returns the current bet size for g.
func (s *Session) Bet(g games.Game) int { return s.bets[g] }

// SetBet changes the bet size for g within the table limits.
func (s *Session) SetBet(g games.Game, amount int) error {
	if !s.cfg.Game(g).Limits().Allows(amount) {
		return games.ErrInvalidWager
	}
	s.bets[g] = amount
	return nil
}

// AdjustBet moves the bet size for g one notch up or down and returns it.
// Raising never goes past the balance.
func (s *Session) AdjustBet(g games.Game, dir int) int {
	next := s.cfg.Game(g).NextBet(s.bets[g], dir)
	if dir > 0 && next > s.Balance() {
		next = max(s.bets[g], min(next, s.Balance()))
	}
	s.bets[g] = next
	return next
}

// TopUp adds the configured top-up when the balance has fallen below the
// threshold. It reports whether credits were added.
func (s *Session) TopUp() bool {
	c := s.cfg.Credits
	ok := s.ledger.TopUp(c.TopUpThreshold, c.TopUpAmount)
	if ok {
		s.logger.Info("Topped up", "amount", c.TopUpAmount, "credits", s.ledger.Balance())
		s.events.Notify(notify.EventCoin)
		s.publishBalance()
	}
	return ok
}

// Deposit adds amount credits unconditionally. Zero or less deposits the
// configured amount.
func (s *Session) Deposit(amount int) int {
	if amount <= 0 {
		amount = s.cfg.Credits.Deposit
	}
	s.ledger.Add(amount)
	s.logger.Info("Deposit", "amount", amount, "credits", s.ledger.Balance())
	s.events.Notify(notify.EventCoin)
	s.publishBalance()
	return amount
}

// ResetCredits restores the starting balance.
func (s *Session) ResetCredits() {
	s.ledger.Reset()
	s.logger.Info("Credits reset", "credits", s.ledger.Balance())
	s.publishBalance()
}

// Leave walks away from g. An unfinished round is abandoned: the stake stays
// with the house and nothing is settled. Roulette bets not yet spun are
// dropped without cost.
// It reports whether a round was abandoned.
func (s *Session) Leave(g games.Game) bool {
	abandoned := false
	switch g {
	case games.GameBlackjack:
		abandoned = s.blackjack.State() == games.BlackjackPlayerTurn
	case games.GamePoker:
		abandoned = s.poker.State() == games.PokerDraw
	case games.GameRoulette:
		if s.roulette.State() == games.RouletteBetting {
			_ = s.roulette.ClearBets()
		}
	}
	if abandoned {
		s.logger.Info("Round abandoned", "game", g)
		s.open(g)
	}
	return abandoned
}

// SetSound switches notifications on or off.
func (s *Session) SetSound(on bool) { s.sound.SetEnabled(on) }

// ToggleSound flips the sound switch and returns the new state.
func (s *Session) ToggleSound() bool { return s.sound.Toggle() }

// SoundEnabled reports whether notifications are on.
func (s *Session) SoundEnabled() bool { return s.sound.Enabled() }

func (s *Session) publishBalance() {
	if s.metrics != nil {
		s.metrics.SetBalance(s.ledger.Balance())
	}
}

// record is the settle hook of every game.
func (s *Session) record(st games.Settlement) {
	s.statsMu.Lock()
	s.stats.add(st)
	s.history.Add(st.RoundID, st)
	s.statsMu.Unlock()

	if s.metrics != nil {
		s.metrics.ObserveSettlement(st)
	}
	s.publishBalance()

	for _, fn := range s.opts.onSettled {
		fn(st)
	}
}
