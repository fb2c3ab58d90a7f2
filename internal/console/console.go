// Package console turns typed commands ("bj deal 25", "hold 1 3", "roulette
// bet red 10") into game actions on a casino session and describes the
// result as plain text lines plus optional reveal frames.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/casino"
	"github.com/lox/minicasino/internal/games"
	"github.com/lox/minicasino/internal/pacing"
	"github.com/lox/minicasino/internal/randutil"
)

// Reply is the outcome of one command.
type Reply struct {
	Lines  []string
	Frames []pacing.Frame
	Quit   bool
	Err    error
}

func (r *Reply) say(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// Console interprets commands against a session. The lobby is the state with
// no game selected.
type Console struct {
	session *casino.Session
	logger  *log.Logger
	decoys  cards.Source
	current games.Game
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Console) { c.logger = l.WithPrefix("console") }
}

// WithDecoys sets the randomness used for decorative reveal frames.
func WithDecoys(rng cards.Source) Option {
	return func(c *Console) { c.decoys = rng }
}

// New creates a console for session, starting in the lobby.
func New(session *casino.Session, opts ...Option) *Console {
	c := &Console{
		session: session,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.decoys == nil {
		c.decoys = randutil.NewSource(time.Now().UnixNano())
	}
	return c
}

// Current returns the selected game, or "" in the lobby.
func (c *Console) Current() games.Game { return c.current }

// Session returns the underlying session.
func (c *Console) Session() *casino.Session { return c.session }

// Prompt is the input prompt for the current game.
func (c *Console) Prompt() string {
	if c.current == "" {
		return "lobby> "
	}
	return string(c.current) + "> "
}

var gameAliases = map[string]games.Game{
	"slots":     games.GameSlots,
	"slot":      games.GameSlots,
	"blackjack": games.GameBlackjack,
	"bj":        games.GameBlackjack,
	"21":        games.GameBlackjack,
	"roulette":  games.GameRoulette,
	"wheel":     games.GameRoulette,
	"poker":     games.GamePoker,
	"vp":        games.GamePoker,
	"baccarat":  games.GameBaccarat,
	"bac":       games.GameBaccarat,
	"dice":      games.GameDice,
}

// Execute runs one command line.
func (c *Console) Execute(line string) Reply {
	fields := strings.Fields(strings.ToLower(line))
	var r Reply
	if len(fields) == 0 {
		c.describe(&r)
		return r
	}
	c.logger.Debug("Command", "game", c.current, "input", fields)

	cmd, args := fields[0], fields[1:]
	if g, ok := gameAliases[cmd]; ok {
		if g != c.current {
			c.enter(&r, g)
		}
		if len(args) == 0 {
			if len(r.Lines) == 0 {
				c.describe(&r)
			}
			return r
		}
		cmd, args = args[0], args[1:]
	}

	if c.global(&r, cmd, args) {
		return r
	}
	if c.current == "" {
		r.Err = fmt.Errorf("unknown command %q", cmd)
		r.say("Unknown command %q. Pick a game: %s", cmd, gameList())
		return r
	}

	var err error
	switch c.current {
	case games.GameSlots:
		err = c.slots(&r, cmd, args)
	case games.GameBlackjack:
		err = c.blackjack(&r, cmd, args)
	case games.GameRoulette:
		err = c.roulette(&r, cmd, args)
	case games.GamePoker:
		err = c.poker(&r, cmd, args)
	case games.GameBaccarat:
		err = c.baccarat(&r, cmd, args)
	case games.GameDice:
		err = c.dice(&r, cmd, args)
	}
	if err != nil {
		r.Err = err
		r.say("%s", c.explain(err))
	}
	return r
}

func gameList() string {
	names := make([]string, len(games.AllGames))
	for i, g := range games.AllGames {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}

func (c *Console) enter(r *Reply, g games.Game) {
	if c.current != "" {
		c.leave(r)
	}
	c.current = g
	r.say("== %s ==  bet %d  credits %d", strings.ToUpper(string(g)), c.session.Bet(g), c.session.Balance())
	c.describe(r)
}

func (c *Console) leave(r *Reply) {
	if c.session.Leave(c.current) {
		r.say("Round abandoned, the stake stays with the house.")
	}
}

// global handles commands available everywhere. It reports whether cmd was
// one of them.
func (c *Console) global(r *Reply, cmd string, args []string) bool {
	s := c.session
	switch cmd {
	case "help", "?":
		c.help(r)
	case "quit", "exit", "q":
		r.Quit = true
		r.say("Thanks for playing! Final balance: %d", s.Balance())
	case "lobby", "back", "leave":
		if c.current != "" {
			c.leave(r)
			c.current = ""
		}
		r.say("Lobby. Games: %s", gameList())
	case "balance", "credits":
		r.say("Credits: %d", s.Balance())
	case "stats":
		c.stats(r)
	case "history":
		n := 10
		if len(args) > 0 {
			if v, err := strconv.Atoi(args[0]); err == nil {
				n = v
			}
		}
		c.history(r, n)
	case "topup":
		if s.TopUp() {
			r.say("Top-up! Credits: %d", s.Balance())
		} else {
			r.say("Top-ups are only available below %d credits.", s.Config().Credits.TopUpThreshold)
		}
	case "deposit":
		amount := 0
		if len(args) > 0 {
			amount, _ = strconv.Atoi(args[0])
		}
		added := s.Deposit(amount)
		r.say("Deposited %d. Credits: %d", added, s.Balance())
	case "reset":
		s.ResetCredits()
		r.say("Credits reset to %d", s.Balance())
	case "sound":
		on := !s.SoundEnabled()
		if len(args) > 0 {
			on = args[0] == "on"
		}
		s.SetSound(on)
		r.say("Sound %s", onOff(on))
	case "bet":
		// On the roulette layout "bet red 10" and "bet 17 5" place bets;
		// a lone amount still sets the chip size.
		if c.current == "" || c.current == games.GameRoulette && len(args) > 0 && (len(args) > 1 || !isBetSize(args[0])) {
			return false
		}
		c.bet(r, args)
	case "status", "look":
		c.describe(r)
	default:
		return false
	}
	return true
}

func isBetSize(s string) bool {
	if s == "+" || s == "-" || s == "up" || s == "down" {
		return true
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (c *Console) bet(r *Reply, args []string) {
	g := c.current
	if len(args) == 0 {
		r.say("Bet: %d", c.session.Bet(g))
		return
	}
	switch args[0] {
	case "+", "up":
		r.say("Bet: %d", c.session.AdjustBet(g, 1))
	case "-", "down":
		r.say("Bet: %d", c.session.AdjustBet(g, -1))
	default:
		amount, _ := strconv.Atoi(args[0])
		if err := c.session.SetBet(g, amount); err != nil {
			r.Err = err
			r.say("%s", c.explain(err))
			return
		}
		r.say("Bet: %d", amount)
	}
}

// stake resolves an optional bet argument, remembering it as the new bet size.
func (c *Console) stake(args []string) (int, error) {
	if len(args) == 0 {
		return c.session.Bet(c.current), nil
	}
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an amount", games.ErrInvalidWager, args[0])
	}
	if err := c.session.SetBet(c.current, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

func (c *Console) explain(err error) string {
	s := c.session
	switch {
	case errors.Is(err, games.ErrInsufficientFunds):
		msg := fmt.Sprintf("Not enough credits (you have %d).", s.Balance())
		if s.Balance() < s.Config().Credits.TopUpThreshold {
			msg += " Type 'topup' for more."
		}
		return msg
	case errors.Is(err, games.ErrWrongState):
		return "You can't do that right now."
	case errors.Is(err, games.ErrInvalidWager):
		l := s.Config().Game(c.current).Limits()
		if l.Max > 0 {
			return fmt.Sprintf("Bets here are %d to %d.", l.Min, l.Max)
		}
		return fmt.Sprintf("Bets here start at %d.", l.Min)
	case errors.Is(err, games.ErrNoBets):
		return "Place a bet first."
	case errors.Is(err, errUnknown):
		return err.Error() + " Type 'help' for commands."
	default:
		return err.Error()
	}
}

var errUnknown = errors.New("unknown command")

func unknown(cmd string) error {
	return fmt.Errorf("%w %q.", errUnknown, cmd)
}

func (c *Console) stats(r *Reply) {
	st := c.session.Stats()
	r.say("Played %d  Won %d  Lost %d  Pushed %d  Biggest win %d",
		st.GamesPlayed, st.Wins, st.Losses, st.Pushes, st.BiggestWin)
	for _, g := range games.AllGames {
		gs, ok := st.PerGame[g]
		if !ok {
			continue
		}
		r.say("  %-9s rounds %-4d wagered %-6d paid %-6d return %.1f%%",
			g, gs.Rounds, gs.Wagered, gs.Paid, gs.ReturnToPlayer()*100)
	}
}

func (c *Console) history(r *Reply, n int) {
	rounds := c.session.History(n)
	if len(rounds) == 0 {
		r.say("No rounds played yet.")
		return
	}
	for _, s := range rounds {
		r.say("%s  %-9s stake %-5d paid %-6d %-4s %s",
			s.SettledAt.Format("15:04:05"), s.Game, s.Stake, s.Payout, s.Result, s.Label)
	}
}
