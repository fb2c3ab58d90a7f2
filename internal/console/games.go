package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/games"
	"github.com/lox/minicasino/internal/pacing"
)

// A leading number means "play the default action with this bet".
func leadingAmount(cmd string, args []string) ([]string, bool) {
	if _, err := strconv.Atoi(cmd); err == nil {
		return append([]string{cmd}, args...), true
	}
	return args, false
}

func (c *Console) slots(r *Reply, cmd string, args []string) error {
	if a, ok := leadingAmount(cmd, args); ok {
		cmd, args = "spin", a
	}
	switch cmd {
	case "spin", "s":
		bet, err := c.stake(args)
		if err != nil {
			return err
		}
		s := c.session.Slots()
		if _, err := s.Spin(bet); err != nil {
			return err
		}
		r.Frames = pacing.SlotsFrames(s, c.decoys)
		r.say("%s  %s  (credits %d)", pacing.Reels(s.Reels()), s.Message(), c.session.Balance())
		return nil
	default:
		return unknown(cmd)
	}
}

func (c *Console) blackjack(r *Reply, cmd string, args []string) error {
	if a, ok := leadingAmount(cmd, args); ok {
		cmd, args = "deal", a
	}
	b := c.session.Blackjack()
	switch cmd {
	case "deal", "d":
		bet, err := c.stake(args)
		if err != nil {
			return err
		}
		if err := b.Deal(bet); err != nil {
			return err
		}
	case "hit", "h":
		if err := b.Hit(); err != nil {
			return err
		}
	case "stand", "s":
		if err := b.Stand(); err != nil {
			return err
		}
		r.Frames = pacing.BlackjackFrames(b)
	case "new", "n":
		if err := b.NewRound(); err != nil {
			return err
		}
	default:
		return unknown(cmd)
	}
	c.describeBlackjack(r)
	return nil
}

func (c *Console) roulette(r *Reply, cmd string, args []string) error {
	w := c.session.Roulette()
	switch cmd {
	case "bet", "b":
		if len(args) == 0 {
			return fmt.Errorf("usage: bet <number 0-36|red|black|odd|even|low|high> [amount]")
		}
		kind, value, rest, err := parseRouletteBet(args)
		if err != nil {
			return err
		}
		amount, err := c.stake(rest)
		if err != nil {
			return err
		}
		if err := w.PlaceBet(kind, value, amount); err != nil {
			return err
		}
	case "clear", "c":
		if err := w.ClearBets(); err != nil {
			return err
		}
	case "spin", "s":
		if _, err := w.Spin(); err != nil {
			return err
		}
		r.Frames = pacing.RouletteFrames(w, c.decoys)
		pocket, _ := w.Result()
		r.say("Ball lands on %s.", pocket)
		for _, br := range w.BetResults() {
			r.say("  %-12s pays %d", br.Bet, br.Payout)
		}
		r.say("%s  (credits %d)", w.Message(), c.session.Balance())
		return nil
	case "bets":
	case "new", "n":
		if err := w.NewRound(); err != nil {
			return err
		}
	default:
		return unknown(cmd)
	}
	c.describeRoulette(r)
	return nil
}

// parseRouletteBet accepts "17", "number 17" or an outside bet name.
func parseRouletteBet(args []string) (games.BetType, int, []string, error) {
	if n, err := strconv.Atoi(args[0]); err == nil {
		return games.BetNumber, n, args[1:], nil
	}
	kind, err := games.ParseBetType(args[0])
	if err != nil {
		return 0, 0, nil, err
	}
	if kind != games.BetNumber {
		return kind, 0, args[1:], nil
	}
	if len(args) < 2 {
		return 0, 0, nil, fmt.Errorf("%w: number bets need a pocket", games.ErrInvalidBet)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w: %q is not a pocket", games.ErrInvalidBet, args[1])
	}
	return games.BetNumber, n, args[2:], nil
}

func (c *Console) poker(r *Reply, cmd string, args []string) error {
	if a, ok := leadingAmount(cmd, args); ok {
		cmd, args = "deal", a
	}
	p := c.session.Poker()
	switch cmd {
	case "deal", "d":
		bet, err := c.stake(args)
		if err != nil {
			return err
		}
		if err := p.Deal(bet); err != nil {
			return err
		}
	case "hold", "h":
		if len(args) == 0 {
			return fmt.Errorf("usage: hold <position 1-5>...")
		}
		for _, a := range args {
			pos, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("%w: %q", games.ErrInvalidPosition, a)
			}
			if err := p.ToggleHold(pos - 1); err != nil {
				return err
			}
		}
	case "draw", "x":
		if _, err := p.Draw(); err != nil {
			return err
		}
	case "new", "n":
		if err := p.NewRound(); err != nil {
			return err
		}
	default:
		return unknown(cmd)
	}
	c.describePoker(r)
	return nil
}

func (c *Console) baccarat(r *Reply, cmd string, args []string) error {
	b := c.session.Baccarat()
	switch cmd {
	case "deal", "d":
		if len(args) == 0 {
			return fmt.Errorf("usage: deal <player|banker|tie> [amount]")
		}
		cmd, args = args[0], args[1:]
	case "new", "n":
		if err := b.NewRound(); err != nil {
			return err
		}
		c.describeBaccarat(r)
		return nil
	}

	side, err := games.ParseSide(cmd)
	if err != nil {
		return unknown(cmd)
	}
	bet, err := c.stake(args)
	if err != nil {
		return err
	}
	if _, err := b.Deal(bet, side); err != nil {
		return err
	}
	r.Frames = pacing.BaccaratFrames(b)
	c.describeBaccarat(r)
	return nil
}

func (c *Console) dice(r *Reply, cmd string, args []string) error {
	if a, ok := leadingAmount(cmd, args); ok {
		cmd, args = "roll", a
	}
	d := c.session.Dice()
	switch cmd {
	case "roll", "r":
		bet, err := c.stake(args)
		if err != nil {
			return err
		}
		if _, err := d.Roll(bet); err != nil {
			return err
		}
		r.Frames = pacing.DiceFrames(d, c.decoys)
		r.say("%s  %s  (credits %d)", pacing.Dice(d.Dice()), d.Message(), c.session.Balance())
		return nil
	case "target", "t":
		if len(args) == 0 {
			return fmt.Errorf("usage: target <2-11>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q is not a target", games.ErrInvalidBet, args[0])
		}
		kind, _ := d.Bet()
		if err := d.Configure(kind, n); err != nil {
			return fmt.Errorf("%w: targets run from %d to %d", err, games.MinDiceTarget, games.MaxDiceTarget)
		}
	default:
		kind, err := games.ParseDiceBet(cmd)
		if err != nil {
			return unknown(cmd)
		}
		_, target := d.Bet()
		if len(args) > 0 {
			if target, err = strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("%w: %q is not a target", games.ErrInvalidBet, args[0])
			}
		}
		if err := d.Configure(kind, target); err != nil {
			return fmt.Errorf("%w: targets run from %d to %d", err, games.MinDiceTarget, games.MaxDiceTarget)
		}
	}
	c.describeDice(r)
	return nil
}

func (c *Console) describe(r *Reply) {
	switch c.current {
	case "":
		r.say("Lobby. Credits %d. Games: %s", c.session.Balance(), gameList())
	case games.GameSlots:
		s := c.session.Slots()
		r.say("%s  %s", pacing.Reels(s.Reels()), s.Message())
	case games.GameBlackjack:
		c.describeBlackjack(r)
	case games.GameRoulette:
		c.describeRoulette(r)
	case games.GamePoker:
		c.describePoker(r)
	case games.GameBaccarat:
		c.describeBaccarat(r)
	case games.GameDice:
		c.describeDice(r)
	}
}

func (c *Console) describeBlackjack(r *Reply) {
	b := c.session.Blackjack()
	if len(b.PlayerCards()) > 0 {
		dealer := pacing.Hand("Dealer", b.DealerCards(), b.DealerTotal())
		if b.HoleHidden() {
			dealer = fmt.Sprintf("Dealer: %s ?? (%d)", cards.FormatCards(b.DealerCards()), b.DealerTotal())
		}
		r.say("%s", dealer)
		r.say("%s", pacing.Hand("You", b.PlayerCards(), b.PlayerTotal()))
	}
	r.say("%s  (credits %d)", b.Message(), c.session.Balance())
}

func (c *Console) describeRoulette(r *Reply) {
	w := c.session.Roulette()
	bets := w.Bets()
	if len(bets) == 0 {
		r.say("%s  (chip %d, credits %d)", w.Message(), c.session.Bet(games.GameRoulette), c.session.Balance())
		return
	}
	parts := make([]string, len(bets))
	for i, b := range bets {
		parts[i] = b.String()
	}
	r.say("Bets: %s  (total %d, credits %d)", strings.Join(parts, ", "), w.TotalStake(), c.session.Balance())
}

func (c *Console) describePoker(r *Reply) {
	p := c.session.Poker()
	hand := p.Hand()
	if len(hand) > 0 {
		held := p.Held()
		slots := make([]string, len(hand))
		for i, card := range hand {
			mark := " "
			if held[i] {
				mark = "*"
			}
			slots[i] = fmt.Sprintf("%d:%s%s", i+1, card, mark)
		}
		line := strings.Join(slots, " ")
		if ev, ok := p.Evaluation(); ok && p.State() == games.PokerDraw {
			line += "  (" + ev.Name + ")"
		}
		r.say("%s", line)
	}
	r.say("%s  (credits %d)", p.Message(), c.session.Balance())
}

func (c *Console) describeBaccarat(r *Reply) {
	b := c.session.Baccarat()
	if len(b.PlayerCards()) > 0 {
		r.say("%s", pacing.Hand("Player", b.PlayerCards(), b.PlayerTotal()))
		r.say("%s", pacing.Hand("Banker", b.BankerCards(), b.BankerTotal()))
	}
	r.say("%s  (credits %d)", b.Message(), c.session.Balance())
}

func (c *Console) describeDice(r *Reply) {
	d := c.session.Dice()
	kind, target := d.Bet()
	r.say("Betting %s %d, a win returns %dx  (bet %d, credits %d)",
		kind, target, games.DiceMultiplier(kind, target)+1, c.session.Bet(games.GameDice), c.session.Balance())
}

var helpText = map[games.Game][]string{
	"": {
		"slots | blackjack (bj) | roulette | poker (vp) | baccarat | dice  choose a game",
		"balance, stats, history [n], topup, deposit [n], reset, sound [on|off], quit",
	},
	games.GameSlots:     {"spin [amount] or just an amount", "bet [amount|+|-]"},
	games.GameBlackjack: {"deal [amount], hit, stand, new", "bet [amount|+|-]"},
	games.GameRoulette: {
		"bet <0-36|red|black|odd|even|low|high> [amount], bets, clear, spin",
		"bet [+|-] changes the chip size",
	},
	games.GamePoker:    {"deal [amount], hold <1-5>..., draw, new", "bet [amount|+|-]"},
	games.GameBaccarat: {"player|banker|tie [amount], new", "bet [amount|+|-]"},
	games.GameDice:     {"under|over|exact [target], target <2-11>, roll [amount]", "bet [amount|+|-]"},
}

func (c *Console) help(r *Reply) {
	for _, l := range helpText[c.current] {
		r.say("%s", l)
	}
	if c.current != "" {
		r.say("lobby, balance, stats, history, topup, sound, quit")
	}
}
