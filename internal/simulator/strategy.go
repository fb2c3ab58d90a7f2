package simulator

import (
	"fmt"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/games"
)

// player plays one round of a game with a fixed strategy. Settlements reach
// the simulator through the table's settle hook.
type player interface {
	play(bet int) error
}

// Strategies names the fixed strategy simulated for each game.
var Strategies = map[games.Game]string{
	games.GameSlots:     "spin",
	games.GameBlackjack: "hit below 17",
	games.GameRoulette:  "red",
	games.GamePoker:     "hold pairs",
	games.GameBaccarat:  "banker",
	games.GameDice:      "over 7",
}

func newPlayer(g games.Game, ledger games.Ledger, rng cards.Source, opts ...games.Option) (player, error) {
	switch g {
	case games.GameSlots:
		return slotsPlayer{games.NewSlots(ledger, rng, opts...)}, nil
	case games.GameBlackjack:
		return blackjackPlayer{games.NewBlackjack(ledger, rng, opts...)}, nil
	case games.GameRoulette:
		return roulettePlayer{games.NewRoulette(ledger, rng, opts...)}, nil
	case games.GamePoker:
		return pokerPlayer{games.NewVideoPoker(ledger, rng, opts...)}, nil
	case games.GameBaccarat:
		return baccaratPlayer{games.NewBaccarat(ledger, rng, opts...)}, nil
	case games.GameDice:
		return dicePlayer{games.NewDice(ledger, rng, opts...)}, nil
	default:
		return nil, fmt.Errorf("no strategy for game %q", g)
	}
}

type slotsPlayer struct{ s *games.Slots }

func (p slotsPlayer) play(bet int) error {
	_, err := p.s.Spin(bet)
	return err
}

// blackjackPlayer mimics the dealer: hit below 17, then stand.
type blackjackPlayer struct{ b *games.Blackjack }

func (p blackjackPlayer) play(bet int) error {
	if err := p.b.Deal(bet); err != nil {
		return err
	}
	for p.b.State() == games.BlackjackPlayerTurn && p.b.PlayerTotal() < games.DealerStandsOn {
		if err := p.b.Hit(); err != nil {
			return err
		}
	}
	if p.b.State() != games.BlackjackPlayerTurn {
		return nil
	}
	return p.b.Stand()
}

type roulettePlayer struct{ r *games.Roulette }

func (p roulettePlayer) play(bet int) error {
	if err := p.r.PlaceBet(games.BetRed, 0, bet); err != nil {
		return err
	}
	_, err := p.r.Spin()
	return err
}

// pokerPlayer keeps every card that is part of a pair or better and draws
// the rest. A made straight or flush is kept whole.
type pokerPlayer struct{ p *games.VideoPoker }

func (p pokerPlayer) play(bet int) error {
	if err := p.p.Deal(bet); err != nil {
		return err
	}
	hand := p.p.Hand()
	hold := cards.PairedPositions(hand)
	if hr := cards.EvaluateHand(hand); hr.Type == cards.Straight || hr.Type >= cards.Flush {
		hold = []int{0, 1, 2, 3, 4}
	}
	for _, i := range hold {
		if err := p.p.ToggleHold(i); err != nil {
			return err
		}
	}
	_, err := p.p.Draw()
	return err
}

type baccaratPlayer struct{ b *games.Baccarat }

func (p baccaratPlayer) play(bet int) error {
	_, err := p.b.Deal(bet, games.SideBanker)
	return err
}

type dicePlayer struct{ d *games.Dice }

func (p dicePlayer) play(bet int) error {
	_, err := p.d.Roll(bet)
	return err
}
