package pacing

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/minicasino/cards"
	"github.com/lox/minicasino/internal/games"
)

// Reveal timings.
const (
	SlotsCycles    = 20
	SlotsCycleTime = 100 * time.Millisecond
	DiceCycles     = 10
	DiceCycleTime  = 100 * time.Millisecond

	RouletteSpinTime = 3000 * time.Millisecond
	rouletteTicks    = 20

	BlackjackRevealDelay = 1000 * time.Millisecond
	BlackjackSettleDelay = 1500 * time.Millisecond

	BaccaratDealDelay  = 1500 * time.Millisecond
	BaccaratThirdDelay = 1000 * time.Millisecond
)

// Reels formats slot reels.
func Reels(r games.Reels) string {
	return fmt.Sprintf("[ %s | %s | %s ]", r[0].Glyph(), r[1].Glyph(), r[2].Glyph())
}

// Dice formats a pair of dice.
func Dice(d [2]int) string {
	return fmt.Sprintf("[%d] [%d] = %d", d[0], d[1], d[0]+d[1])
}

// Hand formats cards with their total.
func Hand(label string, hand []cards.Card, total int) string {
	return fmt.Sprintf("%s: %s (%d)", label, cards.FormatCards(hand), total)
}

func final(text string, delay time.Duration) Frame {
	return Frame{Delay: delay, Text: text, Final: true}
}

// SlotsFrames cycles random symbols before stopping on the settled reels.
// rng only picks the decoy symbols.
func SlotsFrames(s *games.Slots, rng cards.Source) []Frame {
	frames := make([]Frame, 0, SlotsCycles+1)
	for range SlotsCycles {
		var r games.Reels
		for i := range r {
			r[i] = games.Symbols[rng.Intn(len(games.Symbols))]
		}
		frames = append(frames, Frame{Delay: SlotsCycleTime, Text: Reels(r)})
	}
	return append(frames, final(Reels(s.Reels())+"  "+s.Message(), 0))
}

// DiceFrames tumbles random faces before showing the settled roll.
func DiceFrames(d *games.Dice, rng cards.Source) []Frame {
	frames := make([]Frame, 0, DiceCycles+1)
	for range DiceCycles {
		faces := [2]int{rng.Intn(6) + 1, rng.Intn(6) + 1}
		frames = append(frames, Frame{Delay: DiceCycleTime, Text: Dice(faces)})
	}
	return append(frames, final(Dice(d.Dice())+"  "+d.Message(), 0))
}

// RouletteFrames walks the ball around the wheel and lands it on the settled
// pocket once the spin time has passed.
func RouletteFrames(r *games.Roulette, rng cards.Source) []Frame {
	pocket, ok := r.Result()
	if !ok {
		return nil
	}
	tick := RouletteSpinTime / rouletteTicks
	pos := rng.Intn(len(games.WheelOrder))
	frames := make([]Frame, 0, rouletteTicks)
	for range rouletteTicks - 1 {
		pos = (pos + 1) % len(games.WheelOrder)
		n := games.WheelOrder[pos]
		frames = append(frames, Frame{Delay: tick, Text: fmt.Sprintf("( %d %s )", n, games.ColorOf(n))})
	}
	return append(frames, final(fmt.Sprintf("( %s )  %s", pocket, r.Message()), tick))
}

// BlackjackFrames reveals the dealer's hand after the player stands: the hole
// card first, then the dealer's draws, then the result. A player bust shows
// the result at once.
func BlackjackFrames(b *games.Blackjack) []Frame {
	dealer := b.DealerCards()
	if len(dealer) < 2 || cards.IsBust(b.PlayerCards()) {
		return []Frame{final(Hand("Dealer", dealer, cards.BlackjackTotal(dealer))+"  "+b.Message(), 0)}
	}
	hole := dealer[:2]
	return []Frame{
		{Text: Hand("Dealer", hole, cards.BlackjackTotal(hole))},
		{Delay: BlackjackRevealDelay, Text: Hand("Dealer", dealer, cards.BlackjackTotal(dealer))},
		final(b.Message(), BlackjackSettleDelay),
	}
}

// BaccaratFrames shows the two-card hands, then each third card, then the
// winner.
func BaccaratFrames(b *games.Baccarat) []Frame {
	player, banker := b.PlayerCards(), b.BankerCards()
	if len(player) < 2 || len(banker) < 2 {
		return nil
	}
	table := func(p, bk []cards.Card) string {
		return strings.Join([]string{
			Hand("Player", p, cards.BaccaratTotal(p)),
			Hand("Banker", bk, cards.BaccaratTotal(bk)),
		}, "  ")
	}

	frames := []Frame{{Text: table(player[:2], banker[:2])}}
	delay := BaccaratDealDelay
	if len(player) > 2 {
		frames = append(frames, Frame{Delay: delay, Text: table(player, banker[:2])})
		delay = BaccaratThirdDelay
	}
	if len(banker) > 2 {
		frames = append(frames, Frame{Delay: delay, Text: table(player, banker)})
		delay = BaccaratThirdDelay
	}
	return append(frames, final(b.Message(), delay))
}
