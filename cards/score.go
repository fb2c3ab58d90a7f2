package cards

// BlackjackBust is the highest total that does not bust.
const BlackjackBust = 21

// BlackjackTotal sums the cards' tagged values, then demotes one ace at a
// time from 11 to 1 while the total exceeds 21. Cards must carry
// BlackjackValue tags.
func BlackjackTotal(hand []Card) int {
	total, softAces := 0, 0
	for _, c := range hand {
		total += c.Value
		if c.Rank == Ace && c.Value == 11 {
			softAces++
		}
	}
	for total > BlackjackBust && softAces > 0 {
		total -= 10
		softAces--
	}
	return total
}

// IsBust reports whether a blackjack hand exceeds 21.
func IsBust(hand []Card) bool {
	return BlackjackTotal(hand) > BlackjackBust
}

// BaccaratTotal is the sum of the tagged values modulo 10. Cards must carry
// BaccaratValue tags.
func BaccaratTotal(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += c.Value
	}
	return total % 10
}
