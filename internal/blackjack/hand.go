package blackjack

// HandValue computes the blackjack value of a hand with standard soft-ace
// adjustment: every ace counts as 11, then aces are downgraded to 1 one at
// a time while the total exceeds 21. The result is independent of card
// order.
func HandValue(hand []Card) int {
	value := 0
	aces := 0

	for _, c := range hand {
		if c.Rank == RankAce {
			aces++
		}
		value += c.Value()
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}

	return value
}
