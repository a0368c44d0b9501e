package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCardValue tests the base value of each rank.
func TestCardValue(t *testing.T) {
	tests := []struct {
		name     string
		card     Card
		expected int
	}{
		{"two", Card{Spades, Rank2}, 2},
		{"five", Card{Hearts, Rank5}, 5},
		{"nine", Card{Diamonds, Rank9}, 9},
		{"ten", Card{Clubs, Rank10}, 10},
		{"jack", Card{Spades, RankJack}, 10},
		{"queen", Card{Hearts, RankQueen}, 10},
		{"king", Card{Diamonds, RankKing}, 10},
		{"ace", Card{Clubs, RankAce}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.card.Value())
		})
	}
}

// TestCardString tests the display form of a card.
func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", Card{Spades, RankAce}.String())
	assert.Equal(t, "10♥", Card{Hearts, Rank10}.String())
	assert.Equal(t, "K♣", Card{Clubs, RankKing}.String())
}

// TestNewDeckComplete tests that a fresh deck holds all 52 distinct cards.
func TestNewDeckComplete(t *testing.T) {
	d := NewDeck()
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for d.Remaining() > reshuffleThreshold {
		seen[d.Deal()] = true
	}
	// Drain the rest by hand to avoid triggering the regeneration.
	for _, c := range d.cards {
		seen[c] = true
	}

	assert.Len(t, seen, 52, "deck should contain every suit-rank combination exactly once")
}

// TestDeckDealRemoves tests that dealing shrinks the deck one card at a
// time until the reshuffle threshold.
func TestDeckDealRemoves(t *testing.T) {
	d := NewDeck()
	for i := 1; i <= 42; i++ {
		d.Deal()
		assert.Equal(t, 52-i, d.Remaining())
	}
}

// TestDeckReshufflesWhenLow tests the regenerate-below-10 behavior: once
// fewer than 10 cards remain, the next deal refills the deck to 52 before
// removing a card.
func TestDeckReshufflesWhenLow(t *testing.T) {
	d := NewDeck()

	// Deal down to exactly 10 cards: no reshuffle yet.
	for i := 0; i < 42; i++ {
		d.Deal()
	}
	require.Equal(t, 10, d.Remaining())

	// 10 is not below the threshold: deals normally.
	d.Deal()
	require.Equal(t, 9, d.Remaining())

	// Below the threshold: deck regenerates to 52, then deals one.
	d.Deal()
	assert.Equal(t, 51, d.Remaining())
}

// TestShuffleVariesOrder is a distributional check: independent decks
// should not all come out in the same order. Five identical 52-card
// permutations by chance is beyond astronomically unlikely.
func TestShuffleVariesOrder(t *testing.T) {
	first := NewDeck()
	same := 0
	for i := 0; i < 4; i++ {
		d := NewDeck()
		identical := true
		for j := range d.cards {
			if d.cards[j] != first.cards[j] {
				identical = false
				break
			}
		}
		if identical {
			same++
		}
	}
	assert.Less(t, same, 4, "shuffling should produce varying permutations")
}
