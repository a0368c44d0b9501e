// Package blackjack implements the multiplayer blackjack game for the
// Telegram blackjack bot: cards, hand evaluation, the per-chat game
// session state machine, the session registry, and the inactivity sweeper.
package blackjack

import (
	"math/rand"
)

// Suit is one of the four card suits.
type Suit string

// Card suits.
const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Rank is a card rank from 2 through Ace.
type Rank string

// Card ranks.
const (
	Rank2     Rank = "2"
	Rank3     Rank = "3"
	Rank4     Rank = "4"
	Rank5     Rank = "5"
	Rank6     Rank = "6"
	Rank7     Rank = "7"
	Rank8     Rank = "8"
	Rank9     Rank = "9"
	Rank10    Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
	RankAce   Rank = "A"
)

// Suits lists all suits in a fixed order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Ranks lists all ranks in a fixed order.
var Ranks = []Rank{
	Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10,
	RankJack, RankQueen, RankKing, RankAce,
}

// Card is an immutable playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

// String renders the card as rank followed by suit, e.g. "A♠".
func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}

// Value returns the card's base blackjack value. Number cards count as
// their face value, J/Q/K count as 10, and an ace counts as 11. The
// contextual downgrade of aces to 1 happens in HandValue.
func (c Card) Value() int {
	switch c.Rank {
	case RankJack, RankQueen, RankKing:
		return 10
	case RankAce:
		return 11
	case Rank10:
		return 10
	default:
		// Single-digit ranks map directly.
		return int(c.Rank[0] - '0')
	}
}

// reshuffleThreshold is the card count below which the deck regenerates
// itself before dealing.
const reshuffleThreshold = 10

// Deck is an ordered sequence of cards, randomly permuted at creation.
// A deck is owned by exactly one game session and is not safe for
// concurrent use on its own.
type Deck struct {
	cards []Card
}

// NewDeck creates a full 52-card deck in shuffled order.
func NewDeck() *Deck {
	d := &Deck{}
	d.refill()
	return d
}

// refill regenerates the full 52-card sequence and shuffles it in place.
func (d *Deck) refill() {
	d.cards = d.cards[:0]
	for _, s := range Suits {
		for _, r := range Ranks {
			d.cards = append(d.cards, Card{Suit: s, Rank: r})
		}
	}
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns one card from the end of the deck. When fewer
// than 10 cards remain the deck regenerates and reshuffles all 52 cards
// first; cards already in play are not recalled, so duplicates of held
// cards can appear after a mid-round reshuffle.
func (d *Deck) Deal() Card {
	if len(d.cards) < reshuffleThreshold {
		d.refill()
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
