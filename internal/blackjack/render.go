package blackjack

import (
	"fmt"
	"strings"
)

// statusEmoji maps a player status to its display marker.
func statusEmoji(s Status) string {
	switch s {
	case StatusWaiting:
		return "⏳"
	case StatusPlaying:
		return "🎲"
	case StatusStood:
		return "✋"
	case StatusBusted:
		return "💥"
	default:
		return "❓"
	}
}

// resultEmoji maps a round result to its display marker.
func resultEmoji(r Result) string {
	switch r {
	case ResultWin, ResultDealerBust:
		return "🎉"
	case ResultLose:
		return "😞"
	case ResultPush:
		return "🤝"
	case ResultBust:
		return "💥"
	default:
		return "❓"
	}
}

// formatHand renders a hand as space-separated cards, e.g. "A♠ K♥".
func formatHand(hand []Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// FormatGame renders the session as the chat message body. The layout
// depends on the session state: a join roster while waiting, the table
// with the dealer's first card hidden while in progress, and full results
// once finished.
func FormatGame(g *Game) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.WriteString("🎮 Multiplayer Blackjack 🎮\n\n")

	switch g.state {
	case StateWaiting:
		b.WriteString("🕐 Waiting for players...\n")
		fmt.Fprintf(&b, "👥 Players joined (%d/%d):\n", len(g.order), g.maxPlayers)
		for _, id := range g.order {
			p := g.players[id]
			b.WriteString("• " + p.Name)
			if p.TotalScore != 0 {
				fmt.Fprintf(&b, " (Score: %d)", p.TotalScore)
			}
			b.WriteString("\n")
		}
		b.WriteString("\nClick ➕ Join to play!")

	case StateInProgress:
		currentName := "Dealer"
		if p := g.currentPlayerLocked(); p != nil {
			currentName = p.Name
		}
		fmt.Fprintf(&b, "🎯 Current turn: %s\n\n", currentName)

		// Dealer's first card only; the hole card stays hidden.
		fmt.Fprintf(&b, "💼 Dealer: %s ❓\n\n", g.dealerHand[0])

		for _, id := range g.order {
			p := g.players[id]
			fmt.Fprintf(&b, "%s %s: %s (%d)\n",
				statusEmoji(p.Status), p.Name, formatHand(p.Hand), HandValue(p.Hand))
			switch p.Status {
			case StatusBusted:
				b.WriteString("   💥 BUSTED!\n")
			case StatusStood:
				b.WriteString("   ✋ STOOD\n")
			}
			b.WriteString("\n")
		}

	case StateFinished:
		b.WriteString("🏁 Game Finished! 🏁\n\n")

		dealerValue := HandValue(g.dealerHand)
		fmt.Fprintf(&b, "💼 Dealer: %s (%d)", formatHand(g.dealerHand), dealerValue)
		if dealerValue > 21 {
			b.WriteString(" 💥 BUSTED!")
		}
		b.WriteString("\n\n")

		for _, id := range g.order {
			p := g.players[id]
			fmt.Fprintf(&b, "%s %s: %s (%d) - %s",
				resultEmoji(p.Result), p.Name, formatHand(p.Hand), HandValue(p.Hand),
				resultText(p.Result))
			if p.GameScore > 0 {
				b.WriteString(" +1")
			} else if p.GameScore < 0 {
				b.WriteString(" -1")
			}
			fmt.Fprintf(&b, " | Total: %d\n", p.TotalScore)
		}
	}

	return b.String()
}

// resultText is the wording shown next to a player's final hand.
func resultText(r Result) string {
	switch r {
	case ResultWin:
		return "WIN! 🎉"
	case ResultLose:
		return "Lose"
	case ResultPush:
		return "Push (Tie)"
	case ResultBust:
		return "Busted! 💥"
	case ResultDealerBust:
		return "Dealer Busted! 🎉"
	default:
		return ""
	}
}

// FormatLeaderboard renders the session standings, best score first.
func FormatLeaderboard(standings []Standing) string {
	var b strings.Builder
	b.WriteString("📈 Leaderboard 📈\n\n")

	medals := []string{"🥇", "🥈", "🥉"}
	for i, s := range standings {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Fprintf(&b, "%s %s: %d points\n", rank, s.Name, s.TotalScore)
	}

	return b.String()
}

// FormatRules renders the /rules reply.
func FormatRules() string {
	return `🎯 Multiplayer Blackjack Rules:

Goal: Beat the dealer by having a hand value closer to 21 without going over.

Card Values:
- Number cards = face value (2-10)
- Face cards (J, Q, K) = 10
- Ace = 1 or 11 (whichever is better)

Game Flow:
1. Players join the game
2. Each player gets 2 cards face up
3. Dealer gets 1 card face up, 1 face down
4. Players take turns:
   - Hit: Take another card
   - Stand: Keep current hand
5. If you go over 21, you BUST and lose
6. After all players finish, dealer reveals hidden card
7. Dealer must hit until they have 17 or more
8. Compare hands with dealer

Winning:
- Beat the dealer's hand without busting
- If dealer busts, all remaining players win
- Tie = push

Scoring:
- Win: +1 point
- Loss: -1 point
- Push: 0 points

Good luck! 🍀`
}

// FormatHelp renders the /start help reply.
func FormatHelp() string {
	return `🎮 Multiplayer Blackjack Bot 🎮

Commands for Groups:
/blackjack - Start a new multiplayer blackjack game
/rules - Show blackjack rules
/score - Show player scores
/cleanup - Clean up inactive games (admin)

How to Play in Groups:
1. Use /blackjack to create a game
2. Others click "Join Game"
3. Creator clicks "Start Game"
4. Take turns hitting or standing
5. Beat the dealer without going over 21!

Have fun! 🃏`
}
