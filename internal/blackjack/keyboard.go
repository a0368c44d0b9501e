package blackjack

import (
	"strings"

	tele "gopkg.in/telebot.v3"
)

// CallbackPrefix is the prefix for all blackjack callback data.
const CallbackPrefix = "bj_"

// Callback actions carried in inline button data.
const (
	ActionJoin        = "join"
	ActionStartGame   = "start_game"
	ActionHit         = "hit"
	ActionStand       = "stand"
	ActionStatus      = "status"
	ActionRematch     = "rematch"
	ActionLeaderboard = "leaderboard"
	ActionCancel      = "cancel"
)

// EncodeCallback encodes an action into callback data.
func EncodeCallback(action string) string {
	return CallbackPrefix + action
}

// DecodeCallback decodes callback data into an action. Returns "" for
// data that does not belong to this game.
func DecodeCallback(data string) string {
	if !strings.HasPrefix(data, CallbackPrefix) {
		return ""
	}
	return strings.TrimPrefix(data, CallbackPrefix)
}

// Keyboard builds the inline keyboard matching the session state: join
// controls while waiting, play controls while in progress (results-only
// once every player is done), and rematch controls when finished.
func Keyboard(g *Game) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	switch g.State() {
	case StateWaiting:
		markup.InlineKeyboard = [][]tele.InlineButton{
			{{Text: "➕ Join Game", Data: EncodeCallback(ActionJoin)}},
			{{Text: "🚀 Start Game", Data: EncodeCallback(ActionStartGame)}},
			{{Text: "❌ Cancel Game", Data: EncodeCallback(ActionCancel)}},
		}

	case StateInProgress:
		if _, ok := g.CurrentPlayerID(); ok {
			markup.InlineKeyboard = [][]tele.InlineButton{
				{
					{Text: "🃏 Hit", Data: EncodeCallback(ActionHit)},
					{Text: "✋ Stand", Data: EncodeCallback(ActionStand)},
				},
				{{Text: "📊 Game Status", Data: EncodeCallback(ActionStatus)}},
			}
		} else {
			markup.InlineKeyboard = [][]tele.InlineButton{
				{{Text: "📊 Show Results", Data: EncodeCallback(ActionStatus)}},
			}
		}

	case StateFinished:
		markup.InlineKeyboard = [][]tele.InlineButton{
			{
				{Text: "🔄 Play Again", Data: EncodeCallback(ActionRematch)},
				{Text: "❌ End Game", Data: EncodeCallback(ActionCancel)},
			},
			{{Text: "📈 Leaderboard", Data: EncodeCallback(ActionLeaderboard)}},
		}
	}

	return markup
}
