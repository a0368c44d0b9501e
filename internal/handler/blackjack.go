// Package handler provides Telegram bot command and callback handlers.
package handler

import (
	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-blackjack-bot/internal/blackjack"
	"telegram-blackjack-bot/internal/config"
)

// BlackjackHandler handles the blackjack commands and button callbacks.
type BlackjackHandler struct {
	cfg      *config.Config
	registry *blackjack.Registry
}

// NewBlackjackHandler creates a new BlackjackHandler.
func NewBlackjackHandler(cfg *config.Config, registry *blackjack.Registry) *BlackjackHandler {
	return &BlackjackHandler{
		cfg:      cfg,
		registry: registry,
	}
}

// displayName returns the name shown at the table for a Telegram user.
func displayName(u *tele.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// HandleStart handles the /start and /help commands.
func (h *BlackjackHandler) HandleStart(c tele.Context) error {
	return c.Reply(blackjack.FormatHelp())
}

// HandleBlackjack handles the /blackjack command: shows the chat's
// existing game, or creates one with the sender as creator and first
// player.
func (h *BlackjackHandler) HandleBlackjack(c tele.Context) error {
	chat := c.Chat()
	sender := c.Sender()
	if chat == nil || sender == nil {
		return nil
	}

	if chat.Type == tele.ChatPrivate {
		return c.Reply("❌ Blackjack can only be played in group chats")
	}

	g, created := h.registry.Create(chat.ID, sender.ID, displayName(sender))
	if created {
		log.Info().
			Int64("chat_id", chat.ID).
			Int64("creator_id", sender.ID).
			Msg("Created blackjack game")
	}

	return c.Reply(blackjack.FormatGame(g), blackjack.Keyboard(g))
}

// HandleRules handles the /rules command.
func (h *BlackjackHandler) HandleRules(c tele.Context) error {
	return c.Reply(blackjack.FormatRules())
}

// HandleScore handles the /score command, showing the chat's current
// game display with its running totals.
func (h *BlackjackHandler) HandleScore(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	g, ok := h.registry.Get(chat.ID)
	if !ok {
		return c.Reply("No active game in this group. Use /blackjack to start one!")
	}

	return c.Reply(blackjack.FormatGame(g))
}

// HandleCallback dispatches blackjack button presses. Precondition
// violations (wrong turn, full table, non-creator control presses) are
// answered with callback alerts; anything unexpected is logged and
// answered with a generic error so the process never dies on a button.
func (h *BlackjackHandler) HandleCallback(c tele.Context) error {
	callback := c.Callback()
	sender := c.Sender()
	chat := c.Chat()
	if callback == nil || sender == nil || chat == nil {
		return nil
	}

	action := blackjack.DecodeCallback(trimCallbackData(callback.Data))
	if action == "" {
		return nil
	}

	log.Debug().
		Int64("chat_id", chat.ID).
		Int64("user_id", sender.ID).
		Str("action", action).
		Msg("Blackjack callback")

	g, ok := h.registry.Get(chat.ID)
	if !ok {
		return c.Edit("No active game in this group. Use /blackjack to start one!")
	}
	g.Touch()

	var err error
	switch action {
	case blackjack.ActionJoin:
		err = h.handleJoin(c, g)
	case blackjack.ActionStartGame:
		err = h.handleStartGame(c, g)
	case blackjack.ActionHit:
		err = h.handleHit(c, g)
	case blackjack.ActionStand:
		err = h.handleStand(c, g)
	case blackjack.ActionStatus:
		err = h.refresh(c, g)
	case blackjack.ActionRematch:
		err = h.handleRematch(c, g)
	case blackjack.ActionLeaderboard:
		err = h.handleLeaderboard(c, g)
	case blackjack.ActionCancel:
		err = h.handleCancel(c, g)
	default:
		return respondAlert(c, "❌ Unknown action")
	}

	if err != nil {
		log.Error().Err(err).
			Int64("chat_id", chat.ID).
			Str("action", action).
			Msg("Blackjack callback failed")
		return respondAlert(c, "❌ An error occurred while processing your request. Please try again.")
	}
	return nil
}

// trimCallbackData strips the \f prefix telebot v3 may add to callback
// data.
func trimCallbackData(data string) string {
	if len(data) > 0 && data[0] == '\f' {
		return data[1:]
	}
	return data
}

// respondAlert answers the callback with a popup alert.
func respondAlert(c tele.Context, text string) error {
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}

// refresh re-renders the game message with state-appropriate controls.
func (h *BlackjackHandler) refresh(c tele.Context, g *blackjack.Game) error {
	return c.Edit(blackjack.FormatGame(g), blackjack.Keyboard(g))
}

func (h *BlackjackHandler) handleJoin(c tele.Context, g *blackjack.Game) error {
	sender := c.Sender()
	if !g.AddPlayer(sender.ID, displayName(sender)) {
		return respondAlert(c, "Cannot join game (already started, full, or already joined)")
	}
	return h.refresh(c, g)
}

func (h *BlackjackHandler) handleStartGame(c tele.Context, g *blackjack.Game) error {
	sender := c.Sender()
	if sender.ID != g.CreatorID() || g.State() != blackjack.StateWaiting {
		return respondAlert(c, "Only the game creator can start the game")
	}
	if !g.Start() {
		return respondAlert(c, "Need at least 1 player to start")
	}
	return h.refresh(c, g)
}

func (h *BlackjackHandler) handleHit(c tele.Context, g *blackjack.Game) error {
	sender := c.Sender()
	switch g.Hit(sender.ID) {
	case blackjack.OutcomeNotYourTurn:
		return respondAlert(c, "Wait for your turn!")
	case blackjack.OutcomeBust:
		// Busted: the turn moves on. A non-busting hit leaves the same
		// player active, so no advance there.
		g.NextPlayer()
	}
	return h.refresh(c, g)
}

func (h *BlackjackHandler) handleStand(c tele.Context, g *blackjack.Game) error {
	sender := c.Sender()
	if g.Stand(sender.ID) == blackjack.OutcomeNotYourTurn {
		return respondAlert(c, "Wait for your turn!")
	}
	g.NextPlayer()
	return h.refresh(c, g)
}

func (h *BlackjackHandler) handleRematch(c tele.Context, g *blackjack.Game) error {
	sender := c.Sender()
	if sender.ID != g.CreatorID() || g.State() != blackjack.StateFinished {
		return respondAlert(c, "Only creator can start rematch after game ends")
	}
	if !g.Start() {
		return respondAlert(c, "Error starting new game")
	}
	return h.refresh(c, g)
}

func (h *BlackjackHandler) handleLeaderboard(c tele.Context, g *blackjack.Game) error {
	return respondAlert(c, blackjack.FormatLeaderboard(g.Standings()))
}

func (h *BlackjackHandler) handleCancel(c tele.Context, g *blackjack.Game) error {
	sender := c.Sender()
	if sender.ID != g.CreatorID() {
		return respondAlert(c, "Only the game creator can cancel")
	}
	h.registry.Remove(g.ChatID())
	log.Info().
		Int64("chat_id", g.ChatID()).
		Int64("user_id", sender.ID).
		Msg("Game cancelled by creator")
	return c.Edit("❌ Game cancelled by creator.")
}
