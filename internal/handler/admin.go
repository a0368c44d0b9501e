// Package handler provides Telegram bot command and callback handlers.
package handler

import (
	"fmt"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-blackjack-bot/internal/blackjack"
	"telegram-blackjack-bot/internal/config"
)

// AdminHandler handles admin-only maintenance commands. Admin permission
// is enforced by middleware on the route group.
type AdminHandler struct {
	cfg     *config.Config
	sweeper *blackjack.Sweeper
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cfg *config.Config, sweeper *blackjack.Sweeper) *AdminHandler {
	return &AdminHandler{
		cfg:     cfg,
		sweeper: sweeper,
	}
}

// HandleCleanup handles the /cleanup command: runs a sweep on demand with
// the admin threshold, which is tighter than the background sweeper's.
func (h *AdminHandler) HandleCleanup(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	removed := h.sweeper.Sweep(h.cfg.Sweep.AdminThreshold)

	log.Info().
		Int64("admin_id", sender.ID).
		Int("removed", removed).
		Dur("threshold", h.cfg.Sweep.AdminThreshold).
		Msg("Manual cleanup executed")

	return c.Reply(fmt.Sprintf("🧹 Cleaned up %d inactive games.", removed))
}
