package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewCheckNowHandler returns a handler for the admin-only /checknow command,
// which runs the price sweep immediately instead of waiting for the schedule.
func NewCheckNowHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return checkNowHandler{deps}.Handle
}

type checkNowHandler struct {
	deps HandlerDeps
}

func (h checkNowHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "checknow")

	if update.Message == nil {
		log.WarnContext(ctx, "CheckNow handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /checknow command", "chat_id", chatID)

	sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.Fetching)

	if err := h.deps.Sweep(ctx); err != nil {
		log.ErrorContext(ctx, "On-demand price sweep failed", "error", err, "chat_id", chatID)
		sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	sendPlain(ctx, b, log, chatID, "✅ Price check completed. Alerts were sent where targets are met.")
}
