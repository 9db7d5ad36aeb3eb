package handlers

import (
	"context"
	"errors"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/TheSilent01/ryanair-bot/internal/database"
)

// NewStopAlertHandler returns a handler for the /stopalert command.
func NewStopAlertHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return stopAlertHandler{deps}.Handle
}

// stopAlertHandler deactivates the chat's price alert.
type stopAlertHandler struct {
	deps HandlerDeps
}

func (h stopAlertHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stopalert")

	if update.Message == nil {
		log.WarnContext(ctx, "StopAlert handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /stopalert command", "chat_id", chatID)

	err := h.deps.Store.DeactivateAlert(ctx, chatID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			sendMarkdown(ctx, b, log, chatID, h.deps.Config.Messages.NoActiveAlert)
			return
		}
		log.ErrorContext(ctx, "Failed to deactivate alert", "error", err, "chat_id", chatID)
		sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.AlertStopped)
}
