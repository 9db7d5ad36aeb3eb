package handlers

import (
	"context"
	"errors"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/TheSilent01/ryanair-bot/internal/database"
)

// NewMyAlertHandler returns a handler for the /myalert command.
func NewMyAlertHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return myAlertHandler{deps}.Handle
}

// myAlertHandler shows the chat's active alert and how it compares to the
// current lowest fare.
type myAlertHandler struct {
	deps HandlerDeps
}

func (h myAlertHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "myalert")

	if update.Message == nil {
		log.WarnContext(ctx, "MyAlert handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /myalert command", "chat_id", chatID)

	alert, err := h.deps.Store.GetAlert(ctx, chatID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			sendMarkdown(ctx, b, log, chatID, h.deps.Config.Messages.NoActiveAlert)
			return
		}
		log.ErrorContext(ctx, "Failed to load alert", "error", err, "chat_id", chatID)
		sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if !alert.Active {
		sendMarkdown(ctx, b, log, chatID, h.deps.Config.Messages.NoActiveAlert)
		return
	}

	origin, destination := h.deps.FareSvc.Route()
	lowest := currentLowest(ctx, h.deps, log)
	sendMarkdown(ctx, b, log, chatID, myAlertMessage(alert, lowest, origin, destination))
}
