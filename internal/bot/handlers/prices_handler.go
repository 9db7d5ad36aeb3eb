package handlers

import (
	"context"
	"errors"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/TheSilent01/ryanair-bot/internal/fares"
)

// NewPricesHandler returns a handler for the /prices command.
func NewPricesHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return pricesHandler{deps}.Handle
}

// pricesHandler replies with all fares in the configured window.
type pricesHandler struct {
	deps HandlerDeps
}

func (h pricesHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "prices")

	if update.Message == nil {
		log.WarnContext(ctx, "Prices handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /prices command", "chat_id", chatID)

	sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.Fetching)

	window, err := h.deps.FareSvc.Window(ctx, h.deps.Config.Route.WindowDays)
	if err != nil {
		if errors.Is(err, fares.ErrNoFares) {
			sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.NoFlights)
			return
		}
		log.ErrorContext(ctx, "Failed to fetch fare window", "error", err, "chat_id", chatID)
		sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	origin, destination := h.deps.FareSvc.Route()
	sendMarkdown(ctx, b, log, chatID, pricesMessage(window, origin, destination))
}
