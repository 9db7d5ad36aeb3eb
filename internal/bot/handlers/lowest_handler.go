package handlers

import (
	"context"
	"errors"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/TheSilent01/ryanair-bot/internal/fares"
)

// NewLowestHandler returns a handler for the /lowest command.
func NewLowestHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return lowestHandler{deps}.Handle
}

// lowestHandler replies with the cheapest fare in the configured window.
type lowestHandler struct {
	deps HandlerDeps
}

func (h lowestHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "lowest")

	if update.Message == nil {
		log.WarnContext(ctx, "Lowest handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /lowest command", "chat_id", chatID)

	sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.Fetching)

	lowest, err := h.deps.FareSvc.Lowest(ctx, h.deps.Config.Route.WindowDays)
	if err != nil {
		if errors.Is(err, fares.ErrNoFares) {
			sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.NoFlights)
			return
		}
		log.ErrorContext(ctx, "Failed to fetch lowest fare", "error", err, "chat_id", chatID)
		sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	origin, destination := h.deps.FareSvc.Route()
	sendMarkdown(ctx, b, log, chatID, lowestMessage(lowest, origin, destination))
}
