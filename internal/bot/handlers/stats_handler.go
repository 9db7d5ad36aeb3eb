package handlers

import (
	"context"
	"errors"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/TheSilent01/ryanair-bot/internal/fares"
)

// trendLimit bounds the snapshot listing in the /stats reply.
const trendLimit = 5

// NewStatsHandler returns a handler for the /stats command.
func NewStatsHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return statsHandler{deps}.Handle
}

// statsHandler replies with price statistics over the stats horizon plus the
// recent recorded price trend.
type statsHandler struct {
	deps HandlerDeps
}

func (h statsHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats")

	if update.Message == nil {
		log.WarnContext(ctx, "Stats handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /stats command", "chat_id", chatID)

	sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.Fetching)

	days := h.deps.Config.Route.StatsDays
	st, err := h.deps.FareSvc.Stats(ctx, days)
	if err != nil {
		if errors.Is(err, fares.ErrNoFares) {
			sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.NoFlights)
			return
		}
		log.ErrorContext(ctx, "Failed to compute fare stats", "error", err, "chat_id", chatID)
		sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	trend, err := h.deps.FareSvc.Trend(ctx, trendLimit)
	if err != nil {
		// Trend data is optional decoration for the stats reply.
		log.WarnContext(ctx, "Failed to load price trend", "error", err)
	}

	origin, destination := h.deps.FareSvc.Route()
	sendMarkdown(ctx, b, log, chatID, statsMessage(st, trend, days, origin, destination))
}
