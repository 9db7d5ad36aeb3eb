package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/TheSilent01/ryanair-bot/internal/fares"
)

// Callback data values used by the inline keyboard.
const (
	cbCheckPrices = "check_prices"
	cbLowestPrice = "lowest_price"
	cbAlertPrefix = "alert_"
)

// NewCallbackHandler returns the handler routing all inline keyboard callbacks.
func NewCallbackHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return callbackHandler{deps}.Handle
}

type callbackHandler struct {
	deps HandlerDeps
}

func (h callbackHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "callback")

	query := update.CallbackQuery
	if query == nil {
		return
	}

	// Always answer the callback so the client stops its spinner, even when
	// the originating message is no longer accessible.
	if _, err := b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{CallbackQueryID: query.ID}); err != nil {
		log.WarnContext(ctx, "Failed to answer callback query", "error", err, "callback_query_id", query.ID)
	}

	var chatID int64
	switch {
	case query.Message.Message != nil:
		chatID = query.Message.Message.Chat.ID
	case query.Message.InaccessibleMessage != nil:
		chatID = query.Message.InaccessibleMessage.Chat.ID
	default:
		log.WarnContext(ctx, "Callback without originating chat", "data", query.Data)
		return
	}

	log.InfoContext(ctx, "Handling callback", "chat_id", chatID, "data", query.Data)

	switch {
	case query.Data == cbCheckPrices:
		h.sendPrices(ctx, b, chatID, log)
	case query.Data == cbLowestPrice:
		h.sendLowest(ctx, b, chatID, log)
	case strings.HasPrefix(query.Data, cbAlertPrefix):
		h.setPresetAlert(ctx, b, chatID, strings.TrimPrefix(query.Data, cbAlertPrefix), log)
	default:
		log.WarnContext(ctx, "Unknown callback data", "data", query.Data)
	}
}

func (h callbackHandler) sendPrices(ctx context.Context, b *tgbot.Bot, chatID int64, log *slog.Logger) {
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

func (h callbackHandler) sendLowest(ctx context.Context, b *tgbot.Bot, chatID int64, log *slog.Logger) {
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

func (h callbackHandler) setPresetAlert(ctx context.Context, b *tgbot.Bot, chatID int64, raw string, log *slog.Logger) {
	target, ok := parseTarget(raw)
	if !ok {
		log.WarnContext(ctx, "Invalid alert preset", "data", raw)
		return
	}

	if err := h.deps.Store.UpsertAlert(ctx, chatID, target); err != nil {
		log.ErrorContext(ctx, "Failed to save preset alert", "error", err, "chat_id", chatID)
		sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	origin, destination := h.deps.FareSvc.Route()
	lowest := currentLowest(ctx, h.deps, log)
	sendMarkdown(ctx, b, log, chatID, alertSetMessage(target, lowest, origin, destination))
}
