package handlers

import (
	"context"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/TheSilent01/ryanair-bot/internal/fares"
)

// sendMarkdown sends a Markdown-formatted message, logging failures.
func sendMarkdown(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}

// sendPlain sends an unformatted message, logging failures.
func sendPlain(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}

// currentLowest fetches the lowest fare for the configured window,
// returning nil when fares are unavailable. Used where the reply should
// degrade gracefully rather than fail.
func currentLowest(ctx context.Context, deps HandlerDeps, log *slog.Logger) *fares.Fare {
	lowest, err := deps.FareSvc.Lowest(ctx, deps.Config.Route.WindowDays)
	if err != nil {
		log.WarnContext(ctx, "Could not fetch current lowest fare", "error", err)
		return nil
	}
	return lowest
}

// mainKeyboard is the inline keyboard attached to the /start banner.
func mainKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "✈️ Check All Prices", CallbackData: cbCheckPrices}},
			{{Text: "🏆 Lowest Price", CallbackData: cbLowestPrice}},
			{
				{Text: "🔔 Alert 150", CallbackData: cbAlertPrefix + "150"},
				{Text: "🔔 Alert 200", CallbackData: cbAlertPrefix + "200"},
			},
		},
	}
}
