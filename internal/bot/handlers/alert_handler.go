package handlers

import (
	"context"
	"math"
	"strconv"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewAlertHandler returns a handler for the /alert command.
func NewAlertHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return alertHandler{deps}.Handle
}

// alertHandler sets a price alert for the chat from the command argument.
type alertHandler struct {
	deps HandlerDeps
}

func (h alertHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "alert")

	if update.Message == nil {
		log.WarnContext(ctx, "Alert handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /alert command", "chat_id", chatID)

	arg := commandArgument(update.Message.Text)
	if arg == "" {
		sendMarkdown(ctx, b, log, chatID, h.deps.Config.Messages.ProvideTarget)
		return
	}

	target, ok := parseTarget(arg)
	if !ok {
		sendMarkdown(ctx, b, log, chatID, h.deps.Config.Messages.InvalidTarget)
		return
	}

	if err := h.deps.Store.UpsertAlert(ctx, chatID, target); err != nil {
		log.ErrorContext(ctx, "Failed to save alert", "error", err, "chat_id", chatID)
		sendPlain(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	origin, destination := h.deps.FareSvc.Route()
	lowest := currentLowest(ctx, h.deps, log)
	sendMarkdown(ctx, b, log, chatID, alertSetMessage(target, lowest, origin, destination))
}

// commandArgument extracts the first argument of a command message, stripping
// the command itself and any @botname suffix.
func commandArgument(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// parseTarget parses an alert target price. ParseFloat accepts NaN and the
// infinities, which would make a stored alert fire on every sweep or never,
// so only finite positive values pass.
func parseTarget(arg string) (float64, bool) {
	target, err := strconv.ParseFloat(arg, 64)
	if err != nil || math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		return 0, false
	}
	return target, true
}
