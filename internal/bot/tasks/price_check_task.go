package tasks

import (
	"context"
	"errors"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/TheSilent01/ryanair-bot/internal/fares"
)

// newPriceCheckTask creates the scheduled task that checks the current lowest
// fare and notifies every chat whose active alert target has been reached.
func newPriceCheckTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", TaskPriceCheck)

	return func(ctx context.Context) error {
		alerts, err := deps.Store.ActiveAlerts(ctx)
		if err != nil {
			return fmt.Errorf("loading active alerts: %w", err)
		}
		if len(alerts) == 0 {
			log.DebugContext(ctx, "No active alerts, skipping price check")
			return nil
		}

		lowest, err := deps.FareSvc.Lowest(ctx, deps.Config.Route.WindowDays)
		if err != nil {
			if errors.Is(err, fares.ErrNoFares) {
				log.InfoContext(ctx, "No fares available, nothing to check")
				return nil
			}
			return fmt.Errorf("fetching lowest fare: %w", err)
		}

		if err := deps.FareSvc.RecordLowest(ctx, lowest); err != nil {
			// Snapshot history is best-effort; alerting still proceeds.
			log.WarnContext(ctx, "Failed to record price snapshot", "error", err)
		}

		log.InfoContext(ctx, "Price check completed",
			"lowest_price", lowest.Price, "currency", lowest.Currency,
			"fare_date", lowest.Date, "active_alerts", len(alerts))

		notified := 0
		for _, alert := range alerts {
			if lowest.Price > alert.TargetPrice {
				continue
			}

			_, err := deps.TgBot.SendMessage(ctx, &tgbot.SendMessageParams{
				ChatID:    alert.ChatID,
				Text:      alertNotification(alert.TargetPrice, lowest, deps.Config.Route.Origin, deps.Config.Route.Destination),
				ParseMode: models.ParseModeMarkdown,
			})
			if err != nil {
				log.ErrorContext(ctx, "Failed to send price alert",
					"chat_id", alert.ChatID, "error", err)
				continue
			}
			notified++
		}

		if notified > 0 {
			log.InfoContext(ctx, "Price alerts sent", "count", notified)
		}
		return nil
	}
}

func alertNotification(target float64, lowest *fares.Fare, origin, destination string) string {
	return fmt.Sprintf(`🚨 *PRICE ALERT!* 🚨
━━━━━━━━━━━━━━━━━━━━━━

🎯 Your target: *%.2f %s*
💰 Current price: *%.2f %s*
📅 Date: *%s*
✈️ Route: %s → %s

🎉 The price is at or below your target!

━━━━━━━━━━━━━━━━━━━━━━
🔗 Book now at ryanair.com`,
		target, lowest.Currency, lowest.Price, lowest.Currency, lowest.Date, origin, destination)
}
