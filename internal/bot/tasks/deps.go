// Package tasks implements the scheduled background jobs of the fare tracker:
// the periodic price sweep that drives alerts, and database maintenance.
package tasks

import (
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"github.com/TheSilent01/ryanair-bot/internal/config"
	"github.com/TheSilent01/ryanair-bot/internal/database"
	"github.com/TheSilent01/ryanair-bot/internal/fares"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Store   database.Store
	FareSvc *fares.Service
	Config  *config.Config
	TgBot   *tgbot.Bot
}
