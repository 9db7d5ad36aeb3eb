package handlers

import (
	"context"
	"log/slog"

	"github.com/TheSilent01/ryanair-bot/internal/config"
	"github.com/TheSilent01/ryanair-bot/internal/database"
	"github.com/TheSilent01/ryanair-bot/internal/fares"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Store   database.Store
	FareSvc *fares.Service

	// Sweep triggers an immediate price check (the same function the
	// scheduler runs). Used by the admin /checknow command.
	Sweep func(ctx context.Context) error
}
