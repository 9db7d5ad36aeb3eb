// Package main contains the entrypoint for the Telegram fare tracker bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/TheSilent01/ryanair-bot/internal/bot"
	"github.com/TheSilent01/ryanair-bot/internal/bot/handlers"
	"github.com/TheSilent01/ryanair-bot/internal/bot/tasks"
	"github.com/TheSilent01/ryanair-bot/internal/config"
	"github.com/TheSilent01/ryanair-bot/internal/database"
	"github.com/TheSilent01/ryanair-bot/internal/fares"
	"github.com/TheSilent01/ryanair-bot/internal/logger"
	"github.com/TheSilent01/ryanair-bot/internal/ryanair"
	"github.com/TheSilent01/ryanair-bot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// API client, bot, scheduler), handles graceful shutdown, and returns an exit
// code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	apiClient := ryanair.NewClient(cfg.Ryanair, log)
	fareSvc := fares.NewService(apiClient, store, cfg.Route, log)

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info",
		"bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	taskMap := tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger:  log,
		Store:   store,
		FareSvc: fareSvc,
		Config:  cfg,
		TgBot:   tg,
	})

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, taskMap)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	hDeps := handlers.HandlerDeps{
		Logger:  log,
		Config:  cfg,
		Store:   store,
		FareSvc: fareSvc,
		Sweep: func(ctx context.Context) error {
			return sched.RunTaskNow(ctx, tasks.TaskPriceCheck)
		},
	}

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	if _, err := tg.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "start", Description: "Welcome message and route overview"},
			{Command: "prices", Description: "All flight prices"},
			{Command: "lowest", Description: "Best deal"},
			{Command: "stats", Description: "Price statistics"},
			{Command: "alert", Description: "Set price alert"},
			{Command: "myalert", Description: "Check your alert"},
			{Command: "stopalert", Description: "Disable alert"},
			{Command: "help", Description: "Show commands"},
		},
	}); err != nil {
		log.Warn("Failed to set bot command list", "error", err)
	}

	app := bot.NewBot(log, cfg, db, store, fareSvc, tg, sched)

	log.Info("Starting bot...",
		"route", cfg.Route.Origin+"-"+cfg.Route.Destination)
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
