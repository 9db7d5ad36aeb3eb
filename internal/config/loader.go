package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrConfiguration indicates a configuration loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Load reads and validates configuration from:
//  1. Default values
//  2. The config file at path (optional; defaults apply when absent)
//  3. BOT_* environment variables, plus TELEGRAM_BOT_TOKEN
//
// A .env file in the working directory is loaded first so hosting-platform
// style env files work locally too.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The deployment docs name this variable explicitly, so bind it in
	// addition to the BOT_-prefixed form.
	if err := v.BindEnv("telegram.token", "BOT_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("%w: failed to bind token env var: %v", ErrConfiguration, err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
		}
		slog.Info("Config file not found, using defaults and environment", "path", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	cfg.Route.Origin = strings.ToUpper(cfg.Route.Origin)
	cfg.Route.Destination = strings.ToUpper(cfg.Route.Destination)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	slog.Info("Configuration loaded",
		"log_level", cfg.Log.Level,
		"route", cfg.Route.Origin+"-"+cfg.Route.Destination,
		"db_path", cfg.Database.Path)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	// No default token exists, but admin_user_id needs a default so viper
	// knows the key and picks up BOT_TELEGRAM_ADMIN_USER_ID.
	v.SetDefault("telegram.admin_user_id", 0)

	v.SetDefault("ryanair.base_url", DefaultRyanairBaseURL)
	v.SetDefault("ryanair.timeout", DefaultRyanairTimeout)
	v.SetDefault("ryanair.max_retries", DefaultRyanairMaxRetries)
	v.SetDefault("ryanair.retry_delay", DefaultRyanairRetryDelay)

	v.SetDefault("route.origin", DefaultRouteOrigin)
	v.SetDefault("route.destination", DefaultRouteDestination)
	v.SetDefault("route.window_days", DefaultRouteWindowDays)
	v.SetDefault("route.stats_days", DefaultRouteStatsDays)
	v.SetDefault("route.snapshot_retention", DefaultSnapshotRetention)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("scheduler.tasks.price_check.enabled", true)
	v.SetDefault("scheduler.tasks.price_check.schedule", DefaultPriceCheckSchedule)
	v.SetDefault("scheduler.tasks.db_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.db_maintenance.schedule", DefaultMaintenanceSchedule)

	v.SetDefault("messages.fetching", DefaultMessages.Fetching)
	v.SetDefault("messages.no_flights", DefaultMessages.NoFlights)
	v.SetDefault("messages.general_error", DefaultMessages.GeneralError)
	v.SetDefault("messages.not_authorized", DefaultMessages.NotAuthorized)
	v.SetDefault("messages.provide_target", DefaultMessages.ProvideTarget)
	v.SetDefault("messages.invalid_target", DefaultMessages.InvalidTarget)
	v.SetDefault("messages.alert_stopped", DefaultMessages.AlertStopped)
	v.SetDefault("messages.no_active_alert", DefaultMessages.NoActiveAlert)
}
