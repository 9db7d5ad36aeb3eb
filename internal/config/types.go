// Package config manages application configuration from config.yaml,
// environment variables, and default values.
package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration parameters for all components
// of the fare tracker: logging, Telegram settings, the Ryanair API client,
// the tracked route, database, scheduler, and user-facing messages.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Ryanair   RyanairConfig   `mapstructure:"ryanair"`
	Route     RouteConfig     `mapstructure:"route"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds bot credentials and runtime identity.
type TelegramConfig struct {
	Token       string `mapstructure:"token"         validate:"required"`
	AdminUserID int64  `mapstructure:"admin_user_id" validate:"omitempty,gt=0"`

	// BotInfo is populated at startup from GetMe and is not read from config.
	BotInfo *models.User `mapstructure:"-"`
}

// RyanairConfig holds settings for the Ryanair public API client.
type RyanairConfig struct {
	BaseURL    string        `mapstructure:"base_url"    validate:"required,url"`
	Timeout    time.Duration `mapstructure:"timeout"     validate:"min=1s,max=5m"`
	MaxRetries int           `mapstructure:"max_retries" validate:"min=0,max=10"`
	RetryDelay time.Duration `mapstructure:"retry_delay" validate:"min=0"`
}

// RouteConfig describes the tracked route and search horizons.
type RouteConfig struct {
	Origin      string `mapstructure:"origin"      validate:"required,len=3,alpha"`
	Destination string `mapstructure:"destination" validate:"required,len=3,alpha"`

	// WindowDays is the default horizon for /prices and /lowest.
	WindowDays int `mapstructure:"window_days" validate:"min=1,max=365"`
	// StatsDays is the horizon used by /stats.
	StatsDays int `mapstructure:"stats_days" validate:"min=1,max=365"`
	// SnapshotRetention bounds how long observed prices are kept.
	SnapshotRetention time.Duration `mapstructure:"snapshot_retention" validate:"min=24h"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// TaskConfig configures a single scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// MessagesConfig holds user-facing bot messages that do not depend on
// fetched fare data. Responses built from live data live in the handlers.
type MessagesConfig struct {
	Fetching      string `mapstructure:"fetching"       validate:"required"`
	NoFlights     string `mapstructure:"no_flights"     validate:"required"`
	GeneralError  string `mapstructure:"general_error"  validate:"required"`
	NotAuthorized string `mapstructure:"not_authorized" validate:"required"`
	ProvideTarget string `mapstructure:"provide_target" validate:"required"`
	InvalidTarget string `mapstructure:"invalid_target" validate:"required"`
	AlertStopped  string `mapstructure:"alert_stopped"  validate:"required"`
	NoActiveAlert string `mapstructure:"no_active_alert" validate:"required"`
}
