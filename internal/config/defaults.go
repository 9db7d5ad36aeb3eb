package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	// Ryanair API defaults
	DefaultRyanairBaseURL    = "https://www.ryanair.com/api"
	DefaultRyanairTimeout    = 15 * time.Second
	DefaultRyanairMaxRetries = 2
	DefaultRyanairRetryDelay = 2 * time.Second

	// Route defaults: the Agadir -> Fez route the bot was built around
	DefaultRouteOrigin       = "AGA"
	DefaultRouteDestination  = "FEZ"
	DefaultRouteWindowDays   = 30
	DefaultRouteStatsDays    = 60
	DefaultSnapshotRetention = 90 * 24 * time.Hour

	// Database defaults
	DefaultDBPath = "fares.db"

	// Scheduler defaults
	DefaultPriceCheckSchedule  = "*/30 * * * *"
	DefaultMaintenanceSchedule = "0 4 * * *"
)

// Default bot messages
var DefaultMessages = MessagesConfig{
	Fetching:      "🔍 Fetching prices... please wait...",
	NoFlights:     "❌ No flights found for this route",
	GeneralError:  "❌ An error occurred. Please try again later.",
	NotAuthorized: "🚫 You are not authorized to use this command.",
	ProvideTarget: "❌ Please specify a target price\nExample: `/alert 150` (alert when price ≤ 150)",
	InvalidTarget: "❌ Invalid price. Please enter a positive number\nExample: `/alert 150`",
	AlertStopped:  "✅ Price alert stopped!",
	NoActiveAlert: "❌ You don't have an active price alert\nUse `/alert PRICE` to set one",
}
