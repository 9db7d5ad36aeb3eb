package database

import "time"

// Alert is a per-chat price alert. A chat has at most one alert row;
// setting a new target replaces the previous one.
type Alert struct {
	ChatID      int64     `db:"chat_id"`
	TargetPrice float64   `db:"target_price"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// PriceSnapshot records the lowest observed fare for a route at a point in
// time. Snapshots feed the /stats trend view and the CLI without refetching.
type PriceSnapshot struct {
	ID          uint      `db:"id"`
	Origin      string    `db:"origin"`
	Destination string    `db:"destination"`
	Price       float64   `db:"price"`
	Currency    string    `db:"currency"`
	FareDate    string    `db:"fare_date"` // YYYY-MM-DD departure day of the fare
	CheckedAt   time.Time `db:"checked_at"`
}
