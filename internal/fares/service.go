// Package fares implements the fare domain logic on top of the Ryanair
// client: filtering valid fares, finding the lowest price, computing window
// statistics, and recording observed prices.
package fares

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/TheSilent01/ryanair-bot/internal/config"
	"github.com/TheSilent01/ryanair-bot/internal/database"
	"github.com/TheSilent01/ryanair-bot/internal/ryanair"
)

// ErrNoFares indicates no valid fares were found in the requested window.
var ErrNoFares = errors.New("no fares available")

// Fare is a single day's valid cheapest fare, flattened for display.
type Fare struct {
	Date      string // YYYY-MM-DD
	Price     float64
	Currency  string
	Departure string // HH:MM, may be empty
	Arrival   string // HH:MM, may be empty
}

// Weekday returns the full weekday name of the fare date, or an empty string
// when the date does not parse.
func (f Fare) Weekday() string {
	t, err := time.Parse("2006-01-02", f.Date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// WeekdayShort returns the abbreviated weekday name of the fare date.
func (f Fare) WeekdayShort() string {
	t, err := time.Parse("2006-01-02", f.Date)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}

// Stats summarizes fares in a search window.
type Stats struct {
	Count    int
	Min      float64
	Max      float64
	Avg      float64
	Currency string
	BestDate string
}

// Service provides fare lookups for the configured route.
type Service struct {
	client ryanair.Client
	store  database.Store
	route  config.RouteConfig
	log    *slog.Logger
}

// NewService creates a fare service for the configured route.
func NewService(client ryanair.Client, store database.Store, route config.RouteConfig, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		client: client,
		store:  store,
		route:  route,
		log:    log.With("component", "fares"),
	}
}

// Route returns the tracked route as "AGA" and "FEZ" style IATA codes.
func (s *Service) Route() (origin, destination string) {
	return s.route.Origin, s.route.Destination
}

// Window fetches valid fares for the next `days` days, sorted by price
// ascending. Returns ErrNoFares when nothing valid is available.
func (s *Service) Window(ctx context.Context, days int) ([]Fare, error) {
	now := time.Now()
	return s.WindowFrom(ctx, now, now.AddDate(0, 0, days))
}

// WindowFrom fetches valid fares between two dates, sorted by price ascending.
func (s *Service) WindowFrom(ctx context.Context, from, to time.Time) ([]Fare, error) {
	cf, err := s.client.CheapestPerDay(ctx, s.route.Origin, s.route.Destination, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching fares %s to %s: %w",
			from.Format("2006-01-02"), to.Format("2006-01-02"), err)
	}

	valid := ValidFares(cf)
	if len(valid) == 0 {
		return nil, ErrNoFares
	}

	sort.Slice(valid, func(i, j int) bool { return valid[i].Price < valid[j].Price })
	return valid, nil
}

// Lowest returns the cheapest valid fare within the next `days` days.
func (s *Service) Lowest(ctx context.Context, days int) (*Fare, error) {
	window, err := s.Window(ctx, days)
	if err != nil {
		return nil, err
	}
	return &window[0], nil
}

// Stats computes summary statistics over the next `days` days.
func (s *Service) Stats(ctx context.Context, days int) (*Stats, error) {
	window, err := s.Window(ctx, days)
	if err != nil {
		return nil, err
	}
	return Summarize(window), nil
}

// RecordLowest persists an observed lowest fare as a price snapshot.
func (s *Service) RecordLowest(ctx context.Context, f *Fare) error {
	snap := &database.PriceSnapshot{
		Origin:      s.route.Origin,
		Destination: s.route.Destination,
		Price:       f.Price,
		Currency:    f.Currency,
		FareDate:    f.Date,
	}
	if err := s.store.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	s.log.DebugContext(ctx, "Recorded price snapshot",
		"price", f.Price, "currency", f.Currency, "fare_date", f.Date)
	return nil
}

// Trend returns the most recent recorded snapshots for the route, newest first.
func (s *Service) Trend(ctx context.Context, limit int) ([]database.PriceSnapshot, error) {
	return s.store.RecentSnapshots(ctx, s.route.Origin, s.route.Destination, limit)
}

// ValidFares flattens a cheapest-per-day response, dropping nil entries,
// unavailable or sold-out days, and fares without a positive price.
func ValidFares(cf *ryanair.CheapestFares) []Fare {
	if cf == nil {
		return nil
	}

	var valid []Fare
	for _, df := range cf.Outbound.Fares {
		if df == nil || df.Unavailable || df.SoldOut {
			continue
		}
		if df.Price == nil || df.Price.Value <= 0 {
			continue
		}
		valid = append(valid, Fare{
			Date:      df.Day,
			Price:     df.Price.Value,
			Currency:  df.Price.CurrencyCode,
			Departure: clockTime(df.DepartureDate),
			Arrival:   clockTime(df.ArrivalDate),
		})
	}
	return valid
}

// SortByDate returns a copy of fares ordered by departure date ascending.
func SortByDate(fares []Fare) []Fare {
	byDate := make([]Fare, len(fares))
	copy(byDate, fares)
	sort.Slice(byDate, func(i, j int) bool { return byDate[i].Date < byDate[j].Date })
	return byDate
}

// Summarize computes stats over a non-empty, price-sorted fare window.
func Summarize(window []Fare) *Stats {
	if len(window) == 0 {
		return &Stats{}
	}

	st := &Stats{
		Count:    len(window),
		Min:      window[0].Price,
		Max:      window[0].Price,
		Currency: window[0].Currency,
		BestDate: window[0].Date,
	}

	var sum float64
	for _, f := range window {
		if f.Price < st.Min {
			st.Min = f.Price
			st.BestDate = f.Date
		}
		if f.Price > st.Max {
			st.Max = f.Price
		}
		sum += f.Price
	}
	st.Avg = sum / float64(len(window))
	return st
}

// clockTime extracts HH:MM from an ISO timestamp like 2025-12-20T09:35:00.000.
func clockTime(ts string) string {
	if len(ts) < 16 {
		return ""
	}
	return ts[11:16]
}
