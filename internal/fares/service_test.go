package fares_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TheSilent01/ryanair-bot/internal/config"
	"github.com/TheSilent01/ryanair-bot/internal/database"
	"github.com/TheSilent01/ryanair-bot/internal/fares"
	"github.com/TheSilent01/ryanair-bot/internal/ryanair"
)

type stubClient struct {
	ryanair.Client

	cheapest *ryanair.CheapestFares
	err      error
}

func (c *stubClient) CheapestPerDay(_ context.Context, _, _ string, _, _ time.Time) (*ryanair.CheapestFares, error) {
	return c.cheapest, c.err
}

type stubStore struct {
	database.Store

	saved []*database.PriceSnapshot
}

func (s *stubStore) SaveSnapshot(_ context.Context, snap *database.PriceSnapshot) error {
	s.saved = append(s.saved, snap)
	return nil
}

func fareResponse(days ...*ryanair.DayFare) *ryanair.CheapestFares {
	cf := &ryanair.CheapestFares{}
	cf.Outbound.Fares = days
	return cf
}

func priced(day string, value float64, departure, arrival string) *ryanair.DayFare {
	return &ryanair.DayFare{
		Day:           day,
		DepartureDate: departure,
		ArrivalDate:   arrival,
		Price:         &ryanair.Price{Value: value, CurrencyCode: "MAD"},
	}
}

func TestValidFares(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input *ryanair.CheapestFares
		want  int
	}{
		{
			name:  "nil response",
			input: nil,
			want:  0,
		},
		{
			name:  "all valid",
			input: fareResponse(priced("2026-09-10", 120, "", ""), priced("2026-09-11", 95, "", "")),
			want:  2,
		},
		{
			name: "nil entries skipped",
			input: fareResponse(
				nil,
				priced("2026-09-10", 120, "", ""),
				nil,
			),
			want: 1,
		},
		{
			name: "unavailable and sold out skipped",
			input: fareResponse(
				&ryanair.DayFare{Day: "2026-09-10", Unavailable: true, Price: &ryanair.Price{Value: 50}},
				&ryanair.DayFare{Day: "2026-09-11", SoldOut: true, Price: &ryanair.Price{Value: 50}},
				priced("2026-09-12", 88, "", ""),
			),
			want: 1,
		},
		{
			name: "missing or non-positive price skipped",
			input: fareResponse(
				&ryanair.DayFare{Day: "2026-09-10"},
				&ryanair.DayFare{Day: "2026-09-11", Price: &ryanair.Price{Value: 0}},
				&ryanair.DayFare{Day: "2026-09-12", Price: &ryanair.Price{Value: -5}},
			),
			want: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fares.ValidFares(tt.input)
			if len(got) != tt.want {
				t.Errorf("ValidFares() returned %d fares, want %d", len(got), tt.want)
			}
		})
	}
}

func TestValidFares_ExtractsTimes(t *testing.T) {
	t.Parallel()

	input := fareResponse(priced("2026-09-10", 120, "2026-09-10T09:35:00.000", "2026-09-10T10:40:00.000"))

	got := fares.ValidFares(input)
	if len(got) != 1 {
		t.Fatalf("ValidFares() returned %d fares, want 1", len(got))
	}
	if got[0].Departure != "09:35" {
		t.Errorf("Departure = %q, want %q", got[0].Departure, "09:35")
	}
	if got[0].Arrival != "10:40" {
		t.Errorf("Arrival = %q, want %q", got[0].Arrival, "10:40")
	}
}

func TestValidFares_ShortTimestamp(t *testing.T) {
	t.Parallel()

	input := fareResponse(priced("2026-09-10", 120, "bad", ""))

	got := fares.ValidFares(input)
	if len(got) != 1 {
		t.Fatalf("ValidFares() returned %d fares, want 1", len(got))
	}
	if got[0].Departure != "" {
		t.Errorf("Departure = %q, want empty for unparseable timestamp", got[0].Departure)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	window := []fares.Fare{
		{Date: "2026-09-11", Price: 95, Currency: "MAD"},
		{Date: "2026-09-10", Price: 120, Currency: "MAD"},
		{Date: "2026-09-12", Price: 145, Currency: "MAD"},
	}

	st := fares.Summarize(window)

	if st.Count != 3 {
		t.Errorf("Count = %d, want 3", st.Count)
	}
	if st.Min != 95 {
		t.Errorf("Min = %v, want 95", st.Min)
	}
	if st.Max != 145 {
		t.Errorf("Max = %v, want 145", st.Max)
	}
	if st.Avg != 120 {
		t.Errorf("Avg = %v, want 120", st.Avg)
	}
	if st.BestDate != "2026-09-11" {
		t.Errorf("BestDate = %q, want 2026-09-11", st.BestDate)
	}
	if st.Currency != "MAD" {
		t.Errorf("Currency = %q, want MAD", st.Currency)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	st := fares.Summarize(nil)
	if st.Count != 0 || st.Min != 0 || st.Max != 0 || st.Avg != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero stats", st)
	}
}

func TestSortByDate(t *testing.T) {
	t.Parallel()

	input := []fares.Fare{
		{Date: "2026-09-12", Price: 80},
		{Date: "2026-09-10", Price: 120},
		{Date: "2026-09-11", Price: 95},
	}

	got := fares.SortByDate(input)

	wantOrder := []string{"2026-09-10", "2026-09-11", "2026-09-12"}
	for i, want := range wantOrder {
		if got[i].Date != want {
			t.Errorf("got[%d].Date = %q, want %q", i, got[i].Date, want)
		}
	}

	// Input must not be reordered.
	if input[0].Date != "2026-09-12" {
		t.Errorf("SortByDate modified its input, input[0].Date = %q", input[0].Date)
	}
}

func TestFare_Weekday(t *testing.T) {
	t.Parallel()

	f := fares.Fare{Date: "2026-09-10"}
	if got := f.Weekday(); got != "Thursday" {
		t.Errorf("Weekday() = %q, want Thursday", got)
	}
	if got := f.WeekdayShort(); got != "Thu" {
		t.Errorf("WeekdayShort() = %q, want Thu", got)
	}

	bad := fares.Fare{Date: "not-a-date"}
	if got := bad.Weekday(); got != "" {
		t.Errorf("Weekday() on invalid date = %q, want empty", got)
	}
}

func TestService_Window(t *testing.T) {
	t.Parallel()

	route := config.RouteConfig{Origin: "AGA", Destination: "FEZ", WindowDays: 30}
	client := &stubClient{
		cheapest: fareResponse(
			priced("2026-09-10", 120, "", ""),
			priced("2026-09-11", 95, "", ""),
			priced("2026-09-12", 145, "", ""),
		),
	}
	svc := fares.NewService(client, &stubStore{}, route, nil)

	window, err := svc.Window(context.Background(), 30)
	if err != nil {
		t.Fatalf("Window() error = %v", err)
	}
	if len(window) != 3 {
		t.Fatalf("Window() returned %d fares, want 3", len(window))
	}
	if window[0].Price != 95 {
		t.Errorf("Window()[0].Price = %v, want cheapest first (95)", window[0].Price)
	}
}

func TestService_WindowFrom(t *testing.T) {
	t.Parallel()

	client := &stubClient{
		cheapest: fareResponse(
			priced("2026-10-02", 130, "", ""),
			priced("2026-10-05", 110, "", ""),
		),
	}
	svc := fares.NewService(client, &stubStore{}, config.RouteConfig{Origin: "AGA", Destination: "FEZ"}, nil)

	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	window, err := svc.WindowFrom(context.Background(), from, from.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("WindowFrom() error = %v", err)
	}
	if len(window) != 2 || window[0].Price != 110 {
		t.Errorf("WindowFrom() = %+v, want 2 fares cheapest first", window)
	}
}

func TestService_Window_NoFares(t *testing.T) {
	t.Parallel()

	client := &stubClient{cheapest: fareResponse(nil, &ryanair.DayFare{Day: "2026-09-10", Unavailable: true})}
	svc := fares.NewService(client, &stubStore{}, config.RouteConfig{Origin: "AGA", Destination: "FEZ"}, nil)

	_, err := svc.Window(context.Background(), 30)
	if !errors.Is(err, fares.ErrNoFares) {
		t.Errorf("Window() error = %v, want ErrNoFares", err)
	}
}

func TestService_Window_ClientError(t *testing.T) {
	t.Parallel()

	apiErr := errors.New("api down")
	svc := fares.NewService(&stubClient{err: apiErr}, &stubStore{},
		config.RouteConfig{Origin: "AGA", Destination: "FEZ"}, nil)

	_, err := svc.Window(context.Background(), 30)
	if !errors.Is(err, apiErr) {
		t.Errorf("Window() error = %v, want wrapped api error", err)
	}
}

func TestService_Lowest(t *testing.T) {
	t.Parallel()

	client := &stubClient{
		cheapest: fareResponse(
			priced("2026-09-10", 120, "", ""),
			priced("2026-09-11", 95, "2026-09-11T07:15:00.000", "2026-09-11T08:20:00.000"),
		),
	}
	svc := fares.NewService(client, &stubStore{}, config.RouteConfig{Origin: "AGA", Destination: "FEZ"}, nil)

	lowest, err := svc.Lowest(context.Background(), 30)
	if err != nil {
		t.Fatalf("Lowest() error = %v", err)
	}
	if lowest.Price != 95 || lowest.Date != "2026-09-11" {
		t.Errorf("Lowest() = %+v, want the 95 MAD fare on 2026-09-11", lowest)
	}
}

func TestService_RecordLowest(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	svc := fares.NewService(&stubClient{}, store, config.RouteConfig{Origin: "AGA", Destination: "FEZ"}, nil)

	err := svc.RecordLowest(context.Background(), &fares.Fare{Date: "2026-09-11", Price: 95, Currency: "MAD"})
	if err != nil {
		t.Fatalf("RecordLowest() error = %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d snapshots, want 1", len(store.saved))
	}

	snap := store.saved[0]
	if snap.Origin != "AGA" || snap.Destination != "FEZ" {
		t.Errorf("snapshot route = %s-%s, want AGA-FEZ", snap.Origin, snap.Destination)
	}
	if snap.Price != 95 || snap.FareDate != "2026-09-11" {
		t.Errorf("snapshot = %+v, want price 95 on 2026-09-11", snap)
	}
}
