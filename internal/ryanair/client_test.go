package ryanair_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/TheSilent01/ryanair-bot/internal/config"
	"github.com/TheSilent01/ryanair-bot/internal/ryanair"
)

func testClient(t *testing.T, handler http.Handler, maxRetries int) ryanair.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return ryanair.NewClient(config.RyanairConfig{
		BaseURL:    srv.URL,
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
		RetryDelay: 10 * time.Millisecond,
	}, nil)
}

func TestClient_Airports(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/views/locate/5/airports/en/active" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua == "" || ua == "Go-http-client/1.1" {
			t.Errorf("expected browser User-Agent, got %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"iataCode":"AGA","name":"Agadir","city":{"name":"Agadir"},"country":{"name":"Morocco"}},
			{"iataCode":"FEZ","name":"Fes","city":{"name":"Fes"},"country":{"name":"Morocco"}}
		]`))
	}), 0)

	airports, err := client.Airports(context.Background())
	if err != nil {
		t.Fatalf("Airports() error = %v", err)
	}
	if len(airports) != 2 {
		t.Fatalf("Airports() returned %d entries, want 2", len(airports))
	}
	if airports[0].IATACode != "AGA" || airports[0].Country.Name != "Morocco" {
		t.Errorf("Airports()[0] = %+v", airports[0])
	}
}

func TestClient_SearchAirports(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"iataCode":"AGA","name":"Agadir","city":{"name":"Agadir"}},
			{"iataCode":"FEZ","name":"Fes","city":{"name":"Fes"}},
			{"iataCode":"STN","name":"London Stansted","city":{"name":"London"}}
		]`))
	}), 0)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "by city", query: "london", want: 1},
		{name: "by code lowercase", query: "fez", want: 1},
		{name: "by partial name", query: "aga", want: 1},
		{name: "no match", query: "zzz", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := client.SearchAirports(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("SearchAirports(%q) error = %v", tt.query, err)
			}
			if len(got) != tt.want {
				t.Errorf("SearchAirports(%q) returned %d, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestClient_CheapestPerDay(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/farfnd/v4/oneWayFares/AGA/FEZ/cheapestPerDay" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("outboundDateFrom"); got != "2026-09-10" {
			t.Errorf("outboundDateFrom = %q, want 2026-09-10", got)
		}
		if got := r.URL.Query().Get("outboundDateTo"); got != "2026-10-10" {
			t.Errorf("outboundDateTo = %q, want 2026-10-10", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outbound":{"fares":[
			{"day":"2026-09-10","price":{"value":120.5,"currencyCode":"MAD"}},
			null,
			{"day":"2026-09-12","unavailable":true}
		]}}`))
	}), 0)

	cf, err := client.CheapestPerDay(context.Background(), "aga", "fez", from, to)
	if err != nil {
		t.Fatalf("CheapestPerDay() error = %v", err)
	}
	if len(cf.Outbound.Fares) != 3 {
		t.Fatalf("got %d fare entries, want 3", len(cf.Outbound.Fares))
	}
	if cf.Outbound.Fares[0].Price.Value != 120.5 {
		t.Errorf("first fare price = %v, want 120.5", cf.Outbound.Fares[0].Price.Value)
	}
	if cf.Outbound.Fares[1] != nil {
		t.Errorf("null entry decoded as %+v, want nil", cf.Outbound.Fares[1])
	}
}

func TestClient_MonthlyFares(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("outboundDateFrom"); got != "2026-02-01" {
			t.Errorf("outboundDateFrom = %q, want 2026-02-01", got)
		}
		if got := r.URL.Query().Get("outboundDateTo"); got != "2026-02-28" {
			t.Errorf("outboundDateTo = %q, want 2026-02-28", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outbound":{"fares":[]}}`))
	}), 0)

	if _, err := client.MonthlyFares(context.Background(), "AGA", "FEZ", "2026-02"); err != nil {
		t.Fatalf("MonthlyFares() error = %v", err)
	}

	if _, err := client.MonthlyFares(context.Background(), "AGA", "FEZ", "02/2026"); err == nil {
		t.Error("MonthlyFares() with malformed month should fail")
	}
}

func TestClient_Availability(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/booking/v4/en-gb/availability" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("ADT") != "1" || q.Get("Origin") != "AGA" || q.Get("Destination") != "FEZ" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("IncludeConnectingFlights") != "false" || q.Get("ToUs") != "AGREED" {
			t.Errorf("missing fixed query parameters: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"currency":"MAD","trips":[{"origin":"AGA","destination":"FEZ","dates":[
			{"dateOut":"2026-09-10T00:00:00.000","flights":[
				{"flightNumber":"FR 1234","time":["2026-09-10T09:35:00.000","2026-09-10T10:40:00.000"],
				 "regularFare":{"fares":[{"type":"ADT","amount":120.5}]}}
			]}
		]}]}`))
	}), 0)

	avail, err := client.Availability(context.Background(), ryanair.AvailabilityQuery{
		Origin:      "aga",
		Destination: "fez",
		DateOut:     "2026-09-10",
		Adults:      1,
		FlexDaysOut: 3,
	})
	if err != nil {
		t.Fatalf("Availability() error = %v", err)
	}
	if avail.Currency != "MAD" {
		t.Errorf("Currency = %q, want MAD", avail.Currency)
	}
	if len(avail.Trips) != 1 || len(avail.Trips[0].Dates) != 1 {
		t.Fatalf("unexpected trips structure: %+v", avail.Trips)
	}

	flight := avail.Trips[0].Dates[0].Flights[0]
	if flight.FlightNumber != "FR 1234" {
		t.Errorf("FlightNumber = %q", flight.FlightNumber)
	}
	if flight.RegularFare.Fares[0].Amount != 120.5 {
		t.Errorf("fare amount = %v, want 120.5", flight.RegularFare.Fares[0].Amount)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}), 2)

	if _, err := client.Airports(context.Background()); err != nil {
		t.Fatalf("Airports() after retries error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), 1)

	if _, err := client.Airports(context.Background()); err == nil {
		t.Fatal("Airports() should fail when the server keeps erroring")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server hit %d times, want 2 (initial + 1 retry)", got)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Airports(ctx); err == nil {
		t.Fatal("Airports() with cancelled context should fail")
	}
}
