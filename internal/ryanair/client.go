// Package ryanair implements a client for the public Ryanair fare APIs:
// airport and route listings, availability search, and cheapest-per-day fares.
package ryanair

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/TheSilent01/ryanair-bot/internal/config"
)

const dateLayout = "2006-01-02"

// userAgent mimics a browser; the fare endpoints reject obvious bot agents.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client defines the Ryanair API operations used throughout the application.
type Client interface {
	// Airports lists all active Ryanair airports.
	Airports(ctx context.Context) ([]Airport, error)

	// SearchAirports filters the active airports by name, IATA code, or city.
	SearchAirports(ctx context.Context, query string) ([]Airport, error)

	// Destinations lists routes reachable from the origin airport.
	Destinations(ctx context.Context, origin string) ([]Destination, error)

	// Availability searches scheduled flights and prices for specific dates.
	Availability(ctx context.Context, q AvailabilityQuery) (*Availability, error)

	// CheapestPerDay returns the cheapest one-way fare for each day in [from, to].
	CheapestPerDay(ctx context.Context, origin, destination string, from, to time.Time) (*CheapestFares, error)

	// MonthlyFares returns cheapest-per-day fares covering a whole month (YYYY-MM).
	MonthlyFares(ctx context.Context, origin, destination, yearMonth string) (*CheapestFares, error)
}

type httpClient struct {
	baseURL    string
	hc         *http.Client
	log        *slog.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a Ryanair API client from configuration.
func NewClient(cfg config.RyanairConfig, log *slog.Logger) Client {
	if log == nil {
		log = slog.Default()
	}
	return &httpClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		hc:         &http.Client{Timeout: cfg.Timeout},
		log:        log.With("component", "ryanair_client"),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

func (c *httpClient) Airports(ctx context.Context) ([]Airport, error) {
	var airports []Airport
	if err := c.getJSON(ctx, "/views/locate/5/airports/en/active", nil, &airports); err != nil {
		return nil, fmt.Errorf("fetching airports: %w", err)
	}
	return airports, nil
}

func (c *httpClient) SearchAirports(ctx context.Context, query string) ([]Airport, error) {
	airports, err := c.Airports(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var matches []Airport
	for _, a := range airports {
		if strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.IATACode), q) ||
			strings.Contains(strings.ToLower(a.City.Name), q) {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

func (c *httpClient) Destinations(ctx context.Context, origin string) ([]Destination, error) {
	path := "/views/locate/searchWidget/routes/en/airport/" + url.PathEscape(strings.ToUpper(origin))
	var dests []Destination
	if err := c.getJSON(ctx, path, nil, &dests); err != nil {
		return nil, fmt.Errorf("fetching destinations from %s: %w", origin, err)
	}
	return dests, nil
}

func (c *httpClient) Availability(ctx context.Context, q AvailabilityQuery) (*Availability, error) {
	params := url.Values{
		"ADT":                      {strconv.Itoa(q.Adults)},
		"TEEN":                     {strconv.Itoa(q.Teens)},
		"CHD":                      {strconv.Itoa(q.Children)},
		"INF":                      {strconv.Itoa(q.Infants)},
		"Origin":                   {strings.ToUpper(q.Origin)},
		"Destination":              {strings.ToUpper(q.Destination)},
		"DateOut":                  {q.DateOut},
		"DateIn":                   {q.DateIn},
		"Disc":                     {"0"},
		"promoCode":                {""},
		"IncludeConnectingFlights": {"false"},
		"FlexDaysBeforeOut":        {strconv.Itoa(q.FlexDaysOut)},
		"FlexDaysOut":              {strconv.Itoa(q.FlexDaysOut)},
		"FlexDaysBeforeIn":         {strconv.Itoa(q.FlexDaysIn)},
		"FlexDaysIn":               {strconv.Itoa(q.FlexDaysIn)},
		"ToUs":                     {"AGREED"},
	}

	var avail Availability
	if err := c.getJSON(ctx, "/booking/v4/en-gb/availability", params, &avail); err != nil {
		return nil, fmt.Errorf("searching availability %s-%s: %w", q.Origin, q.Destination, err)
	}
	return &avail, nil
}

func (c *httpClient) CheapestPerDay(ctx context.Context, origin, destination string, from, to time.Time) (*CheapestFares, error) {
	path := fmt.Sprintf("/farfnd/v4/oneWayFares/%s/%s/cheapestPerDay",
		url.PathEscape(strings.ToUpper(origin)), url.PathEscape(strings.ToUpper(destination)))
	params := url.Values{
		"outboundDateFrom": {from.Format(dateLayout)},
		"outboundDateTo":   {to.Format(dateLayout)},
	}

	var fares CheapestFares
	if err := c.getJSON(ctx, path, params, &fares); err != nil {
		return nil, fmt.Errorf("fetching cheapest fares %s-%s: %w", origin, destination, err)
	}
	return &fares, nil
}

func (c *httpClient) MonthlyFares(ctx context.Context, origin, destination, yearMonth string) (*CheapestFares, error) {
	first, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", yearMonth, err)
	}
	last := first.AddDate(0, 1, -1)
	return c.CheapestPerDay(ctx, origin, destination, first, last)
}

// getJSON performs a GET request with browser-like headers and decodes the
// JSON response, retrying transient failures up to maxRetries times.
func (c *httpClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.WarnContext(ctx, "Retrying Ryanair API request",
				"attempt", attempt+1, "max_retries", c.maxRetries, "path", path, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		lastErr = c.doOnce(ctx, u, out)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}
	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *httpClient) doOnce(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
	req.Header.Set("Origin", "https://www.ryanair.com")
	req.Header.Set("Referer", "https://www.ryanair.com/")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.WarnContext(ctx, "Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, resp.Request.URL.Path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	c.log.DebugContext(ctx, "Ryanair API request completed",
		"path", resp.Request.URL.Path, "status", resp.StatusCode, "duration", time.Since(start))
	return nil
}
