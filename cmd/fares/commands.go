package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheSilent01/ryanair-bot/internal/config"
	"github.com/TheSilent01/ryanair-bot/internal/fares"
	"github.com/TheSilent01/ryanair-bot/internal/ryanair"
)

type clientOptions struct {
	baseURL string
	verbose bool
}

func (o *clientOptions) newClient() ryanair.Client {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.RyanairConfig{
		BaseURL:    config.DefaultRyanairBaseURL,
		Timeout:    config.DefaultRyanairTimeout,
		MaxRetries: config.DefaultRyanairMaxRetries,
		RetryDelay: config.DefaultRyanairRetryDelay,
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	return ryanair.NewClient(cfg, log)
}

func newAirportsCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "airports [query]",
		Short: "List active airports, optionally filtered by name, code, or city",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.newClient()

			var (
				airports []ryanair.Airport
				err      error
			)
			if len(args) == 1 {
				airports, err = client.SearchAirports(cmd.Context(), args[0])
			} else {
				airports, err = client.Airports(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(airports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No airports found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tCITY\tCOUNTRY")
			for _, a := range airports {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.IATACode, a.Name, a.City.Name, a.Country.Name)
			}
			return w.Flush()
		},
	}
}

func newDestinationsCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "destinations <origin>",
		Short: "List routes reachable from an origin airport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dests, err := opts.newClient().Destinations(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(dests) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No destinations found from %s.\n", strings.ToUpper(args[0]))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tAIRPORT\tCOUNTRY")
			for _, d := range dests {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					d.ArrivalAirport.IATACode, d.ArrivalAirport.Name, d.ArrivalAirport.Country.Name)
			}
			return w.Flush()
		},
	}
}

func newCheapestCmd(opts *clientOptions) *cobra.Command {
	var (
		days   int
		lowest bool
	)

	cmd := &cobra.Command{
		Use:   "cheapest <origin> <destination>",
		Short: "Show the cheapest fare per day over the coming days",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			cf, err := opts.newClient().CheapestPerDay(cmd.Context(), args[0], args[1], now, now.AddDate(0, 0, days))
			if err != nil {
				return err
			}
			return printFares(cmd, args[0], args[1], fares.ValidFares(cf), lowest)
		},
	}

	cmd.Flags().IntVar(&days, "days", config.DefaultRouteWindowDays, "Number of days to search ahead")
	cmd.Flags().BoolVar(&lowest, "lowest", false, "Print only the single cheapest fare")
	return cmd
}

func newMonthlyCmd(opts *clientOptions) *cobra.Command {
	var lowest bool

	cmd := &cobra.Command{
		Use:   "monthly <origin> <destination> <YYYY-MM>",
		Short: "Show the cheapest fare for each day of a month",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := opts.newClient().MonthlyFares(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return printFares(cmd, args[0], args[1], fares.ValidFares(cf), lowest)
		},
	}

	cmd.Flags().BoolVar(&lowest, "lowest", false, "Print only the single cheapest fare")
	return cmd
}

func newSearchCmd(opts *clientOptions) *cobra.Command {
	var (
		date   string
		flex   int
		adults int
	)

	cmd := &cobra.Command{
		Use:   "search <origin> <destination>",
		Short: "Search scheduled flights and prices around a specific date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", date)
			}

			avail, err := opts.newClient().Availability(cmd.Context(), ryanair.AvailabilityQuery{
				Origin:      args[0],
				Destination: args[1],
				DateOut:     date,
				Adults:      adults,
				FlexDaysOut: flex,
			})
			if err != nil {
				return err
			}
			return printAvailability(cmd, avail)
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "Departure date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flex, "flex", 3, "Flexible days before and after the departure date")
	cmd.Flags().IntVar(&adults, "adults", 1, "Number of adult passengers")
	return cmd
}

func printFares(cmd *cobra.Command, origin, destination string, valid []fares.Fare, lowestOnly bool) error {
	if len(valid) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No fares available for %s-%s.\n",
			strings.ToUpper(origin), strings.ToUpper(destination))
		return nil
	}

	if lowestOnly {
		st := fares.Summarize(valid)
		fmt.Fprintf(cmd.OutOrStdout(), "Lowest %s-%s: %.2f %s on %s\n",
			strings.ToUpper(origin), strings.ToUpper(destination), st.Min, st.Currency, st.BestDate)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDAY\tDEPART\tARRIVE\tPRICE")
	for _, f := range fares.SortByDate(valid) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f %s\n",
			f.Date, f.WeekdayShort(), f.Departure, f.Arrival, f.Price, f.Currency)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	st := fares.Summarize(valid)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d fares, min %.2f / avg %.2f / max %.2f %s, best day %s\n",
		st.Count, st.Min, st.Avg, st.Max, st.Currency, st.BestDate)
	return nil
}

func printAvailability(cmd *cobra.Command, avail *ryanair.Availability) error {
	found := false
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tFLIGHT\tDEPART\tARRIVE\tFARE")

	for _, trip := range avail.Trips {
		for _, td := range trip.Dates {
			for _, fl := range td.Flights {
				if fl.RegularFare == nil || len(fl.RegularFare.Fares) == 0 {
					continue
				}
				found = true
				depart, arrive := "", ""
				if len(fl.Time) > 0 {
					depart = fl.Time[0]
				}
				if len(fl.Time) > 1 {
					arrive = fl.Time[1]
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f %s\n",
					td.DateOut, fl.FlightNumber, depart, arrive,
					fl.RegularFare.Fares[0].Amount, avail.Currency)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !found {
		fmt.Fprintln(cmd.OutOrStdout(), "No flights with fares found.")
	}
	return nil
}
