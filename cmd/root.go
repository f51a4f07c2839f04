package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/rates"
	"github.com/theirongolddev/subtrack/internal/store"
)

var (
	flagDBPath   string
	flagCurrency string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "subtrack",
	Short: "Subscription cost tracker",
	Long:  "Track recurring subscriptions: due dates, monthly totals, forecasts, and category breakdowns.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDBPath, "db", "d", config.DefaultDBPath(), "Path to the subscription database")
	rootCmd.PersistentFlags().StringVarP(&flagCurrency, "currency", "c", "", "Override the display currency for this run")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// appData bundles everything a reporting command reads: the subscription
// snapshot, a settings value, and the cached rate table.
type appData struct {
	Subs     []model.Subscription
	Settings model.Settings
	Rates    model.CurrencyRates
	Config   config.Config
}

// openStore opens the database at the configured path.
func openStore() (*store.Store, error) {
	return store.Open(flagDBPath)
}

// loadData is the shared load path for reporting commands: open the store,
// snapshot the subscriptions and rates, refresh the rate table when it has
// gone stale and a network fetch succeeds. A failed refresh is reported but
// never fatal; conversion falls back to the cached (or identity) table.
func loadData() (appData, error) {
	cfg, err := config.Load()
	if err != nil {
		return appData{}, err
	}

	s, err := openStore()
	if err != nil {
		return appData{}, err
	}
	defer func() { _ = s.Close() }()

	subs, err := s.List()
	if err != nil {
		return appData{}, fmt.Errorf("loading subscriptions: %w", err)
	}

	settings := cfg.Settings()
	if flagCurrency != "" {
		settings.MainCurrency = flagCurrency
	}

	rt, err := s.LoadRates()
	if err != nil {
		return appData{}, fmt.Errorf("loading rates: %w", err)
	}

	maxAge := time.Duration(cfg.Rates.AutoRefreshHours) * time.Hour
	if maxAge > 0 && rates.Stale(rt, maxAge) {
		if !flagQuiet {
			fmt.Fprintln(os.Stderr, "  Refreshing exchange rates...")
		}
		fresh, err := rates.NewClient(cfg.Rates.ProviderURL).Fetch(context.Background(), settings.MainCurrency)
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Rate refresh failed (%v), using cached table\n", err)
			}
		} else {
			if err := s.SaveRates(fresh); err == nil {
				rt = fresh
			}
		}
	}

	return appData{Subs: subs, Settings: settings, Rates: rt, Config: cfg}, nil
}

// today returns the current day at day granularity.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
