package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/rates"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	mainCurrency := cfg.General.MainCurrency
	rounding := cfg.General.RoundWholeNumbers
	themeName := cfg.Appearance.Theme
	upcomingStr := strconv.Itoa(cfg.General.UpcomingDays)
	fetchNow := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Display currency").
				Description("All totals and forecasts are shown in this currency.").
				Options(
					huh.NewOption("US Dollar (USD)", "USD"),
					huh.NewOption("Euro (EUR)", "EUR"),
					huh.NewOption("British Pound (GBP)", "GBP"),
					huh.NewOption("Swedish Krona (SEK)", "SEK"),
					huh.NewOption("Japanese Yen (JPY)", "JPY"),
					huh.NewOption("Swiss Franc (CHF)", "CHF"),
					huh.NewOption("Canadian Dollar (CAD)", "CAD"),
					huh.NewOption("Australian Dollar (AUD)", "AUD"),
				).
				Value(&mainCurrency),
			huh.NewConfirm().
				Title("Round totals to whole numbers?").
				Value(&rounding),
			huh.NewInput().
				Title("Upcoming window (days)").
				Validate(validInterval).
				Value(&upcomingStr),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Catppuccin Mocha", "catppuccin-mocha"),
					huh.NewOption("Tokyo Night", "tokyo-night"),
				).
				Value(&themeName),
			huh.NewConfirm().
				Title("Fetch exchange rates now?").
				Value(&fetchNow),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.MainCurrency = mainCurrency
	cfg.General.RoundWholeNumbers = rounding
	cfg.Appearance.Theme = themeName
	if n, err := strconv.Atoi(upcomingStr); err == nil && n > 0 {
		cfg.General.UpcomingDays = n
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("\n  Saved %s\n", config.ConfigPath())

	if fetchNow {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		fresh, err := rates.NewClient(cfg.Rates.ProviderURL).Fetch(context.Background(), mainCurrency)
		if err != nil {
			fmt.Printf("  Rate fetch failed (%v); run 'subtrack rates --refresh' later.\n", err)
		} else if err := s.SaveRates(fresh); err == nil {
			fmt.Printf("  Cached %d exchange rates (base %s)\n", len(fresh.Rates), fresh.Base)
		}
	}

	fmt.Println("\n  All set. Try: subtrack add")
	return nil
}
