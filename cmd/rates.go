package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/rates"
)

var ratesRefresh bool

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show or refresh the exchange-rate snapshot",
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().BoolVarP(&ratesRefresh, "refresh", "r", false, "Fetch fresh rates from the provider")
	rootCmd.AddCommand(ratesCmd)
}

func runRates(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	base := cfg.General.MainCurrency
	if flagCurrency != "" {
		base = flagCurrency
	}

	rt, err := s.LoadRates()
	if err != nil {
		return err
	}

	if ratesRefresh || len(rt.Rates) == 0 {
		fresh, err := rates.NewClient(cfg.Rates.ProviderURL).Fetch(context.Background(), base)
		if err != nil {
			return fmt.Errorf("fetching rates: %w", err)
		}
		if err := s.SaveRates(fresh); err != nil {
			return fmt.Errorf("caching rates: %w", err)
		}
		rt = fresh
	}

	fmt.Printf("\n  Base %s, updated %s, %d currencies\n\n", rt.Base, cli.FormatAge(rt.UpdatedAt), len(rt.Rates))

	// Common currencies first, everything else on request via the full dump.
	shown := []string{"EUR", "USD", "GBP", "JPY", "CHF", "CAD", "AUD", "SEK", "NOK", "DKK"}
	rows := make([][]string, 0, len(shown))
	for _, code := range shown {
		if rate, ok := rt.Rates[code]; ok && code != rt.Base {
			rows = append(rows, []string{code, fmt.Sprintf("%.4f", rate)})
		}
	}
	if len(rows) == 0 {
		var codes []string
		for code := range rt.Rates {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			if code == rt.Base {
				continue
			}
			rows = append(rows, []string{code, fmt.Sprintf("%.4f", rt.Rates[code])})
			if len(rows) == 15 {
				break
			}
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Code", fmt.Sprintf("Per 1 %s", rt.Base)},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
