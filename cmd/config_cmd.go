package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Keys:
  main_currency        display currency for all totals (e.g. USD, EUR)
  round_whole_numbers  true/false, round totals to whole units
  upcoming_days        default lookahead for the upcoming command
  theme                TUI color theme
  provider_url         exchange-rate provider base URL
  auto_refresh_hours   rate cache max age before auto-refresh (0 disables)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Config file        %s", config.ConfigPath())
	if !config.Exists() {
		fmt.Print("  (not created yet, showing defaults)")
	}
	fmt.Println()
	fmt.Printf("  main_currency        %s\n", cfg.General.MainCurrency)
	fmt.Printf("  round_whole_numbers  %v\n", cfg.General.RoundWholeNumbers)
	fmt.Printf("  upcoming_days        %d\n", cfg.General.UpcomingDays)
	fmt.Printf("  theme                %s\n", cfg.Appearance.Theme)
	fmt.Printf("  rates provider       %s\n", providerLabel(cfg))
	fmt.Printf("  rates auto-refresh   every %dh\n", cfg.Rates.AutoRefreshHours)
	fmt.Println()

	return nil
}

func providerLabel(cfg config.Config) string {
	if cfg.Rates.ProviderURL == "" {
		return "default"
	}
	return cfg.Rates.ProviderURL
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	key, value := strings.ToLower(args[0]), args[1]
	switch key {
	case "main_currency":
		cfg.General.MainCurrency = strings.ToUpper(value)
	case "round_whole_numbers":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("round_whole_numbers wants true/false, got %q", value)
		}
		cfg.General.RoundWholeNumbers = b
	case "upcoming_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("upcoming_days wants a positive number, got %q", value)
		}
		cfg.General.UpcomingDays = n
	case "theme":
		cfg.Appearance.Theme = value
	case "provider_url":
		cfg.Rates.ProviderURL = value
	case "auto_refresh_hours":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("auto_refresh_hours wants a non-negative number, got %q", value)
		}
		cfg.Rates.AutoRefreshHours = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("\n  Set %s = %s\n", key, value)
	return nil
}
