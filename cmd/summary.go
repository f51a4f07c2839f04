package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/forecast"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/schedule"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly total, forecast, and year-to-date spend",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	if len(data.Subs) == 0 {
		fmt.Println("\n  No subscriptions yet.")
		fmt.Println("  Add one with: subtrack add")
		return nil
	}

	now := today()
	cur := data.Settings.MainCurrency

	active := 0
	for _, sub := range data.Subs {
		if schedule.IsActive(sub, now) {
			active++
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SUBSCRIPTIONS  " + now.Format("January 2006")))
	fmt.Println()

	rows := [][]string{
		{"Subscriptions", fmt.Sprintf("%d active / %d total", active, len(data.Subs))},
		{"---"},
		{"This month", cli.FormatMoney(forecast.MonthlyTotal(data.Subs, now, data.Settings, data.Rates), cur)},
		{"Average monthly", cli.FormatMoney(forecast.AverageMonthly(data.Subs, data.Settings, data.Rates), cur)},
		{"Yearly forecast", cli.FormatMoney(forecast.YearlyForecast(data.Subs, data.Settings, data.Rates), cur)},
		{"Year to date", cli.FormatMoney(forecast.YearToDateTotal(data.Subs, data.Settings, data.Rates, now), cur)},
	}

	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))

	// 12-month trend, January through December of the current year. The
	// sparkline makes uneven months (weekly subs, annual renewals) visible.
	months := make([]float64, 12)
	for m := 0; m < 12; m++ {
		at := schedule.StartOfYear(now).AddDate(0, m, 0)
		months[m] = forecast.MonthlyTotal(data.Subs, at, data.Settings, data.Rates)
	}
	fmt.Printf("\n  %d by month  %s\n", now.Year(), cli.RenderSparkline(months))

	ups := forecast.Upcoming(data.Subs, data.Settings, data.Rates, now, data.Config.General.UpcomingDays)
	if len(ups) > 0 {
		next := ups[0]
		fmt.Printf("  Next charge  %s  %s  %s\n",
			next.Subscription.Name,
			cli.FormatMoney(next.Amount, cur),
			cli.FormatRelativeDays(next.Date, now))
	}
	printRateFreshness(data.Rates)
	fmt.Println()

	return nil
}

// printRateFreshness warns when totals are being computed from a stale or
// missing rate table.
func printRateFreshness(rt model.CurrencyRates) {
	if len(rt.Rates) == 0 {
		fmt.Println("  Note: no exchange rates cached; foreign amounts shown unconverted.")
		return
	}
	fmt.Printf("  Rates %s (%s)\n", rt.Base, cli.FormatAge(rt.UpdatedAt))
}
