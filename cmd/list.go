package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/currency"
	"github.com/theirongolddev/subtrack/internal/forecast"
	"github.com/theirongolddev/subtrack/internal/schedule"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscriptions with next due dates",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include paused and canceled subscriptions")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}
	if len(data.Subs) == 0 {
		fmt.Println("\n  No subscriptions yet. Add one with: subtrack add")
		return nil
	}

	now := today()
	cur := data.Settings.MainCurrency

	rows := make([][]string, 0, len(data.Subs))
	for _, sub := range data.Subs {
		if !listAll && !schedule.IsActive(sub, now) {
			continue
		}

		next := "-"
		if schedule.IsActive(sub, now) {
			if d, err := schedule.NextPaymentDate(sub, now); err == nil {
				next = cli.FormatDate(d)
			}
		}

		monthly := currency.Round(
			currency.Convert(forecast.MonthlyEquivalent(sub), sub.Currency, cur, data.Rates),
			data.Settings.RoundWholeNumbers)

		rows = append(rows, []string{
			fmt.Sprintf("#%d %s", sub.ID, cli.Truncate(sub.Name, 24)),
			cli.Truncate(sub.Category, 14),
			cli.FormatMoney(sub.Amount, sub.Currency),
			cli.FormatSchedule(sub),
			cli.FormatMoney(monthly, cur),
			next,
			cli.StatusBadge(sub.Status),
		})
	}

	if len(rows) == 0 {
		fmt.Println("\n  No active subscriptions. Use --all to include paused and canceled.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Subscription", "Category", "Price", "Schedule", "Monthly", "Next payment", "Status"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
