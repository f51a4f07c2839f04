package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/forecast"
)

var upcomingDays int

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Charges due in the next days",
	RunE:  runUpcoming,
}

func init() {
	upcomingCmd.Flags().IntVarP(&upcomingDays, "days", "n", 0, "Lookahead window in days (default from config)")
	rootCmd.AddCommand(upcomingCmd)
}

func runUpcoming(_ *cobra.Command, _ []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	days := upcomingDays
	if days <= 0 {
		days = data.Config.General.UpcomingDays
	}
	now := today()
	cur := data.Settings.MainCurrency

	ups := forecast.Upcoming(data.Subs, data.Settings, data.Rates, now, days)
	if len(ups) == 0 {
		fmt.Printf("\n  Nothing due in the next %d days.\n", days)
		return nil
	}

	total := 0.0
	rows := make([][]string, 0, len(ups)+2)
	for _, up := range ups {
		rows = append(rows, []string{
			cli.FormatDate(up.Date),
			cli.FormatRelativeDays(up.Date, now),
			cli.Truncate(up.Subscription.Name, 26),
			cli.FormatMoney(up.Amount, cur),
		})
		total += up.Amount
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", "", cli.FormatMoney(total, cur)})

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("UPCOMING  Next %dd", days)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
	fmt.Println()

	return nil
}
