package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/forecast"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Monthly cost by category",
	RunE:  runBreakdown,
}

func init() {
	rootCmd.AddCommand(breakdownCmd)
}

func runBreakdown(_ *cobra.Command, _ []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	cats := forecast.Breakdown(data.Subs, data.Settings, data.Rates)
	if len(cats) == 0 {
		fmt.Println("\n  No active subscriptions to break down.")
		return nil
	}

	cur := data.Settings.MainCurrency
	maxTotal := cats[0].MonthlyTotal

	fmt.Println()
	fmt.Println(cli.RenderTitle("CATEGORY BREAKDOWN  monthly run-rate"))
	fmt.Println()

	rows := make([][]string, 0, len(cats))
	total := 0.0
	count := 0
	for _, cc := range cats {
		rows = append(rows, []string{
			cli.Truncate(cc.Category, 20),
			fmt.Sprintf("%d", cc.Count),
			cli.FormatMoney(cc.MonthlyTotal, cur),
			cli.FormatPercent(cc.SharePercent),
			cli.RenderHorizontalBar(cc.MonthlyTotal, maxTotal, 20),
		})
		total += cc.MonthlyTotal
		count += cc.Count
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", fmt.Sprintf("%d", count), cli.FormatMoney(total, cur), "", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Subs", "Monthly", "Share", ""},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
