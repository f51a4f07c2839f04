package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/forecast"
)

var spentCmd = &cobra.Command{
	Use:   "spent [id]",
	Short: "Lifetime spend per subscription",
	Long: `Show how much each subscription has cost since its start date. Paused and
canceled subscriptions count charges up to the moment their status changed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSpent,
}

func init() {
	rootCmd.AddCommand(spentCmd)
}

func runSpent(_ *cobra.Command, args []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}
	if len(data.Subs) == 0 {
		fmt.Println("\n  No subscriptions yet.")
		return nil
	}

	now := today()
	cur := data.Settings.MainCurrency

	subs := data.Subs
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad subscription id %q", args[0])
		}
		subs = nil
		for _, sub := range data.Subs {
			if sub.ID == id {
				subs = append(subs, sub)
				break
			}
		}
		if len(subs) == 0 {
			return fmt.Errorf("no subscription #%d", id)
		}
	}

	type spentRow struct {
		name   string
		status string
		since  string
		amount float64
	}
	var out []spentRow
	total := 0.0
	for _, sub := range subs {
		amount := forecast.TotalSpent(sub, data.Settings, data.Rates, now)
		out = append(out, spentRow{
			name:   sub.Name,
			status: cli.StatusBadge(sub.Status),
			since:  cli.FormatDate(sub.StartDate),
			amount: amount,
		})
		total += amount
	}
	sort.Slice(out, func(i, j int) bool { return out[i].amount > out[j].amount })

	rows := make([][]string, 0, len(out)+2)
	for _, r := range out {
		rows = append(rows, []string{
			cli.Truncate(r.name, 26), r.since, r.status, cli.FormatMoney(r.amount, cur),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", "", cli.FormatMoney(total, cur)})

	fmt.Println()
	fmt.Println(cli.RenderTitle("LIFETIME SPEND"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Subscription", "Since", "Status", "Spent"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
