package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/currency"
	"github.com/theirongolddev/subtrack/internal/forecast"
	"github.com/theirongolddev/subtrack/internal/schedule"
)

var calendarMonth string

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal"},
	Short:   "Month calendar of upcoming charges",
	RunE:    runCalendar,
}

func init() {
	calendarCmd.Flags().StringVarP(&calendarMonth, "month", "m", "", "Month to show (YYYY-MM, default current)")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, _ []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	now := today()
	month := now
	if calendarMonth != "" {
		month, err = time.Parse("2006-01", calendarMonth)
		if err != nil {
			return fmt.Errorf("bad --month %q, use YYYY-MM", calendarMonth)
		}
	}

	cur := data.Settings.MainCurrency

	// Day-of-month -> charge count, and charge detail lines in date order.
	dueDays := make(map[int]int)
	type charge struct {
		date   time.Time
		name   string
		amount float64
	}
	var charges []charge

	for _, sub := range data.Subs {
		if !schedule.IsActive(sub, month) {
			continue
		}
		for d := range schedule.PaymentDatesForMonth(sub, month) {
			dueDays[d.Day()]++
			charges = append(charges, charge{
				date: d,
				name: sub.Name,
				amount: currency.Round(
					currency.Convert(sub.Amount, sub.Currency, cur, data.Rates),
					data.Settings.RoundWholeNumbers),
			})
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderCalendar(month, dueDays, now))

	if len(charges) == 0 {
		fmt.Println("  No charges this month.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(charges)+2)
	for _, want := range orderedDays(dueDays) {
		for _, c := range charges {
			if c.date.Day() == want {
				rows = append(rows, []string{
					cli.FormatDay(c.date),
					cli.Truncate(c.name, 26),
					cli.FormatMoney(c.amount, cur),
				})
			}
		}
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL", "",
		cli.FormatMoney(forecast.MonthlyTotal(data.Subs, month, data.Settings, data.Rates), cur),
	})

	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
	fmt.Println()

	return nil
}

// orderedDays returns the due days ascending.
func orderedDays(dueDays map[int]int) []int {
	var days []int
	for d := 1; d <= 31; d++ {
		if dueDays[d] > 0 {
			days = append(days, d)
		}
	}
	return days
}
