package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/model"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a subscription's fields",
	Long: `Edit a subscription. Only the given flags change; the billing anchor is
immutable and has no flag, so the occurrence sequence never shifts under an edit.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editName     string
	editCategory string
	editAmount   float64
	editCurrency string
	editSchedule string
	editInterval int
	editUnit     string
	editStart    string
	editNotes    string
)

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "New name")
	editCmd.Flags().StringVar(&editCategory, "category", "", "New category")
	editCmd.Flags().Float64Var(&editAmount, "amount", 0, "New charge amount")
	editCmd.Flags().StringVar(&editCurrency, "in", "", "New charge currency")
	editCmd.Flags().StringVar(&editSchedule, "schedule", "", "New schedule type")
	editCmd.Flags().IntVar(&editInterval, "every", 0, "New repeat multiplier")
	editCmd.Flags().StringVar(&editUnit, "unit", "", "New custom schedule unit")
	editCmd.Flags().StringVar(&editStart, "start", "", "New start date (YYYY-MM-DD), for lifetime-spend windows")
	editCmd.Flags().StringVar(&editNotes, "notes", "", "New notes")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad subscription id %q", args[0])
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	sub, err := s.Get(id)
	if err != nil {
		return err
	}

	changed := false
	apply := func(flag string, fn func()) {
		if cmd.Flags().Changed(flag) {
			fn()
			changed = true
		}
	}
	apply("name", func() { sub.Name = editName })
	apply("category", func() { sub.Category = editCategory })
	apply("amount", func() { sub.Amount = editAmount })
	apply("in", func() { sub.Currency = editCurrency })
	apply("schedule", func() { sub.ScheduleType = model.ScheduleType(editSchedule) })
	apply("every", func() { sub.IntervalCount = editInterval })
	apply("unit", func() { sub.IntervalUnit = model.IntervalUnit(editUnit) })
	apply("notes", func() { sub.Notes = editNotes })
	if cmd.Flags().Changed("start") {
		start, err := time.Parse("2006-01-02", editStart)
		if err != nil {
			return fmt.Errorf("bad --start date %q: %w", editStart, err)
		}
		sub.StartDate = start
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change; pass at least one field flag")
	}
	if sub.Amount < 0 {
		return fmt.Errorf("--amount must not be negative")
	}

	if err := s.Update(sub); err != nil {
		return err
	}
	fmt.Printf("\n  Updated %s (#%d)\n", sub.Name, id)
	return nil
}
