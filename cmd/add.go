package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a subscription",
	Long:  "Add a subscription interactively, or non-interactively with flags.",
	RunE:  runAdd,
}

var (
	addName     string
	addCategory string
	addAmount   float64
	addCurrency string
	addSchedule string
	addInterval int
	addUnit     string
	addAnchor   string
	addNotes    string
)

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "Subscription name")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category label")
	addCmd.Flags().Float64Var(&addAmount, "amount", 0, "Charge amount")
	addCmd.Flags().StringVar(&addCurrency, "in", "", "Charge currency code (defaults to main currency)")
	addCmd.Flags().StringVar(&addSchedule, "schedule", "monthly", "Schedule: monthly, yearly, weekly, custom")
	addCmd.Flags().IntVar(&addInterval, "every", 1, "Repeat multiplier, e.g. 2 for every 2 months")
	addCmd.Flags().StringVar(&addUnit, "unit", "month", "Custom schedule unit: week or month")
	addCmd.Flags().StringVar(&addAnchor, "anchor", "", "First billing date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	mainCurrency, err := loadConfigOnly()
	if err != nil {
		return err
	}

	sub := model.Subscription{
		Name:          strings.TrimSpace(addName),
		Category:      strings.TrimSpace(addCategory),
		Amount:        addAmount,
		Currency:      strings.ToUpper(strings.TrimSpace(addCurrency)),
		ScheduleType:  model.ScheduleType(addSchedule),
		IntervalCount: addInterval,
		IntervalUnit:  model.IntervalUnit(addUnit),
		Notes:         addNotes,
		Status:        model.StatusActive,
	}
	if sub.Currency == "" {
		sub.Currency = mainCurrency
	}
	if addAnchor != "" {
		sub.BillingAnchor, err = time.Parse("2006-01-02", addAnchor)
		if err != nil {
			return fmt.Errorf("bad --anchor date %q: %w", addAnchor, err)
		}
	}

	// Flags given: non-interactive path.
	if cmd.Flags().Changed("name") {
		if err := validateNew(sub); err != nil {
			return err
		}
		return saveNew(sub)
	}

	if err := addForm(&sub); err != nil {
		return err
	}
	return saveNew(sub)
}

// loadConfigOnly returns the configured main currency without touching the
// store; add must work before any database exists.
func loadConfigOnly() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if flagCurrency != "" {
		return strings.ToUpper(flagCurrency), nil
	}
	return cfg.General.MainCurrency, nil
}

func validateNew(sub model.Subscription) error {
	if sub.Name == "" {
		return errors.New("subscription needs a --name")
	}
	if sub.Amount < 0 {
		return errors.New("--amount must not be negative")
	}
	if sub.BillingAnchor.IsZero() {
		return errors.New("subscription needs an --anchor date")
	}
	return nil
}

// addForm collects subscription fields interactively.
func addForm(sub *model.Subscription) error {
	amountStr := ""
	anchorStr := today().Format("2006-01-02")
	intervalStr := "1"
	scheduleStr := string(model.ScheduleMonthly)
	unitStr := string(model.UnitMonth)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Netflix, gym, domain renewal...").
				Validate(notEmpty).
				Value(&sub.Name),
			huh.NewInput().
				Title("Category").
				Placeholder("Streaming, Software, ... (optional)").
				Value(&sub.Category),
			huh.NewInput().
				Title(fmt.Sprintf("Amount (%s)", sub.Currency)).
				Validate(validAmount).
				Value(&amountStr),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Schedule").
				Options(
					huh.NewOption("Monthly", string(model.ScheduleMonthly)),
					huh.NewOption("Yearly", string(model.ScheduleYearly)),
					huh.NewOption("Weekly", string(model.ScheduleWeekly)),
					huh.NewOption("Custom interval", string(model.ScheduleCustom)),
				).
				Value(&scheduleStr),
			huh.NewInput().
				Title("Repeat every N periods").
				Validate(validInterval).
				Value(&intervalStr),
			huh.NewSelect[string]().
				Title("Custom unit (only for custom schedules)").
				Options(
					huh.NewOption("Months", string(model.UnitMonth)),
					huh.NewOption("Weeks", string(model.UnitWeek)),
				).
				Value(&unitStr),
			huh.NewInput().
				Title("First billing date").
				Description("All future due dates are computed from this anchor.").
				Validate(validDay).
				Value(&anchorStr),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	sub.Amount, _ = strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
	sub.ScheduleType = model.ScheduleType(scheduleStr)
	sub.IntervalCount, _ = strconv.Atoi(strings.TrimSpace(intervalStr))
	sub.IntervalUnit = model.IntervalUnit(unitStr)
	sub.BillingAnchor, _ = time.Parse("2006-01-02", strings.TrimSpace(anchorStr))
	return nil
}

func saveNew(sub model.Subscription) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	saved, err := s.Insert(sub)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Added %s  %s %s  (#%d)\n",
		saved.Name,
		cli.FormatMoney(saved.Amount, saved.Currency),
		cli.FormatSchedule(saved),
		saved.ID)
	return nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validInterval(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return errors.New("enter a whole number >= 1")
	}
	return nil
}

func validDay(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}
