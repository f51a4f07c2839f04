// Package export writes subscription data to spreadsheet workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/currency"
	"github.com/theirongolddev/subtrack/internal/forecast"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/schedule"
)

// Workbook builds an xlsx workbook with a subscription sheet and a summary
// sheet, everything converted to the main currency where marked.
func Workbook(subs []model.Subscription, settings model.Settings, rates model.CurrencyRates, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	const subsSheet = "Subscriptions"
	if err := f.SetSheetName("Sheet1", subsSheet); err != nil {
		return nil, fmt.Errorf("export: renaming sheet: %w", err)
	}

	headers := []any{
		"Name", "Category", "Amount", "Currency", "Schedule", "Status",
		"Billing Anchor", "Start Date", "Next Payment",
		fmt.Sprintf("Monthly Equivalent (%s)", settings.MainCurrency),
	}
	if err := f.SetSheetRow(subsSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("export: writing header: %w", err)
	}

	for i, sub := range subs {
		next := ""
		if d, err := schedule.NextPaymentDate(sub, now); err == nil {
			next = d.Format("2006-01-02")
		}
		monthly := currency.Round(
			currency.Convert(forecast.MonthlyEquivalent(sub), sub.Currency, settings.MainCurrency, rates),
			settings.RoundWholeNumbers)

		row := []any{
			sub.Name, sub.Category, sub.Amount, sub.Currency,
			cli.FormatSchedule(sub), string(sub.Status),
			sub.BillingAnchor.Format("2006-01-02"),
			sub.StartDate.Format("2006-01-02"),
			next, monthly,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(subsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("export: writing row %d: %w", i+2, err)
		}
	}

	if err := writeSummarySheet(f, subs, settings, rates, now); err != nil {
		return nil, err
	}
	return f, nil
}

func writeSummarySheet(f *excelize.File, subs []model.Subscription, settings model.Settings, rates model.CurrencyRates, now time.Time) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("export: creating summary sheet: %w", err)
	}

	rows := [][]any{
		{"Metric", fmt.Sprintf("Amount (%s)", settings.MainCurrency)},
		{"This month", forecast.MonthlyTotal(subs, now, settings, rates)},
		{"Average monthly", forecast.AverageMonthly(subs, settings, rates)},
		{"Yearly forecast", forecast.YearlyForecast(subs, settings, rates)},
		{"Year to date", forecast.YearToDateTotal(subs, settings, rates, now)},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("export: writing summary row: %w", err)
		}
	}

	for i, cc := range forecast.Breakdown(subs, settings, rates) {
		cell, err := excelize.CoordinatesToCellName(4, i+2)
		if err != nil {
			return err
		}
		row := []any{cc.Category, cc.MonthlyTotal, cc.Count}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: writing breakdown row: %w", err)
		}
	}
	header := []any{"Category", "Monthly", "Subscriptions"}
	if err := f.SetSheetRow(sheet, "D1", &header); err != nil {
		return fmt.Errorf("export: writing breakdown header: %w", err)
	}

	return nil
}

// WriteFile renders the workbook and saves it to path.
func WriteFile(path string, subs []model.Subscription, settings model.Settings, rates model.CurrencyRates, now time.Time) error {
	f, err := Workbook(subs, settings, rates, now)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: saving %s: %w", path, err)
	}
	return nil
}
