// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/subtrack/internal/currency"
	"github.com/theirongolddev/subtrack/internal/model"
)

// FormatMoney renders an amount with its currency symbol,
// e.g. 12.5 USD -> "$12.50", 99 SEK -> "99.00 kr".
func FormatMoney(amount float64, code string) string {
	return currency.Format(amount, code)
}

// FormatMoneyWhole renders an amount without fraction digits, for compact
// table cells and chart labels.
func FormatMoneyWhole(amount float64, code string) string {
	return currency.FormatWhole(amount, code)
}

// FormatDate renders a day-granularity date, e.g. "Jan 15, 2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}

// FormatDay renders a short in-month date, e.g. "Mon Jan 15".
func FormatDay(t time.Time) string {
	return t.Format("Mon Jan 2")
}

// FormatSchedule renders a subscription's cadence as prose:
// "monthly", "every 2 months", "every 3 weeks", "yearly".
func FormatSchedule(sub model.Subscription) string {
	n := sub.Interval()

	unit := ""
	switch sub.ScheduleType {
	case model.ScheduleWeekly:
		unit = "week"
	case model.ScheduleYearly:
		unit = "year"
	case model.ScheduleCustom:
		unit = "month"
		if sub.IntervalUnit == model.UnitWeek {
			unit = "week"
		}
	default:
		unit = "month"
	}

	if n == 1 {
		switch unit {
		case "week":
			return "weekly"
		case "year":
			return "yearly"
		default:
			return "monthly"
		}
	}
	return fmt.Sprintf("every %d %ss", n, unit)
}

// FormatPercent formats a 0-100 percentage with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatRelativeDays describes how far away a date is from today,
// e.g. "today", "tomorrow", "in 12 days".
func FormatRelativeDays(t, today time.Time) string {
	days := int(t.Sub(today).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// FormatAge describes the freshness of a rate snapshot.
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "never fetched"
	}
	age := time.Since(t)
	switch {
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

// Truncate shortens a string to max runes with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
