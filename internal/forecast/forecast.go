// Package forecast aggregates subscription costs into totals, run-rates, and
// category breakdowns, all expressed in the user's main currency.
//
// Two deliberately different algorithms live here. MonthlyTotal counts the
// actual occurrence dates inside a calendar month, so a weekly subscription
// contributes four or five times depending on the month. YearlyForecast (and
// AverageMonthly derived from it) normalizes every schedule to a steady
// cost-per-month and multiplies out, answering "what is the run-rate" rather
// than "what does this month cost". Keep them separate.
package forecast

import (
	"sort"
	"time"

	"github.com/theirongolddev/subtrack/internal/currency"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/schedule"
)

const weeksPerMonth = 52.0 / 12.0

// MonthlyEquivalent normalizes a subscription's cost to a per-calendar-month
// figure in its own currency, unrounded.
func MonthlyEquivalent(sub model.Subscription) float64 {
	n := float64(sub.Interval())

	switch sub.ScheduleType {
	case model.ScheduleWeekly:
		return sub.Amount * weeksPerMonth / n
	case model.ScheduleYearly:
		return sub.Amount / 12 / n
	case model.ScheduleCustom:
		if sub.IntervalUnit == model.UnitWeek {
			return sub.Amount * weeksPerMonth / n
		}
		return sub.Amount / n
	default:
		return sub.Amount / n
	}
}

// countInRange counts occurrence dates within [start, end].
func countInRange(sub model.Subscription, start, end time.Time) int {
	count := 0
	for range schedule.PaymentDatesInRange(sub, start, end) {
		count++
	}
	return count
}

// MonthlyTotal sums the actual charges falling inside monthDate's calendar
// month across active subscriptions, converted to the main currency. A
// subscription billed twice in the month contributes twice. Rounded once at
// the end, not per subscription.
func MonthlyTotal(subs []model.Subscription, monthDate time.Time, settings model.Settings, rates model.CurrencyRates) float64 {
	start := schedule.StartOfMonth(monthDate)
	end := schedule.EndOfMonth(monthDate)

	total := 0.0
	for _, sub := range subs {
		if !schedule.IsActive(sub, monthDate) {
			continue
		}
		n := countInRange(sub, start, end)
		if n == 0 {
			continue
		}
		total += float64(n) * currency.Convert(sub.Amount, sub.Currency, settings.MainCurrency, rates)
	}
	return currency.Round(total, settings.RoundWholeNumbers)
}

// YearlyForecast is the annualized run-rate: 12x the monthly equivalent of
// every active subscription, converted and summed.
func YearlyForecast(subs []model.Subscription, settings model.Settings, rates model.CurrencyRates) float64 {
	now := time.Now()

	total := 0.0
	for _, sub := range subs {
		if !schedule.IsActive(sub, now) {
			continue
		}
		monthly := currency.Convert(MonthlyEquivalent(sub), sub.Currency, settings.MainCurrency, rates)
		total += monthly * 12
	}
	return currency.Round(total, settings.RoundWholeNumbers)
}

// AverageMonthly is the run-rate spread over a month: YearlyForecast / 12,
// rounded after the division.
func AverageMonthly(subs []model.Subscription, settings model.Settings, rates model.CurrencyRates) float64 {
	now := time.Now()

	total := 0.0
	for _, sub := range subs {
		if !schedule.IsActive(sub, now) {
			continue
		}
		total += currency.Convert(MonthlyEquivalent(sub), sub.Currency, settings.MainCurrency, rates)
	}
	return currency.Round(total, settings.RoundWholeNumbers)
}

// TotalSpent is the lifetime spend of one subscription: occurrences between
// its start date and now (or the moment it was paused/canceled, when
// StatusChangedAt is set) times its amount, converted and rounded. Status is
// not filtered here; a canceled subscription still has a history.
func TotalSpent(sub model.Subscription, settings model.Settings, rates model.CurrencyRates, now time.Time) float64 {
	start := sub.StartDate
	if start.IsZero() {
		start = sub.BillingAnchor
	}

	end := schedule.Day(now)
	if sub.Status != model.StatusActive && !sub.StatusChangedAt.IsZero() {
		boundary := schedule.Day(sub.StatusChangedAt)
		if boundary.Before(end) {
			end = boundary
		}
	}

	n := countInRange(sub, start, end)
	spent := float64(n) * currency.Convert(sub.Amount, sub.Currency, settings.MainCurrency, rates)
	return currency.Round(spent, settings.RoundWholeNumbers)
}

// YearToDateTotal sums the charges of active subscriptions over the calendar
// year containing date, converted per subscription and rounded once.
func YearToDateTotal(subs []model.Subscription, settings model.Settings, rates model.CurrencyRates, date time.Time) float64 {
	start := schedule.StartOfYear(date)
	end := schedule.EndOfYear(date)

	total := 0.0
	for _, sub := range subs {
		if !schedule.IsActive(sub, date) {
			continue
		}
		n := countInRange(sub, start, end)
		total += float64(n) * currency.Convert(sub.Amount, sub.Currency, settings.MainCurrency, rates)
	}
	return currency.Round(total, settings.RoundWholeNumbers)
}

// CategoryCost is one row of the per-category breakdown.
type CategoryCost struct {
	Category     string
	MonthlyTotal float64
	Count        int
	SharePercent float64
}

// Breakdown groups active subscriptions by category and reports each group's
// monthly-equivalent cost in the main currency, sorted by cost descending.
// Each row is rounded for display; shares are computed before rounding.
func Breakdown(subs []model.Subscription, settings model.Settings, rates model.CurrencyRates) []CategoryCost {
	now := time.Now()

	byCat := make(map[string]*CategoryCost)
	total := 0.0
	for _, sub := range subs {
		if !schedule.IsActive(sub, now) {
			continue
		}
		cat := sub.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		cc, ok := byCat[cat]
		if !ok {
			cc = &CategoryCost{Category: cat}
			byCat[cat] = cc
		}
		monthly := currency.Convert(MonthlyEquivalent(sub), sub.Currency, settings.MainCurrency, rates)
		cc.MonthlyTotal += monthly
		cc.Count++
		total += monthly
	}

	out := make([]CategoryCost, 0, len(byCat))
	for _, cc := range byCat {
		if total > 0 {
			cc.SharePercent = cc.MonthlyTotal / total * 100
		}
		cc.MonthlyTotal = currency.Round(cc.MonthlyTotal, settings.RoundWholeNumbers)
		out = append(out, *cc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MonthlyTotal != out[j].MonthlyTotal {
			return out[i].MonthlyTotal > out[j].MonthlyTotal
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// UpcomingPayment is one charge due within a lookahead window.
type UpcomingPayment struct {
	Subscription model.Subscription
	Date         time.Time
	// Amount converted to the main currency and rounded.
	Amount float64
}

// Upcoming lists every charge due in [from, from+days], soonest first, for
// active subscriptions. Ties on date order by name for stable output.
func Upcoming(subs []model.Subscription, settings model.Settings, rates model.CurrencyRates, from time.Time, days int) []UpcomingPayment {
	start := schedule.Day(from)
	end := start.AddDate(0, 0, days)

	var out []UpcomingPayment
	for _, sub := range subs {
		if !schedule.IsActive(sub, from) {
			continue
		}
		for d := range schedule.PaymentDatesInRange(sub, start, end) {
			out = append(out, UpcomingPayment{
				Subscription: sub,
				Date:         d,
				Amount: currency.Round(
					currency.Convert(sub.Amount, sub.Currency, settings.MainCurrency, rates),
					settings.RoundWholeNumbers),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Subscription.Name < out[j].Subscription.Name
	})
	return out
}
