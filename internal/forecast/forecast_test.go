package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/subtrack/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func usdSettings() model.Settings {
	return model.Settings{MainCurrency: "USD"}
}

func usdRates() model.CurrencyRates {
	return model.CurrencyRates{
		Base:  "USD",
		Rates: map[string]float64{"EUR": 0.9},
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	cases := []struct {
		name string
		sub  model.Subscription
		want float64
	}{
		{"weekly", model.Subscription{ScheduleType: model.ScheduleWeekly, Amount: 10, IntervalCount: 1}, 10 * 52.0 / 12.0},
		{"yearly", model.Subscription{ScheduleType: model.ScheduleYearly, Amount: 120, IntervalCount: 1}, 10},
		{"monthly every 2", model.Subscription{ScheduleType: model.ScheduleMonthly, Amount: 30, IntervalCount: 2}, 15},
		{"custom 2 weeks", model.Subscription{ScheduleType: model.ScheduleCustom, IntervalUnit: model.UnitWeek, Amount: 10, IntervalCount: 2}, 10 * 52.0 / 12.0 / 2},
		{"custom 3 months", model.Subscription{ScheduleType: model.ScheduleCustom, IntervalUnit: model.UnitMonth, Amount: 30, IntervalCount: 3}, 10},
		{"unknown type as monthly", model.Subscription{ScheduleType: "daily", Amount: 30, IntervalCount: 1}, 30},
		{"zero interval normalized", model.Subscription{ScheduleType: model.ScheduleMonthly, Amount: 30}, 30},
	}

	for _, tc := range cases {
		if got := MonthlyEquivalent(tc.sub); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: MonthlyEquivalent = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMonthlyTotal_CountsActualOccurrences(t *testing.T) {
	subs := []model.Subscription{
		{
			Name: "weekly", ScheduleType: model.ScheduleWeekly, IntervalCount: 1,
			Amount: 10, Currency: "USD", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2024-01-01"),
		},
		{
			Name: "monthly", ScheduleType: model.ScheduleMonthly, IntervalCount: 1,
			Amount: 15, Currency: "USD", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2024-01-20"),
		},
	}

	// Jan 2024: weekly anchor Jan 1 hits 1, 8, 15, 22, 29 (5x) plus one
	// monthly charge: 5*10 + 15 = 65.
	got := MonthlyTotal(subs, mustDate(t, "2024-01-10"), usdSettings(), usdRates())
	if got != 65 {
		t.Errorf("MonthlyTotal = %v, want 65", got)
	}
}

func TestMonthlyTotal_SkipsInactiveAndConverts(t *testing.T) {
	subs := []model.Subscription{
		{
			Name: "eur", ScheduleType: model.ScheduleMonthly, IntervalCount: 1,
			Amount: 9, Currency: "EUR", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2024-01-05"),
		},
		{
			Name: "paused", ScheduleType: model.ScheduleMonthly, IntervalCount: 1,
			Amount: 100, Currency: "USD", Status: model.StatusPaused,
			BillingAnchor: mustDate(t, "2024-01-05"),
		},
	}

	// 9 EUR -> 10 USD; the paused subscription contributes nothing.
	got := MonthlyTotal(subs, mustDate(t, "2024-01-15"), usdSettings(), usdRates())
	if got != 10 {
		t.Errorf("MonthlyTotal = %v, want 10", got)
	}
}

func TestMonthlyTotal_EmptyListIsZero(t *testing.T) {
	if got := MonthlyTotal(nil, mustDate(t, "2024-01-15"), usdSettings(), usdRates()); got != 0 {
		t.Errorf("MonthlyTotal(nil) = %v, want 0", got)
	}
}

func TestYearlyForecast_RunRateNotOccurrenceCount(t *testing.T) {
	subs := []model.Subscription{
		{
			Name: "weekly", ScheduleType: model.ScheduleWeekly, IntervalCount: 1,
			Amount: 10, Currency: "USD", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2024-01-01"),
		},
	}

	// 10 * 52/12 * 12 = 520: the forecast uses the normalized cadence, not
	// the 52-or-53 occurrences of any particular year.
	got := YearlyForecast(subs, usdSettings(), usdRates())
	if got != 520 {
		t.Errorf("YearlyForecast = %v, want 520", got)
	}
}

func TestAverageMonthly_RoundsAfterDivision(t *testing.T) {
	subs := []model.Subscription{
		{
			Name: "weekly", ScheduleType: model.ScheduleWeekly, IntervalCount: 1,
			Amount: 10, Currency: "USD", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2024-01-01"),
		},
	}

	// 10 * 52/12 = 43.333..., rounded to cents after the division.
	got := AverageMonthly(subs, usdSettings(), usdRates())
	if got != 43.33 {
		t.Errorf("AverageMonthly = %v, want 43.33", got)
	}
}

func TestTotalSpent_ActiveCountsToNow(t *testing.T) {
	sub := model.Subscription{
		ScheduleType: model.ScheduleMonthly, IntervalCount: 1,
		Amount: 10, Currency: "USD", Status: model.StatusActive,
		BillingAnchor: mustDate(t, "2024-01-15"),
		StartDate:     mustDate(t, "2024-01-15"),
	}

	// Occurrences on Jan 15 through Jun 15 inclusive: 6 charges.
	got := TotalSpent(sub, usdSettings(), usdRates(), mustDate(t, "2024-06-20"))
	if got != 60 {
		t.Errorf("TotalSpent = %v, want 60", got)
	}
}

func TestTotalSpent_CanceledBoundsAtStatusChange(t *testing.T) {
	sub := model.Subscription{
		ScheduleType: model.ScheduleMonthly, IntervalCount: 1,
		Amount: 10, Currency: "USD", Status: model.StatusCanceled,
		BillingAnchor:   mustDate(t, "2024-01-15"),
		StartDate:       mustDate(t, "2024-01-15"),
		StatusChangedAt: mustDate(t, "2024-03-20"),
	}

	// Canceled Mar 20: only Jan, Feb, Mar charges count even when queried
	// much later.
	got := TotalSpent(sub, usdSettings(), usdRates(), mustDate(t, "2024-12-01"))
	if got != 30 {
		t.Errorf("TotalSpent = %v, want 30", got)
	}
}

func TestYearToDateTotal(t *testing.T) {
	subs := []model.Subscription{
		{
			Name: "monthly", ScheduleType: model.ScheduleMonthly, IntervalCount: 1,
			Amount: 10, Currency: "USD", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2023-05-10"),
		},
	}

	// All twelve 2024 occurrences fall inside the calendar year regardless
	// of the query date within it.
	got := YearToDateTotal(subs, usdSettings(), usdRates(), mustDate(t, "2024-07-01"))
	if got != 120 {
		t.Errorf("YearToDateTotal = %v, want 120", got)
	}
}

func TestBreakdown_SharesAndOrder(t *testing.T) {
	subs := []model.Subscription{
		{
			Name: "video", Category: "Streaming", ScheduleType: model.ScheduleMonthly,
			IntervalCount: 1, Amount: 15, Currency: "USD", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2024-01-01"),
		},
		{
			Name: "music", Category: "Streaming", ScheduleType: model.ScheduleMonthly,
			IntervalCount: 1, Amount: 10, Currency: "USD", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2024-01-01"),
		},
		{
			Name: "gym", Category: "", ScheduleType: model.ScheduleMonthly,
			IntervalCount: 1, Amount: 25, Currency: "USD", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2024-01-01"),
		},
	}

	rows := Breakdown(subs, usdSettings(), usdRates())
	if len(rows) != 2 {
		t.Fatalf("got %d categories, want 2", len(rows))
	}
	if rows[0].MonthlyTotal != 25 || rows[1].MonthlyTotal != 25 {
		t.Errorf("totals = %v and %v, want 25 each", rows[0].MonthlyTotal, rows[1].MonthlyTotal)
	}
	if rows[0].Category != "Streaming" || rows[1].Category != "Uncategorized" {
		t.Errorf("order = [%s, %s], want name order on equal totals", rows[0].Category, rows[1].Category)
	}
	if math.Abs(rows[0].SharePercent-50) > 1e-9 {
		t.Errorf("Streaming share = %v, want 50", rows[0].SharePercent)
	}
	if rows[0].Count != 2 {
		t.Errorf("Streaming count = %d, want 2", rows[0].Count)
	}
}

func TestUpcoming_SortedWithinWindow(t *testing.T) {
	subs := []model.Subscription{
		{
			Name: "b-later", ScheduleType: model.ScheduleMonthly, IntervalCount: 1,
			Amount: 10, Currency: "USD", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2024-01-20"),
		},
		{
			Name: "a-sooner", ScheduleType: model.ScheduleMonthly, IntervalCount: 1,
			Amount: 5, Currency: "USD", Status: model.StatusActive,
			BillingAnchor: mustDate(t, "2024-01-10"),
		},
	}

	ups := Upcoming(subs, usdSettings(), usdRates(), mustDate(t, "2024-03-01"), 30)
	if len(ups) != 2 {
		t.Fatalf("got %d upcoming payments, want 2", len(ups))
	}
	if !ups[0].Date.Equal(mustDate(t, "2024-03-10")) || ups[0].Subscription.Name != "a-sooner" {
		t.Errorf("first upcoming = %s on %s, want a-sooner on 2024-03-10",
			ups[0].Subscription.Name, ups[0].Date.Format("2006-01-02"))
	}
	if !ups[1].Date.Equal(mustDate(t, "2024-03-20")) {
		t.Errorf("second upcoming on %s, want 2024-03-20", ups[1].Date.Format("2006-01-02"))
	}
}
