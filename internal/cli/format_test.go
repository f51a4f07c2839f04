package cli

import (
	"testing"
	"time"

	"github.com/theirongolddev/subtrack/internal/model"
)

func TestFormatSchedule(t *testing.T) {
	cases := []struct {
		name string
		sub  model.Subscription
		want string
	}{
		{"monthly", model.Subscription{ScheduleType: model.ScheduleMonthly, IntervalCount: 1}, "monthly"},
		{"bi-monthly", model.Subscription{ScheduleType: model.ScheduleMonthly, IntervalCount: 2}, "every 2 months"},
		{"weekly", model.Subscription{ScheduleType: model.ScheduleWeekly, IntervalCount: 1}, "weekly"},
		{"yearly", model.Subscription{ScheduleType: model.ScheduleYearly, IntervalCount: 1}, "yearly"},
		{"custom weeks", model.Subscription{ScheduleType: model.ScheduleCustom, IntervalUnit: model.UnitWeek, IntervalCount: 3}, "every 3 weeks"},
		{"custom months", model.Subscription{ScheduleType: model.ScheduleCustom, IntervalUnit: model.UnitMonth, IntervalCount: 6}, "every 6 months"},
		{"unknown type as monthly", model.Subscription{ScheduleType: "daily", IntervalCount: 1}, "monthly"},
		{"zero interval", model.Subscription{ScheduleType: model.ScheduleWeekly}, "weekly"},
	}

	for _, tc := range cases {
		if got := FormatSchedule(tc.sub); got != tc.want {
			t.Errorf("%s: FormatSchedule = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFormatRelativeDays(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		date string
		want string
	}{
		{"2024-06-01", "today"},
		{"2024-06-02", "tomorrow"},
		{"2024-06-13", "in 12 days"},
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.date, err)
		}
		if got := FormatRelativeDays(d, today); got != tc.want {
			t.Errorf("FormatRelativeDays(%s) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
	got := Truncate("a very long subscription name", 12)
	if len([]rune(got)) > 12 {
		t.Errorf("Truncate output %q longer than limit", got)
	}
}

func TestFormatDate_Zero(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("FormatDate(zero) = %q, want -", got)
	}
}
