// Package schedule computes occurrence dates for recurring subscriptions.
//
// All computation is anchored on a subscription's billing anchor: occurrence
// N is the anchor advanced N intervals, so results are deterministic for a
// given subscription regardless of when they are queried. Everything works at
// day granularity; time-of-day on inputs is discarded.
package schedule

import (
	"errors"
	"iter"
	"time"

	"github.com/theirongolddev/subtrack/internal/model"
)

// maxAdvance caps occurrence iteration so a pathological anchor/interval
// combination (anchor centuries away, huge interval) can never hang the
// caller. When the cap trips, the last computed candidate is returned.
const maxAdvance = 2000

// ErrNoAnchor is returned when a subscription has no billing anchor set.
// Anchors are parsed and validated at the store boundary; substituting a
// default here would silently corrupt billing schedules.
var ErrNoAnchor = errors.New("schedule: subscription has no billing anchor")

// Day truncates a time to midnight UTC, the canonical day-granularity form
// used for all comparisons in this package.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// addMonths advances by whole calendar months, clamping to the last valid
// day of the target month (Jan 31 + 1 month = Feb 28/29, never Mar 2).
// time.Time.AddDate normalizes overflow instead, which is wrong for billing.
func addMonths(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, time.UTC)
}

// AddInterval advances date forward by exactly one occurrence of the
// subscription's schedule. Unrecognized schedule types fall back to monthly,
// since persisted data may carry types from a newer app version.
func AddInterval(date time.Time, sub model.Subscription) time.Time {
	date = Day(date)
	n := sub.Interval()

	switch sub.ScheduleType {
	case model.ScheduleWeekly:
		return date.AddDate(0, 0, 7*n)
	case model.ScheduleYearly:
		return addMonths(date, 12*n)
	case model.ScheduleCustom:
		if sub.IntervalUnit == model.UnitWeek {
			return date.AddDate(0, 0, 7*n)
		}
		return addMonths(date, n)
	default:
		return addMonths(date, n)
	}
}

// NextPaymentDate returns the first occurrence date on or after from
// (inclusive: if from is itself an occurrence, it is returned). The
// candidate chain starts at the billing anchor and applies AddInterval,
// bounded by maxAdvance.
func NextPaymentDate(sub model.Subscription, from time.Time) (time.Time, error) {
	if sub.BillingAnchor.IsZero() {
		return time.Time{}, ErrNoAnchor
	}

	candidate := Day(sub.BillingAnchor)
	from = Day(from)
	for i := 0; i < maxAdvance && candidate.Before(from); i++ {
		candidate = AddInterval(candidate, sub)
	}
	return candidate, nil
}

// PaymentDatesInRange returns a lazy, restartable sequence of every
// occurrence date d with start <= d <= end, both bounds inclusive. A
// subscription with no anchor, or no occurrence in range, yields nothing.
func PaymentDatesInRange(sub model.Subscription, start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		first, err := NextPaymentDate(sub, start)
		if err != nil {
			return
		}
		end := Day(end)

		d := first
		for i := 0; i < maxAdvance && !d.After(end); i++ {
			if !yield(d) {
				return
			}
			d = AddInterval(d, sub)
		}
	}
}

// PaymentDatesForMonth returns the occurrence dates within the calendar
// month containing monthDate.
func PaymentDatesForMonth(sub model.Subscription, monthDate time.Time) iter.Seq[time.Time] {
	return PaymentDatesInRange(sub, StartOfMonth(monthDate), EndOfMonth(monthDate))
}

// IsPaymentDueOn reports whether the subscription has an occurrence exactly
// on the given date.
func IsPaymentDueOn(sub model.Subscription, date time.Time) bool {
	next, err := NextPaymentDate(sub, date)
	if err != nil {
		return false
	}
	return next.Equal(Day(date))
}

// IsActive reports whether the subscription should count toward totals at
// the given date. Unknown status values are treated as active only when the
// start date is still in the future; the status enum is closed today, so
// this branch only matters for forward-incompatible persisted data.
func IsActive(sub model.Subscription, at time.Time) bool {
	switch sub.Status {
	case model.StatusActive:
		return true
	case model.StatusPaused, model.StatusCanceled:
		return false
	default:
		return sub.StartDate.After(Day(at))
	}
}

// StartOfMonth returns midnight UTC on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns midnight UTC on the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// StartOfYear returns January 1 of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfYear returns December 31 of t's year.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}
