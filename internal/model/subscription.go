// Package model defines domain types for subtrack subscriptions and rates.
package model

import "time"

// ScheduleType describes a subscription's billing cadence.
type ScheduleType string

// Known schedule types. Anything else falls back to monthly semantics,
// since persisted data may come from a newer version of the app.
const (
	ScheduleMonthly ScheduleType = "monthly"
	ScheduleYearly  ScheduleType = "yearly"
	ScheduleWeekly  ScheduleType = "weekly"
	ScheduleCustom  ScheduleType = "custom"
)

// IntervalUnit is the repeat unit for custom schedules.
type IntervalUnit string

// Interval units for custom schedules.
const (
	UnitWeek  IntervalUnit = "week"
	UnitMonth IntervalUnit = "month"
)

// Status is a subscription's lifecycle state.
type Status string

// Known statuses.
const (
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusCanceled Status = "canceled"
)

// Subscription is one tracked recurring charge.
//
// BillingAnchor is the immutable seed date for all occurrence computation:
// every future due date is derived from it by repeated interval addition, so
// the same anchor always yields the same occurrence sequence no matter when
// it is queried. StartDate may differ from the anchor and only feeds
// lifetime-spend windows.
type Subscription struct {
	ID            int64
	Name          string
	Category      string
	Amount        float64
	Currency      string
	ScheduleType  ScheduleType
	IntervalCount int
	IntervalUnit  IntervalUnit
	BillingAnchor time.Time
	StartDate     time.Time
	Status        Status
	// StatusChangedAt bounds total-spent windows for paused/canceled
	// subscriptions. Zero when the status never changed.
	StatusChangedAt time.Time
	Notes           string
	CreatedAt       time.Time
}

// Interval returns the normalized repeat multiplier (always >= 1).
func (s Subscription) Interval() int {
	if s.IntervalCount < 1 {
		return 1
	}
	return s.IntervalCount
}

// CurrencyRates is a read-only snapshot of exchange rates, each expressed as
// units of the keyed currency per one unit of Base.
type CurrencyRates struct {
	Base      string
	Rates     map[string]float64
	UpdatedAt time.Time
}

// Settings is the value snapshot of user preferences the computation core
// reads. It is passed explicitly into every aggregate function; nothing in
// this package or its consumers holds ambient state.
type Settings struct {
	MainCurrency      string
	RoundWholeNumbers bool
}
