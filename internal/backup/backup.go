// Package backup serializes subscriptions and settings to a portable YAML
// snapshot, usable for manual cloud sync or migration between machines.
package backup

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/subtrack/internal/model"
)

const dayFormat = "2006-01-02"

// Snapshot is the on-disk backup document.
type Snapshot struct {
	Version       int            `yaml:"version"`
	ExportedAt    time.Time      `yaml:"exported_at"`
	MainCurrency  string         `yaml:"main_currency"`
	Subscriptions []Subscription `yaml:"subscriptions"`
}

// Subscription is the YAML form of one subscription. Dates are
// day-granularity strings so the file stays hand-editable.
type Subscription struct {
	Name            string    `yaml:"name"`
	Category        string    `yaml:"category,omitempty"`
	Amount          float64   `yaml:"amount"`
	Currency        string    `yaml:"currency"`
	ScheduleType    string    `yaml:"schedule"`
	IntervalCount   int       `yaml:"interval,omitempty"`
	IntervalUnit    string    `yaml:"interval_unit,omitempty"`
	BillingAnchor   string    `yaml:"billing_anchor"`
	StartDate       string    `yaml:"start_date,omitempty"`
	Status          string    `yaml:"status,omitempty"`
	StatusChangedAt time.Time `yaml:"status_changed_at,omitempty"`
	Notes           string    `yaml:"notes,omitempty"`
}

// Write saves a snapshot of the given subscriptions to path.
func Write(path string, subs []model.Subscription, settings model.Settings) error {
	snap := Snapshot{
		Version:      1,
		ExportedAt:   time.Now().UTC(),
		MainCurrency: settings.MainCurrency,
	}
	for _, sub := range subs {
		out := Subscription{
			Name:            sub.Name,
			Category:        sub.Category,
			Amount:          sub.Amount,
			Currency:        sub.Currency,
			ScheduleType:    string(sub.ScheduleType),
			IntervalCount:   sub.Interval(),
			IntervalUnit:    string(sub.IntervalUnit),
			BillingAnchor:   sub.BillingAnchor.Format(dayFormat),
			Status:          string(sub.Status),
			StatusChangedAt: sub.StatusChangedAt,
			Notes:           sub.Notes,
		}
		if !sub.StartDate.IsZero() && !sub.StartDate.Equal(sub.BillingAnchor) {
			out.StartDate = sub.StartDate.Format(dayFormat)
		}
		snap.Subscriptions = append(snap.Subscriptions, out)
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("backup: encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("backup: writing %s: %w", path, err)
	}
	return nil
}

// Read loads a snapshot file and converts it back to domain subscriptions.
// A subscription with a malformed or missing billing anchor fails the whole
// restore; silently skipping it would lose data without telling the user.
func Read(path string) (Snapshot, []model.Subscription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("backup: reading %s: %w", path, err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, nil, fmt.Errorf("backup: parsing %s: %w", path, err)
	}

	subs := make([]model.Subscription, 0, len(snap.Subscriptions))
	for i, in := range snap.Subscriptions {
		if in.Name == "" {
			return snap, nil, fmt.Errorf("backup: subscription %d has no name", i+1)
		}
		anchor, err := time.Parse(dayFormat, in.BillingAnchor)
		if err != nil {
			return snap, nil, fmt.Errorf("backup: %s: bad billing_anchor %q: %w", in.Name, in.BillingAnchor, err)
		}

		sub := model.Subscription{
			Name:            in.Name,
			Category:        in.Category,
			Amount:          in.Amount,
			Currency:        in.Currency,
			ScheduleType:    model.ScheduleType(in.ScheduleType),
			IntervalCount:   in.IntervalCount,
			IntervalUnit:    model.IntervalUnit(in.IntervalUnit),
			BillingAnchor:   anchor,
			StartDate:       anchor,
			Status:          model.Status(in.Status),
			StatusChangedAt: in.StatusChangedAt,
			Notes:           in.Notes,
		}
		if in.StartDate != "" {
			sub.StartDate, err = time.Parse(dayFormat, in.StartDate)
			if err != nil {
				return snap, nil, fmt.Errorf("backup: %s: bad start_date %q: %w", in.Name, in.StartDate, err)
			}
		}
		if sub.Status == "" {
			sub.Status = model.StatusActive
		}
		subs = append(subs, sub)
	}
	return snap, subs, nil
}
