package backup

import (
	"os"
	"path/filepath"
	"strings"
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

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.yaml")

	in := []model.Subscription{
		{
			Name:          "Streamly",
			Category:      "Streaming",
			Amount:        12.99,
			Currency:      "USD",
			ScheduleType:  model.ScheduleMonthly,
			IntervalCount: 1,
			BillingAnchor: mustDate(t, "2024-01-15"),
			StartDate:     mustDate(t, "2024-01-15"),
			Status:        model.StatusActive,
		},
		{
			Name:          "Cloud Box",
			Amount:        95,
			Currency:      "EUR",
			ScheduleType:  model.ScheduleYearly,
			IntervalCount: 1,
			BillingAnchor: mustDate(t, "2023-06-01"),
			StartDate:     mustDate(t, "2023-05-20"),
			Status:        model.StatusCanceled,
		},
	}

	if err := Write(path, in, model.Settings{MainCurrency: "USD"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	snap, out, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if snap.Version != 1 || snap.MainCurrency != "USD" {
		t.Errorf("snapshot header = %+v", snap)
	}
	if len(out) != 2 {
		t.Fatalf("got %d subscriptions, want 2", len(out))
	}
	if !out[0].BillingAnchor.Equal(mustDate(t, "2024-01-15")) {
		t.Errorf("anchor = %s", out[0].BillingAnchor.Format("2006-01-02"))
	}
	if out[0].Status != model.StatusActive || out[1].Status != model.StatusCanceled {
		t.Errorf("statuses = %q, %q", out[0].Status, out[1].Status)
	}
	if !out[1].StartDate.Equal(mustDate(t, "2023-05-20")) {
		t.Errorf("distinct start date not preserved: %s", out[1].StartDate.Format("2006-01-02"))
	}
}

func TestRead_BadAnchorFailsWholeRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.yaml")
	doc := strings.Join([]string{
		"version: 1",
		"subscriptions:",
		"  - name: ok",
		"    amount: 5",
		"    currency: USD",
		"    schedule: monthly",
		"    billing_anchor: 2024-01-15",
		"  - name: broken",
		"    amount: 5",
		"    currency: USD",
		"    schedule: monthly",
		"    billing_anchor: not-a-date",
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Read(path); err == nil {
		t.Error("expected error for malformed billing_anchor")
	}
}

func TestRead_DefaultsStartDateAndStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.yaml")
	doc := strings.Join([]string{
		"version: 1",
		"subscriptions:",
		"  - name: minimal",
		"    amount: 9.99",
		"    currency: USD",
		"    schedule: monthly",
		"    billing_anchor: 2024-02-01",
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	_, subs, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("got %d subscriptions, want 1", len(subs))
	}
	if !subs[0].StartDate.Equal(subs[0].BillingAnchor) {
		t.Errorf("start date should default to anchor")
	}
	if subs[0].Status != model.StatusActive {
		t.Errorf("status = %q, want active default", subs[0].Status)
	}
}
