package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/subtrack/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "subtrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func sampleSub(t *testing.T) model.Subscription {
	t.Helper()
	return model.Subscription{
		Name:          "Streamly",
		Category:      "Streaming",
		Amount:        12.99,
		Currency:      "USD",
		ScheduleType:  model.ScheduleMonthly,
		IntervalCount: 1,
		BillingAnchor: mustDate(t, "2024-01-15"),
		StartDate:     mustDate(t, "2024-01-15"),
		Status:        model.StatusActive,
	}
}

func TestInsertAndGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.Insert(sampleSub(t))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("insert did not assign an ID")
	}

	got, err := s.Get(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Streamly" || got.Amount != 12.99 || got.Currency != "USD" {
		t.Errorf("got %+v, fields do not round-trip", got)
	}
	if !got.BillingAnchor.Equal(mustDate(t, "2024-01-15")) {
		t.Errorf("anchor = %s, want 2024-01-15", got.BillingAnchor.Format("2006-01-02"))
	}
	if got.Status != model.StatusActive {
		t.Errorf("status = %q, want active", got.Status)
	}
}

func TestInsert_RequiresAnchor(t *testing.T) {
	s := openTestStore(t)

	sub := sampleSub(t)
	sub.BillingAnchor = time.Time{}
	if _, err := s.Insert(sub); err == nil {
		t.Error("insert without anchor should fail")
	}
}

func TestInsert_DefaultsStartDateToAnchor(t *testing.T) {
	s := openTestStore(t)

	sub := sampleSub(t)
	sub.StartDate = time.Time{}
	saved, err := s.Insert(sub)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.Get(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.StartDate.Equal(got.BillingAnchor) {
		t.Errorf("start date = %s, want anchor", got.StartDate.Format("2006-01-02"))
	}
}

func TestUpdate_DoesNotTouchAnchor(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.Insert(sampleSub(t))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	saved.Amount = 15.99
	saved.BillingAnchor = mustDate(t, "2020-01-01") // must be ignored
	if err := s.Update(saved); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.Get(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount != 15.99 {
		t.Errorf("amount = %v, want 15.99", got.Amount)
	}
	if !got.BillingAnchor.Equal(mustDate(t, "2024-01-15")) {
		t.Errorf("anchor changed to %s; anchors are immutable", got.BillingAnchor.Format("2006-01-02"))
	}
}

func TestSetStatus_StampsChangeTime(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.Insert(sampleSub(t))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	at := time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)
	if err := s.SetStatus(saved.ID, model.StatusCanceled, at); err != nil {
		t.Fatalf("set status: %v", err)
	}

	got, err := s.Get(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.StatusCanceled {
		t.Errorf("status = %q, want canceled", got.Status)
	}
	if !got.StatusChangedAt.Equal(at) {
		t.Errorf("status_changed_at = %s, want %s", got.StatusChangedAt, at)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.Insert(sampleSub(t))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Delete(saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestList_NameOrder(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"zeta", "Alpha", "midway"} {
		sub := sampleSub(t)
		sub.Name = name
		if _, err := s.Insert(sub); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	subs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d subscriptions, want 3", len(subs))
	}
	if subs[0].Name != "Alpha" || subs[1].Name != "midway" || subs[2].Name != "zeta" {
		t.Errorf("order = [%s, %s, %s], want case-insensitive name order",
			subs[0].Name, subs[1].Name, subs[2].Name)
	}
}

func TestRatesRoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := model.CurrencyRates{
		Base:      "USD",
		Rates:     map[string]float64{"EUR": 0.9, "JPY": 150},
		UpdatedAt: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.SaveRates(in); err != nil {
		t.Fatalf("save rates: %v", err)
	}

	out, err := s.LoadRates()
	if err != nil {
		t.Fatalf("load rates: %v", err)
	}
	if out.Base != "USD" || out.Rates["EUR"] != 0.9 || out.Rates["JPY"] != 150 {
		t.Errorf("rates do not round-trip: %+v", out)
	}
	if !out.UpdatedAt.Equal(in.UpdatedAt) {
		t.Errorf("updated_at = %s, want %s", out.UpdatedAt, in.UpdatedAt)
	}
}

func TestLoadRates_EmptyWhenNeverFetched(t *testing.T) {
	s := openTestStore(t)

	out, err := s.LoadRates()
	if err != nil {
		t.Fatalf("load rates: %v", err)
	}
	if out.Base != "" || len(out.Rates) != 0 {
		t.Errorf("expected empty snapshot, got %+v", out)
	}
}

func TestSaveRates_ReplacesOldSnapshot(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveRates(model.CurrencyRates{Base: "USD", Rates: map[string]float64{"EUR": 0.9, "GBP": 0.8}}); err != nil {
		t.Fatalf("save rates: %v", err)
	}
	if err := s.SaveRates(model.CurrencyRates{Base: "USD", Rates: map[string]float64{"EUR": 0.95}}); err != nil {
		t.Fatalf("save rates again: %v", err)
	}

	out, err := s.LoadRates()
	if err != nil {
		t.Fatalf("load rates: %v", err)
	}
	if len(out.Rates) != 1 || out.Rates["EUR"] != 0.95 {
		t.Errorf("stale codes survived replace: %+v", out.Rates)
	}
}
