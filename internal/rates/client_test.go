package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/theirongolddev/subtrack/internal/model"
)

func TestFetch_ParsesProviderPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/USD" {
			t.Errorf("request path = %q, want /USD", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"result": "success",
			"base_code": "USD",
			"time_last_update_unix": 1717243200,
			"rates": {"USD": 1, "EUR": 0.9, "JPY": 150}
		}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).Fetch(context.Background(), "usd")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.Base != "USD" {
		t.Errorf("base = %q, want USD", got.Base)
	}
	if got.Rates["EUR"] != 0.9 || got.Rates["JPY"] != 150 {
		t.Errorf("rates = %v", got.Rates)
	}
	if want := time.Unix(1717243200, 0); !got.UpdatedAt.Equal(want) {
		t.Errorf("updated_at = %s, want %s", got.UpdatedAt, want)
	}
}

func TestFetch_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": "error", "error-type": "unsupported-code"}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Fetch(context.Background(), "XXX"); err == nil {
		t.Error("expected error for provider failure result")
	}
}

func TestFetch_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), "USD")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}

func TestFetch_EmptyBase(t *testing.T) {
	if _, err := NewClient("").Fetch(context.Background(), " "); err == nil {
		t.Error("expected error for empty base currency")
	}
}

func TestStale(t *testing.T) {
	if !Stale(model.CurrencyRates{}, time.Hour) {
		t.Error("never-fetched snapshot should be stale")
	}
	fresh := model.CurrencyRates{UpdatedAt: time.Now().Add(-10 * time.Minute)}
	if Stale(fresh, time.Hour) {
		t.Error("10-minute-old snapshot should not be stale within 1h")
	}
	old := model.CurrencyRates{UpdatedAt: time.Now().Add(-25 * time.Hour)}
	if !Stale(old, 24*time.Hour) {
		t.Error("25-hour-old snapshot should be stale past 24h")
	}
}
