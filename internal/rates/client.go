// Package rates fetches exchange-rate snapshots from an open rate API.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theirongolddev/subtrack/internal/model"
)

const (
	// DefaultURL serves a daily rate table keyed per base currency, no API
	// key required. The base code is appended to the path.
	DefaultURL     = "https://open.er-api.com/v6/latest"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// ErrRateLimited indicates the provider's request quota was hit.
var ErrRateLimited = errors.New("rates: rate limited by provider")

// Client fetches rate tables over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given provider URL. An empty URL uses
// the default provider.
func NewClient(providerURL string) *Client {
	providerURL = strings.TrimRight(strings.TrimSpace(providerURL), "/")
	if providerURL == "" {
		providerURL = DefaultURL
	}
	return &Client{
		baseURL: providerURL,
		http:    &http.Client{},
	}
}

// response mirrors the provider's JSON payload. Only the fields we read.
type response struct {
	Result     string             `json:"result"`
	BaseCode   string             `json:"base_code"`
	Rates      map[string]float64 `json:"rates"`
	UpdateUnix int64              `json:"time_last_update_unix"`
}

// Fetch retrieves the current rate table for the given base currency.
func (c *Client) Fetch(ctx context.Context, base string) (model.CurrencyRates, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		return model.CurrencyRates{}, errors.New("rates: base currency is required")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+base, nil)
	if err != nil {
		return model.CurrencyRates{}, fmt.Errorf("rates: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/subtrack/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.CurrencyRates{}, fmt.Errorf("rates: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return model.CurrencyRates{}, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.CurrencyRates{}, fmt.Errorf("rates: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return model.CurrencyRates{}, fmt.Errorf("rates: reading response: %w", err)
	}

	var raw response
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.CurrencyRates{}, fmt.Errorf("rates: parsing response: %w", err)
	}
	if raw.Result != "" && raw.Result != "success" {
		return model.CurrencyRates{}, fmt.Errorf("rates: provider returned result %q", raw.Result)
	}
	if len(raw.Rates) == 0 {
		return model.CurrencyRates{}, errors.New("rates: provider returned no rates")
	}

	out := model.CurrencyRates{
		Base:      base,
		Rates:     raw.Rates,
		UpdatedAt: time.Now(),
	}
	if raw.BaseCode != "" {
		out.Base = raw.BaseCode
	}
	if raw.UpdateUnix > 0 {
		out.UpdatedAt = time.Unix(raw.UpdateUnix, 0)
	}
	return out, nil
}

// Stale reports whether a cached snapshot is older than maxAge. A snapshot
// with no timestamp (never fetched) is always stale.
func Stale(rates model.CurrencyRates, maxAge time.Duration) bool {
	if rates.UpdatedAt.IsZero() {
		return true
	}
	return time.Since(rates.UpdatedAt) > maxAge
}
