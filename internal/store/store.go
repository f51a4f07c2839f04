// Package store provides SQLite-backed persistence for subscriptions and
// the cached exchange-rate snapshot.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/subtrack/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// dayFormat is the day-granularity date form used at the storage boundary.
const dayFormat = "2006-01-02"

// ErrNotFound is returned when a subscription ID does not exist.
var ErrNotFound = errors.New("store: subscription not found")

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func formatDay(t time.Time) string {
	return t.UTC().Format(dayFormat)
}

// parseDay parses a stored day-granularity date. A bad value is a real
// error: substituting a default here would silently corrupt billing
// schedules derived from the anchor.
func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored date %q: %w", s, err)
	}
	return t, nil
}

// Insert stores a new subscription and returns it with its assigned ID and
// creation timestamp filled in. The billing anchor is written here and never
// again: Update deliberately excludes it.
func (s *Store) Insert(sub model.Subscription) (model.Subscription, error) {
	if sub.BillingAnchor.IsZero() {
		return sub, errors.New("store: subscription needs a billing anchor")
	}
	if sub.StartDate.IsZero() {
		sub.StartDate = sub.BillingAnchor
	}
	if sub.Status == "" {
		sub.Status = model.StatusActive
	}
	sub.IntervalCount = sub.Interval()
	sub.CreatedAt = time.Now().UTC()

	statusChanged := sql.NullString{}
	if !sub.StatusChangedAt.IsZero() {
		statusChanged = sql.NullString{String: sub.StatusChangedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	res, err := s.db.Exec(`INSERT INTO subscriptions
		(name, category, amount, currency, schedule_type, interval_count, interval_unit,
		 billing_anchor, start_date, status, status_changed_at, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.Name, sub.Category, sub.Amount, sub.Currency, string(sub.ScheduleType),
		sub.IntervalCount, string(sub.IntervalUnit), formatDay(sub.BillingAnchor),
		formatDay(sub.StartDate), string(sub.Status), statusChanged, sub.Notes,
		sub.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return sub, fmt.Errorf("inserting subscription: %w", err)
	}

	sub.ID, err = res.LastInsertId()
	if err != nil {
		return sub, err
	}
	return sub, nil
}

// Update rewrites a subscription's editable fields. The billing anchor and
// creation timestamp are immutable and left untouched.
func (s *Store) Update(sub model.Subscription) error {
	res, err := s.db.Exec(`UPDATE subscriptions SET
		name = ?, category = ?, amount = ?, currency = ?, schedule_type = ?,
		interval_count = ?, interval_unit = ?, start_date = ?, notes = ?
		WHERE id = ?`,
		sub.Name, sub.Category, sub.Amount, sub.Currency, string(sub.ScheduleType),
		sub.Interval(), string(sub.IntervalUnit), formatDay(sub.StartDate), sub.Notes,
		sub.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus changes a subscription's lifecycle status, stamping
// status_changed_at so total-spent windows stay bounded.
func (s *Store) SetStatus(id int64, status model.Status, at time.Time) error {
	res, err := s.db.Exec(`UPDATE subscriptions SET status = ?, status_changed_at = ? WHERE id = ?`,
		string(status), at.UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("setting status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a subscription.
func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec("DELETE FROM subscriptions WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get loads one subscription by ID.
func (s *Store) Get(id int64) (model.Subscription, error) {
	row := s.db.QueryRow(selectColumns+" WHERE id = ?", id)
	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscription{}, ErrNotFound
	}
	return sub, err
}

// List returns all subscriptions, name order.
func (s *Store) List() ([]model.Subscription, error) {
	rows, err := s.db.Query(selectColumns + " ORDER BY name COLLATE NOCASE")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var subs []model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

const selectColumns = `SELECT
	id, name, category, amount, currency, schedule_type, interval_count,
	interval_unit, billing_anchor, start_date, status, status_changed_at,
	notes, created_at
	FROM subscriptions`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row scanner) (model.Subscription, error) {
	var sub model.Subscription
	var scheduleType, intervalUnit, status, anchor, start, created string
	var statusChanged sql.NullString

	err := row.Scan(
		&sub.ID, &sub.Name, &sub.Category, &sub.Amount, &sub.Currency,
		&scheduleType, &sub.IntervalCount, &intervalUnit, &anchor, &start,
		&status, &statusChanged, &sub.Notes, &created,
	)
	if err != nil {
		return sub, err
	}

	sub.ScheduleType = model.ScheduleType(scheduleType)
	sub.IntervalUnit = model.IntervalUnit(intervalUnit)
	sub.Status = model.Status(status)

	if sub.BillingAnchor, err = parseDay(anchor); err != nil {
		return sub, err
	}
	if sub.StartDate, err = parseDay(start); err != nil {
		return sub, err
	}
	if statusChanged.Valid && statusChanged.String != "" {
		sub.StatusChangedAt, err = time.Parse(time.RFC3339, statusChanged.String)
		if err != nil {
			return sub, fmt.Errorf("parsing status_changed_at %q: %w", statusChanged.String, err)
		}
	}
	sub.CreatedAt, _ = time.Parse(time.RFC3339, created)

	return sub, nil
}

// SaveRates replaces the cached exchange-rate snapshot.
func (s *Store) SaveRates(rates model.CurrencyRates) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM rates"); err != nil {
		return err
	}
	for code, rate := range rates.Rates {
		if _, err := tx.Exec("INSERT INTO rates (code, rate) VALUES (?, ?)", code, rate); err != nil {
			return err
		}
	}

	updated := rates.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err = tx.Exec(`INSERT OR REPLACE INTO rates_meta (id, base, updated_at) VALUES (1, ?, ?)`,
		rates.Base, updated.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadRates returns the cached rate snapshot. With nothing cached it returns
// an empty table whose every lookup falls back to 1:1, so totals still
// render (unconverted) before the first refresh.
func (s *Store) LoadRates() (model.CurrencyRates, error) {
	rates := model.CurrencyRates{Rates: make(map[string]float64)}

	row := s.db.QueryRow("SELECT base, updated_at FROM rates_meta WHERE id = 1")
	var updated string
	err := row.Scan(&rates.Base, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return rates, nil
	}
	if err != nil {
		return rates, err
	}
	rates.UpdatedAt, _ = time.Parse(time.RFC3339, updated)

	rows, err := s.db.Query("SELECT code, rate FROM rates")
	if err != nil {
		return rates, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var code string
		var rate float64
		if err := rows.Scan(&code, &rate); err != nil {
			return rates, err
		}
		rates.Rates[code] = rate
	}
	return rates, rows.Err()
}
