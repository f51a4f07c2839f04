package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS subscriptions (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    name              TEXT NOT NULL,
    category          TEXT NOT NULL DEFAULT '',
    amount            REAL NOT NULL,
    currency          TEXT NOT NULL,
    schedule_type     TEXT NOT NULL,
    interval_count    INTEGER NOT NULL DEFAULT 1,
    interval_unit     TEXT NOT NULL DEFAULT '',
    billing_anchor    TEXT NOT NULL,
    start_date        TEXT NOT NULL,
    status            TEXT NOT NULL DEFAULT 'active',
    status_changed_at TEXT,
    notes             TEXT NOT NULL DEFAULT '',
    created_at        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rates (
    code              TEXT PRIMARY KEY,
    rate              REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS rates_meta (
    id                INTEGER PRIMARY KEY CHECK (id = 1),
    base              TEXT NOT NULL,
    updated_at        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_subscriptions_status ON subscriptions(status);
CREATE INDEX IF NOT EXISTS idx_subscriptions_category ON subscriptions(category);
`
