package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/cardloop/cardloop/internal/profile"
	"github.com/cardloop/cardloop/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a database specified by its dsn in the profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	// The busy_timeout pragma avoids spurious SQLITE_BUSY under
	// concurrent completions.
	db, err := sql.Open("sqlite", profile.DSN+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to db")
	}

	return &DB{db: db, profile: profile}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) IsInitialized(ctx context.Context) (bool, error) {
	var name string
	err := d.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'review_record'`,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to check schema")
	}
	return true, nil
}

// Migrate applies the latest schema. All statements are idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, latestSchema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}

const latestSchema = `
CREATE TABLE IF NOT EXISTS member (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	row_status TEXT NOT NULL CHECK (row_status IN ('NORMAL', 'ARCHIVED')) DEFAULT 'NORMAL',
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
	updated_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
	username TEXT NOT NULL UNIQUE,
	nickname TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS card (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	creator_id INTEGER NOT NULL REFERENCES member (id),
	row_status TEXT NOT NULL CHECK (row_status IN ('NORMAL', 'ARCHIVED')) DEFAULT 'NORMAL',
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
	updated_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
	front TEXT NOT NULL,
	back TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_card_creator_id ON card (creator_id);

CREATE TABLE IF NOT EXISTS review_record (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	member_id INTEGER NOT NULL REFERENCES member (id),
	card_id INTEGER NOT NULL REFERENCES card (id),
	due_ts BIGINT NOT NULL,
	interval_days INTEGER NOT NULL DEFAULT 1,
	last_reviewed_ts BIGINT,
	last_outcome TEXT,
	repetitions INTEGER NOT NULL DEFAULT 0,
	total_reviews INTEGER NOT NULL DEFAULT 0,
	row_version INTEGER NOT NULL DEFAULT 1,
	UNIQUE (member_id, card_id)
);

CREATE INDEX IF NOT EXISTS idx_review_record_member_due ON review_record (member_id, due_ts);

CREATE TABLE IF NOT EXISTS review_activity (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	member_id INTEGER NOT NULL REFERENCES member (id),
	card_id INTEGER NOT NULL,
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_review_activity_member_created ON review_activity (member_id, created_ts);
`
