package postgres

import (
	"context"
	"database/sql"
	"time"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/cardloop/cardloop/internal/profile"
	"github.com/cardloop/cardloop/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a PostgreSQL connection using the DSN from the profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	// Pool sizing for a small self-hosted instance.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Hour)
	db.SetConnMaxIdleTime(15 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
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
	var exists bool
	err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'review_record')`,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "failed to check schema")
	}
	return exists, nil
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
	id SERIAL PRIMARY KEY,
	uid TEXT NOT NULL UNIQUE,
	row_status TEXT NOT NULL CHECK (row_status IN ('NORMAL', 'ARCHIVED')) DEFAULT 'NORMAL',
	created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
	updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
	username TEXT NOT NULL UNIQUE,
	nickname TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS card (
	id SERIAL PRIMARY KEY,
	uid TEXT NOT NULL UNIQUE,
	creator_id INTEGER NOT NULL REFERENCES member (id),
	row_status TEXT NOT NULL CHECK (row_status IN ('NORMAL', 'ARCHIVED')) DEFAULT 'NORMAL',
	created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
	updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
	front TEXT NOT NULL,
	back TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_card_creator_id ON card (creator_id);

CREATE TABLE IF NOT EXISTS review_record (
	id SERIAL PRIMARY KEY,
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
	id SERIAL PRIMARY KEY,
	member_id INTEGER NOT NULL REFERENCES member (id),
	card_id INTEGER NOT NULL,
	created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
);

CREATE INDEX IF NOT EXISTS idx_review_activity_member_created ON review_activity (member_id, created_ts);
`
