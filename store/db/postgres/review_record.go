package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cardloop/cardloop/store"
)

// UpsertReviewRecord performs the version-checked write for a review record.
// ExpectedVersion zero inserts a fresh row; the unique (member_id, card_id)
// constraint turns a racing insert into a version conflict. Any other value
// is matched against row_version so a lost update surfaces as
// store.ErrVersionConflict instead of silently overwriting.
func (d *DB) UpsertReviewRecord(ctx context.Context, upsert *store.UpsertReviewRecord) (*store.ReviewRecord, error) {
	record := &store.ReviewRecord{
		MemberID:       upsert.MemberID,
		CardID:         upsert.CardID,
		DueTs:          upsert.DueTs,
		IntervalDays:   upsert.IntervalDays,
		LastReviewedTs: upsert.LastReviewedTs,
		LastOutcome:    upsert.LastOutcome,
		Repetitions:    upsert.Repetitions,
		TotalReviews:   upsert.TotalReviews,
	}

	if upsert.ExpectedVersion == 0 {
		stmt := `INSERT INTO review_record (
				member_id, card_id, due_ts, interval_days, last_reviewed_ts,
				last_outcome, repetitions, total_reviews
			)
			VALUES (` + placeholders(8) + `)
			ON CONFLICT (member_id, card_id) DO NOTHING
			RETURNING id, row_version`

		err := d.db.QueryRowContext(ctx, stmt,
			upsert.MemberID, upsert.CardID, upsert.DueTs, upsert.IntervalDays,
			upsert.LastReviewedTs, upsert.LastOutcome, upsert.Repetitions, upsert.TotalReviews,
		).Scan(&record.ID, &record.RowVersion)
		if err == sql.ErrNoRows {
			// A concurrent first review already inserted the row.
			return nil, store.ErrVersionConflict
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert review record: %w", err)
		}
		return record, nil
	}

	stmt := `UPDATE review_record
		SET due_ts = $1, interval_days = $2, last_reviewed_ts = $3, last_outcome = $4,
			repetitions = $5, total_reviews = $6, row_version = row_version + 1
		WHERE member_id = $7 AND card_id = $8 AND row_version = $9
		RETURNING id, row_version`

	err := d.db.QueryRowContext(ctx, stmt,
		upsert.DueTs, upsert.IntervalDays, upsert.LastReviewedTs, upsert.LastOutcome,
		upsert.Repetitions, upsert.TotalReviews,
		upsert.MemberID, upsert.CardID, upsert.ExpectedVersion,
	).Scan(&record.ID, &record.RowVersion)
	if err == sql.ErrNoRows {
		return nil, store.ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update review record: %w", err)
	}
	return record, nil
}

func (d *DB) ListReviewRecords(ctx context.Context, find *store.FindReviewRecord) ([]*store.ReviewRecord, error) {
	where, args := []string{"TRUE"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "review_record.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.MemberID; v != nil {
		where, args = append(where, "review_record.member_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CardID; v != nil {
		where, args = append(where, "review_record.card_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DueTsBefore; v != nil {
		where, args = append(where, "review_record.due_ts < "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, member_id, card_id, due_ts, interval_days, last_reviewed_ts,
			last_outcome, repetitions, total_reviews, row_version
		FROM review_record
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY review_record.due_ts ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query review records: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ReviewRecord, 0)
	for rows.Next() {
		var record store.ReviewRecord
		var lastReviewedTs sql.NullInt64
		var lastOutcome sql.NullString

		if err := rows.Scan(
			&record.ID,
			&record.MemberID,
			&record.CardID,
			&record.DueTs,
			&record.IntervalDays,
			&lastReviewedTs,
			&lastOutcome,
			&record.Repetitions,
			&record.TotalReviews,
			&record.RowVersion,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review record: %w", err)
		}

		if lastReviewedTs.Valid {
			record.LastReviewedTs = &lastReviewedTs.Int64
		}
		if lastOutcome.Valid {
			record.LastOutcome = &lastOutcome.String
		}

		list = append(list, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review records: %w", err)
	}

	return list, nil
}

func (d *DB) DeleteReviewRecord(ctx context.Context, delete *store.DeleteReviewRecord) error {
	where, args := []string{"TRUE"}, []any{}

	if v := delete.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := delete.MemberID; v != nil {
		where, args = append(where, "member_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := delete.CardID; v != nil {
		where, args = append(where, "card_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	stmt := `DELETE FROM review_record WHERE ` + strings.Join(where, " AND ")
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to delete review records: %w", err)
	}

	return nil
}
