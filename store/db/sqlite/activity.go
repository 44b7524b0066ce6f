package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardloop/cardloop/store"
)

func (d *DB) CreateReviewActivity(ctx context.Context, create *store.ReviewActivity) (*store.ReviewActivity, error) {
	fields := []string{"member_id", "card_id"}
	placeholderValues := []any{create.MemberID, create.CardID}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}

	stmt := `INSERT INTO review_activity (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create review activity: %w", err)
	}

	return create, nil
}

func (d *DB) ListReviewActivities(ctx context.Context, find *store.FindReviewActivity) ([]*store.ReviewActivity, error) {
	where, args := activityWhere(find)

	query := `
		SELECT id, member_id, card_id, created_ts
		FROM review_activity
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY review_activity.created_ts DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query review activities: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ReviewActivity, 0)
	for rows.Next() {
		var activity store.ReviewActivity
		if err := rows.Scan(
			&activity.ID,
			&activity.MemberID,
			&activity.CardID,
			&activity.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review activity: %w", err)
		}
		list = append(list, &activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review activities: %w", err)
	}

	return list, nil
}

func (d *DB) CountReviewActivities(ctx context.Context, find *store.FindReviewActivity) (int32, error) {
	where, args := activityWhere(find)

	query := `SELECT COUNT(*) FROM review_activity WHERE ` + strings.Join(where, " AND ")

	var count int32
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count review activities: %w", err)
	}

	return count, nil
}

func activityWhere(find *store.FindReviewActivity) ([]string, []any) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.MemberID; v != nil {
		where, args = append(where, "review_activity.member_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CardID; v != nil {
		where, args = append(where, "review_activity.card_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CreatedTsAfter; v != nil {
		where, args = append(where, "review_activity.created_ts >= "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CreatedTsBefore; v != nil {
		where, args = append(where, "review_activity.created_ts < "+placeholder(len(args)+1)), append(args, *v)
	}

	return where, args
}
