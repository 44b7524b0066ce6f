package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardloop/cardloop/store"
)

func (d *DB) CreateMember(ctx context.Context, create *store.Member) (*store.Member, error) {
	fields := []string{"uid", "username", "nickname"}
	placeholderValues := []any{create.UID, create.Username, create.Nickname}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}

	stmt := `INSERT INTO member (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts, row_status`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
		&create.RowStatus,
	); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return create, nil
}

func (d *DB) ListMembers(ctx context.Context, find *store.FindMember) ([]*store.Member, error) {
	where, args := []string{"TRUE"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "member.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "member.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Username; v != nil {
		where, args = append(where, "member.username = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "member.row_status = "+placeholder(len(args)+1)), append(args, string(*v))
	}

	query := `
		SELECT id, uid, row_status, created_ts, updated_ts, username, nickname
		FROM member
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY member.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Member, 0)
	for rows.Next() {
		var member store.Member
		if err := rows.Scan(
			&member.ID,
			&member.UID,
			&member.RowStatus,
			&member.CreatedTs,
			&member.UpdatedTs,
			&member.Username,
			&member.Nickname,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		list = append(list, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateMember(ctx context.Context, update *store.UpdateMember) error {
	set, args := []string{}, []any{}

	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = "+placeholder(len(args)+1)), append(args, string(*v))
	}
	if v := update.Nickname; v != nil {
		set, args = append(set, "nickname = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)

	stmt := `UPDATE member SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	return nil
}

func (d *DB) DeleteMember(ctx context.Context, delete *store.DeleteMember) error {
	stmt := `DELETE FROM member WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}
