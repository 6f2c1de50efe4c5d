package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UpsertGroup creates the group row or refreshes its name and link.
func (s *Store) UpsertGroup(ctx context.Context, groupID int64, name, link string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsertGroup, groupID, nullString(name), nullString(link))
	if err != nil {
		return fmt.Errorf("upsert group %d: %w", groupID, err)
	}
	return nil
}

// GetGroup returns the stored group. ok is false when the group was never seen.
func (s *Store) GetGroup(ctx context.Context, groupID int64) (group Group, ok bool, err error) {
	var name, link sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT group_id, group_name, group_link, boomer_counter, cringe_counter
		FROM boomer_groups
		WHERE group_id = ?
	`, groupID).Scan(&group.GroupID, &name, &link, &group.BoomerCounter, &group.CringeCounter)
	if errors.Is(err, sql.ErrNoRows) {
		return Group{}, false, nil
	}
	if err != nil {
		return Group{}, false, fmt.Errorf("get group %d: %w", groupID, err)
	}

	group.GroupName = name.String
	group.GroupLink = link.String
	return group, true, nil
}

// IncrementBoomer adds one to the group's boomer counter and returns the new value.
func (s *Store) IncrementBoomer(ctx context.Context, groupID int64) (int64, error) {
	return s.increment(ctx, groupID, "boomer_counter", 1)
}

// IncrementCringe adds delta, which may be negative, to the group's cringe counter.
func (s *Store) IncrementCringe(ctx context.Context, groupID int64, delta int64) (int64, error) {
	return s.increment(ctx, groupID, "cringe_counter", delta)
}

// increment runs the update and the read-back in one transaction so the
// returned value is the one this call produced.
func (s *Store) increment(ctx context.Context, groupID int64, column string, delta int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", column, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE boomer_groups SET %[1]s = %[1]s + ? WHERE group_id = ?", column),
		delta, groupID)
	if err != nil {
		return 0, fmt.Errorf("increment %s for group %d: %w", column, groupID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("increment %s for group %d: %w", column, groupID, ErrGroupNotFound)
	}

	var value int64
	err = tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM boomer_groups WHERE group_id = ?", column),
		groupID).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("read %s for group %d: %w", column, groupID, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("increment %s for group %d: %w", column, groupID, err)
	}
	return value, nil
}

// Stats sums the boomer counters of every group.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(boomer_counter), 0), COUNT(*) FROM boomer_groups",
	).Scan(&stats.TotalBoomers, &stats.Groups)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
