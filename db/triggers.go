package db

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// UpsertTrigger stores phrase under key for the scope, replacing the phrase of an existing row.
func (s *Store) UpsertTrigger(ctx context.Context, scope Scope, key, phrase string) error {
	groupID, err := scope.value()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.upsertTrigger, key, groupID, phrase); err != nil {
		return fmt.Errorf("upsert trigger %q: %w", key, err)
	}
	return nil
}

// TriggerExists reports whether key is a trigger in the group or a global one.
func (s *Store) TriggerExists(ctx context.Context, key string, groupID int64) (bool, error) {
	scoped, err := GroupScope(groupID).value()
	if err != nil {
		return false, err
	}
	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM boomer_triggers
		WHERE trigger_key = ? AND group_id IN (?, ?))
	`, key, scoped, globalGroupID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check trigger %q: %w", key, err)
	}
	return exists, nil
}

// ListTriggers returns the triggers stored for exactly this scope.
// Global triggers are not included in a group listing.
func (s *Store) ListTriggers(ctx context.Context, scope Scope) ([]Trigger, error) {
	value, err := scope.value()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT trigger_key, group_id, phrase
		FROM boomer_triggers
		WHERE group_id = ?
		ORDER BY created_at, trigger_key
	`, value)
	if err != nil {
		return nil, fmt.Errorf("list triggers: %w", err)
	}
	defer rows.Close()

	var triggers []Trigger
	for rows.Next() {
		var t Trigger
		var groupID int64
		if err := rows.Scan(&t.Key, &groupID, &t.Phrase); err != nil {
			return nil, fmt.Errorf("scan trigger: %w", err)
		}
		t.Scope = scopeFromValue(groupID)
		triggers = append(triggers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list triggers: %w", err)
	}
	return triggers, nil
}

// DeleteTriggersByHash removes the group's triggers whose KeyHash equals hash
// and returns how many were removed.
func (s *Store) DeleteTriggersByHash(ctx context.Context, groupID int64, hash string) (int64, error) {
	triggers, err := s.ListTriggers(ctx, GroupScope(groupID))
	if err != nil {
		return 0, err
	}

	var removed int64
	for _, t := range triggers {
		if KeyHash(t.Key) != hash {
			continue
		}
		res, err := s.db.ExecContext(ctx,
			"DELETE FROM boomer_triggers WHERE trigger_key = ? AND group_id = ?",
			t.Key, groupID)
		if err != nil {
			return removed, fmt.Errorf("delete trigger %q: %w", t.Key, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			removed += n
		}
	}
	return removed, nil
}

// KeyHash is the hex MD5 of a trigger key, used in button payloads.
func KeyHash(key string) string {
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}
