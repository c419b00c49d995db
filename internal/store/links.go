package store

import (
	"context"
	"fmt"
	"strings"
)

// ComponentIDsForLog returns the component ids linked to a work activity
// log, ordered ascending. The junction table, not the log row, is the
// local source of truth for this association.
func (s *Store) ComponentIDsForLog(ctx context.Context, workActivityID int64) ([]int64, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT component_id FROM work_activity_components
	WHERE work_activity_id = ?
	ORDER BY component_id ASC
	`, workActivityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query component links for log %d: %w", workActivityID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan component link: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating component links: %w", err)
	}
	return ids, nil
}

// DeleteComponentLinks removes every junction row for the given log.
// Returns nil if there are none (idempotent).
func (s *Store) DeleteComponentLinks(ctx context.Context, workActivityID int64) error {
	_, err := s.conn.ExecContext(ctx, `
	DELETE FROM work_activity_components WHERE work_activity_id = ?
	`, workActivityID)
	if err != nil {
		return fmt.Errorf("failed to delete component links for log %d: %w", workActivityID, err)
	}
	return nil
}

// InsertComponentLinks inserts one junction row per component id.
// Duplicate pairs are ignored, so re-inserting is idempotent.
func (s *Store) InsertComponentLinks(ctx context.Context, workActivityID int64, componentIDs []int64) error {
	if len(componentIDs) == 0 {
		return nil
	}

	for _, cid := range componentIDs {
		_, err := s.conn.ExecContext(ctx, `
		INSERT OR IGNORE INTO work_activity_components (work_activity_id, component_id)
		VALUES (?, ?)
		`, workActivityID, cid)
		if err != nil {
			return fmt.Errorf("failed to insert component link (%d, %d): %w", workActivityID, cid, err)
		}
	}
	return nil
}

// ResetSequences resets the auto-increment counters so a wiped database
// assigns ids from 1 again.
func (s *Store) ResetSequences(ctx context.Context) error {
	names := []string{
		"'work_activity_logs'",
		"'operator_info'",
		"'activity_categories'",
		"'production_activities'",
		"'component_info'",
	}
	_, err := s.conn.ExecContext(ctx,
		`DELETE FROM sqlite_sequence WHERE name IN (`+strings.Join(names, ", ")+`)`)
	if err != nil {
		return fmt.Errorf("failed to reset sequences: %w", err)
	}
	return nil
}

// Wipe deletes every row of every synchronized table and resets the
// auto-increment sequences. Used only for a full account wipe.
func (s *Store) Wipe(ctx context.Context) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin wipe transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range syncedTables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to wipe table %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence`); err != nil {
		return fmt.Errorf("failed to reset sequences: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wipe: %w", err)
	}
	return nil
}
