package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/PratikMahajan1993/worktracker/internal/model"
)

// InsertWorkActivityLog inserts a new log and returns its assigned id.
func (s *Store) InsertWorkActivityLog(ctx context.Context, w *model.WorkActivityLog) (int64, error) {
	if err := w.Validate(); err != nil {
		return 0, fmt.Errorf("invalid work activity log: %w", err)
	}

	query := `
	INSERT INTO work_activity_logs (
		category_name, category_id, start_time, end_time, duration,
		operator_id, expenses, log_date, task_successful, assigned_by,
		last_modified
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.conn.ExecContext(ctx, query,
		w.CategoryName,
		i64PtrToNull(w.CategoryID),
		w.StartTime,
		i64PtrToNull(w.EndTime),
		i64PtrToNull(w.Duration),
		i64PtrToNull(w.OperatorID),
		f64PtrToNull(w.Expenses),
		w.LogDate,
		boolPtrToNull(w.TaskSuccessful),
		strPtrToNull(w.AssignedBy),
		w.LastModified,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert work activity log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted log id: %w", err)
	}
	w.ID = id
	return id, nil
}

// UpsertWorkActivityLog inserts or replaces a log by its explicit id.
// Used by the pull path where the remote document carries the identity;
// field values are stored as mapped, without business validation, so a
// tolerant-defaulted record is never rejected here.
func (s *Store) UpsertWorkActivityLog(ctx context.Context, w *model.WorkActivityLog) error {
	if w.ID == 0 {
		return fmt.Errorf("work activity log id is required for upsert")
	}

	query := `
	INSERT INTO work_activity_logs (
		id, category_name, category_id, start_time, end_time, duration,
		operator_id, expenses, log_date, task_successful, assigned_by,
		last_modified
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		category_name = excluded.category_name,
		category_id = excluded.category_id,
		start_time = excluded.start_time,
		end_time = excluded.end_time,
		duration = excluded.duration,
		operator_id = excluded.operator_id,
		expenses = excluded.expenses,
		log_date = excluded.log_date,
		task_successful = excluded.task_successful,
		assigned_by = excluded.assigned_by,
		last_modified = excluded.last_modified
	`

	_, err := s.conn.ExecContext(ctx, query,
		w.ID,
		w.CategoryName,
		i64PtrToNull(w.CategoryID),
		w.StartTime,
		i64PtrToNull(w.EndTime),
		i64PtrToNull(w.Duration),
		i64PtrToNull(w.OperatorID),
		f64PtrToNull(w.Expenses),
		w.LogDate,
		boolPtrToNull(w.TaskSuccessful),
		strPtrToNull(w.AssignedBy),
		w.LastModified,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert work activity log %d: %w", w.ID, err)
	}
	return nil
}

// UpdateWorkActivityLog overwrites an existing log in place.
func (s *Store) UpdateWorkActivityLog(ctx context.Context, w *model.WorkActivityLog) error {
	if w.ID == 0 {
		return fmt.Errorf("work activity log id is required for update")
	}
	return s.UpsertWorkActivityLog(ctx, w)
}

// DeleteWorkActivityLog removes a log and its junction rows.
// Returns nil if the log doesn't exist (idempotent).
func (s *Store) DeleteWorkActivityLog(ctx context.Context, id int64) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM work_activity_components WHERE work_activity_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete component links for log %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM work_activity_logs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete work activity log %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of log %d: %w", id, err)
	}
	return nil
}

// GetWorkActivityLog retrieves a single log by id.
// Returns sql.ErrNoRows if the log is not found.
func (s *Store) GetWorkActivityLog(ctx context.Context, id int64) (*model.WorkActivityLog, error) {
	row := s.conn.QueryRowContext(ctx, `
	SELECT id, category_name, category_id, start_time, end_time, duration,
	       operator_id, expenses, log_date, task_successful, assigned_by,
	       last_modified
	FROM work_activity_logs
	WHERE id = ?
	`, id)

	w, err := scanWorkActivityLog(row)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// ListWorkActivityLogs returns every log ordered by id.
func (s *Store) ListWorkActivityLogs(ctx context.Context) ([]*model.WorkActivityLog, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT id, category_name, category_id, start_time, end_time, duration,
	       operator_id, expenses, log_date, task_successful, assigned_by,
	       last_modified
	FROM work_activity_logs
	ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list work activity logs: %w", err)
	}
	defer rows.Close()

	var logs []*model.WorkActivityLog
	for rows.Next() {
		w, err := scanWorkActivityLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work activity logs: %w", err)
	}
	return logs, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkActivityLog(r rowScanner) (*model.WorkActivityLog, error) {
	var w model.WorkActivityLog
	var categoryID, endTime, duration, operatorID, taskSuccessful sql.NullInt64
	var expenses sql.NullFloat64
	var assignedBy sql.NullString

	err := r.Scan(
		&w.ID,
		&w.CategoryName,
		&categoryID,
		&w.StartTime,
		&endTime,
		&duration,
		&operatorID,
		&expenses,
		&w.LogDate,
		&taskSuccessful,
		&assignedBy,
		&w.LastModified,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan work activity log: %w", err)
	}

	w.CategoryID = nullToI64Ptr(categoryID)
	w.EndTime = nullToI64Ptr(endTime)
	w.Duration = nullToI64Ptr(duration)
	w.OperatorID = nullToI64Ptr(operatorID)
	w.Expenses = nullToF64Ptr(expenses)
	w.TaskSuccessful = nullToBoolPtr(taskSuccessful)
	w.AssignedBy = nullToStrPtr(assignedBy)
	return &w, nil
}
