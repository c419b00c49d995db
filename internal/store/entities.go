package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/PratikMahajan1993/worktracker/internal/model"
)

// ---- OperatorInfo ----

// InsertOperatorInfo inserts a new operator and returns its assigned id.
func (s *Store) InsertOperatorInfo(ctx context.Context, o *model.OperatorInfo) (int64, error) {
	if err := o.Validate(); err != nil {
		return 0, fmt.Errorf("invalid operator: %w", err)
	}

	res, err := s.conn.ExecContext(ctx, `
	INSERT INTO operator_info (name, hourly_salary, role, priority, notes, notes_for_ai, last_modified)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`, o.Name, o.HourlySalary, o.Role, o.Priority, o.Notes, o.NotesForAI, o.LastModified)
	if err != nil {
		return 0, fmt.Errorf("failed to insert operator: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted operator id: %w", err)
	}
	o.ID = id
	return id, nil
}

// UpsertOperatorInfo inserts or replaces an operator by its explicit id.
// No business validation: the pull path stores records as mapped.
func (s *Store) UpsertOperatorInfo(ctx context.Context, o *model.OperatorInfo) error {
	if o.ID == 0 {
		return fmt.Errorf("operator id is required for upsert")
	}

	_, err := s.conn.ExecContext(ctx, `
	INSERT INTO operator_info (id, name, hourly_salary, role, priority, notes, notes_for_ai, last_modified)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		hourly_salary = excluded.hourly_salary,
		role = excluded.role,
		priority = excluded.priority,
		notes = excluded.notes,
		notes_for_ai = excluded.notes_for_ai,
		last_modified = excluded.last_modified
	`, o.ID, o.Name, o.HourlySalary, o.Role, o.Priority, o.Notes, o.NotesForAI, o.LastModified)
	if err != nil {
		return fmt.Errorf("failed to upsert operator %d: %w", o.ID, err)
	}
	return nil
}

// DeleteOperatorInfo removes an operator. Idempotent.
func (s *Store) DeleteOperatorInfo(ctx context.Context, id int64) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM operator_info WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete operator %d: %w", id, err)
	}
	return nil
}

// ListOperatorInfo returns every operator ordered by id.
func (s *Store) ListOperatorInfo(ctx context.Context) ([]*model.OperatorInfo, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT id, name, hourly_salary, role, priority, notes, notes_for_ai, last_modified
	FROM operator_info ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	defer rows.Close()

	var out []*model.OperatorInfo
	for rows.Next() {
		var o model.OperatorInfo
		if err := rows.Scan(&o.ID, &o.Name, &o.HourlySalary, &o.Role, &o.Priority, &o.Notes, &o.NotesForAI, &o.LastModified); err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operators: %w", err)
	}
	return out, nil
}

// ---- ActivityCategory ----

// InsertActivityCategory inserts a new category and returns its assigned id.
func (s *Store) InsertActivityCategory(ctx context.Context, c *model.ActivityCategory) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("invalid category: %w", err)
	}

	res, err := s.conn.ExecContext(ctx, `
	INSERT INTO activity_categories (name, last_modified) VALUES (?, ?)
	`, c.Name, c.LastModified)
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted category id: %w", err)
	}
	c.ID = id
	return id, nil
}

// UpsertActivityCategoryByName inserts or updates a category keyed on its
// name. Categories travel by business key, so the pull path must not use
// the local surrogate id here; an existing row keeps its id.
func (s *Store) UpsertActivityCategoryByName(ctx context.Context, c *model.ActivityCategory) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	_, err := s.conn.ExecContext(ctx, `
	INSERT INTO activity_categories (name, last_modified) VALUES (?, ?)
	ON CONFLICT(name) DO UPDATE SET
		last_modified = excluded.last_modified
	`, c.Name, c.LastModified)
	if err != nil {
		return fmt.Errorf("failed to upsert category %q: %w", c.Name, err)
	}
	return nil
}

// DeleteActivityCategory removes a category by id. Idempotent.
func (s *Store) DeleteActivityCategory(ctx context.Context, id int64) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM activity_categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}

// ListActivityCategories returns every category ordered by name.
func (s *Store) ListActivityCategories(ctx context.Context) ([]*model.ActivityCategory, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT id, name, last_modified FROM activity_categories ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []*model.ActivityCategory
	for rows.Next() {
		var c model.ActivityCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.LastModified); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return out, nil
}

// ---- TheBoysInfo ----

// UpsertTheBoysInfo inserts or replaces a worker. The id is user-supplied,
// so insert and upsert are the same operation for this kind. Only the id
// is checked; the pull path stores other fields as mapped.
func (s *Store) UpsertTheBoysInfo(ctx context.Context, b *model.TheBoysInfo) error {
	if b.ID == 0 {
		return fmt.Errorf("worker id is required for upsert")
	}

	_, err := s.conn.ExecContext(ctx, `
	INSERT INTO the_boys_info (id, name, role, notes, notes_for_ai, last_modified)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		role = excluded.role,
		notes = excluded.notes,
		notes_for_ai = excluded.notes_for_ai,
		last_modified = excluded.last_modified
	`, b.ID, b.Name, b.Role, b.Notes, b.NotesForAI, b.LastModified)
	if err != nil {
		return fmt.Errorf("failed to upsert worker %d: %w", b.ID, err)
	}
	return nil
}

// DeleteTheBoysInfo removes a worker. Idempotent.
func (s *Store) DeleteTheBoysInfo(ctx context.Context, id int64) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM the_boys_info WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete worker %d: %w", id, err)
	}
	return nil
}

// ListTheBoysInfo returns every worker ordered by id.
func (s *Store) ListTheBoysInfo(ctx context.Context) ([]*model.TheBoysInfo, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT id, name, role, notes, notes_for_ai, last_modified
	FROM the_boys_info ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var out []*model.TheBoysInfo
	for rows.Next() {
		var b model.TheBoysInfo
		if err := rows.Scan(&b.ID, &b.Name, &b.Role, &b.Notes, &b.NotesForAI, &b.LastModified); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}
	return out, nil
}

// ---- ProductionActivity ----

// InsertProductionActivity inserts a new production run and returns its id.
func (s *Store) InsertProductionActivity(ctx context.Context, p *model.ProductionActivity) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("invalid production activity: %w", err)
	}

	res, err := s.conn.ExecContext(ctx, `
	INSERT INTO production_activities (
		boy_id, component_name, machine_number, production_quantity,
		rejection_quantity, start_time, end_time, duration, downtime_minutes,
		last_modified
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		i64PtrToNull(p.BoyID), p.ComponentName, p.MachineNumber, p.ProductionQuantity,
		i64PtrToNull(p.RejectionQuantity), p.StartTime, p.EndTime, p.Duration,
		i64PtrToNull(p.DowntimeMinutes), p.LastModified)
	if err != nil {
		return 0, fmt.Errorf("failed to insert production activity: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted production activity id: %w", err)
	}
	p.ID = id
	return id, nil
}

// UpsertProductionActivity inserts or replaces a production run by id.
// No business validation: the pull path stores records as mapped.
func (s *Store) UpsertProductionActivity(ctx context.Context, p *model.ProductionActivity) error {
	if p.ID == 0 {
		return fmt.Errorf("production activity id is required for upsert")
	}

	_, err := s.conn.ExecContext(ctx, `
	INSERT INTO production_activities (
		id, boy_id, component_name, machine_number, production_quantity,
		rejection_quantity, start_time, end_time, duration, downtime_minutes,
		last_modified
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		boy_id = excluded.boy_id,
		component_name = excluded.component_name,
		machine_number = excluded.machine_number,
		production_quantity = excluded.production_quantity,
		rejection_quantity = excluded.rejection_quantity,
		start_time = excluded.start_time,
		end_time = excluded.end_time,
		duration = excluded.duration,
		downtime_minutes = excluded.downtime_minutes,
		last_modified = excluded.last_modified
	`,
		p.ID, i64PtrToNull(p.BoyID), p.ComponentName, p.MachineNumber, p.ProductionQuantity,
		i64PtrToNull(p.RejectionQuantity), p.StartTime, p.EndTime, p.Duration,
		i64PtrToNull(p.DowntimeMinutes), p.LastModified)
	if err != nil {
		return fmt.Errorf("failed to upsert production activity %d: %w", p.ID, err)
	}
	return nil
}

// DeleteProductionActivity removes a production run. Idempotent.
func (s *Store) DeleteProductionActivity(ctx context.Context, id int64) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM production_activities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete production activity %d: %w", id, err)
	}
	return nil
}

// ListProductionActivities returns every production run ordered by id.
func (s *Store) ListProductionActivities(ctx context.Context) ([]*model.ProductionActivity, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT id, boy_id, component_name, machine_number, production_quantity,
	       rejection_quantity, start_time, end_time, duration, downtime_minutes,
	       last_modified
	FROM production_activities ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list production activities: %w", err)
	}
	defer rows.Close()

	var out []*model.ProductionActivity
	for rows.Next() {
		var p model.ProductionActivity
		var boyID, rejection, downtime sql.NullInt64
		if err := rows.Scan(&p.ID, &boyID, &p.ComponentName, &p.MachineNumber, &p.ProductionQuantity,
			&rejection, &p.StartTime, &p.EndTime, &p.Duration, &downtime, &p.LastModified); err != nil {
			return nil, fmt.Errorf("failed to scan production activity: %w", err)
		}
		p.BoyID = nullToI64Ptr(boyID)
		p.RejectionQuantity = nullToI64Ptr(rejection)
		p.DowntimeMinutes = nullToI64Ptr(downtime)
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating production activities: %w", err)
	}
	return out, nil
}

// ---- ComponentInfo ----

// InsertComponentInfo inserts a new component and returns its assigned id.
func (s *Store) InsertComponentInfo(ctx context.Context, c *model.ComponentInfo) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("invalid component: %w", err)
	}

	res, err := s.conn.ExecContext(ctx, `
	INSERT INTO component_info (name, customer, priority_level, cycle_time_minutes, notes_for_ai, last_modified)
	VALUES (?, ?, ?, ?, ?, ?)
	`, c.Name, c.Customer, c.PriorityLevel, c.CycleTimeMinutes, c.NotesForAI, c.LastModified)
	if err != nil {
		return 0, fmt.Errorf("failed to insert component: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted component id: %w", err)
	}
	c.ID = id
	return id, nil
}

// UpsertComponentInfoByName inserts or updates a component keyed on its
// name. Like categories, components travel by business key; an existing
// row keeps its local id.
func (s *Store) UpsertComponentInfoByName(ctx context.Context, c *model.ComponentInfo) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid component: %w", err)
	}

	_, err := s.conn.ExecContext(ctx, `
	INSERT INTO component_info (name, customer, priority_level, cycle_time_minutes, notes_for_ai, last_modified)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		customer = excluded.customer,
		priority_level = excluded.priority_level,
		cycle_time_minutes = excluded.cycle_time_minutes,
		notes_for_ai = excluded.notes_for_ai,
		last_modified = excluded.last_modified
	`, c.Name, c.Customer, c.PriorityLevel, c.CycleTimeMinutes, c.NotesForAI, c.LastModified)
	if err != nil {
		return fmt.Errorf("failed to upsert component %q: %w", c.Name, err)
	}
	return nil
}

// DeleteComponentInfo removes a component by id. Idempotent.
func (s *Store) DeleteComponentInfo(ctx context.Context, id int64) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM component_info WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete component %d: %w", id, err)
	}
	return nil
}

// ListComponentInfo returns every component ordered by name.
func (s *Store) ListComponentInfo(ctx context.Context) ([]*model.ComponentInfo, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT id, name, customer, priority_level, cycle_time_minutes, notes_for_ai, last_modified
	FROM component_info ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	defer rows.Close()

	var out []*model.ComponentInfo
	for rows.Next() {
		var c model.ComponentInfo
		if err := rows.Scan(&c.ID, &c.Name, &c.Customer, &c.PriorityLevel, &c.CycleTimeMinutes, &c.NotesForAI, &c.LastModified); err != nil {
			return nil, fmt.Errorf("failed to scan component: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating components: %w", err)
	}
	return out, nil
}
