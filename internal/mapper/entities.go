package mapper

import (
	"fmt"

	"github.com/PratikMahajan1993/worktracker/internal/model"
	"github.com/PratikMahajan1993/worktracker/internal/remote"
)

// ---- WorkActivityLog ----

// WorkActivityLogDocument builds the document body for a log. The body
// carries componentIds, so the caller must populate w.ComponentIDs from
// the junction table before mapping.
func WorkActivityLogDocument(w *model.WorkActivityLog) map[string]any {
	componentIDs := w.ComponentIDs
	if componentIDs == nil {
		componentIDs = []int64{}
	}
	return map[string]any{
		"categoryName":   w.CategoryName,
		"categoryId":     w.CategoryID,
		"startTime":      w.StartTime,
		"endTime":        w.EndTime,
		"duration":       w.Duration,
		"operatorId":     w.OperatorID,
		"expenses":       w.Expenses,
		"logDate":        w.LogDate,
		"taskSuccessful": w.TaskSuccessful,
		"assignedBy":     w.AssignedBy,
		"componentIds":   componentIDs,
		"lastModified":   w.LastModified,
	}
}

// WorkActivityLogFromDocument maps a remote document back to a log.
// The document id must be the stringified local id; anything else makes
// the document structurally unusable.
func (m *Mapper) WorkActivityLogFromDocument(doc remote.Document) (*model.WorkActivityLog, error) {
	id, err := ParseID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("unusable work activity log document %q: %w", doc.ID, err)
	}

	r := m.reader(remote.CollectionWorkActivityLogs, doc)
	return &model.WorkActivityLog{
		ID:             id,
		CategoryName:   r.str("categoryName"),
		CategoryID:     r.i64Ptr("categoryId"),
		StartTime:      r.millis("startTime"),
		EndTime:        r.i64Ptr("endTime"),
		Duration:       r.i64Ptr("duration"),
		OperatorID:     r.i64Ptr("operatorId"),
		Expenses:       r.f64Ptr("expenses"),
		LogDate:        r.millis("logDate"),
		TaskSuccessful: r.boolPtr("taskSuccessful"),
		AssignedBy:     r.strPtr("assignedBy"),
		ComponentIDs:   r.i64Slice("componentIds"),
		LastModified:   r.millis("lastModified"),
	}, nil
}

// ---- OperatorInfo ----

func OperatorInfoDocument(o *model.OperatorInfo) map[string]any {
	return map[string]any{
		"name":         o.Name,
		"hourlySalary": o.HourlySalary,
		"role":         o.Role,
		"priority":     o.Priority,
		"notes":        o.Notes,
		"notesForAi":   o.NotesForAI,
		"lastModified": o.LastModified,
	}
}

func (m *Mapper) OperatorInfoFromDocument(doc remote.Document) (*model.OperatorInfo, error) {
	id, err := ParseID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("unusable operator document %q: %w", doc.ID, err)
	}

	r := m.reader(remote.CollectionOperatorInfo, doc)
	return &model.OperatorInfo{
		ID:           id,
		Name:         r.str("name"),
		HourlySalary: r.f64("hourlySalary"),
		Role:         r.str("role"),
		Priority:     r.i64("priority"),
		Notes:        r.str("notes"),
		NotesForAI:   r.str("notesForAi"),
		LastModified: r.millis("lastModified"),
	}, nil
}

// ---- ActivityCategory ----

// ActivityCategoryDocument includes the name even though the name is the
// document id: the name doubles as the displayed field.
func ActivityCategoryDocument(c *model.ActivityCategory) map[string]any {
	return map[string]any{
		"name":         c.Name,
		"lastModified": c.LastModified,
	}
}

// ActivityCategoryFromDocument maps a remote category. The local id is
// set to 0 (unassigned): the caller must upsert by name, never by id,
// since the original surrogate id is lost once the record left the
// device it was created on.
func (m *Mapper) ActivityCategoryFromDocument(doc remote.Document) (*model.ActivityCategory, error) {
	r := m.reader(remote.CollectionActivityCategories, doc)
	name := r.str("name")
	if name == "" {
		name = doc.ID
	}
	if name == "" {
		return nil, fmt.Errorf("unusable category document: no name")
	}

	return &model.ActivityCategory{
		ID:           0,
		Name:         name,
		LastModified: r.millis("lastModified"),
	}, nil
}

// ---- TheBoysInfo ----

func TheBoysInfoDocument(b *model.TheBoysInfo) map[string]any {
	return map[string]any{
		"name":         b.Name,
		"role":         b.Role,
		"notes":        b.Notes,
		"notesForAi":   b.NotesForAI,
		"lastModified": b.LastModified,
	}
}

func (m *Mapper) TheBoysInfoFromDocument(doc remote.Document) (*model.TheBoysInfo, error) {
	id, err := ParseID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("unusable worker document %q: %w", doc.ID, err)
	}

	r := m.reader(remote.CollectionTheBoysInfo, doc)
	return &model.TheBoysInfo{
		ID:           id,
		Name:         r.str("name"),
		Role:         r.str("role"),
		Notes:        r.str("notes"),
		NotesForAI:   r.str("notesForAi"),
		LastModified: r.millis("lastModified"),
	}, nil
}

// ---- ProductionActivity ----

func ProductionActivityDocument(p *model.ProductionActivity) map[string]any {
	return map[string]any{
		"boyId":              p.BoyID,
		"componentName":      p.ComponentName,
		"machineNumber":      p.MachineNumber,
		"productionQuantity": p.ProductionQuantity,
		"rejectionQuantity":  p.RejectionQuantity,
		"startTime":          p.StartTime,
		"endTime":            p.EndTime,
		"duration":           p.Duration,
		"downtimeMinutes":    p.DowntimeMinutes,
		"lastModified":       p.LastModified,
	}
}

func (m *Mapper) ProductionActivityFromDocument(doc remote.Document) (*model.ProductionActivity, error) {
	id, err := ParseID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("unusable production activity document %q: %w", doc.ID, err)
	}

	r := m.reader(remote.CollectionProductionActivities, doc)
	return &model.ProductionActivity{
		ID:                 id,
		BoyID:              r.i64Ptr("boyId"),
		ComponentName:      r.str("componentName"),
		MachineNumber:      r.i64("machineNumber"),
		ProductionQuantity: r.i64("productionQuantity"),
		RejectionQuantity:  r.i64Ptr("rejectionQuantity"),
		StartTime:          r.millis("startTime"),
		EndTime:            r.millis("endTime"),
		Duration:           r.i64("duration"),
		DowntimeMinutes:    r.i64Ptr("downtimeMinutes"),
		LastModified:       r.millis("lastModified"),
	}, nil
}

// ---- ComponentInfo ----

// ComponentInfoDocument includes the name for the same reason categories
// do: the business key doubles as the displayed field.
func ComponentInfoDocument(c *model.ComponentInfo) map[string]any {
	return map[string]any{
		"name":             c.Name,
		"customer":         c.Customer,
		"priorityLevel":    c.PriorityLevel,
		"cycleTimeMinutes": c.CycleTimeMinutes,
		"notesForAi":       c.NotesForAI,
		"lastModified":     c.LastModified,
	}
}

// ComponentInfoFromDocument maps a remote component with the local id
// left at the 0 sentinel; the caller upserts by name.
func (m *Mapper) ComponentInfoFromDocument(doc remote.Document) (*model.ComponentInfo, error) {
	r := m.reader(remote.CollectionComponentInfo, doc)
	name := r.str("name")
	if name == "" {
		name = doc.ID
	}
	if name == "" {
		return nil, fmt.Errorf("unusable component document: no name")
	}

	return &model.ComponentInfo{
		ID:               0,
		Name:             name,
		Customer:         r.str("customer"),
		PriorityLevel:    r.i64("priorityLevel"),
		CycleTimeMinutes: r.f64("cycleTimeMinutes"),
		NotesForAI:       r.str("notesForAi"),
		LastModified:     r.millis("lastModified"),
	}, nil
}
