// Package model defines the synchronized entity kinds of the work tracker.
//
// Every entity carries a LastModified timestamp in epoch milliseconds.
// The timestamp is set by the writer immediately before a remote push and
// is the sole staleness signal; it is never recomputed on read.
package model

import (
	"fmt"
	"time"
)

// Kind identifies one of the six synchronized entity kinds.
type Kind string

const (
	KindWorkActivityLog    Kind = "work_activity_log"
	KindOperatorInfo       Kind = "operator_info"
	KindActivityCategory   Kind = "activity_category"
	KindTheBoysInfo        Kind = "the_boys_info"
	KindProductionActivity Kind = "production_activity"
	KindComponentInfo      Kind = "component_info"
)

// Kinds lists all entity kinds in the fixed order sync jobs process them.
func Kinds() []Kind {
	return []Kind{
		KindWorkActivityLog,
		KindOperatorInfo,
		KindActivityCategory,
		KindTheBoysInfo,
		KindProductionActivity,
		KindComponentInfo,
	}
}

// Now returns the current wall clock time in epoch milliseconds.
func Now() int64 {
	return time.Now().UnixMilli()
}

// WorkActivityLog is a single logged unit of work.
//
// ComponentIDs is transient: it is not a column on the local table. The
// junction table is the local source of truth for the log/component
// association; ComponentIDs is populated only when a log is being pushed
// to or pulled from the remote store.
type WorkActivityLog struct {
	ID             int64
	CategoryName   string
	CategoryID     *int64
	StartTime      int64
	EndTime        *int64
	Duration       *int64
	OperatorID     *int64
	Expenses       *float64
	LogDate        int64
	TaskSuccessful *bool
	AssignedBy     *string
	LastModified   int64

	ComponentIDs []int64
}

// Validate checks required fields on a WorkActivityLog.
func (w *WorkActivityLog) Validate() error {
	if w.CategoryName == "" {
		return fmt.Errorf("categoryName is required")
	}
	if w.StartTime == 0 {
		return fmt.Errorf("startTime is required")
	}
	return nil
}

// Touch sets LastModified to the current time.
// Call before any local write that will be pushed remotely.
func (w *WorkActivityLog) Touch() { w.LastModified = Now() }

// OperatorInfo describes a machine operator.
type OperatorInfo struct {
	ID           int64
	Name         string
	HourlySalary float64
	Role         string
	Priority     int64
	Notes        string
	NotesForAI   string
	LastModified int64
}

func (o *OperatorInfo) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func (o *OperatorInfo) Touch() { o.LastModified = Now() }

// ActivityCategory is a named bucket for work activity logs.
//
// The category name is the remote document identity (business key). The
// local auto-increment id never leaves the device; a record pulled from
// the remote store carries ID 0 until it is resolved by name.
type ActivityCategory struct {
	ID           int64
	Name         string
	LastModified int64
}

func (c *ActivityCategory) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func (c *ActivityCategory) Touch() { c.LastModified = Now() }

// TheBoysInfo describes a production worker. Unlike the other kinds the
// id is supplied by the user, not by the auto-increment sequence.
type TheBoysInfo struct {
	ID           int64
	Name         string
	Role         string
	Notes        string
	NotesForAI   string
	LastModified int64
}

func (b *TheBoysInfo) Validate() error {
	if b.ID == 0 {
		return fmt.Errorf("id is required")
	}
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func (b *TheBoysInfo) Touch() { b.LastModified = Now() }

// ProductionActivity is a single production run on a machine.
type ProductionActivity struct {
	ID                 int64
	BoyID              *int64
	ComponentName      string
	MachineNumber      int64
	ProductionQuantity int64
	RejectionQuantity  *int64
	StartTime          int64
	EndTime            int64
	Duration           int64
	DowntimeMinutes    *int64
	LastModified       int64
}

func (p *ProductionActivity) Validate() error {
	if p.ComponentName == "" {
		return fmt.Errorf("componentName is required")
	}
	return nil
}

func (p *ProductionActivity) Touch() { p.LastModified = Now() }

// ComponentInfo describes a manufactured component.
//
// Like ActivityCategory, the component name is the remote document
// identity; the local id is a device-only surrogate.
type ComponentInfo struct {
	ID               int64
	Name             string
	Customer         string
	PriorityLevel    int64
	CycleTimeMinutes float64
	NotesForAI       string
	LastModified     int64
}

func (c *ComponentInfo) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func (c *ComponentInfo) Touch() { c.LastModified = Now() }

// ComponentLink is one row of the work-activity/component junction table.
type ComponentLink struct {
	WorkActivityID int64
	ComponentID    int64
}
