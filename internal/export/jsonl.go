// Package export writes and restores JSONL snapshots of the local
// store. A snapshot is a line-per-record file where each line names its
// entity kind, so one file carries the whole database. Work activity
// logs embed their component ids, mirroring the remote document shape.
package export

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PratikMahajan1993/worktracker/internal/model"
	"github.com/PratikMahajan1993/worktracker/internal/store"
)

// line is one JSONL record with its kind tag.
type line struct {
	Kind   model.Kind      `json:"kind"`
	Record json.RawMessage `json:"record"`
}

// Result carries statistics about an export or import run.
type Result struct {
	Records int
	Errors  []string
}

// Export writes every record of every entity kind to a JSONL file.
// The file is written atomically via a temp file.
func Export(ctx context.Context, st *store.Store, path string) (*Result, error) {
	result := &Result{}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)

	writeLine := func(kind model.Kind, record any) error {
		raw, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal %s record: %w", kind, err)
		}
		if err := enc.Encode(line{Kind: kind, Record: raw}); err != nil {
			return fmt.Errorf("failed to write %s record: %w", kind, err)
		}
		result.Records++
		return nil
	}

	logs, err := st.ListWorkActivityLogs(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		ids, err := st.ComponentIDsForLog(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		l.ComponentIDs = ids
		if err := writeLine(model.KindWorkActivityLog, l); err != nil {
			return nil, err
		}
	}

	operators, err := st.ListOperatorInfo(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range operators {
		if err := writeLine(model.KindOperatorInfo, o); err != nil {
			return nil, err
		}
	}

	categories, err := st.ListActivityCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if err := writeLine(model.KindActivityCategory, c); err != nil {
			return nil, err
		}
	}

	workers, err := st.ListTheBoysInfo(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range workers {
		if err := writeLine(model.KindTheBoysInfo, b); err != nil {
			return nil, err
		}
	}

	production, err := st.ListProductionActivities(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range production {
		if err := writeLine(model.KindProductionActivity, p); err != nil {
			return nil, err
		}
	}

	components, err := st.ListComponentInfo(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range components {
		if err := writeLine(model.KindComponentInfo, c); err != nil {
			return nil, err
		}
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to finalize export file: %w", err)
	}

	return result, nil
}

// Import reads a JSONL snapshot and upserts every record. Individual bad
// lines are collected in the result, not fatal, matching the pull path's
// per-record tolerance.
func Import(ctx context.Context, st *store.Store, path string) (*Result, error) {
	result := &Result{}

	// #nosec G304 - controlled path from CLI
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(bufio.NewReader(f))
	lineNum := 0

	for {
		var l line
		if err := dec.Decode(&l); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid JSON at record %d: %w", lineNum+1, err)
		}
		lineNum++

		if err := importLine(ctx, st, l); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", lineNum, err))
			continue
		}
		result.Records++
	}

	return result, nil
}

func importLine(ctx context.Context, st *store.Store, l line) error {
	switch l.Kind {
	case model.KindWorkActivityLog:
		var rec model.WorkActivityLog
		if err := json.Unmarshal(l.Record, &rec); err != nil {
			return err
		}
		if err := st.UpsertWorkActivityLog(ctx, &rec); err != nil {
			return err
		}
		if err := st.DeleteComponentLinks(ctx, rec.ID); err != nil {
			return err
		}
		return st.InsertComponentLinks(ctx, rec.ID, rec.ComponentIDs)
	case model.KindOperatorInfo:
		var rec model.OperatorInfo
		if err := json.Unmarshal(l.Record, &rec); err != nil {
			return err
		}
		return st.UpsertOperatorInfo(ctx, &rec)
	case model.KindActivityCategory:
		var rec model.ActivityCategory
		if err := json.Unmarshal(l.Record, &rec); err != nil {
			return err
		}
		return st.UpsertActivityCategoryByName(ctx, &rec)
	case model.KindTheBoysInfo:
		var rec model.TheBoysInfo
		if err := json.Unmarshal(l.Record, &rec); err != nil {
			return err
		}
		return st.UpsertTheBoysInfo(ctx, &rec)
	case model.KindProductionActivity:
		var rec model.ProductionActivity
		if err := json.Unmarshal(l.Record, &rec); err != nil {
			return err
		}
		return st.UpsertProductionActivity(ctx, &rec)
	case model.KindComponentInfo:
		var rec model.ComponentInfo
		if err := json.Unmarshal(l.Record, &rec); err != nil {
			return err
		}
		return st.UpsertComponentInfoByName(ctx, &rec)
	default:
		return fmt.Errorf("unknown kind %q", l.Kind)
	}
}
