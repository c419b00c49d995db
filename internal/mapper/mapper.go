// Package mapper converts local records to and from their remote
// document representation.
//
// The outbound direction is strict and pure: a record always produces a
// complete document body, and the record's identity is omitted from the
// body (the caller supplies it as the document key) except where the
// identity doubles as a displayed field (category and component names).
//
// The inbound direction is tolerant: remote documents may have been
// written by a different client version, so a field-level type mismatch
// never fails the mapping. The mapper substitutes a type-appropriate
// default (0, "", false, now for missing timestamps), logs the anomaly,
// and moves on. A mapping fails only when the document is structurally
// unusable, e.g. a non-numeric id where a numeric one is required.
package mapper

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"github.com/PratikMahajan1993/worktracker/internal/model"
	"github.com/PratikMahajan1993/worktracker/internal/remote"
)

// Mapper holds the anomaly logger. It is otherwise stateless and safe
// for concurrent use.
type Mapper struct {
	logger *log.Logger
}

// New creates a Mapper. If logger is nil, a default logger writing to
// stderr is used.
func New(logger *log.Logger) *Mapper {
	if logger == nil {
		logger = log.New(os.Stderr, "[mapper] ", log.LstdFlags)
	}
	return &Mapper{logger: logger}
}

// reader reads typed fields out of one document, logging mismatches
// with enough context to find the offending document.
type reader struct {
	m          *Mapper
	collection string
	docID      string
	fields     map[string]any
}

func (m *Mapper) reader(collection string, doc remote.Document) *reader {
	return &reader{m: m, collection: collection, docID: doc.ID, fields: doc.Fields}
}

func (r *reader) anomaly(field string, v any) {
	r.m.logger.Printf("WARNING: %s/%s: field %q has unexpected type %T, using default",
		r.collection, r.docID, field, v)
}

// asI64 normalizes the numeric shapes a JSON decoder may produce.
func asI64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

func asF64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func (r *reader) str(field string) string {
	v, ok := r.fields[field]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.anomaly(field, v)
		return ""
	}
	return s
}

func (r *reader) i64(field string) int64 {
	v, ok := r.fields[field]
	if !ok || v == nil {
		return 0
	}
	n, ok := asI64(v)
	if !ok {
		r.anomaly(field, v)
		return 0
	}
	return n
}

func (r *reader) f64(field string) float64 {
	v, ok := r.fields[field]
	if !ok || v == nil {
		return 0
	}
	f, ok := asF64(v)
	if !ok {
		r.anomaly(field, v)
		return 0
	}
	return f
}

// millis reads a timestamp field, defaulting to now when absent.
func (r *reader) millis(field string) int64 {
	v, ok := r.fields[field]
	if !ok || v == nil {
		return model.Now()
	}
	n, ok := asI64(v)
	if !ok {
		r.anomaly(field, v)
		return model.Now()
	}
	return n
}

func (r *reader) i64Ptr(field string) *int64 {
	v, ok := r.fields[field]
	if !ok || v == nil {
		return nil
	}
	n, ok := asI64(v)
	if !ok {
		r.anomaly(field, v)
		return nil
	}
	return &n
}

func (r *reader) f64Ptr(field string) *float64 {
	v, ok := r.fields[field]
	if !ok || v == nil {
		return nil
	}
	f, ok := asF64(v)
	if !ok {
		r.anomaly(field, v)
		return nil
	}
	return &f
}

func (r *reader) strPtr(field string) *string {
	v, ok := r.fields[field]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.anomaly(field, v)
		return nil
	}
	return &s
}

func (r *reader) boolPtr(field string) *bool {
	v, ok := r.fields[field]
	if !ok || v == nil {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		r.anomaly(field, v)
		return nil
	}
	return &b
}

func (r *reader) i64Slice(field string) []int64 {
	v, ok := r.fields[field]
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		// Round-tripped through our own types the slice may survive.
		if typed, ok := v.([]int64); ok {
			return typed
		}
		r.anomaly(field, v)
		return nil
	}

	out := make([]int64, 0, len(raw))
	for _, item := range raw {
		n, ok := asI64(item)
		if !ok {
			r.anomaly(field, item)
			continue
		}
		out = append(out, n)
	}
	return out
}

// FormatID renders a local integer identity as a remote document id.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID parses a remote document id back to a local integer identity.
func ParseID(documentID string) (int64, error) {
	return strconv.ParseInt(documentID, 10, 64)
}
