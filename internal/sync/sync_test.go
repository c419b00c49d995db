package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"
	gosync "sync"
	"testing"

	"github.com/PratikMahajan1993/worktracker/internal/model"
	"github.com/PratikMahajan1993/worktracker/internal/remote"
	"github.com/PratikMahajan1993/worktracker/internal/store"
)

// fakeDocs is an in-memory DocumentStore. Put bodies are round-tripped
// through JSON so stored field values have the shapes a decoded HTTP
// response would have, which is what the inbound mapper expects.
type fakeDocs struct {
	mu      gosync.Mutex
	docs    map[string]map[string]map[string]any // tenant -> collection/id -> fields
	puts    int
	deletes int
	lists   int

	failPut  map[string]error // by collection
	failList map[string]error // by collection
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{
		docs:     map[string]map[string]map[string]any{},
		failPut:  map[string]error{},
		failList: map[string]error{},
	}
}

func (f *fakeDocs) key(collection, docID string) string {
	return collection + "/" + docID
}

func (f *fakeDocs) Put(ctx context.Context, tenantID, collection, documentID string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++

	if err := f.failPut[collection]; err != nil {
		return err
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}

	if f.docs[tenantID] == nil {
		f.docs[tenantID] = map[string]map[string]any{}
	}
	f.docs[tenantID][f.key(collection, documentID)] = decoded
	return nil
}

func (f *fakeDocs) Delete(ctx context.Context, tenantID, collection, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	delete(f.docs[tenantID], f.key(collection, documentID))
	return nil
}

func (f *fakeDocs) ListAll(ctx context.Context, tenantID, collection string) ([]remote.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++

	if err := f.failList[collection]; err != nil {
		return nil, err
	}

	var out []remote.Document
	prefix := collection + "/"
	for key, fields := range f.docs[tenantID] {
		if strings.HasPrefix(key, prefix) {
			out = append(out, remote.Document{
				ID:     strings.TrimPrefix(key, prefix),
				Fields: fields,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDocs) get(tenantID, collection, docID string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fields, ok := f.docs[tenantID][f.key(collection, docID)]
	return fields, ok
}

func (f *fakeDocs) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts + f.deletes + f.lists
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	return st
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func putJSON(t *testing.T, f *fakeDocs, tenantID, collection, docID string, fields map[string]any) {
	t.Helper()
	if err := f.Put(context.Background(), tenantID, collection, docID, fields); err != nil {
		t.Fatalf("seeding fake document failed: %v", err)
	}
}

func TestIncrementalSyncEmptyTenantIsNoOp(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	engine := NewEngine(st, docs, quietLogger())

	if err := engine.RunIncrementalSync(context.Background(), ""); err != nil {
		t.Fatalf("RunIncrementalSync failed: %v", err)
	}
	if docs.callCount() != 0 {
		t.Errorf("expected no remote calls for empty tenant, got %d", docs.callCount())
	}
}

func TestIncrementalSyncPullsAllKinds(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	ctx := context.Background()
	const tenant = "tenant-a"

	putJSON(t, docs, tenant, remote.CollectionWorkActivityLogs, "7", map[string]any{
		"categoryName": "Welding",
		"startTime":    int64(1700000000000),
		"logDate":      int64(1700000000000),
		"componentIds": []int64{3, 9},
		"lastModified": int64(1700000000001),
	})
	putJSON(t, docs, tenant, remote.CollectionOperatorInfo, "2", map[string]any{
		"name": "Sunil", "hourlySalary": 95.0, "lastModified": int64(1),
	})
	putJSON(t, docs, tenant, remote.CollectionActivityCategories, "Welding", map[string]any{
		"name": "Welding", "lastModified": int64(1),
	})
	putJSON(t, docs, tenant, remote.CollectionTheBoysInfo, "42", map[string]any{
		"name": "Ravi", "role": "operator", "lastModified": int64(1),
	})
	putJSON(t, docs, tenant, remote.CollectionProductionActivities, "9", map[string]any{
		"componentName": "Flange-20", "machineNumber": int64(3),
		"productionQuantity": int64(180), "startTime": int64(1), "endTime": int64(2),
		"duration": int64(1), "lastModified": int64(1),
	})
	putJSON(t, docs, tenant, remote.CollectionComponentInfo, "Flange-20", map[string]any{
		"name": "Flange-20", "customer": "Acme", "lastModified": int64(1),
	})

	engine := NewEngine(st, docs, quietLogger())
	if err := engine.RunIncrementalSync(ctx, tenant); err != nil {
		t.Fatalf("RunIncrementalSync failed: %v", err)
	}

	logs, err := st.ListWorkActivityLogs(ctx)
	if err != nil {
		t.Fatalf("ListWorkActivityLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != 7 || logs[0].CategoryName != "Welding" {
		t.Errorf("unexpected logs after pull: %+v", logs)
	}

	ids, err := st.ComponentIDsForLog(ctx, 7)
	if err != nil {
		t.Fatalf("ComponentIDsForLog failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 9 {
		t.Errorf("component ids = %v, want [3 9]", ids)
	}

	operators, _ := st.ListOperatorInfo(ctx)
	if len(operators) != 1 || operators[0].ID != 2 {
		t.Errorf("unexpected operators: %+v", operators)
	}
	categories, _ := st.ListActivityCategories(ctx)
	if len(categories) != 1 || categories[0].Name != "Welding" {
		t.Errorf("unexpected categories: %+v", categories)
	}
	workers, _ := st.ListTheBoysInfo(ctx)
	if len(workers) != 1 || workers[0].ID != 42 {
		t.Errorf("unexpected workers: %+v", workers)
	}
	production, _ := st.ListProductionActivities(ctx)
	if len(production) != 1 || production[0].ComponentName != "Flange-20" {
		t.Errorf("unexpected production activities: %+v", production)
	}
	components, _ := st.ListComponentInfo(ctx)
	if len(components) != 1 || components[0].Customer != "Acme" {
		t.Errorf("unexpected components: %+v", components)
	}

	if engine.Status().Snapshot().LastIncrementalSync == 0 {
		t.Error("expected status to record the incremental sync")
	}
}

func TestIncrementalSyncIsIdempotent(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	ctx := context.Background()
	const tenant = "tenant-a"

	putJSON(t, docs, tenant, remote.CollectionWorkActivityLogs, "7", map[string]any{
		"categoryName": "Welding",
		"startTime":    int64(1),
		"logDate":      int64(1),
		"componentIds": []int64{3},
		"lastModified": int64(1),
	})

	engine := NewEngine(st, docs, quietLogger())
	for i := 0; i < 3; i++ {
		if err := engine.RunIncrementalSync(ctx, tenant); err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
	}

	logs, err := st.ListWorkActivityLogs(ctx)
	if err != nil {
		t.Fatalf("ListWorkActivityLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("expected 1 log after repeated syncs, got %d", len(logs))
	}
	ids, _ := st.ComponentIDsForLog(ctx, 7)
	if len(ids) != 1 || ids[0] != 3 {
		t.Errorf("component ids = %v, want [3]", ids)
	}
}

func TestIncrementalSyncReconcilesComponentLinks(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	ctx := context.Background()
	const tenant = "tenant-a"

	// Stale local association that the remote no longer has.
	if err := st.UpsertWorkActivityLog(ctx, &model.WorkActivityLog{
		ID: 7, CategoryName: "Welding", StartTime: 1, LogDate: 1, LastModified: 1,
	}); err != nil {
		t.Fatalf("seeding log failed: %v", err)
	}
	if err := st.InsertComponentLinks(ctx, 7, []int64{9}); err != nil {
		t.Fatalf("seeding links failed: %v", err)
	}

	putJSON(t, docs, tenant, remote.CollectionWorkActivityLogs, "7", map[string]any{
		"categoryName": "Welding",
		"startTime":    int64(1),
		"logDate":      int64(1),
		"componentIds": []int64{3},
		"lastModified": int64(2),
	})

	engine := NewEngine(st, docs, quietLogger())
	if err := engine.RunIncrementalSync(ctx, tenant); err != nil {
		t.Fatalf("RunIncrementalSync failed: %v", err)
	}

	ids, err := st.ComponentIDsForLog(ctx, 7)
	if err != nil {
		t.Fatalf("ComponentIDsForLog failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 3 {
		t.Errorf("component ids = %v, want exactly [3]", ids)
	}
}

func TestIncrementalSyncSkipsBadDocument(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	ctx := context.Background()
	const tenant = "tenant-a"

	// Non-numeric id is structurally unusable and must be skipped.
	putJSON(t, docs, tenant, remote.CollectionWorkActivityLogs, "garbage", map[string]any{
		"categoryName": "X", "lastModified": int64(1),
	})
	putJSON(t, docs, tenant, remote.CollectionWorkActivityLogs, "7", map[string]any{
		"categoryName": "Welding", "startTime": int64(1), "logDate": int64(1), "lastModified": int64(1),
	})

	engine := NewEngine(st, docs, quietLogger())
	if err := engine.RunIncrementalSync(ctx, tenant); err != nil {
		t.Fatalf("RunIncrementalSync failed: %v", err)
	}

	logs, err := st.ListWorkActivityLogs(ctx)
	if err != nil {
		t.Fatalf("ListWorkActivityLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != 7 {
		t.Errorf("expected only the good log to survive, got %+v", logs)
	}
}

func TestIncrementalSyncKeepsLogMissingStartTime(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	ctx := context.Background()
	const tenant = "tenant-a"

	before := model.Now()
	putJSON(t, docs, tenant, remote.CollectionWorkActivityLogs, "7", map[string]any{
		"categoryName": "Welding",
		"logDate":      int64(1700000000000),
		"lastModified": int64(1700000000001),
	})

	engine := NewEngine(st, docs, quietLogger())
	if err := engine.RunIncrementalSync(ctx, tenant); err != nil {
		t.Fatalf("RunIncrementalSync failed: %v", err)
	}

	logs, err := st.ListWorkActivityLogs(ctx)
	if err != nil {
		t.Fatalf("ListWorkActivityLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected the log to be stored with a defaulted start time, got %d records", len(logs))
	}
	if logs[0].StartTime < before {
		t.Errorf("StartTime = %d, want defaulted to >= %d", logs[0].StartTime, before)
	}
}

func TestIncrementalSyncKeepsOperatorMissingName(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	ctx := context.Background()
	const tenant = "tenant-a"

	putJSON(t, docs, tenant, remote.CollectionOperatorInfo, "2", map[string]any{
		"hourlySalary": 80.0,
		"lastModified": int64(1700000000001),
	})

	engine := NewEngine(st, docs, quietLogger())
	if err := engine.RunIncrementalSync(ctx, tenant); err != nil {
		t.Fatalf("RunIncrementalSync failed: %v", err)
	}

	ops, err := st.ListOperatorInfo(ctx)
	if err != nil {
		t.Fatalf("ListOperatorInfo failed: %v", err)
	}
	if len(ops) != 1 || ops[0].ID != 2 {
		t.Fatalf("expected the operator to be stored despite the missing name, got %+v", ops)
	}
	if ops[0].Name != "" {
		t.Errorf("Name = %q, want empty default", ops[0].Name)
	}
}

func TestIncrementalSyncAbortsOnCollectionFetchFailure(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	docs.failList[remote.CollectionActivityCategories] = fmt.Errorf("remote unavailable")
	ctx := context.Background()
	const tenant = "tenant-a"

	putJSON(t, docs, tenant, remote.CollectionComponentInfo, "Flange-20", map[string]any{
		"name": "Flange-20", "lastModified": int64(1),
	})

	engine := NewEngine(st, docs, quietLogger())
	err := engine.RunIncrementalSync(ctx, tenant)
	if err == nil {
		t.Fatal("expected error when a collection fetch fails")
	}
	if !strings.Contains(err.Error(), "categories") {
		t.Errorf("error should name the failing step, got: %v", err)
	}

	// Components come after categories in the run order, so the abort
	// must have prevented their pull.
	components, _ := st.ListComponentInfo(ctx)
	if len(components) != 0 {
		t.Errorf("expected no components after abort, got %+v", components)
	}
	if engine.Status().Snapshot().LastError == "" {
		t.Error("expected status to record the error")
	}
}

func TestFullPushPushesEverything(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	ctx := context.Background()
	const tenant = "tenant-a"

	logID, err := st.InsertWorkActivityLog(ctx, &model.WorkActivityLog{
		CategoryName: "Welding", StartTime: 1, LogDate: 1, LastModified: 1,
	})
	if err != nil {
		t.Fatalf("seeding log failed: %v", err)
	}
	if err := st.InsertComponentLinks(ctx, logID, []int64{3, 9}); err != nil {
		t.Fatalf("seeding links failed: %v", err)
	}
	if _, err := st.InsertOperatorInfo(ctx, &model.OperatorInfo{Name: "Sunil", LastModified: 1}); err != nil {
		t.Fatalf("seeding operator failed: %v", err)
	}
	if _, err := st.InsertActivityCategory(ctx, &model.ActivityCategory{Name: "Welding", LastModified: 1}); err != nil {
		t.Fatalf("seeding category failed: %v", err)
	}
	if err := st.UpsertTheBoysInfo(ctx, &model.TheBoysInfo{ID: 42, Name: "Ravi", LastModified: 1}); err != nil {
		t.Fatalf("seeding worker failed: %v", err)
	}
	if _, err := st.InsertProductionActivity(ctx, &model.ProductionActivity{
		ComponentName: "Flange-20", MachineNumber: 3, ProductionQuantity: 180,
		StartTime: 1, EndTime: 2, Duration: 1, LastModified: 1,
	}); err != nil {
		t.Fatalf("seeding production activity failed: %v", err)
	}
	if _, err := st.InsertComponentInfo(ctx, &model.ComponentInfo{Name: "Flange-20", Customer: "Acme", LastModified: 1}); err != nil {
		t.Fatalf("seeding component failed: %v", err)
	}

	engine := NewEngine(st, docs, quietLogger())
	if err := engine.RunFullPush(ctx, tenant); err != nil {
		t.Fatalf("RunFullPush failed: %v", err)
	}

	body, ok := docs.get(tenant, remote.CollectionWorkActivityLogs, "1")
	if !ok {
		t.Fatal("work activity log not pushed")
	}
	ids, ok := body["componentIds"].([]any)
	if !ok || len(ids) != 2 {
		t.Errorf("pushed componentIds = %v, want two entries", body["componentIds"])
	}

	// Business-key kinds are keyed by name, the rest by stringified id.
	if _, ok := docs.get(tenant, remote.CollectionActivityCategories, "Welding"); !ok {
		t.Error("category not pushed under its name")
	}
	if _, ok := docs.get(tenant, remote.CollectionComponentInfo, "Flange-20"); !ok {
		t.Error("component not pushed under its name")
	}
	if _, ok := docs.get(tenant, remote.CollectionOperatorInfo, "1"); !ok {
		t.Error("operator not pushed")
	}
	if _, ok := docs.get(tenant, remote.CollectionTheBoysInfo, "42"); !ok {
		t.Error("worker not pushed")
	}
	if _, ok := docs.get(tenant, remote.CollectionProductionActivities, "1"); !ok {
		t.Error("production activity not pushed")
	}

	if engine.Status().Snapshot().LastFullPush == 0 {
		t.Error("expected status to record the full push")
	}
}

func TestFullPushPartialFailure(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	docs.failPut[remote.CollectionOperatorInfo] = fmt.Errorf("remote rejected")
	ctx := context.Background()
	const tenant = "tenant-a"

	if _, err := st.InsertOperatorInfo(ctx, &model.OperatorInfo{Name: "Sunil", LastModified: 1}); err != nil {
		t.Fatalf("seeding operator failed: %v", err)
	}
	if _, err := st.InsertComponentInfo(ctx, &model.ComponentInfo{Name: "Flange-20", LastModified: 1}); err != nil {
		t.Fatalf("seeding component failed: %v", err)
	}

	engine := NewEngine(st, docs, quietLogger())
	err := engine.RunFullPush(ctx, tenant)
	if err == nil {
		t.Fatal("expected error for partial failure")
	}
	if !strings.Contains(err.Error(), "full push incomplete") {
		t.Errorf("unexpected error: %v", err)
	}

	// The successful subset stays applied.
	if _, ok := docs.get(tenant, remote.CollectionComponentInfo, "Flange-20"); !ok {
		t.Error("component push should have succeeded despite operator failure")
	}
}

func TestFullPushEmptyTenantIsNoOp(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	engine := NewEngine(st, docs, quietLogger())

	if err := engine.RunFullPush(context.Background(), ""); err != nil {
		t.Fatalf("RunFullPush failed: %v", err)
	}
	if docs.callCount() != 0 {
		t.Errorf("expected no remote calls for empty tenant, got %d", docs.callCount())
	}
}

func TestPushWorkActivityLogReadsJunctionAtPushTime(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	ctx := context.Background()
	const tenant = "tenant-a"

	w := &model.WorkActivityLog{CategoryName: "Welding", StartTime: 1, LogDate: 1, LastModified: 1}
	id, err := st.InsertWorkActivityLog(ctx, w)
	if err != nil {
		t.Fatalf("InsertWorkActivityLog failed: %v", err)
	}
	if err := st.InsertComponentLinks(ctx, id, []int64{5}); err != nil {
		t.Fatalf("InsertComponentLinks failed: %v", err)
	}

	pusher := NewPusher(st, docs, nil, quietLogger())
	if err := pusher.PushWorkActivityLog(ctx, tenant, w).Wait(); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	body, ok := docs.get(tenant, remote.CollectionWorkActivityLogs, "1")
	if !ok {
		t.Fatal("log not pushed")
	}
	ids, ok := body["componentIds"].([]any)
	if !ok || len(ids) != 1 {
		t.Fatalf("pushed componentIds = %v, want one entry", body["componentIds"])
	}
	if n, ok := ids[0].(float64); !ok || n != 5 {
		t.Errorf("componentIds[0] = %v, want 5", ids[0])
	}
}

func TestPushWorkActivityLogDoesNotMutateCallerRecord(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	ctx := context.Background()
	const tenant = "tenant-a"

	w := &model.WorkActivityLog{CategoryName: "Welding", StartTime: 1, LogDate: 1, LastModified: 1}
	id, err := st.InsertWorkActivityLog(ctx, w)
	if err != nil {
		t.Fatalf("InsertWorkActivityLog failed: %v", err)
	}
	if err := st.InsertComponentLinks(ctx, id, []int64{5}); err != nil {
		t.Fatalf("InsertComponentLinks failed: %v", err)
	}

	pusher := NewPusher(st, docs, nil, quietLogger())
	if err := pusher.PushWorkActivityLog(ctx, tenant, w).Wait(); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	if w.ComponentIDs != nil {
		t.Errorf("caller record ComponentIDs = %v, want untouched nil", w.ComponentIDs)
	}
	body, ok := docs.get(tenant, remote.CollectionWorkActivityLogs, "1")
	if !ok {
		t.Fatal("log not pushed")
	}
	if ids, ok := body["componentIds"].([]any); !ok || len(ids) != 1 {
		t.Errorf("pushed componentIds = %v, want one entry", body["componentIds"])
	}
}

func TestPushSkippedWithoutTenant(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	pusher := NewPusher(st, docs, nil, quietLogger())
	ctx := context.Background()

	handles := []*Handle{
		pusher.PushWorkActivityLog(ctx, "", &model.WorkActivityLog{ID: 1}),
		pusher.PushOperatorInfo(ctx, "", &model.OperatorInfo{ID: 1}),
		pusher.PushActivityCategory(ctx, "", &model.ActivityCategory{Name: "Welding"}),
		pusher.PushTheBoysInfo(ctx, "", &model.TheBoysInfo{ID: 42}),
		pusher.PushProductionActivity(ctx, "", &model.ProductionActivity{ID: 1}),
		pusher.PushComponentInfo(ctx, "", &model.ComponentInfo{Name: "Flange-20"}),
		pusher.PushDelete(ctx, "", remote.CollectionOperatorInfo, "1"),
	}
	for i, h := range handles {
		if err := h.Wait(); err != nil {
			t.Errorf("handle %d: skipped push returned error: %v", i, err)
		}
	}
	if docs.callCount() != 0 {
		t.Errorf("expected zero remote calls without a tenant, got %d", docs.callCount())
	}
}

func TestPushSurvivesCallerCancellation(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	pusher := NewPusher(st, docs, nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := &model.OperatorInfo{ID: 1, Name: "Sunil", LastModified: 1}
	if err := pusher.PushOperatorInfo(ctx, "tenant-a", o).Wait(); err != nil {
		t.Fatalf("push should survive a cancelled caller context: %v", err)
	}
	if _, ok := docs.get("tenant-a", remote.CollectionOperatorInfo, "1"); !ok {
		t.Error("operator not pushed")
	}
}

func TestPushFailureRecordedInStatus(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	docs.failPut[remote.CollectionOperatorInfo] = fmt.Errorf("remote rejected")

	status := &Status{}
	pusher := NewPusher(st, docs, status, quietLogger())

	o := &model.OperatorInfo{ID: 1, Name: "Sunil", LastModified: 1}
	if err := pusher.PushOperatorInfo(context.Background(), "tenant-a", o).Wait(); err == nil {
		t.Fatal("expected push error")
	}

	snap := status.Snapshot()
	if snap.PushFailures != 1 {
		t.Errorf("PushFailures = %d, want 1", snap.PushFailures)
	}
	if snap.LastError == "" {
		t.Error("expected last error to be recorded")
	}
}

func TestPushDelete(t *testing.T) {
	st := setupTestStore(t)
	docs := newFakeDocs()
	ctx := context.Background()
	const tenant = "tenant-a"

	putJSON(t, docs, tenant, remote.CollectionActivityCategories, "Welding", map[string]any{
		"name": "Welding", "lastModified": int64(1),
	})

	pusher := NewPusher(st, docs, nil, quietLogger())
	if err := pusher.PushDelete(ctx, tenant, remote.CollectionActivityCategories, "Welding").Wait(); err != nil {
		t.Fatalf("PushDelete failed: %v", err)
	}
	if _, ok := docs.get(tenant, remote.CollectionActivityCategories, "Welding"); ok {
		t.Error("document still present after delete push")
	}
}
