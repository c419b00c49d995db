package tracker

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"sync"
	"testing"

	"github.com/PratikMahajan1993/worktracker/internal/auth"
	"github.com/PratikMahajan1993/worktracker/internal/model"
	"github.com/PratikMahajan1993/worktracker/internal/remote"
	"github.com/PratikMahajan1993/worktracker/internal/store"
	syncengine "github.com/PratikMahajan1993/worktracker/internal/sync"
)

// fakeDocs records pushes without talking to anything.
type fakeDocs struct {
	mu      sync.Mutex
	puts    map[string]map[string]any // collection/id -> fields
	deletes []string                  // collection/id
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{puts: map[string]map[string]any{}}
}

func (f *fakeDocs) Put(ctx context.Context, tenantID, collection, documentID string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts[collection+"/"+documentID] = fields
	return nil
}

func (f *fakeDocs) Delete(ctx context.Context, tenantID, collection, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, collection+"/"+documentID)
	return nil
}

func (f *fakeDocs) ListAll(ctx context.Context, tenantID, collection string) ([]remote.Document, error) {
	return nil, nil
}

func (f *fakeDocs) pushed(key string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fields, ok := f.puts[key]
	return fields, ok
}

func (f *fakeDocs) deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}

func setupService(t *testing.T) (*Service, *store.Store, *fakeDocs) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	docs := newFakeDocs()
	logger := log.New(io.Discard, "", 0)
	pusher := syncengine.NewPusher(st, docs, nil, logger)
	svc := NewService(st, pusher, auth.StaticTenant("tenant-a"))
	return svc, st, docs
}

func TestCreateWorkActivityLogWritesAndPushes(t *testing.T) {
	svc, st, docs := setupService(t)
	ctx := context.Background()

	w := &model.WorkActivityLog{CategoryName: "Welding", StartTime: 1, LogDate: 1}
	handle, err := svc.CreateWorkActivityLog(ctx, w, []int64{3, 9})
	if err != nil {
		t.Fatalf("CreateWorkActivityLog failed: %v", err)
	}
	if err := handle.Wait(); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	if w.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if w.LastModified == 0 {
		t.Error("expected Touch to set LastModified")
	}

	ids, err := st.ComponentIDsForLog(ctx, w.ID)
	if err != nil {
		t.Fatalf("ComponentIDsForLog failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("component ids = %v, want two entries", ids)
	}

	body, ok := docs.pushed(remote.CollectionWorkActivityLogs + "/1")
	if !ok {
		t.Fatal("log not pushed")
	}
	pushedIDs, ok := body["componentIds"].([]int64)
	if !ok || len(pushedIDs) != 2 {
		t.Errorf("pushed componentIds = %v, want [3 9]", body["componentIds"])
	}
}

func TestUpdateWorkActivityLogReplacesLinks(t *testing.T) {
	svc, st, _ := setupService(t)
	ctx := context.Background()

	w := &model.WorkActivityLog{CategoryName: "Welding", StartTime: 1, LogDate: 1}
	handle, err := svc.CreateWorkActivityLog(ctx, w, []int64{7, 9})
	if err != nil {
		t.Fatalf("CreateWorkActivityLog failed: %v", err)
	}
	_ = handle.Wait()

	handle, err = svc.UpdateWorkActivityLog(ctx, w, []int64{3})
	if err != nil {
		t.Fatalf("UpdateWorkActivityLog failed: %v", err)
	}
	_ = handle.Wait()

	ids, err := st.ComponentIDsForLog(ctx, w.ID)
	if err != nil {
		t.Fatalf("ComponentIDsForLog failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 3 {
		t.Errorf("component ids = %v, want exactly [3]", ids)
	}
}

func TestDeleteWorkActivityLogPushesDelete(t *testing.T) {
	svc, _, docs := setupService(t)
	ctx := context.Background()

	w := &model.WorkActivityLog{CategoryName: "Welding", StartTime: 1, LogDate: 1}
	handle, err := svc.CreateWorkActivityLog(ctx, w, nil)
	if err != nil {
		t.Fatalf("CreateWorkActivityLog failed: %v", err)
	}
	_ = handle.Wait()

	handle, err = svc.DeleteWorkActivityLog(ctx, w.ID)
	if err != nil {
		t.Fatalf("DeleteWorkActivityLog failed: %v", err)
	}
	if err := handle.Wait(); err != nil {
		t.Fatalf("delete push failed: %v", err)
	}

	deletes := docs.deleted()
	if len(deletes) != 1 || deletes[0] != remote.CollectionWorkActivityLogs+"/1" {
		t.Errorf("deletes = %v, want [%s/1]", deletes, remote.CollectionWorkActivityLogs)
	}
}

func TestCategoryDeletePushedUnderName(t *testing.T) {
	svc, _, docs := setupService(t)
	ctx := context.Background()

	c := &model.ActivityCategory{Name: "Welding"}
	handle, err := svc.CreateActivityCategory(ctx, c)
	if err != nil {
		t.Fatalf("CreateActivityCategory failed: %v", err)
	}
	_ = handle.Wait()

	if _, ok := docs.pushed(remote.CollectionActivityCategories + "/Welding"); !ok {
		t.Error("category not pushed under its name")
	}

	handle, err = svc.DeleteActivityCategory(ctx, c.ID, c.Name)
	if err != nil {
		t.Fatalf("DeleteActivityCategory failed: %v", err)
	}
	_ = handle.Wait()

	deletes := docs.deleted()
	if len(deletes) != 1 || deletes[0] != remote.CollectionActivityCategories+"/Welding" {
		t.Errorf("deletes = %v, want the category name as document id", deletes)
	}
}

func TestLocalWriteFailureSkipsPush(t *testing.T) {
	svc, _, docs := setupService(t)
	ctx := context.Background()

	// Missing required name fails validation before any remote call.
	if _, err := svc.CreateOperatorInfo(ctx, &model.OperatorInfo{}); err == nil {
		t.Fatal("expected validation error")
	}
	if _, ok := docs.pushed(remote.CollectionOperatorInfo + "/1"); ok {
		t.Error("push happened despite failed local write")
	}
}

func TestMutationsWithoutTenantStayLocal(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	docs := newFakeDocs()
	pusher := syncengine.NewPusher(st, docs, nil, log.New(io.Discard, "", 0))
	svc := NewService(st, pusher, auth.StaticTenant(""))
	ctx := context.Background()

	o := &model.OperatorInfo{Name: "Sunil"}
	handle, err := svc.CreateOperatorInfo(ctx, o)
	if err != nil {
		t.Fatalf("CreateOperatorInfo failed: %v", err)
	}
	if err := handle.Wait(); err != nil {
		t.Fatalf("skipped push returned error: %v", err)
	}

	operators, err := st.ListOperatorInfo(ctx)
	if err != nil {
		t.Fatalf("ListOperatorInfo failed: %v", err)
	}
	if len(operators) != 1 {
		t.Fatalf("expected local write to land, got %+v", operators)
	}
	if len(docs.puts) != 0 || len(docs.deletes) != 0 {
		t.Error("expected no remote traffic without a tenant")
	}
}

func TestSaveTheBoysInfoRequiresID(t *testing.T) {
	svc, _, _ := setupService(t)
	if _, err := svc.SaveTheBoysInfo(context.Background(), &model.TheBoysInfo{Name: "NoID"}); err == nil {
		t.Error("expected error for worker without user-supplied id")
	}
}
