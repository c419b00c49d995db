package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/PratikMahajan1993/worktracker/internal/auth"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type fakeEngine struct {
	incrementalRuns int
	fullPushRuns    int
	lastTenant      string
}

func (f *fakeEngine) RunIncrementalSync(ctx context.Context, tenantID string) error {
	f.incrementalRuns++
	f.lastTenant = tenantID
	return nil
}

func (f *fakeEngine) RunFullPush(ctx context.Context, tenantID string) error {
	f.fullPushRuns++
	f.lastTenant = tenantID
	return nil
}

func TestRegisterKeepsExistingSchedule(t *testing.T) {
	s := New(auth.StaticTenant("tenant-a"), nil, quietLogger())

	var first, second int
	if err := s.Register("job", "@every 1h", func(ctx context.Context, tenantID string) error {
		first++
		return nil
	}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := s.Register("job", "@every 1m", func(ctx context.Context, tenantID string) error {
		second++
		return nil
	}); err != nil {
		t.Fatalf("second Register failed: %v", err)
	}

	if !s.Registered("job") {
		t.Fatal("job should be registered")
	}

	// The keep-existing policy means the original function stays wired.
	s.RunNow("job", func(ctx context.Context, tenantID string) error {
		first++
		return nil
	})
	if first != 1 {
		t.Errorf("first = %d, want 1", first)
	}
	if second != 0 {
		t.Errorf("second = %d, want 0: re-registration must not replace the job", second)
	}
}

func TestRegisterRejectsBadSpec(t *testing.T) {
	s := New(auth.StaticTenant("tenant-a"), nil, quietLogger())
	err := s.Register("bad", "not a schedule", func(ctx context.Context, tenantID string) error {
		return nil
	})
	if err == nil {
		t.Error("expected error for invalid schedule spec")
	}
	if s.Registered("bad") {
		t.Error("failed registration should not be recorded")
	}
}

func TestRegisterSyncJobs(t *testing.T) {
	s := New(auth.StaticTenant("tenant-a"), nil, quietLogger())
	if err := s.RegisterSyncJobs(&fakeEngine{}, "", ""); err != nil {
		t.Fatalf("RegisterSyncJobs failed: %v", err)
	}
	if !s.Registered(JobIncrementalSync) {
		t.Error("incremental sync job not registered")
	}
	if !s.Registered(JobFullPush) {
		t.Error("full push job not registered")
	}
}

func TestRunNowSkippedWithoutTenant(t *testing.T) {
	tenants := &auth.SwitchableTenant{}
	s := New(tenants, nil, quietLogger())

	engine := &fakeEngine{}
	s.RunNow(JobIncrementalSync, engine.RunIncrementalSync)
	if engine.incrementalRuns != 0 {
		t.Errorf("job ran %d times without a tenant, want 0", engine.incrementalRuns)
	}

	tenants.Set("tenant-a")
	s.RunNow(JobIncrementalSync, engine.RunIncrementalSync)
	if engine.incrementalRuns != 1 {
		t.Errorf("job ran %d times with a tenant, want 1", engine.incrementalRuns)
	}
	if engine.lastTenant != "tenant-a" {
		t.Errorf("job tenant = %q, want tenant-a", engine.lastTenant)
	}
}

func TestRunNowSkippedWhenOffline(t *testing.T) {
	offline := func(ctx context.Context) error { return fmt.Errorf("no route to host") }
	s := New(auth.StaticTenant("tenant-a"), offline, quietLogger())

	engine := &fakeEngine{}
	s.RunNow(JobFullPush, engine.RunFullPush)
	if engine.fullPushRuns != 0 {
		t.Errorf("job ran %d times while offline, want 0", engine.fullPushRuns)
	}
}

func TestRunNowRunsWhenOnline(t *testing.T) {
	var probed bool
	online := func(ctx context.Context) error {
		probed = true
		return nil
	}
	s := New(auth.StaticTenant("tenant-a"), online, quietLogger())

	engine := &fakeEngine{}
	s.RunNow(JobFullPush, engine.RunFullPush)
	if !probed {
		t.Error("connectivity probe was not consulted")
	}
	if engine.fullPushRuns != 1 {
		t.Errorf("job ran %d times, want 1", engine.fullPushRuns)
	}
}

func TestJobErrorDoesNotPropagate(t *testing.T) {
	s := New(auth.StaticTenant("tenant-a"), nil, quietLogger())

	// A failing job is logged and retried at the next interval; RunNow
	// must not panic or surface the error.
	s.RunNow("failing", func(ctx context.Context, tenantID string) error {
		return fmt.Errorf("remote unavailable")
	})
}
