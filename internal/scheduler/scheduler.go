// Package scheduler registers the sync engine's periodic jobs.
//
// Jobs are named and deduplicated: registering a name that already has a
// schedule keeps the existing entry, so re-registration on process
// restart never creates duplicate schedules. Every run is gated on a
// network connectivity probe and on a tenant being available; when
// either is missing the run is skipped and the job waits for its next
// scheduled interval.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/PratikMahajan1993/worktracker/internal/auth"
)

// Job names for the two engine entry points.
const (
	JobIncrementalSync = "incremental-sync"
	JobFullPush        = "full-push"
)

// Default schedules: hourly pull, 15 minute full push.
const (
	DefaultIncrementalSyncSpec = "@every 1h"
	DefaultFullPushSpec        = "@every 15m"
)

// Engine is the subset of the sync engine the scheduler drives.
type Engine interface {
	RunIncrementalSync(ctx context.Context, tenantID string) error
	RunFullPush(ctx context.Context, tenantID string) error
}

// Probe reports whether the remote store is reachable.
type Probe func(ctx context.Context) error

// Scheduler owns the cron runner and the job registry.
type Scheduler struct {
	cron    *cron.Cron
	tenants auth.TenantSource
	online  Probe
	logger  *log.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// New creates a Scheduler. If online is nil, jobs run unconditionally.
// If logger is nil, a default logger writing to stderr is used.
func New(tenants auth.TenantSource, online Probe, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(os.Stderr, "[scheduler] ", log.LstdFlags)
	}
	return &Scheduler{
		cron:    cron.New(),
		tenants: tenants,
		online:  online,
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

// Register adds a named periodic job with a keep-existing policy:
// registering an already-known name is a no-op.
func (s *Scheduler) Register(name, spec string, job func(ctx context.Context, tenantID string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; ok {
		s.logger.Printf("Job %s already registered, keeping existing schedule", name)
		return nil
	}

	id, err := s.cron.AddFunc(spec, func() {
		s.runJob(name, job)
	})
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	s.entries[name] = id
	s.logger.Printf("Registered job %s (%s)", name, spec)
	return nil
}

// runJob applies the execution constraints and invokes the job.
func (s *Scheduler) runJob(name string, job func(ctx context.Context, tenantID string) error) {
	ctx := context.Background()

	tenantID, ok := s.tenants.CurrentTenant()
	if !ok {
		s.logger.Printf("Job %s skipped: no tenant", name)
		return
	}

	if s.online != nil {
		probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := s.online(probeCtx)
		cancel()
		if err != nil {
			s.logger.Printf("Job %s skipped: network unavailable: %v", name, err)
			return
		}
	}

	start := time.Now()
	if err := job(ctx, tenantID); err != nil {
		s.logger.Printf("Job %s failed after %s: %v (will retry at next interval)", name, time.Since(start).Round(time.Millisecond), err)
		return
	}
	s.logger.Printf("Job %s finished in %s", name, time.Since(start).Round(time.Millisecond))
}

// RegisterSyncJobs wires the engine's two entry points under their
// canonical names and schedules.
func (s *Scheduler) RegisterSyncJobs(engine Engine, incrementalSpec, fullPushSpec string) error {
	if incrementalSpec == "" {
		incrementalSpec = DefaultIncrementalSyncSpec
	}
	if fullPushSpec == "" {
		fullPushSpec = DefaultFullPushSpec
	}

	if err := s.Register(JobIncrementalSync, incrementalSpec, engine.RunIncrementalSync); err != nil {
		return err
	}
	return s.Register(JobFullPush, fullPushSpec, engine.RunFullPush)
}

// RunNow runs a registered-style job immediately, outside its schedule,
// applying the same tenant and connectivity constraints.
func (s *Scheduler) RunNow(name string, job func(ctx context.Context, tenantID string) error) {
	s.runJob(name, job)
}

// Start begins the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Printf("Scheduler started")
}

// Stop halts the cron runner and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Printf("Scheduler stopped")
}

// Registered reports whether a job name currently has a schedule.
func (s *Scheduler) Registered(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[name]
	return ok
}
