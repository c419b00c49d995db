package sync

import (
	"sync"
	"sync/atomic"
	"time"
)

// Status tracks the engine's last-successful-sync timestamps and failure
// counters. All methods are safe for concurrent use.
type Status struct {
	lastIncrementalSync atomic.Int64 // epoch millis, 0 = never
	lastFullPush        atomic.Int64
	pushFailures        atomic.Int64

	mu        sync.Mutex
	lastError string
	lastErrAt int64
}

// StatusSnapshot is a point-in-time copy of the engine status.
type StatusSnapshot struct {
	LastIncrementalSync int64  `json:"last_incremental_sync"`
	LastFullPush        int64  `json:"last_full_push"`
	PushFailures        int64  `json:"push_failures"`
	LastError           string `json:"last_error,omitempty"`
	LastErrorAt         int64  `json:"last_error_at,omitempty"`
}

func (s *Status) markIncrementalSync() {
	s.lastIncrementalSync.Store(time.Now().UnixMilli())
}

func (s *Status) markFullPush() {
	s.lastFullPush.Store(time.Now().UnixMilli())
}

func (s *Status) markPushFailure(err error) {
	s.pushFailures.Add(1)
	s.recordError(err)
}

func (s *Status) recordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastErrAt = time.Now().UnixMilli()
	s.mu.Unlock()
}

// Snapshot returns a copy of the current status.
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.Lock()
	lastError, lastErrAt := s.lastError, s.lastErrAt
	s.mu.Unlock()

	return StatusSnapshot{
		LastIncrementalSync: s.lastIncrementalSync.Load(),
		LastFullPush:        s.lastFullPush.Load(),
		PushFailures:        s.pushFailures.Load(),
		LastError:           lastError,
		LastErrorAt:         lastErrAt,
	}
}
