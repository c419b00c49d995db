package sync

import (
	"context"
	"log"
	"os"

	"github.com/PratikMahajan1993/worktracker/internal/mapper"
	"github.com/PratikMahajan1993/worktracker/internal/model"
	"github.com/PratikMahajan1993/worktracker/internal/remote"
	"github.com/PratikMahajan1993/worktracker/internal/store"
)

// Handle is a waitable result of a background push. Production callers
// discard it (fire-and-forget); tests await it.
type Handle struct {
	done chan struct{}
	err  error
}

// Wait blocks until the push has finished and returns its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

func completedHandle(err error) *Handle {
	h := &Handle{done: make(chan struct{})}
	h.err = err
	close(h.done)
	return h
}

// Pusher mirrors single local mutations to the remote store.
//
// Every method returns immediately; the remote call runs on its own
// goroutine detached from the caller's context cancellation, so the
// local write is never delayed or failed by the remote outcome. A push
// with an empty tenant id is skipped entirely: the mutation stays
// local-only until the next full push after authentication.
type Pusher struct {
	store  *store.Store
	docs   DocumentStore
	logger *log.Logger
	status *Status
}

// NewPusher creates a Pusher reporting into the given status tracker.
// If logger is nil, a default logger writing to stderr is used.
func NewPusher(st *store.Store, docs DocumentStore, status *Status, logger *log.Logger) *Pusher {
	if logger == nil {
		logger = log.New(os.Stderr, "[push] ", log.LstdFlags)
	}
	if status == nil {
		status = &Status{}
	}
	return &Pusher{store: st, docs: docs, logger: logger, status: status}
}

func (p *Pusher) run(ctx context.Context, describe string, fn func(context.Context) error) *Handle {
	// The push must survive the caller returning; only process
	// shutdown cancels it.
	ctx = context.WithoutCancel(ctx)

	h := &Handle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		if err := fn(ctx); err != nil {
			p.logger.Printf("WARNING: push failed (%s): %v", describe, err)
			p.status.markPushFailure(err)
			h.err = err
			return
		}
		p.logger.Printf("Pushed %s", describe)
	}()
	return h
}

func (p *Pusher) skip(describe string) *Handle {
	p.logger.Printf("Push skipped (%s): no tenant", describe)
	return completedHandle(nil)
}

// PushWorkActivityLog pushes one log. The componentIds list is read from
// the junction table at push time; the junction table, not the record,
// is the local source of truth for the association.
func (p *Pusher) PushWorkActivityLog(ctx context.Context, tenantID string, w *model.WorkActivityLog) *Handle {
	if tenantID == "" {
		return p.skip("work activity log")
	}
	// Copy the record; the push runs after this call returns and must
	// not write through the caller's pointer.
	rec := *w
	return p.run(ctx, "work activity log "+mapper.FormatID(rec.ID), func(ctx context.Context) error {
		ids, err := p.store.ComponentIDsForLog(ctx, rec.ID)
		if err != nil {
			return err
		}
		rec.ComponentIDs = ids
		return p.docs.Put(ctx, tenantID, remote.CollectionWorkActivityLogs, mapper.FormatID(rec.ID), mapper.WorkActivityLogDocument(&rec))
	})
}

// PushOperatorInfo pushes one operator.
func (p *Pusher) PushOperatorInfo(ctx context.Context, tenantID string, o *model.OperatorInfo) *Handle {
	if tenantID == "" {
		return p.skip("operator")
	}
	return p.run(ctx, "operator "+mapper.FormatID(o.ID), func(ctx context.Context) error {
		return p.docs.Put(ctx, tenantID, remote.CollectionOperatorInfo, mapper.FormatID(o.ID), mapper.OperatorInfoDocument(o))
	})
}

// PushActivityCategory pushes one category, keyed remotely by name.
func (p *Pusher) PushActivityCategory(ctx context.Context, tenantID string, c *model.ActivityCategory) *Handle {
	if tenantID == "" {
		return p.skip("category")
	}
	return p.run(ctx, "category "+c.Name, func(ctx context.Context) error {
		return p.docs.Put(ctx, tenantID, remote.CollectionActivityCategories, c.Name, mapper.ActivityCategoryDocument(c))
	})
}

// PushTheBoysInfo pushes one worker.
func (p *Pusher) PushTheBoysInfo(ctx context.Context, tenantID string, b *model.TheBoysInfo) *Handle {
	if tenantID == "" {
		return p.skip("worker")
	}
	return p.run(ctx, "worker "+mapper.FormatID(b.ID), func(ctx context.Context) error {
		return p.docs.Put(ctx, tenantID, remote.CollectionTheBoysInfo, mapper.FormatID(b.ID), mapper.TheBoysInfoDocument(b))
	})
}

// PushProductionActivity pushes one production run.
func (p *Pusher) PushProductionActivity(ctx context.Context, tenantID string, pa *model.ProductionActivity) *Handle {
	if tenantID == "" {
		return p.skip("production activity")
	}
	return p.run(ctx, "production activity "+mapper.FormatID(pa.ID), func(ctx context.Context) error {
		return p.docs.Put(ctx, tenantID, remote.CollectionProductionActivities, mapper.FormatID(pa.ID), mapper.ProductionActivityDocument(pa))
	})
}

// PushComponentInfo pushes one component, keyed remotely by name.
func (p *Pusher) PushComponentInfo(ctx context.Context, tenantID string, c *model.ComponentInfo) *Handle {
	if tenantID == "" {
		return p.skip("component")
	}
	return p.run(ctx, "component "+c.Name, func(ctx context.Context) error {
		return p.docs.Put(ctx, tenantID, remote.CollectionComponentInfo, c.Name, mapper.ComponentInfoDocument(c))
	})
}

// PushDelete propagates a local deletion. The documentID must be the
// same identity used for upload: the stringified id, or the name for
// the two business-key kinds.
func (p *Pusher) PushDelete(ctx context.Context, tenantID, collection, documentID string) *Handle {
	if tenantID == "" {
		return p.skip("delete " + collection + "/" + documentID)
	}
	return p.run(ctx, "delete "+collection+"/"+documentID, func(ctx context.Context) error {
		return p.docs.Delete(ctx, tenantID, collection, documentID)
	})
}
