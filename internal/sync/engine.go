package sync

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/PratikMahajan1993/worktracker/internal/mapper"
	"github.com/PratikMahajan1993/worktracker/internal/remote"
	"github.com/PratikMahajan1993/worktracker/internal/store"
)

// Engine runs the pull and full-push jobs. It holds no cross-call state
// besides the status counters: every run re-reads its source of truth.
type Engine struct {
	store  *store.Store
	docs   DocumentStore
	mapper *mapper.Mapper
	logger *log.Logger
	status *Status
}

// NewEngine creates an Engine. If logger is nil, a default logger
// writing to stderr is used.
func NewEngine(st *store.Store, docs DocumentStore, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(os.Stderr, "[sync] ", log.LstdFlags)
	}
	return &Engine{
		store:  st,
		docs:   docs,
		mapper: mapper.New(logger),
		logger: logger,
		status: &Status{},
	}
}

// Status returns the engine's status tracker.
func (e *Engine) Status() *Status {
	return e.status
}

// RunIncrementalSync refreshes the local store from the remote store for
// one tenant, across all six entity kinds in a fixed order.
//
// Per-document mapping failures are logged and skipped; the rest of the
// collection is still processed. A whole-collection fetch failure aborts
// the run for this tenant - the job is retried at the next scheduled
// interval, never intra-cycle.
//
// An empty tenant id means sync is disabled; the run is a silent no-op.
func (e *Engine) RunIncrementalSync(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		e.logger.Printf("Incremental sync skipped: no tenant")
		return nil
	}

	e.logger.Printf("Starting incremental sync for tenant %s", tenantID)

	steps := []struct {
		name string
		run  func(context.Context, string) error
	}{
		{"work activity logs", e.pullWorkActivityLogs},
		{"operators", e.pullOperatorInfo},
		{"categories", e.pullActivityCategories},
		{"workers", e.pullTheBoysInfo},
		{"production activities", e.pullProductionActivities},
		{"components", e.pullComponentInfo},
	}

	for _, step := range steps {
		if err := step.run(ctx, tenantID); err != nil {
			e.status.recordError(err)
			return fmt.Errorf("incremental sync aborted at %s: %w", step.name, err)
		}
	}

	e.status.markIncrementalSync()
	e.logger.Printf("Incremental sync complete for tenant %s", tenantID)
	return nil
}

// pullWorkActivityLogs refreshes logs and reconciles the junction table.
//
// The entity upsert and the junction reconciliation are deliberately not
// one transaction. A crash between them leaves a log with a stale
// association set until the next pull repeats the reconciliation.
func (e *Engine) pullWorkActivityLogs(ctx context.Context, tenantID string) error {
	docs, err := e.docs.ListAll(ctx, tenantID, remote.CollectionWorkActivityLogs)
	if err != nil {
		return err
	}

	var synced, failed int
	for _, doc := range docs {
		w, err := e.mapper.WorkActivityLogFromDocument(doc)
		if err != nil {
			e.logger.Printf("WARNING: skipping work activity log %s: %v", doc.ID, err)
			failed++
			continue
		}

		if err := e.store.UpsertWorkActivityLog(ctx, w); err != nil {
			// The row didn't land, so leave the existing junction
			// rows alone; the next pull retries both.
			e.logger.Printf("WARNING: failed to upsert work activity log %d, skipping component reconciliation: %v", w.ID, err)
			failed++
			continue
		}

		if err := e.store.DeleteComponentLinks(ctx, w.ID); err != nil {
			e.logger.Printf("WARNING: failed to clear component links for log %d: %v", w.ID, err)
			failed++
			continue
		}
		if err := e.store.InsertComponentLinks(ctx, w.ID, w.ComponentIDs); err != nil {
			e.logger.Printf("WARNING: failed to insert component links for log %d: %v", w.ID, err)
			failed++
			continue
		}
		synced++
	}

	e.logger.Printf("Pulled work activity logs: synced=%d failed=%d", synced, failed)
	return nil
}

func (e *Engine) pullOperatorInfo(ctx context.Context, tenantID string) error {
	docs, err := e.docs.ListAll(ctx, tenantID, remote.CollectionOperatorInfo)
	if err != nil {
		return err
	}

	var synced, failed int
	for _, doc := range docs {
		o, err := e.mapper.OperatorInfoFromDocument(doc)
		if err != nil {
			e.logger.Printf("WARNING: skipping operator %s: %v", doc.ID, err)
			failed++
			continue
		}
		if err := e.store.UpsertOperatorInfo(ctx, o); err != nil {
			e.logger.Printf("WARNING: failed to upsert operator %d: %v", o.ID, err)
			failed++
			continue
		}
		synced++
	}

	e.logger.Printf("Pulled operators: synced=%d failed=%d", synced, failed)
	return nil
}

// pullActivityCategories upserts by business key: the remote identity is
// the category name and the local surrogate id is never reused.
func (e *Engine) pullActivityCategories(ctx context.Context, tenantID string) error {
	docs, err := e.docs.ListAll(ctx, tenantID, remote.CollectionActivityCategories)
	if err != nil {
		return err
	}

	var synced, failed int
	for _, doc := range docs {
		c, err := e.mapper.ActivityCategoryFromDocument(doc)
		if err != nil {
			e.logger.Printf("WARNING: skipping category %s: %v", doc.ID, err)
			failed++
			continue
		}
		if err := e.store.UpsertActivityCategoryByName(ctx, c); err != nil {
			e.logger.Printf("WARNING: failed to upsert category %q: %v", c.Name, err)
			failed++
			continue
		}
		synced++
	}

	e.logger.Printf("Pulled categories: synced=%d failed=%d", synced, failed)
	return nil
}

func (e *Engine) pullTheBoysInfo(ctx context.Context, tenantID string) error {
	docs, err := e.docs.ListAll(ctx, tenantID, remote.CollectionTheBoysInfo)
	if err != nil {
		return err
	}

	var synced, failed int
	for _, doc := range docs {
		b, err := e.mapper.TheBoysInfoFromDocument(doc)
		if err != nil {
			e.logger.Printf("WARNING: skipping worker %s: %v", doc.ID, err)
			failed++
			continue
		}
		if err := e.store.UpsertTheBoysInfo(ctx, b); err != nil {
			e.logger.Printf("WARNING: failed to upsert worker %d: %v", b.ID, err)
			failed++
			continue
		}
		synced++
	}

	e.logger.Printf("Pulled workers: synced=%d failed=%d", synced, failed)
	return nil
}

func (e *Engine) pullProductionActivities(ctx context.Context, tenantID string) error {
	docs, err := e.docs.ListAll(ctx, tenantID, remote.CollectionProductionActivities)
	if err != nil {
		return err
	}

	var synced, failed int
	for _, doc := range docs {
		p, err := e.mapper.ProductionActivityFromDocument(doc)
		if err != nil {
			e.logger.Printf("WARNING: skipping production activity %s: %v", doc.ID, err)
			failed++
			continue
		}
		if err := e.store.UpsertProductionActivity(ctx, p); err != nil {
			e.logger.Printf("WARNING: failed to upsert production activity %d: %v", p.ID, err)
			failed++
			continue
		}
		synced++
	}

	e.logger.Printf("Pulled production activities: synced=%d failed=%d", synced, failed)
	return nil
}

func (e *Engine) pullComponentInfo(ctx context.Context, tenantID string) error {
	docs, err := e.docs.ListAll(ctx, tenantID, remote.CollectionComponentInfo)
	if err != nil {
		return err
	}

	var synced, failed int
	for _, doc := range docs {
		c, err := e.mapper.ComponentInfoFromDocument(doc)
		if err != nil {
			e.logger.Printf("WARNING: skipping component %s: %v", doc.ID, err)
			failed++
			continue
		}
		if err := e.store.UpsertComponentInfoByName(ctx, c); err != nil {
			e.logger.Printf("WARNING: failed to upsert component %q: %v", c.Name, err)
			failed++
			continue
		}
		synced++
	}

	e.logger.Printf("Pulled components: synced=%d failed=%d", synced, failed)
	return nil
}

// RunFullPush re-pushes every local record of every entity kind to the
// remote store. Individual push failures are logged and the job carries
// on; the successful subset stays applied (no rollback). The job returns
// an error if any push failed so the scheduler retries at its own pace.
//
// An empty tenant id means sync is disabled; the run is a silent no-op.
func (e *Engine) RunFullPush(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		e.logger.Printf("Full push skipped: no tenant")
		return nil
	}

	e.logger.Printf("Starting full push for tenant %s", tenantID)

	var pushed, failed int

	logs, err := e.store.ListWorkActivityLogs(ctx)
	if err != nil {
		e.status.recordError(err)
		return fmt.Errorf("full push failed to enumerate work activity logs: %w", err)
	}
	for _, w := range logs {
		// The junction table is the source of truth for the
		// association; read it at push time, not from a cached field.
		ids, err := e.store.ComponentIDsForLog(ctx, w.ID)
		if err != nil {
			e.logger.Printf("WARNING: failed to read component links for log %d: %v", w.ID, err)
			failed++
			continue
		}
		w.ComponentIDs = ids

		body := mapper.WorkActivityLogDocument(w)
		if err := e.docs.Put(ctx, tenantID, remote.CollectionWorkActivityLogs, mapper.FormatID(w.ID), body); err != nil {
			e.logger.Printf("WARNING: failed to push work activity log %d: %v", w.ID, err)
			failed++
			continue
		}
		pushed++
	}

	operators, err := e.store.ListOperatorInfo(ctx)
	if err != nil {
		e.status.recordError(err)
		return fmt.Errorf("full push failed to enumerate operators: %w", err)
	}
	for _, o := range operators {
		if err := e.docs.Put(ctx, tenantID, remote.CollectionOperatorInfo, mapper.FormatID(o.ID), mapper.OperatorInfoDocument(o)); err != nil {
			e.logger.Printf("WARNING: failed to push operator %d: %v", o.ID, err)
			failed++
			continue
		}
		pushed++
	}

	categories, err := e.store.ListActivityCategories(ctx)
	if err != nil {
		e.status.recordError(err)
		return fmt.Errorf("full push failed to enumerate categories: %w", err)
	}
	for _, c := range categories {
		if err := e.docs.Put(ctx, tenantID, remote.CollectionActivityCategories, c.Name, mapper.ActivityCategoryDocument(c)); err != nil {
			e.logger.Printf("WARNING: failed to push category %q: %v", c.Name, err)
			failed++
			continue
		}
		pushed++
	}

	workers, err := e.store.ListTheBoysInfo(ctx)
	if err != nil {
		e.status.recordError(err)
		return fmt.Errorf("full push failed to enumerate workers: %w", err)
	}
	for _, b := range workers {
		if err := e.docs.Put(ctx, tenantID, remote.CollectionTheBoysInfo, mapper.FormatID(b.ID), mapper.TheBoysInfoDocument(b)); err != nil {
			e.logger.Printf("WARNING: failed to push worker %d: %v", b.ID, err)
			failed++
			continue
		}
		pushed++
	}

	production, err := e.store.ListProductionActivities(ctx)
	if err != nil {
		e.status.recordError(err)
		return fmt.Errorf("full push failed to enumerate production activities: %w", err)
	}
	for _, p := range production {
		if err := e.docs.Put(ctx, tenantID, remote.CollectionProductionActivities, mapper.FormatID(p.ID), mapper.ProductionActivityDocument(p)); err != nil {
			e.logger.Printf("WARNING: failed to push production activity %d: %v", p.ID, err)
			failed++
			continue
		}
		pushed++
	}

	components, err := e.store.ListComponentInfo(ctx)
	if err != nil {
		e.status.recordError(err)
		return fmt.Errorf("full push failed to enumerate components: %w", err)
	}
	for _, c := range components {
		if err := e.docs.Put(ctx, tenantID, remote.CollectionComponentInfo, c.Name, mapper.ComponentInfoDocument(c)); err != nil {
			e.logger.Printf("WARNING: failed to push component %q: %v", c.Name, err)
			failed++
			continue
		}
		pushed++
	}

	e.logger.Printf("Full push complete: pushed=%d failed=%d", pushed, failed)

	if failed > 0 {
		err := fmt.Errorf("full push incomplete: %d of %d records failed", failed, pushed+failed)
		e.status.recordError(err)
		return err
	}

	e.status.markFullPush()
	return nil
}
