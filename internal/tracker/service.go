// Package tracker is the mutation service: every user-facing insert,
// update, and delete writes the local store first and then mirrors the
// change remotely on a background push. The local write always succeeds
// or fails on its own; the remote outcome never reaches the caller.
package tracker

import (
	"context"
	"fmt"

	"github.com/PratikMahajan1993/worktracker/internal/auth"
	"github.com/PratikMahajan1993/worktracker/internal/mapper"
	"github.com/PratikMahajan1993/worktracker/internal/model"
	"github.com/PratikMahajan1993/worktracker/internal/remote"
	"github.com/PratikMahajan1993/worktracker/internal/store"
	syncengine "github.com/PratikMahajan1993/worktracker/internal/sync"
)

// Service coordinates local writes with the push path.
type Service struct {
	store   *store.Store
	pusher  *syncengine.Pusher
	tenants auth.TenantSource
}

// NewService creates a mutation service.
func NewService(st *store.Store, pusher *syncengine.Pusher, tenants auth.TenantSource) *Service {
	return &Service{store: st, pusher: pusher, tenants: tenants}
}

func (s *Service) tenant() string {
	tenantID, ok := s.tenants.CurrentTenant()
	if !ok {
		return ""
	}
	return tenantID
}

// CreateWorkActivityLog inserts a log together with its component links
// and pushes it. The returned handle resolves when the push finishes.
func (s *Service) CreateWorkActivityLog(ctx context.Context, w *model.WorkActivityLog, componentIDs []int64) (*syncengine.Handle, error) {
	w.Touch()
	if _, err := s.store.InsertWorkActivityLog(ctx, w); err != nil {
		return nil, err
	}
	if err := s.store.InsertComponentLinks(ctx, w.ID, componentIDs); err != nil {
		return nil, err
	}
	return s.pusher.PushWorkActivityLog(ctx, s.tenant(), w), nil
}

// UpdateWorkActivityLog overwrites a log, replaces its component links,
// and pushes the result.
func (s *Service) UpdateWorkActivityLog(ctx context.Context, w *model.WorkActivityLog, componentIDs []int64) (*syncengine.Handle, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid work activity log: %w", err)
	}
	w.Touch()
	if err := s.store.UpdateWorkActivityLog(ctx, w); err != nil {
		return nil, err
	}
	if err := s.store.DeleteComponentLinks(ctx, w.ID); err != nil {
		return nil, err
	}
	if err := s.store.InsertComponentLinks(ctx, w.ID, componentIDs); err != nil {
		return nil, err
	}
	return s.pusher.PushWorkActivityLog(ctx, s.tenant(), w), nil
}

// DeleteWorkActivityLog removes a log locally and remotely.
func (s *Service) DeleteWorkActivityLog(ctx context.Context, id int64) (*syncengine.Handle, error) {
	if err := s.store.DeleteWorkActivityLog(ctx, id); err != nil {
		return nil, err
	}
	return s.pusher.PushDelete(ctx, s.tenant(), remote.CollectionWorkActivityLogs, mapper.FormatID(id)), nil
}

// CreateOperatorInfo inserts an operator and pushes it.
func (s *Service) CreateOperatorInfo(ctx context.Context, o *model.OperatorInfo) (*syncengine.Handle, error) {
	o.Touch()
	if _, err := s.store.InsertOperatorInfo(ctx, o); err != nil {
		return nil, err
	}
	return s.pusher.PushOperatorInfo(ctx, s.tenant(), o), nil
}

// UpdateOperatorInfo overwrites an operator and pushes it.
func (s *Service) UpdateOperatorInfo(ctx context.Context, o *model.OperatorInfo) (*syncengine.Handle, error) {
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("invalid operator: %w", err)
	}
	o.Touch()
	if err := s.store.UpsertOperatorInfo(ctx, o); err != nil {
		return nil, err
	}
	return s.pusher.PushOperatorInfo(ctx, s.tenant(), o), nil
}

// DeleteOperatorInfo removes an operator locally and remotely.
func (s *Service) DeleteOperatorInfo(ctx context.Context, id int64) (*syncengine.Handle, error) {
	if err := s.store.DeleteOperatorInfo(ctx, id); err != nil {
		return nil, err
	}
	return s.pusher.PushDelete(ctx, s.tenant(), remote.CollectionOperatorInfo, mapper.FormatID(id)), nil
}

// CreateActivityCategory inserts a category and pushes it under its name.
func (s *Service) CreateActivityCategory(ctx context.Context, c *model.ActivityCategory) (*syncengine.Handle, error) {
	c.Touch()
	if _, err := s.store.InsertActivityCategory(ctx, c); err != nil {
		return nil, err
	}
	return s.pusher.PushActivityCategory(ctx, s.tenant(), c), nil
}

// DeleteActivityCategory removes a category locally and remotely. The
// remote identity is the name, so the caller supplies both.
func (s *Service) DeleteActivityCategory(ctx context.Context, id int64, name string) (*syncengine.Handle, error) {
	if err := s.store.DeleteActivityCategory(ctx, id); err != nil {
		return nil, err
	}
	return s.pusher.PushDelete(ctx, s.tenant(), remote.CollectionActivityCategories, name), nil
}

// SaveTheBoysInfo inserts or overwrites a worker (the id is
// user-supplied) and pushes it.
func (s *Service) SaveTheBoysInfo(ctx context.Context, b *model.TheBoysInfo) (*syncengine.Handle, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid worker: %w", err)
	}
	b.Touch()
	if err := s.store.UpsertTheBoysInfo(ctx, b); err != nil {
		return nil, err
	}
	return s.pusher.PushTheBoysInfo(ctx, s.tenant(), b), nil
}

// DeleteTheBoysInfo removes a worker locally and remotely.
func (s *Service) DeleteTheBoysInfo(ctx context.Context, id int64) (*syncengine.Handle, error) {
	if err := s.store.DeleteTheBoysInfo(ctx, id); err != nil {
		return nil, err
	}
	return s.pusher.PushDelete(ctx, s.tenant(), remote.CollectionTheBoysInfo, mapper.FormatID(id)), nil
}

// CreateProductionActivity inserts a production run and pushes it.
func (s *Service) CreateProductionActivity(ctx context.Context, p *model.ProductionActivity) (*syncengine.Handle, error) {
	p.Touch()
	if _, err := s.store.InsertProductionActivity(ctx, p); err != nil {
		return nil, err
	}
	return s.pusher.PushProductionActivity(ctx, s.tenant(), p), nil
}

// UpdateProductionActivity overwrites a production run and pushes it.
func (s *Service) UpdateProductionActivity(ctx context.Context, p *model.ProductionActivity) (*syncengine.Handle, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid production run: %w", err)
	}
	p.Touch()
	if err := s.store.UpsertProductionActivity(ctx, p); err != nil {
		return nil, err
	}
	return s.pusher.PushProductionActivity(ctx, s.tenant(), p), nil
}

// DeleteProductionActivity removes a production run locally and remotely.
func (s *Service) DeleteProductionActivity(ctx context.Context, id int64) (*syncengine.Handle, error) {
	if err := s.store.DeleteProductionActivity(ctx, id); err != nil {
		return nil, err
	}
	return s.pusher.PushDelete(ctx, s.tenant(), remote.CollectionProductionActivities, mapper.FormatID(id)), nil
}

// CreateComponentInfo inserts a component and pushes it under its name.
func (s *Service) CreateComponentInfo(ctx context.Context, c *model.ComponentInfo) (*syncengine.Handle, error) {
	c.Touch()
	if _, err := s.store.InsertComponentInfo(ctx, c); err != nil {
		return nil, err
	}
	return s.pusher.PushComponentInfo(ctx, s.tenant(), c), nil
}

// DeleteComponentInfo removes a component locally and remotely, keyed by
// name on the remote side.
func (s *Service) DeleteComponentInfo(ctx context.Context, id int64, name string) (*syncengine.Handle, error) {
	if err := s.store.DeleteComponentInfo(ctx, id); err != nil {
		return nil, err
	}
	return s.pusher.PushDelete(ctx, s.tenant(), remote.CollectionComponentInfo, name), nil
}
