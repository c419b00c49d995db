package sync

import (
	"context"

	"github.com/PratikMahajan1993/worktracker/internal/remote"
)

// DocumentStore is the remote side of the engine: tenant-scoped document
// CRUD with no retries and no caching. *remote.Client implements it;
// tests substitute a fake.
type DocumentStore interface {
	// Put fully overwrites the document at the given identity.
	Put(ctx context.Context, tenantID, collection, documentID string, body map[string]any) error

	// Delete removes the document. Deleting a missing document is not
	// an error.
	Delete(ctx context.Context, tenantID, collection, documentID string) error

	// ListAll returns the tenant's entire collection as one
	// point-in-time snapshot.
	ListAll(ctx context.Context, tenantID, collection string) ([]remote.Document, error)
}
