// Package sync implements the engine that keeps the local SQLite store
// and the remote per-tenant document store eventually consistent.
//
// Three flows run without coordination against each other:
//
//  1. Push path: every local mutation is immediately mirrored to the
//     remote store on a background goroutine. Failures are logged and
//     counted, never surfaced to the mutating caller; a lost push is
//     recovered by the next full push cycle.
//
//  2. Incremental sync (pull): a periodic job fetches each tenant
//     collection in full, maps every document back to a local record,
//     and upserts it. For work activity logs the junction table is
//     reconciled against the document's componentIds list by deleting
//     and re-inserting the log's junction rows.
//
//  3. Full push: a periodic job that re-pushes every local record of
//     every kind, healing pushes that failed individually or that
//     happened before a tenant was available.
//
// No ordering is guaranteed across the flows. A push for record X and a
// concurrent pull that also touches X may interleave in either order;
// the last writer by wall clock wins. Each single put or local upsert is
// atomic, cross-record atomicity is not provided.
//
// Entry points are idempotent and take the tenant id explicitly, so the
// engine is testable without a live authentication subsystem. Running
// the pull twice against an unchanged remote leaves the local store
// unchanged: entity upserts are insert-or-replace and junction rows are
// delete-then-reinsert.
package sync
