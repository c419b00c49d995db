// Package auth exposes the current tenant identity to the sync engine.
//
// The engine treats an absent tenant as "sync disabled", not an error:
// mutations stay local-only until a tenant becomes available and the
// next full push picks them up.
package auth

import "sync"

// TenantSource reports the tenant under which remote documents are
// scoped. Implementations must be safe for concurrent use.
type TenantSource interface {
	// CurrentTenant returns the tenant id and true, or "" and false
	// when no tenant is authenticated.
	CurrentTenant() (string, bool)
}

// StaticTenant is a TenantSource with a fixed tenant id, typically read
// from configuration.
type StaticTenant string

// CurrentTenant implements TenantSource.
func (s StaticTenant) CurrentTenant() (string, bool) {
	return string(s), s != ""
}

// SwitchableTenant is a TenantSource whose tenant can change at runtime,
// e.g. on sign-in and sign-out.
type SwitchableTenant struct {
	mu     sync.RWMutex
	tenant string
}

// Set replaces the current tenant. An empty id signs the tenant out.
func (s *SwitchableTenant) Set(tenantID string) {
	s.mu.Lock()
	s.tenant = tenantID
	s.mu.Unlock()
}

// CurrentTenant implements TenantSource.
func (s *SwitchableTenant) CurrentTenant() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenant, s.tenant != ""
}
