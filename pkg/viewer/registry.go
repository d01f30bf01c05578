package viewer

import (
	"sync"
)

// Registry is the application-context handle to the single live session,
// plus the attach-once guard for the inbound channel subscription. Two shows
// never coexist: installing a new session displaces the old one. Tests build
// isolated registries instead of sharing process globals.
type Registry struct {
	mu       sync.Mutex
	active   *Session
	attached bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Active returns the live session, or nil when no show is open.
func (r *Registry) Active() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Replace installs next as the live session and returns the one it
// displaces, if any. The caller must close the displaced session locally
// without broadcasting: that close is a side effect of a newer show, not a
// GM decision.
func (r *Registry) Replace(next *Session) (old *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old = r.active
	r.active = next
	return old
}

// Clear drops the live session if it is still s. A stale clear, racing a
// replacement that already happened, is a no-op.
func (r *Registry) Clear(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == s {
		r.active = nil
	}
}

// AttachOnce runs subscribe the first time it is called and never again.
// The subscription is process-lifetime; nothing ever detaches it.
func (r *Registry) AttachOnce(subscribe func()) {
	r.mu.Lock()
	if r.attached {
		r.mu.Unlock()
		return
	}
	r.attached = true
	r.mu.Unlock()
	subscribe()
}
