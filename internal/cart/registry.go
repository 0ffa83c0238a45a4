package cart

import "sync"

// Registry maps session ids to carts. Carts are created lazily and live
// until the process exits; there is no eviction and no persistence.
type Registry struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// Get returns the cart for a session, creating it on first use.
func (r *Registry) Get(sessionID string) *Cart {
	r.mu.RLock()
	c, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[sessionID]; ok {
		return c
	}
	c = New()
	r.carts[sessionID] = c
	return c
}

// Len returns the number of live carts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}
