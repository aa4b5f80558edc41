package invitation

import (
	"sync"

	"invite.link/models"
)

type inflightKey struct {
	token string
	event models.Event
}

// InFlight allows at most one RSVP submission per token and event at a time.
// Different events of the same token never block each other.
type InFlight struct {
	mu     sync.Mutex
	active map[inflightKey]struct{}
}

// NewInFlight returns an empty registry.
func NewInFlight() *InFlight {
	return &InFlight{active: make(map[inflightKey]struct{})}
}

// Acquire claims the slot. When ok is false another submission holds it and
// release is nil.
func (r *InFlight) Acquire(token string, e models.Event) (release func(), ok bool) {
	k := inflightKey{token: token, event: e}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.active[k]; busy {
		return nil, false
	}
	r.active[k] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.active, k)
			r.mu.Unlock()
		})
	}, true
}
