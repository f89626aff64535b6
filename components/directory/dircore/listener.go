package dircore

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/open-control-systems/servus/components/status"
)

// Listener is notified when discovered instances change.
//
// Remarks:
//   - Notifications are delivered synchronously from Browse() and Discover(),
//     after the directory lock is released, so a listener may call the
//     directory read accessors.
//   - Implementations must be comparable (e.g. pointers), since the registry
//     has set semantics, non-comparable listeners are rejected.
type Listener interface {
	// InstanceAdded is called when a new instance was discovered.
	InstanceAdded(instance string)

	// InstanceRemoved is called when a known instance disappeared.
	InstanceRemoved(instance string)
}

// ListenerRegistry is a set of listeners.
type ListenerRegistry struct {
	mu        sync.Mutex
	listeners map[Listener]struct{}
	order     []Listener
}

// Add registers the listener, adding the same listener twice has no effect.
//
// Remarks:
//   - Returns status.StatusInvalidArg if the listener type isn't comparable.
func (r *ListenerRegistry) Add(listener Listener) error {
	if listener == nil {
		return nil
	}

	if !isComparable(listener) {
		return fmt.Errorf("listener isn't comparable: type=%T: %w",
			listener, status.StatusInvalidArg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listeners == nil {
		r.listeners = make(map[Listener]struct{})
	}

	if _, ok := r.listeners[listener]; ok {
		return nil
	}

	r.listeners[listener] = struct{}{}
	r.order = append(r.order, listener)

	return nil
}

// Remove unregisters the listener.
func (r *ListenerRegistry) Remove(listener Listener) {
	if listener == nil || !isComparable(listener) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listeners[listener]; !ok {
		return
	}

	delete(r.listeners, listener)

	for n, l := range r.order {
		if l == listener {
			r.order = append(r.order[:n], r.order[n+1:]...)

			break
		}
	}
}

// Len returns the number of registered listeners.
func (r *ListenerRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.order)
}

// Snapshot returns the registered listeners in registration order.
func (r *ListenerRegistry) Snapshot() []Listener {
	r.mu.Lock()
	defer r.mu.Unlock()

	listeners := make([]Listener, len(r.order))
	copy(listeners, r.order)

	return listeners
}

func isComparable(listener Listener) bool {
	return reflect.TypeOf(listener).Comparable()
}
