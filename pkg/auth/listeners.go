package auth

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Listener receives session transition notifications. Listeners with a
// comparable dynamic type are registered at most once: re-registering the
// same value is idempotent and still yields a single notification per
// transition.
type Listener interface {
	OnAuthStateChange(event Event, session *Session)
}

// ListenerFunc adapts a plain function to the Listener interface. The
// returned pointer is the listener's identity: register the same
// *ListenerFunc twice and it is still notified once per transition.
type ListenerFunc struct {
	fn func(event Event, session *Session)
}

// NewListenerFunc wraps fn as a Listener.
func NewListenerFunc(fn func(event Event, session *Session)) *ListenerFunc {
	return &ListenerFunc{fn: fn}
}

// OnAuthStateChange invokes the wrapped function.
func (l *ListenerFunc) OnAuthStateChange(event Event, session *Session) {
	if l.fn != nil {
		l.fn(event, session)
	}
}

// listenerRegistry is the fan-out point for session transitions. Iteration
// copies the registry before invoking callbacks, so a listener that
// unsubscribes itself (or registers another listener) during notification
// cannot corrupt the iteration.
type listenerRegistry struct {
	mu        sync.Mutex
	listeners map[any]Listener
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{
		listeners: make(map[any]Listener),
	}
}

// add registers the listener and returns its registry key. Listeners whose
// dynamic type is not comparable cannot participate in identity-based
// deduplication and get a unique key instead.
func (r *listenerRegistry) add(l Listener) any {
	var key any = l
	if !reflect.TypeOf(l).Comparable() {
		key = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[key] = l
	return key
}

func (r *listenerRegistry) remove(key any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listeners, key)
}

// notify delivers the transition to every registered listener. Callbacks run
// synchronously on the caller's goroutine, outside the registry lock.
func (r *listenerRegistry) notify(event Event, session *Session) {
	r.mu.Lock()
	snapshot := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		snapshot = append(snapshot, l)
	}
	r.mu.Unlock()

	for _, l := range snapshot {
		l.OnAuthStateChange(event, session)
	}
}
