package identity

import (
	"sync"

	"github.com/google/uuid"
)

// Notifier fans session change events out to in-process subscribers
// (e.g. the websocket event stream). A nil session means sign-out.
type Notifier struct {
	mu   sync.Mutex
	subs map[string]func(*Session)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]func(*Session))}
}

func (n *Notifier) Subscribe(fn func(*Session)) (unsubscribe func()) {
	id := uuid.NewString()

	n.mu.Lock()
	n.subs[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

func (n *Notifier) Notify(s *Session) {
	n.mu.Lock()
	fns := make([]func(*Session), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	// invoked outside the lock; a subscriber may unsubscribe from its callback
	for _, fn := range fns {
		fn(s)
	}
}
