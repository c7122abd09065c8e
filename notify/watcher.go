package notify

import (
	"context"
	"iter"
	"sync"

	"github.com/signadot/track-format/go-track/changes"
)

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithoutCoalescing requests non-coalescing delivery. No unbounded
// buffering is offered: a watcher always holds just the single most
// recent undelivered batch, so this option is accepted and behaviorally
// identical to the default.
func WithoutCoalescing() WatchOption {
	return func(*Watcher) {}
}

// Watcher is a pull-mode subscription: a lazily-advancing sequence of
// path-list batches. Create one with [Hub.Watch].
type Watcher struct {
	hub *Hub
	cs  *changes.ChangeSet

	mu      sync.Mutex
	pending []string
	has     bool

	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

// Watch registers a pull-mode watcher for cs. Coalescing is on by
// default.
func (h *Hub) Watch(cs *changes.ChangeSet, opts ...WatchOption) *Watcher {
	w := &Watcher{
		hub:    h,
		cs:     cs,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	h.addWatcher(cs, w)
	return w
}

// deliver stores the batch, overwriting any undelivered one, and wakes a
// suspended Next.
func (w *Watcher) deliver(paths []string) {
	w.mu.Lock()
	w.pending = paths
	w.has = true
	w.mu.Unlock()
	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// Next returns the most recent undelivered batch, suspending until one
// arrives when none is pending. It returns ok=false once the watcher is
// cancelled or ctx is done.
func (w *Watcher) Next(ctx context.Context) (paths []string, ok bool) {
	for {
		select {
		case <-w.done:
			return nil, false
		default:
		}

		w.mu.Lock()
		if w.has {
			batch := w.pending
			w.pending = nil
			w.has = false
			w.mu.Unlock()
			return batch, true
		}
		w.mu.Unlock()

		select {
		case <-w.signal:
		case <-w.done:
			return nil, false
		case <-ctx.Done():
			return nil, false
		}
	}
}

// Cancel unregisters the watcher. Any suspended Next resolves as
// terminated. Cancel is idempotent.
func (w *Watcher) Cancel() {
	w.once.Do(func() {
		w.hub.removeWatcher(w.cs, w)
		close(w.done)
	})
}

// Batches iterates the watcher's batches until it is cancelled. Breaking
// out of the range cancels the watcher.
func (w *Watcher) Batches() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for {
			batch, ok := w.Next(context.Background())
			if !ok {
				return
			}
			if !yield(batch) {
				w.Cancel()
				return
			}
		}
	}
}
