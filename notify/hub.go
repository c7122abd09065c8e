package notify

import (
	"sync"

	"github.com/signadot/track-format/go-track/changes"
	"github.com/signadot/track-format/go-track/debug"
)

// Hub manages subscriptions and broadcasts change-set notifications.
// The registry is guarded so pull consumers may run on other goroutines;
// broadcasting itself is driven by the single-writer mutation path.
type Hub struct {
	mu       sync.Mutex
	push     map[*changes.ChangeSet][]*pushSub
	watchers map[*changes.ChangeSet]map[*Watcher]struct{}
}

type pushSub struct {
	fn func(paths []string)
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		push:     map[*changes.ChangeSet][]*pushSub{},
		watchers: map[*changes.ChangeSet]map[*Watcher]struct{}{},
	}
}

// Subscribe registers a push callback for cs. The returned function
// unregisters it; calling it more than once is harmless.
//
// Callbacks run synchronously during Broadcast with a snapshot of all
// paths currently in the change-set. A callback may mutate tracked state;
// that produces its own broadcast cycle.
func (h *Hub) Subscribe(cs *changes.ChangeSet, fn func(paths []string)) (cancel func()) {
	sub := &pushSub{fn: fn}
	h.mu.Lock()
	h.push[cs] = append(h.push[cs], sub)
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.push[cs]
		for i, s := range subs {
			if s == sub {
				h.push[cs] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(h.push[cs]) == 0 {
			delete(h.push, cs)
		}
	}
}

// Broadcast delivers the current cumulative state of cs to every
// subscriber. The push delivery list is snapshotted first: unsubscribing
// from inside a callback does not affect callbacks registered at the
// moment delivery began.
func (h *Hub) Broadcast(cs *changes.ChangeSet) {
	paths := cs.Paths()
	if debug.Notify() {
		debug.Logf("notify: broadcast %d paths %v\n", len(paths), paths)
	}

	h.mu.Lock()
	subs := append([]*pushSub(nil), h.push[cs]...)
	var ws []*Watcher
	for w := range h.watchers[cs] {
		ws = append(ws, w)
	}
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(paths)
	}
	for _, w := range ws {
		w.deliver(paths)
	}
}

// SubscriberCount returns the number of registered subscribers for cs,
// push and pull combined.
func (h *Hub) SubscriberCount(cs *changes.ChangeSet) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.push[cs]) + len(h.watchers[cs])
}

func (h *Hub) addWatcher(cs *changes.ChangeSet, w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[cs] == nil {
		h.watchers[cs] = make(map[*Watcher]struct{})
	}
	h.watchers[cs][w] = struct{}{}
}

func (h *Hub) removeWatcher(cs *changes.ChangeSet, w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ws, ok := h.watchers[cs]; ok {
		delete(ws, w)
		if len(ws) == 0 {
			delete(h.watchers, cs)
		}
	}
}
