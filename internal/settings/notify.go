// internal/settings/notify.go
//
// Change notification hub.
//
// Every successful Update or Clear publishes exactly one Event carrying the
// freshly resolved Configuration.  Delivery is synchronous and in
// subscription order; a listener that panics is recovered and logged so the
// remaining listeners still run.
package settings

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Event is the payload handed to listeners.
type Event struct {
	Scope    string        // store scope (client id) or "" when unscoped
	Settings Configuration // resolved after the write completed
}

// Listener receives change events.
type Listener interface {
	SettingsChanged(ctx context.Context, ev Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, ev Event)

// SettingsChanged satisfies Listener.
func (f ListenerFunc) SettingsChanged(ctx context.Context, ev Event) {
	if f != nil {
		f(ctx, ev)
	}
}

// Hub fans events out to subscribed listeners.  The zero value is ready to
// use and safe for concurrent Subscribe and Publish.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	l  Listener
}

// Subscribe registers l and returns a function that removes it.  Calling the
// returned function more than once is harmless.
func (h *Hub) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription{id: id, l: l})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subs {
				if s.id == id {
					h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers ev to every listener.
func (h *Hub) Publish(ctx context.Context, ev Event) {
	h.mu.RLock()
	subs := make([]subscription, len(h.subs))
	copy(subs, h.subs)
	h.mu.RUnlock()

	for _, s := range subs {
		deliver(ctx, s.l, ev)
	}
}

func deliver(ctx context.Context, l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("settings listener panicked", zap.Any("panic", r))
		}
	}()
	l.SettingsChanged(ctx, ev)
}
