package settings

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/yanizio/aocjsui/internal/store"
)

// lockStripes is the number of write locks shared by all scopes.
const lockStripes = 64

// Service hands out Resolvers scoped to one client each.  All of them share
// the underlying store, the defaults, and one notification hub.  Write locks
// are striped by scope hash: resolvers for the same scope always share a
// lock, and the lock set stays fixed however many clients show up.
type Service struct {
	store    store.Store
	defaults Defaults
	hub      *Hub
	opts     []Option
	locks    [lockStripes]sync.Mutex
}

// NewService wires a Service.  opts apply to every Resolver it creates.
func NewService(s store.Store, d Defaults, opts ...Option) *Service {
	if s == nil {
		s = store.NewMemory()
	}
	return &Service{
		store:    s,
		defaults: d,
		hub:      &Hub{},
		opts:     opts,
	}
}

// For returns a Resolver over the keys of scope.  An empty scope addresses
// the unprefixed keys.
func (s *Service) For(scope string) *Resolver {
	opts := make([]Option, 0, len(s.opts)+3)
	opts = append(opts, s.opts...)
	opts = append(opts, WithHub(s.hub), WithScope(scope), withLock(s.lockFor(scope)))
	return New(store.Scoped(s.store, scope), s.defaults, opts...)
}

// Subscribe registers l for changes in every scope.
func (s *Service) Subscribe(l Listener) (unsubscribe func()) {
	return s.hub.Subscribe(l)
}

// Defaults returns the static default configuration.
func (s *Service) Defaults() Defaults { return s.defaults }

// Resolve is shorthand for s.For(scope).Resolve(ctx).
func (s *Service) Resolve(ctx context.Context, scope string) Configuration {
	return s.For(scope).Resolve(ctx)
}

// lockFor returns the write lock stripe of scope.
func (s *Service) lockFor(scope string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(scope))
	return &s.locks[h.Sum32()%lockStripes]
}
