package sched

import (
	"sort"
	"sync"
)

// Registry is the append-only collection of registered system descriptors.
// Registration may happen from any goroutine (mod loaders register late,
// after the frame loop has started), so all state is mutex-guarded. There
// is no unregister.
type Registry struct {
	mu         sync.Mutex
	systems    []*SystemDescriptor
	byID       map[string]struct{}
	generation uint64
}

func NewRegistry() *Registry {
	return &Registry{
		systems: make([]*SystemDescriptor, 0, 32),
		byID:    make(map[string]struct{}, 32),
	}
}

// Register appends a descriptor and bumps the mutation counter. Duplicate
// IDs are rejected without touching the counter.
func (r *Registry) Register(d *SystemDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byID[d.ID]; dup {
		return &DuplicateIDError{ID: d.ID}
	}
	d.Access.prepare()
	r.systems = append(r.systems, d)
	r.byID[d.ID] = struct{}{}
	r.generation++
	return nil
}

// Generation returns the mutation counter, incremented by every successful
// registration. A plan built at generation G is stale once this moves past G.
func (r *Registry) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// Len returns the number of registered systems.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.systems)
}

// Snapshot returns the descriptors sorted by priority ascending, ties broken
// by registration order, together with the generation the snapshot reflects.
// This ordering is the sole input to planning; it must be deterministic so
// rebuilding an unchanged registry reproduces the same plan.
func (r *Registry) Snapshot() ([]*SystemDescriptor, uint64) {
	r.mu.Lock()
	snap := make([]*SystemDescriptor, len(r.systems))
	copy(snap, r.systems)
	gen := r.generation
	r.mu.Unlock()

	sort.SliceStable(snap, func(i, j int) bool {
		return snap[i].Priority < snap[j].Priority
	})
	return snap, gen
}
