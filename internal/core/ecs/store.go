package ecs

// Detachable is implemented by every component store so the world can strip
// a despawned entity's data from all stores without knowing their types.
type Detachable interface {
	Detach(e Entity)
}

// Store is a typed map-backed component store. Pure generics, no reflect.
type Store[T any] struct {
	items map[Entity]*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[Entity]*T, 256)}
}

func (s *Store[T]) Attach(e Entity, c *T) { s.items[e] = c }
func (s *Store[T]) Detach(e Entity)       { delete(s.items, e) }
func (s *Store[T]) Has(e Entity) bool     { _, ok := s.items[e]; return ok }
func (s *Store[T]) Len() int              { return len(s.items) }

func (s *Store[T]) Get(e Entity) (*T, bool) {
	c, ok := s.items[e]
	return c, ok
}

func (s *Store[T]) Each(fn func(Entity, *T)) {
	for e, c := range s.items {
		fn(e, c)
	}
}

// Join2 visits entities present in both stores, walking the smaller one.
func Join2[A, B any](sa *Store[A], sb *Store[B], fn func(Entity, *A, *B)) {
	if sa.Len() > sb.Len() {
		for e, b := range sb.items {
			if a, ok := sa.items[e]; ok {
				fn(e, a, b)
			}
		}
		return
	}
	for e, a := range sa.items {
		if b, ok := sb.items[e]; ok {
			fn(e, a, b)
		}
	}
}

// Join3 visits entities present in all three stores. The first store is
// walked, so callers should pass the sparsest store first.
func Join3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(Entity, *A, *B, *C)) {
	for e, a := range sa.items {
		b, ok := sb.items[e]
		if !ok {
			continue
		}
		c, ok := sc.items[e]
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}
