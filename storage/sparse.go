// Package storage provides the sparse-set container backing every
// component store in the registry.
package storage

// Key constrains the identifier type a Set is indexed by.
type Key interface {
	~uint32 | ~uint64
}

// Set is a sparse set mapping keys to values of type T. Values live in a
// dense slice for compact iteration; a sparse map and a reverse index keep
// add, get and remove at O(1). Removal swaps the victim slot with the last
// dense slot, so iteration order is not stable across removals.
type Set[K Key, T any] struct {
	dense  []T
	sparse map[K]int
	owners []K // owners[i] is the key whose value sits at dense[i]
}

// NewSet constructs an empty set.
func NewSet[K Key, T any]() *Set[K, T] {
	return &Set[K, T]{sparse: make(map[K]int)}
}

// Add inserts value for key, overwriting in place if key is already present.
// The returned pointer addresses the dense slot directly and stays valid
// only until the next Add or Remove on this set.
func (s *Set[K, T]) Add(key K, value T) *T {
	if idx, ok := s.sparse[key]; ok {
		s.dense[idx] = value
		return &s.dense[idx]
	}
	s.dense = append(s.dense, value)
	s.owners = append(s.owners, key)
	idx := len(s.dense) - 1
	s.sparse[key] = idx
	return &s.dense[idx]
}

// Get returns a pointer to the value for key, or nil when absent.
func (s *Set[K, T]) Get(key K) *T {
	idx, ok := s.sparse[key]
	if !ok {
		return nil
	}
	return &s.dense[idx]
}

// Has reports whether key is present.
func (s *Set[K, T]) Has(key K) bool {
	_, ok := s.sparse[key]
	return ok
}

// Remove deletes the value for key, returning false when absent.
// The last dense slot is swapped into the vacated position and the
// reverse index patched so the invariants hold.
func (s *Set[K, T]) Remove(key K) bool {
	idx, ok := s.sparse[key]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	if idx != last {
		moved := s.owners[last]
		s.dense[idx] = s.dense[last]
		s.owners[idx] = moved
		s.sparse[moved] = idx
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	delete(s.sparse, key)
	return true
}

// Keys returns a snapshot copy of the keys in dense order, safe to iterate
// while the caller mutates the set.
func (s *Set[K, T]) Keys() []K {
	if len(s.owners) == 0 {
		return nil
	}
	out := make([]K, len(s.owners))
	copy(out, s.owners)
	return out
}

// Len reports how many keys are stored.
func (s *Set[K, T]) Len() int {
	return len(s.dense)
}

// Each calls fn for every key/value pair in dense order until fn returns
// false. The value pointer is only valid for the duration of the call.
func (s *Set[K, T]) Each(fn func(K, *T) bool) {
	for i := range s.dense {
		if !fn(s.owners[i], &s.dense[i]) {
			return
		}
	}
}

// Clear empties the set.
func (s *Set[K, T]) Clear() {
	s.dense = nil
	s.owners = nil
	s.sparse = make(map[K]int)
}
