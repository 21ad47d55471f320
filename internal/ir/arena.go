package ir

import "fmt"

// Key is the raw form shared by every arena key: a slot index and the
// generation the slot had when the entity was inserted. Generations start at
// 1, so the zero Key never resolves.
type Key struct {
	Index      uint32
	Generation uint32
}

func (k Key) IsZero() bool { return k.Generation == 0 }

func (k Key) String() string { return fmt.Sprintf("%d@%d", k.Index, k.Generation) }

// Entity keys. Each arena hands out exactly one of these, so a BlockID can
// never be passed where an InstID is expected.
type (
	FuncID   Key
	GlobalID Key
	BlockID  Key
	InstID   Key
	ParamID  Key
)

// ArenaKey is satisfied by every entity key type.
type ArenaKey interface {
	~struct {
		Index      uint32
		Generation uint32
	}
}

type slot[T any] struct {
	generation uint32
	occupied   bool
	value      T
}

// Arena owns a set of same-kind entities and hands out generational keys
// for them. Slots freed by Remove are reused with a bumped generation, so
// stale keys are detected instead of aliasing the new occupant.
type Arena[K ArenaKey, T any] struct {
	slots []slot[T]
	free  []uint32
	len   int
}

// Insert stores value and returns its key.
func (a *Arena[K, T]) Insert(value T) K {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}
	s := &a.slots[idx]
	s.generation++
	s.occupied = true
	s.value = value
	a.len++
	return K(Key{Index: idx, Generation: s.generation})
}

// Lookup returns the entity for key, or false if the key is stale or foreign.
func (a *Arena[K, T]) Lookup(key K) (*T, bool) {
	k := Key(key)
	if int(k.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[k.Index]
	if !s.occupied || s.generation != k.Generation {
		return nil, false
	}
	return &s.value, true
}

// Get dereferences key. An invalid key is a programming error and panics.
func (a *Arena[K, T]) Get(key K) *T {
	v, ok := a.Lookup(key)
	if !ok {
		panic(fmt.Sprintf("ir: invalid arena key %s", Key(key)))
	}
	return v
}

func (a *Arena[K, T]) Contains(key K) bool {
	_, ok := a.Lookup(key)
	return ok
}

// Remove frees the slot of key. It reports false if the key was not live.
func (a *Arena[K, T]) Remove(key K) bool {
	if !a.Contains(key) {
		return false
	}
	k := Key(key)
	s := &a.slots[k.Index]
	var zero T
	s.value = zero
	s.occupied = false
	a.free = append(a.free, k.Index)
	a.len--
	return true
}

func (a *Arena[K, T]) Len() int { return a.len }

// Keys returns the live keys in slot order. Without removals this is
// insertion order.
func (a *Arena[K, T]) Keys() []K {
	keys := make([]K, 0, a.len)
	for i := range a.slots {
		if a.slots[i].occupied {
			keys = append(keys, K(Key{Index: uint32(i), Generation: a.slots[i].generation}))
		}
	}
	return keys
}
