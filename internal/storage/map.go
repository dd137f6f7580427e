// Package storage holds the type-erased backing map for partial records.
//
// Values enter the map already validated against their field's declared
// type; nothing in this package inspects them. The single mutation
// primitive is Alter; every higher-level accessor in the root package is a
// specialization of it.
package storage

// Map is a persistent mapping from field name to an erased value.
// It is immutable by convention: mutating operations return a fresh Map
// and never touch the receiver, so values can be shared freely.
type Map struct {
	entries map[string]any
}

// Empty returns a Map with no entries. The zero Map is equivalent.
func Empty() Map {
	return Map{}
}

// AlterFunc receives the previous value for a key (and whether one was
// present) and decides the key's next state: the value to store and
// whether to keep the key at all.
type AlterFunc func(prev any, present bool) (next any, keep bool)

// Alter is the sole mutation primitive. It applies fn to the current
// state of key and returns the resulting Map along with the previous
// value and its presence, so callers can both update and observe in one
// pass. The receiver is left untouched.
func (m Map) Alter(key string, fn AlterFunc) (Map, any, bool) {
	prev, present := m.entries[key]
	next, keep := fn(prev, present)

	// Copy-on-write: size the clone for the outcome.
	out := make(map[string]any, len(m.entries)+1)
	for k, v := range m.entries {
		out[k] = v
	}
	if keep {
		out[key] = next
	} else {
		delete(out, key)
	}
	return Map{entries: out}, prev, present
}

// Get returns the value stored under key, if any.
func (m Map) Get(key string) (any, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Has reports whether key currently holds a value.
func (m Map) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Len returns the number of keys currently holding a value.
func (m Map) Len() int {
	return len(m.entries)
}
