package dircore

import (
	"maps"
	"slices"
)

// Attribute limits.
//
// Remarks:
//   - The directory doesn't enforce these limits, callers should respect them since
//     they determine whether records propagate reliably over mDNS.
//   - The transports truncate values so that each "key=value" TXT entry fits
//     into MaxValueLength bytes.
const (
	// MaxKeyLength is the recommended maximum key length.
	MaxKeyLength = 8

	// MaxValueLength is the maximum length of a single "key=value" TXT entry.
	MaxValueLength = 255

	// MaxRecordLength is the maximum total length of all keys and values.
	MaxRecordLength = 65535
)

// Reserved keys populated by the backend on every resolved instance.
const (
	// KeyHost is the host name of a discovered instance.
	KeyHost = "servus_host"

	// KeyPort is the port of a discovered instance.
	KeyPort = "servus_port"
)

// IsReservedKey returns true if the key is populated by the backend.
func IsReservedKey(key string) bool {
	return key == KeyHost || key == KeyPort
}

// ValueStore is a mapping of string keys to string values.
//
// Remarks:
//   - The zero value is an empty store ready to use.
//   - Keys are always returned in ascending order.
//   - Not safe for concurrent use.
type ValueStore struct {
	values map[string]string
}

// NewValueStore creates a store holding a copy of values.
func NewValueStore(values map[string]string) *ValueStore {
	return &ValueStore{values: maps.Clone(values)}
}

// Set inserts or overwrites the value for the key.
func (s *ValueStore) Set(key string, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}

	s.values[key] = value
}

// Get returns the value for the key, or an empty string if the key is unknown.
func (s *ValueStore) Get(key string) string {
	return s.values[key]
}

// Lookup returns the value for the key and whether it exists.
func (s *ValueStore) Lookup(key string) (string, bool) {
	value, ok := s.values[key]

	return value, ok
}

// Contains returns true if the key exists.
func (s *ValueStore) Contains(key string) bool {
	_, ok := s.values[key]

	return ok
}

// Remove removes the key.
func (s *ValueStore) Remove(key string) {
	delete(s.values, key)
}

// Keys returns all keys in ascending order.
func (s *ValueStore) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Len returns the number of keys.
func (s *ValueStore) Len() int {
	return len(s.values)
}

// Map returns a copy of the underlying values.
func (s *ValueStore) Map() map[string]string {
	if s.values == nil {
		return make(map[string]string)
	}

	return maps.Clone(s.values)
}

// Clone returns a deep copy of the store.
func (s *ValueStore) Clone() *ValueStore {
	return NewValueStore(s.values)
}

// Equal returns true if both stores hold the same keys and values.
func (s *ValueStore) Equal(o *ValueStore) bool {
	return maps.Equal(s.values, o.values)
}
