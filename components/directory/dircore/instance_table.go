package dircore

import (
	"maps"
	"slices"
)

// InstanceTable maps discovered instance names to their resolved values.
//
// Remarks:
//   - The table stores copies, values passed to Set are never retained.
//   - Not safe for concurrent use.
type InstanceTable struct {
	instances map[string]*ValueStore
}

// NewInstanceTable is an initialization of InstanceTable.
func NewInstanceTable() *InstanceTable {
	return &InstanceTable{instances: make(map[string]*ValueStore)}
}

// Set replaces the values of the instance.
//
// Remarks:
//   - Returns true if the instance wasn't known before.
func (t *InstanceTable) Set(instance string, values *ValueStore) bool {
	_, known := t.instances[instance]
	t.instances[instance] = values.Clone()

	return !known
}

// Get returns the values of the instance.
func (t *InstanceTable) Get(instance string) (*ValueStore, bool) {
	values, ok := t.instances[instance]

	return values, ok
}

// Contains returns true if the instance is known.
func (t *InstanceTable) Contains(instance string) bool {
	_, ok := t.instances[instance]

	return ok
}

// Remove removes the instance.
//
// Remarks:
//   - Returns true if the instance was known.
func (t *InstanceTable) Remove(instance string) bool {
	if _, ok := t.instances[instance]; !ok {
		return false
	}

	delete(t.instances, instance)

	return true
}

// Clear removes all instances.
func (t *InstanceTable) Clear() {
	clear(t.instances)
}

// Names returns all instance names in ascending order.
func (t *InstanceTable) Names() []string {
	return slices.Sorted(maps.Keys(t.instances))
}

// Len returns the number of known instances.
func (t *InstanceTable) Len() int {
	return len(t.instances)
}

// Snapshot returns a deep copy of the table as plain maps.
func (t *InstanceTable) Snapshot() map[string]map[string]string {
	snapshot := make(map[string]map[string]string, len(t.instances))

	for name, values := range t.instances {
		snapshot[name] = values.Map()
	}

	return snapshot
}
