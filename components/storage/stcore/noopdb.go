package stcore

import "github.com/open-control-systems/servus/components/status"

// NoopDB keeps nothing, it's used when the announced record shouldn't be persisted.
type NoopDB struct{}

// Read always reports that the key is missing.
func (*NoopDB) Read(_ string) (Blob, error) {
	return Blob{}, status.StatusNoData
}

// Write drops the blob.
func (*NoopDB) Write(_ string, _ Blob) error {
	return nil
}

// Remove is a no-op.
func (*NoopDB) Remove(_ string) error {
	return nil
}

// ForEach never calls fn, the database is always empty.
func (*NoopDB) ForEach(_ func(key string, b Blob) error) error {
	return nil
}

// Close is a no-op.
func (*NoopDB) Close() error {
	return nil
}
