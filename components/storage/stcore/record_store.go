package stcore

import (
	"errors"
	"fmt"

	"github.com/open-control-systems/servus/components/status"
)

// RecordStore persists the announced key-value record.
//
// Remarks:
//   - Every record key is stored as a separate database key.
type RecordStore struct {
	db DB
}

// NewRecordStore is an initialization of RecordStore.
func NewRecordStore(db DB) *RecordStore {
	return &RecordStore{db: db}
}

// Load reads the stored record, an empty record is returned if nothing was saved.
func (s *RecordStore) Load() (map[string]string, error) {
	record := make(map[string]string)

	err := s.db.ForEach(func(key string, b Blob) error {
		record[key] = string(b.Data)

		return nil
	})
	if err != nil && !errors.Is(err, status.StatusNoData) {
		return nil, fmt.Errorf("record-store: failed to load record: %w", err)
	}

	return record, nil
}

// Save replaces the stored record.
func (s *RecordStore) Save(record map[string]string) error {
	stored, err := s.Load()
	if err != nil {
		return err
	}

	for key := range stored {
		if _, ok := record[key]; ok {
			continue
		}

		if err := s.db.Remove(key); err != nil {
			return fmt.Errorf("record-store: failed to remove key: key=%s: %w", key, err)
		}
	}

	for key, value := range record {
		if v, ok := stored[key]; ok && v == value {
			continue
		}

		if err := s.db.Write(key, Blob{Data: []byte(value)}); err != nil {
			return fmt.Errorf("record-store: failed to write key: key=%s: %w", key, err)
		}
	}

	return nil
}
