// internal/store/static.go
package store

import (
	"context"

	"taskmentor/internal/task"
)

// StaticSource serves a fixed in-memory corpus. Used when no external
// task store is configured, and in tests.
type StaticSource struct {
	records []task.Record
}

func NewStaticSource(records []task.Record) *StaticSource {
	return &StaticSource{records: records}
}

// Snapshot returns a copy so callers can never mutate the backing slice.
func (s *StaticSource) Snapshot(ctx context.Context) ([]task.Record, error) {
	out := make([]task.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}
