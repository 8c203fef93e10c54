// internal/store/source.go
package store

import (
	"context"

	"taskmentor/internal/task"
)

// Source provides the task history corpus that retrieval and dialogue
// work over. Implementations are read-only: the task manager that owns
// the records is a separate system.
type Source interface {
	Snapshot(ctx context.Context) ([]task.Record, error)
}
