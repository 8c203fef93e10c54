// internal/store/gorm.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskmentor/internal/config"
	"taskmentor/internal/task"
)

// TaskRow is the relational shape of a task record. Nested structures
// live in JSON columns so the schema stays a single table.
type TaskRow struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"index"`
	Category    string `gorm:"index"`

	Subtasks    datatypes.JSON `gorm:"type:jsonb"`
	Feedback    datatypes.JSON `gorm:"type:jsonb"`
	Embedding   datatypes.JSON `gorm:"type:jsonb"`
	RelatedIDs  datatypes.JSON `gorm:"type:jsonb;column:related_ids"`
	Preferences datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TaskRow) TableName() string {
	return "tasks"
}

// Open connects to the relational task store named by the config.
// The schema belongs to the task manager that writes the records, so
// no migration runs here.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.TaskStore.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.TaskStore.SQLitePath)
	case "postgres":
		dialector = postgres.Open(cfg.TaskStore.DSN)
	default:
		return nil, fmt.Errorf("unsupported taskstore driver %q", cfg.TaskStore.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to task store: %w", err)
	}

	log.Printf("[Store] Task database connected (%s)", cfg.TaskStore.Driver)
	return db, nil
}

// GormSource reads the task corpus from a relational database.
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

func (s *GormSource) Snapshot(ctx context.Context) ([]task.Record, error) {
	var rows []TaskRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load task records: %w", err)
	}

	records := make([]task.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, rowToRecord(row))
	}
	return records, nil
}

// rowToRecord tolerates null or malformed JSON columns so one bad row
// degrades to zero values instead of failing the whole snapshot.
func rowToRecord(row TaskRow) task.Record {
	rec := task.Record{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      task.Status(row.Status),
		Category:    task.Category(row.Category),
		CreatedAt:   row.CreatedAt,
	}

	unmarshalColumn(row.ID, "subtasks", row.Subtasks, &rec.Subtasks)
	unmarshalColumn(row.ID, "feedback", row.Feedback, &rec.Feedback)
	unmarshalColumn(row.ID, "embedding", row.Embedding, &rec.Embedding)
	unmarshalColumn(row.ID, "related_ids", row.RelatedIDs, &rec.RelatedIDs)
	unmarshalColumn(row.ID, "preferences", row.Preferences, &rec.Preferences)

	return rec
}

func unmarshalColumn(id, column string, raw datatypes.JSON, dst interface{}) {
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("[Store] WARNING: bad %s column on task %s: %v", column, id, err)
	}
}
