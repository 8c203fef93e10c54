package store

import (
	"context"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskmentor/internal/task"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&TaskRow{}); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}
	return db
}

func TestGormSource_Snapshot(t *testing.T) {
	db := openTestDB(t, "gorm_snapshot_test")

	row := TaskRow{
		ID:          "t1",
		Title:       "Prepare sprint review",
		Description: "Slides and demo for the team",
		Status:      "completed",
		Category:    "work",
		Subtasks:    datatypes.JSON([]byte(`[{"id":"s1","title":"Draft slides","completed":true}]`)),
		Feedback:    datatypes.JSON([]byte(`[{"id":"f1","text":"Went well"}]`)),
		Embedding:   datatypes.JSON([]byte(`[0.5,0.25]`)),
		RelatedIDs:  datatypes.JSON([]byte(`["t0"]`)),
		Preferences: datatypes.JSON([]byte(`{"work-priority":"quality"}`)),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("Failed to insert test row: %v", err)
	}

	records, err := NewGormSource(db).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.ID != "t1" || rec.Title != "Prepare sprint review" {
		t.Errorf("Identity fields wrong: %+v", rec)
	}
	if rec.Status != task.StatusCompleted || rec.Category != task.CategoryWork {
		t.Errorf("Expected completed/work, got %s/%s", rec.Status, rec.Category)
	}
	if len(rec.Subtasks) != 1 || !rec.Subtasks[0].Completed || rec.Subtasks[0].Title != "Draft slides" {
		t.Errorf("Subtasks not mapped: %+v", rec.Subtasks)
	}
	if len(rec.Feedback) != 1 || rec.Feedback[0].Text != "Went well" {
		t.Errorf("Feedback not mapped: %+v", rec.Feedback)
	}
	if len(rec.Embedding) != 2 || rec.Embedding[0] != 0.5 {
		t.Errorf("Embedding not mapped: %v", rec.Embedding)
	}
	if len(rec.RelatedIDs) != 1 || rec.RelatedIDs[0] != "t0" {
		t.Errorf("Related IDs not mapped: %v", rec.RelatedIDs)
	}
	if rec.Preferences["work-priority"] != "quality" {
		t.Errorf("Preferences not mapped: %v", rec.Preferences)
	}
}

func TestGormSource_EmptyTable(t *testing.T) {
	db := openTestDB(t, "gorm_empty_test")

	records, err := NewGormSource(db).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected empty snapshot, got %d records", len(records))
	}
}

func TestRowToRecord_BadColumnDegrades(t *testing.T) {
	row := TaskRow{
		ID:        "t9",
		Title:     "Broken row",
		Embedding: datatypes.JSON([]byte(`{`)),
		Subtasks:  datatypes.JSON([]byte(`[{"id":"s1","title":"Still fine","completed":true}]`)),
	}

	rec := rowToRecord(row)
	if rec.Embedding != nil {
		t.Errorf("Expected bad embedding column to be dropped, got %v", rec.Embedding)
	}
	if len(rec.Subtasks) != 1 || rec.Subtasks[0].Title != "Still fine" {
		t.Errorf("Good column lost alongside the bad one: %+v", rec.Subtasks)
	}
	if rec.ID != "t9" || rec.Title != "Broken row" {
		t.Errorf("Scalar fields lost: %+v", rec)
	}
}

func TestRowToRecord_NullColumns(t *testing.T) {
	rec := rowToRecord(TaskRow{ID: "t2", Title: "Bare row", Status: "pending"})

	if rec.Subtasks != nil || rec.Feedback != nil || rec.Embedding != nil {
		t.Errorf("Expected nil collections for null columns, got %+v", rec)
	}
	if rec.Status != task.StatusPending {
		t.Errorf("Expected pending status, got %s", rec.Status)
	}
}
