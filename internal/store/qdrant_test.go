package store

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"

	"taskmentor/internal/task"
)

func listValue(values ...*qdrant.Value) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_ListValue{
		ListValue: &qdrant.ListValue{Values: values},
	}}
}

func structValue(fields map[string]*qdrant.Value) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_StructValue{
		StructValue: &qdrant.Struct{Fields: fields},
	}}
}

func intValue(v int64) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: v}}
}

func boolValue(v bool) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: v}}
}

func TestPointToRecord_MapsPayload(t *testing.T) {
	point := &qdrant.RetrievedPoint{
		Id: qdrant.NewIDUUID("11111111-2222-3333-4444-555555555555"),
		Payload: map[string]*qdrant.Value{
			"task_id":     qdrant.NewValueString("t1"),
			"title":       qdrant.NewValueString("Plan sprint review"),
			"description": qdrant.NewValueString("Prepare the agenda"),
			"status":      qdrant.NewValueString("completed"),
			"category":    qdrant.NewValueString("work"),
			"created_at":  intValue(1700000000),
			"related_ids": listValue(qdrant.NewValueString("t0")),
			"subtasks": listValue(structValue(map[string]*qdrant.Value{
				"id":        qdrant.NewValueString("s1"),
				"title":     qdrant.NewValueString("Book the room"),
				"completed": boolValue(true),
			})),
			"feedback": listValue(structValue(map[string]*qdrant.Value{
				"id":   qdrant.NewValueString("f1"),
				"text": qdrant.NewValueString("Ran out of time"),
			})),
			"preferences": structValue(map[string]*qdrant.Value{
				"work-priority": qdrant.NewValueString("speed"),
			}),
		},
		Vectors: &qdrant.VectorsOutput{
			VectorsOptions: &qdrant.VectorsOutput_Vector{
				Vector: &qdrant.VectorOutput{Data: []float32{0.5, 0.25}},
			},
		},
	}

	rec := pointToRecord(point)

	if rec.ID != "t1" {
		t.Errorf("Expected ID t1, got %q", rec.ID)
	}
	if rec.Title != "Plan sprint review" || rec.Description != "Prepare the agenda" {
		t.Errorf("Content fields wrong: %+v", rec)
	}
	if rec.Status != task.StatusCompleted || rec.Category != task.CategoryWork {
		t.Errorf("Expected completed/work, got %s/%s", rec.Status, rec.Category)
	}
	if rec.CreatedAt.Unix() != 1700000000 {
		t.Errorf("Created time not mapped: %v", rec.CreatedAt)
	}
	if len(rec.RelatedIDs) != 1 || rec.RelatedIDs[0] != "t0" {
		t.Errorf("Related IDs not mapped: %v", rec.RelatedIDs)
	}
	if len(rec.Subtasks) != 1 || rec.Subtasks[0].Title != "Book the room" || !rec.Subtasks[0].Completed {
		t.Errorf("Subtasks not mapped: %+v", rec.Subtasks)
	}
	if len(rec.Feedback) != 1 || rec.Feedback[0].Text != "Ran out of time" {
		t.Errorf("Feedback not mapped: %+v", rec.Feedback)
	}
	if rec.Preferences["work-priority"] != "speed" {
		t.Errorf("Preferences not mapped: %v", rec.Preferences)
	}
	if len(rec.Embedding) != 2 || rec.Embedding[0] != 0.5 || rec.Embedding[1] != 0.25 {
		t.Errorf("Embedding not extracted from vector: %v", rec.Embedding)
	}
}

func TestPointToRecord_FallsBackToPointID(t *testing.T) {
	point := &qdrant.RetrievedPoint{
		Id: qdrant.NewIDUUID("99999999-8888-7777-6666-555555555555"),
		Payload: map[string]*qdrant.Value{
			"title": qdrant.NewValueString("Untagged task"),
		},
	}

	rec := pointToRecord(point)

	if rec.ID != "99999999-8888-7777-6666-555555555555" {
		t.Errorf("Expected point UUID as fallback ID, got %q", rec.ID)
	}
	if rec.Embedding != nil {
		t.Errorf("Expected no embedding without vectors, got %v", rec.Embedding)
	}
	if rec.CreatedAt.Unix() == 1700000000 {
		t.Errorf("Created time should stay zero without payload")
	}
}

func TestPointToRecord_IgnoresMalformedEntries(t *testing.T) {
	point := &qdrant.RetrievedPoint{
		Payload: map[string]*qdrant.Value{
			"task_id": qdrant.NewValueString("t3"),
			// A list where a struct was expected
			"subtasks":    listValue(qdrant.NewValueString("not-a-subtask")),
			"preferences": qdrant.NewValueString("not-a-map"),
		},
	}

	rec := pointToRecord(point)

	if len(rec.Subtasks) != 0 {
		t.Errorf("Expected malformed subtasks to be skipped, got %+v", rec.Subtasks)
	}
	if rec.Preferences != nil {
		t.Errorf("Expected malformed preferences to be dropped, got %v", rec.Preferences)
	}
}
