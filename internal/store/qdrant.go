// internal/store/qdrant.go
package store

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"taskmentor/internal/task"
)

const scrollPageSize = 256

// QdrantSource reads the task corpus from a Qdrant collection where
// each point is one task and the point vector is its embedding.
type QdrantSource struct {
	client     *qdrant.Client
	collection string
}

// NewQdrantSource connects to Qdrant and verifies the collection
// exists. The collection belongs to the task manager writing it, so a
// missing collection is an error rather than something to create.
func NewQdrantSource(qdrantURL, collection, apiKey string) (*QdrantSource, error) {
	// Strip scheme and port, the gRPC port is set explicitly
	qdrantURL = strings.TrimPrefix(qdrantURL, "http://")
	qdrantURL = strings.TrimPrefix(qdrantURL, "https://")
	host := qdrantURL
	if idx := strings.Index(qdrantURL, ":"); idx != -1 {
		host = qdrantURL[:idx]
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   6334, // gRPC port
		APIKey: apiKey,
		UseTLS: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	exists, err := client.CollectionExists(context.Background(), collection)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("task collection %q does not exist", collection)
	}

	log.Printf("[Store] ✓ Qdrant task source ready (collection: %s)", collection)
	return &QdrantSource{
		client:     client,
		collection: collection,
	}, nil
}

// Snapshot scrolls the whole collection page by page.
func (s *QdrantSource) Snapshot(ctx context.Context) ([]task.Record, error) {
	var records []task.Record
	var offset *qdrant.PointId
	seen := make(map[string]bool)

	for {
		scrollResult, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: s.collection,
			Limit:          uint32Ptr(scrollPageSize),
			Offset:         offset,
			WithPayload:    qdrant.NewWithPayload(true),
			WithVectors: &qdrant.WithVectorsSelector{
				SelectorOptions: &qdrant.WithVectorsSelector_Enable{
					Enable: true,
				},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scroll task collection: %w", err)
		}

		if len(scrollResult) == 0 {
			break
		}

		for _, point := range scrollResult {
			rec := pointToRecord(point)
			// The scroll offset is inclusive, so the first point of a
			// page may repeat the previous page's last point
			if rec.ID == "" || seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			records = append(records, rec)
		}

		if len(scrollResult) < scrollPageSize {
			break
		}
		offset = scrollResult[len(scrollResult)-1].Id
	}

	return records, nil
}

func pointToRecord(point *qdrant.RetrievedPoint) task.Record {
	payload := point.Payload

	rec := task.Record{
		ID:          getStringFromPayload(payload, "task_id"),
		Title:       getStringFromPayload(payload, "title"),
		Description: getStringFromPayload(payload, "description"),
		Status:      task.Status(getStringFromPayload(payload, "status")),
		Category:    task.Category(getStringFromPayload(payload, "category")),
		RelatedIDs:  getStringSliceFromPayload(payload, "related_ids"),
		Subtasks:    getSubtasksFromPayload(payload, "subtasks"),
		Feedback:    getFeedbackFromPayload(payload, "feedback"),
		Preferences: getPreferencesFromPayload(payload, "preferences"),
	}

	if rec.ID == "" && point.Id != nil {
		rec.ID = point.Id.GetUuid()
	}
	if createdAt := getIntFromPayload(payload, "created_at"); createdAt > 0 {
		rec.CreatedAt = time.Unix(createdAt, 0)
	}

	// Extract embedding from point
	if vectors := point.Vectors.GetVector(); vectors != nil {
		rec.Embedding = vectors.Data
	}

	return rec
}

func getStringFromPayload(payload map[string]*qdrant.Value, key string) string {
	if val, ok := payload[key]; ok && val.GetStringValue() != "" {
		return val.GetStringValue()
	}
	return ""
}

func getBoolFromPayload(payload map[string]*qdrant.Value, key string) bool {
	if val, ok := payload[key]; ok {
		return val.GetBoolValue()
	}
	return false
}

func getIntFromPayload(payload map[string]*qdrant.Value, key string) int64 {
	if val, ok := payload[key]; ok {
		return val.GetIntegerValue()
	}
	return 0
}

func getStringSliceFromPayload(payload map[string]*qdrant.Value, key string) []string {
	val, ok := payload[key]
	if !ok {
		return nil
	}
	listValue := val.GetListValue()
	if listValue == nil {
		return nil
	}

	result := make([]string, 0, len(listValue.Values))
	for _, v := range listValue.Values {
		if str := v.GetStringValue(); str != "" {
			result = append(result, str)
		}
	}
	return result
}

func getSubtasksFromPayload(payload map[string]*qdrant.Value, key string) []task.Subtask {
	val, ok := payload[key]
	if !ok {
		return nil
	}
	listValue := val.GetListValue()
	if listValue == nil {
		return nil
	}

	subtasks := make([]task.Subtask, 0, len(listValue.Values))
	for _, v := range listValue.Values {
		structValue := v.GetStructValue()
		if structValue == nil {
			continue
		}
		fields := structValue.Fields
		subtasks = append(subtasks, task.Subtask{
			ID:        getStringFromPayload(fields, "id"),
			Title:     getStringFromPayload(fields, "title"),
			Completed: getBoolFromPayload(fields, "completed"),
		})
	}
	return subtasks
}

func getFeedbackFromPayload(payload map[string]*qdrant.Value, key string) []task.Feedback {
	val, ok := payload[key]
	if !ok {
		return nil
	}
	listValue := val.GetListValue()
	if listValue == nil {
		return nil
	}

	feedback := make([]task.Feedback, 0, len(listValue.Values))
	for _, v := range listValue.Values {
		structValue := v.GetStructValue()
		if structValue == nil {
			continue
		}
		fields := structValue.Fields
		entry := task.Feedback{
			ID:   getStringFromPayload(fields, "id"),
			Text: getStringFromPayload(fields, "text"),
		}
		if createdAt := getIntFromPayload(fields, "created_at"); createdAt > 0 {
			entry.CreatedAt = time.Unix(createdAt, 0)
		}
		feedback = append(feedback, entry)
	}
	return feedback
}

func getPreferencesFromPayload(payload map[string]*qdrant.Value, key string) map[string]string {
	val, ok := payload[key]
	if !ok {
		return nil
	}
	structValue := val.GetStructValue()
	if structValue == nil {
		return nil
	}

	prefs := make(map[string]string)
	for k, v := range structValue.Fields {
		if str := v.GetStringValue(); str != "" {
			prefs[k] = str
		}
	}
	if len(prefs) == 0 {
		return nil
	}
	return prefs
}

func uint32Ptr(v uint32) *uint32 {
	return &v
}
