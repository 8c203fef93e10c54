// internal/task/types.go
package task

import "time"

// Status tracks the lifecycle of a task record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Category buckets a task for question selection and retrieval.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryLearning Category = "learning"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Feedback struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Record is a stored task together with everything retrieval needs.
type Record struct {
	// Identity
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Lifecycle
	Status   Status   `json:"status"`
	Category Category `json:"category"`

	// Content
	Subtasks []Subtask  `json:"subtasks,omitempty"`
	Feedback []Feedback `json:"feedback,omitempty"`

	// Retrieval
	Embedding  []float32 `json:"embedding,omitempty"`
	RelatedIDs []string  `json:"relatedIds,omitempty"`

	// Stored user context, e.g. "work-priority" -> "speed"
	Preferences map[string]string `json:"preferences,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Proposal is a generated task plan.
type Proposal struct {
	Summary           string   `json:"summary"`
	Steps             []string `json:"steps"`
	EstimatedTime     string   `json:"estimatedTime"`
	Risks             []string `json:"risks"`
	HistoryReferences []string `json:"historyReferences"`
	UserAdaptation    string   `json:"userAdaptation"`
}

// UserProfile carries interests and goals used for personalization.
type UserProfile struct {
	Interests []string `json:"interests"`
	Goals     []string `json:"goals"`
}
