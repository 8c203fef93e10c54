// internal/dialogue/types.go
package dialogue

import "taskmentor/internal/task"

// Stage is the phase of an interactive planning session.
type Stage string

const (
	StageInitial       Stage = "initial"
	StageClarification Stage = "clarification"
	StageRefinement    Stage = "refinement"
	StageFinal         Stage = "final"
)

// validTransitions defines the forward-only stage machine.
var validTransitions = map[Stage]map[Stage]bool{
	StageInitial: {
		StageClarification: true,
	},
	StageClarification: {
		StageClarification: true,
		StageRefinement:    true,
	},
	StageRefinement: {
		StageFinal: true,
	},
	StageFinal: {},
}

// CanTransition reports whether moving between two stages is allowed.
func CanTransition(from, to Stage) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// QuestionOption is one selectable answer.
type QuestionOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Question is a clarification prompt. Empty Options means free text.
type Question struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Options []QuestionOption `json:"options,omitempty"`
}

// Suggestion is one of the directions offered after clarification.
type Suggestion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Focus       string `json:"focus"` // "efficiency", "quality", "innovation"
}

// State is a JSON-friendly snapshot of a session.
type State struct {
	Title                string            `json:"title"`
	Category             task.Category     `json:"category"`
	Stage                Stage             `json:"stage"`
	Questions            []Question        `json:"questions"`
	CurrentQuestionIndex int               `json:"currentQuestionIndex"`
	Answers              map[string]string `json:"answers"`
	Suggestions          []Suggestion      `json:"suggestions,omitempty"`
	FinalProposal        *task.Proposal    `json:"finalProposal,omitempty"`
}
