package history

import (
	"testing"

	"taskmentor/internal/task"
)

func TestExtractLearnings_PatternsAndCommonSteps(t *testing.T) {
	records := []task.Record{
		{ID: "1", Status: task.StatusCompleted, Subtasks: []task.Subtask{
			{Title: "Warm up 5 minutes", Completed: true},
			{Title: "Stretch", Completed: false},
		}},
		{ID: "2", Status: task.StatusCompleted, Subtasks: []task.Subtask{
			{Title: "Warm up 5 minutes", Completed: true},
			{Title: "Cool down", Completed: true},
		}},
		{ID: "3", Status: task.StatusPending, Subtasks: []task.Subtask{
			{Title: "Never counted", Completed: true},
		}},
	}

	got := NewMiner().ExtractLearnings(records)

	if len(got.SuccessfulPatterns) != 2 {
		t.Fatalf("expected 2 patterns, got %v", got.SuccessfulPatterns)
	}
	if got.SuccessfulPatterns[0] != "Warm up 5 minutes" || got.SuccessfulPatterns[1] != "Cool down" {
		t.Errorf("unexpected patterns: %v", got.SuccessfulPatterns)
	}
	if len(got.CommonSteps) != 1 || got.CommonSteps[0] != "Warm up 5 minutes" {
		t.Errorf("expected the repeated step as common, got %v", got.CommonSteps)
	}
}

func TestExtractLearnings_SubstringDedup(t *testing.T) {
	records := []task.Record{
		{Status: task.StatusCompleted, Subtasks: []task.Subtask{
			{Title: "Review the draft", Completed: true},
			{Title: "Review the draft carefully", Completed: true},
		}},
	}

	got := NewMiner().ExtractLearnings(records)
	if len(got.SuccessfulPatterns) != 1 || got.SuccessfulPatterns[0] != "Review the draft" {
		t.Errorf("expected substring duplicate to be dropped, got %v", got.SuccessfulPatterns)
	}
}

func TestExtractLearnings_RiskFromFeedback(t *testing.T) {
	records := []task.Record{
		{Feedback: []task.Feedback{
			{Text: "There was a problem with scheduling conflicts. Otherwise fine."},
			{Text: "This felt difficult overall"},
			{Text: "Everything went great"},
		}},
	}

	got := NewMiner().ExtractLearnings(records)
	if len(got.PotentialRisks) != 2 {
		t.Fatalf("expected 2 risks, got %v", got.PotentialRisks)
	}
	if got.PotentialRisks[0] != "Risk: scheduling conflicts" {
		t.Errorf("expected extracted risk phrase, got %q", got.PotentialRisks[0])
	}
	if got.PotentialRisks[1] != "Feedback: This felt difficult overall" {
		t.Errorf("expected raw feedback fallback, got %q", got.PotentialRisks[1])
	}
}

func TestExtractLearnings_RiskPatternOrder(t *testing.T) {
	records := []task.Record{
		{Feedback: []task.Feedback{
			{Text: "High risk of burnout here"},
			{Text: "A challenge in staying focused!"},
		}},
	}

	got := NewMiner().ExtractLearnings(records)
	if len(got.PotentialRisks) != 2 {
		t.Fatalf("expected 2 risks, got %v", got.PotentialRisks)
	}
	if got.PotentialRisks[0] != "Risk: burnout here" {
		t.Errorf("unexpected risk: %q", got.PotentialRisks[0])
	}
	if got.PotentialRisks[1] != "Risk: staying focused" {
		t.Errorf("unexpected risk: %q", got.PotentialRisks[1])
	}
}

func TestExtractLearnings_PreferencesMerge(t *testing.T) {
	records := []task.Record{
		{Preferences: map[string]string{"work-priority": "speed", "learning-style": ""}},
		{Preferences: map[string]string{"work-priority": "quality", "health-goal": "endurance"}},
		{Preferences: map[string]string{"health-goal": ""}},
	}

	got := NewMiner().ExtractLearnings(records)
	if got.UserPreferences["work-priority"] != "quality" {
		t.Errorf("expected later value to win, got %q", got.UserPreferences["work-priority"])
	}
	if got.UserPreferences["health-goal"] != "endurance" {
		t.Errorf("expected empty value to never overwrite, got %q", got.UserPreferences["health-goal"])
	}
	if _, ok := got.UserPreferences["learning-style"]; ok {
		t.Errorf("expected empty-only key to stay absent")
	}
}

func TestExtractLearnings_EmptyInput(t *testing.T) {
	got := NewMiner().ExtractLearnings(nil)
	if len(got.SuccessfulPatterns) != 0 || len(got.CommonSteps) != 0 || len(got.PotentialRisks) != 0 {
		t.Errorf("expected empty learnings, got %+v", got)
	}
	if got.UserPreferences == nil {
		t.Errorf("expected initialized preferences map")
	}
}
