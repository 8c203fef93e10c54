package task

import "strings"

var (
	workKeywords     = []string{"work", "project", "meeting", "report", "deadline", "client", "presentation", "email", "office"}
	learningKeywords = []string{"learn", "study", "read", "course", "tutorial", "research", "practice", "exam"}
	healthKeywords   = []string{"health", "exercise", "fitness", "gym", "workout", "run", "diet", "sleep", "yoga"}
)

// DetectCategory classifies free text by keyword scan.
// Work is checked first, then learning, then health.
func DetectCategory(text string) Category {
	lowered := strings.ToLower(text)
	switch {
	case containsAny(lowered, workKeywords):
		return CategoryWork
	case containsAny(lowered, learningKeywords):
		return CategoryLearning
	case containsAny(lowered, healthKeywords):
		return CategoryHealth
	}
	return CategoryOther
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
