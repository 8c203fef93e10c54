// internal/dialogue/questions.go
package dialogue

import (
	"strings"

	"taskmentor/internal/task"
)

// questionsForCategory returns the fixed clarification set per category.
func questionsForCategory(category task.Category) []Question {
	switch category {
	case task.CategoryWork:
		return []Question{
			{
				ID:   "work-priority",
				Text: "What matters most for this task?",
				Options: []QuestionOption{
					{ID: "wp-speed", Label: "Getting it done fast", Value: "speed"},
					{ID: "wp-quality", Label: "Getting it done well", Value: "quality"},
					{ID: "wp-balance", Label: "A balance of both", Value: "balanced"},
				},
			},
			{
				ID:   "work-deadline",
				Text: "How tight is the deadline?",
				Options: []QuestionOption{
					{ID: "wd-urgent", Label: "Very tight, this is urgent", Value: "urgent"},
					{ID: "wd-normal", Label: "A normal deadline", Value: "normal"},
					{ID: "wd-relaxed", Label: "No real pressure", Value: "relaxed"},
				},
			},
			{
				ID:   "work-collaboration",
				Text: "Who is involved in this task?",
				Options: []QuestionOption{
					{ID: "wc-solo", Label: "Just me", Value: "solo"},
					{ID: "wc-team", Label: "My team", Value: "team"},
					{ID: "wc-stakeholder", Label: "Outside stakeholders", Value: "stakeholder"},
				},
			},
		}
	case task.CategoryLearning:
		return []Question{
			{
				ID:   "learning-style",
				Text: "How do you prefer to learn?",
				Options: []QuestionOption{
					{ID: "ls-reading", Label: "Reading and notes", Value: "reading"},
					{ID: "ls-practice", Label: "Hands-on practice", Value: "practice"},
					{ID: "ls-video", Label: "Video and lectures", Value: "video"},
				},
			},
			{
				ID:   "learning-depth",
				Text: "How deep should this go?",
				Options: []QuestionOption{
					{ID: "ld-overview", Label: "A broad overview", Value: "overview"},
					{ID: "ld-working", Label: "Working knowledge", Value: "working"},
					{ID: "ld-expert", Label: "Expert level", Value: "expert"},
				},
			},
			{
				ID:   "learning-time",
				Text: "How much time can you commit?",
				Options: []QuestionOption{
					{ID: "lt-minimal", Label: "A little here and there", Value: "minimal"},
					{ID: "lt-regular", Label: "Regular sessions", Value: "regular"},
					{ID: "lt-intensive", Label: "As much as it takes", Value: "intensive"},
				},
			},
		}
	case task.CategoryHealth:
		return []Question{
			{
				ID:   "health-condition",
				Text: "How would you describe your current condition?",
				Options: []QuestionOption{
					{ID: "hc-beginner", Label: "Just starting out", Value: "beginner"},
					{ID: "hc-active", Label: "Already active", Value: "active"},
					{ID: "hc-recovery", Label: "Recovering from something", Value: "recovery"},
				},
			},
			{
				ID:   "health-goal",
				Text: "What is the main goal?",
				Options: []QuestionOption{
					{ID: "hg-endurance", Label: "Build endurance", Value: "endurance"},
					{ID: "hg-strength", Label: "Build strength", Value: "strength"},
					{ID: "hg-wellbeing", Label: "General wellbeing", Value: "wellbeing"},
				},
			},
			{
				// Free text
				ID:   "health-notes",
				Text: "Anything else the plan should respect?",
			},
		}
	default:
		return []Question{
			{
				ID:   "general-priority",
				Text: "What matters most here?",
				Options: []QuestionOption{
					{ID: "gp-speed", Label: "Finishing quickly", Value: "speed"},
					{ID: "gp-quality", Label: "Doing it thoroughly", Value: "quality"},
					{ID: "gp-balance", Label: "A balance of both", Value: "balanced"},
				},
			},
			{
				ID:   "general-deadline",
				Text: "Is there a deadline?",
				Options: []QuestionOption{
					{ID: "gd-urgent", Label: "Yes, soon", Value: "urgent"},
					{ID: "gd-flexible", Label: "No, it is flexible", Value: "flexible"},
				},
			},
		}
	}
}

var (
	timeIssueWords       = []string{"time", "deadline", "delay", "late"}
	difficultyIssueWords = []string{"difficult", "hard", "complex", "struggle", "confusing"}
	healthIssueWords     = []string{"tired", "fatigue", "pain", "injury", "sore"}
)

// historyQuestions derives extra questions from feedback on related
// records, at most one per issue kind, gated by category.
func historyQuestions(category task.Category, related []task.Record) []Question {
	timeIssues, difficultyIssues, healthIssues := feedbackIssues(related)

	var questions []Question
	if timeIssues && category == task.CategoryWork {
		questions = append(questions, Question{
			ID:   "history-time",
			Text: "Similar tasks ran into time pressure before. How should this plan handle it?",
			Options: []QuestionOption{
				{ID: "hqt-buffer", Label: "Build in extra buffer", Value: "buffer"},
				{ID: "hqt-scope", Label: "Cut scope up front", Value: "reduce-scope"},
			},
		})
	}
	if difficultyIssues && (category == task.CategoryWork || category == task.CategoryLearning) {
		questions = append(questions, Question{
			ID:   "history-difficulty",
			Text: "Similar tasks were reported as difficult. What support would help?",
			Options: []QuestionOption{
				{ID: "hqd-steps", Label: "Break it into smaller steps", Value: "smaller-steps"},
				{ID: "hqd-help", Label: "Ask for help early", Value: "ask-for-help"},
			},
		})
	}
	if healthIssues && category == task.CategoryHealth {
		questions = append(questions, Question{
			ID:   "history-health",
			Text: "Past feedback mentions strain or fatigue. How careful should the plan be?",
			Options: []QuestionOption{
				{ID: "hqh-gentle", Label: "Take it gently", Value: "gentle"},
				{ID: "hqh-normal", Label: "Normal intensity", Value: "normal"},
			},
		})
	}
	return questions
}

func feedbackIssues(related []task.Record) (timeIssues, difficultyIssues, healthIssues bool) {
	for _, rec := range related {
		for _, fb := range rec.Feedback {
			lowered := strings.ToLower(fb.Text)
			if containsAny(lowered, timeIssueWords) {
				timeIssues = true
			}
			if containsAny(lowered, difficultyIssueWords) {
				difficultyIssues = true
			}
			if containsAny(lowered, healthIssueWords) {
				healthIssues = true
			}
		}
	}
	return
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
