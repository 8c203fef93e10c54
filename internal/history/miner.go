// internal/history/miner.go
package history

import (
	"regexp"
	"strings"

	"taskmentor/internal/task"
)

// Learnings is what mining past task records yields.
type Learnings struct {
	SuccessfulPatterns []string          `json:"successfulPatterns"`
	CommonSteps        []string          `json:"commonSteps"`
	PotentialRisks     []string          `json:"potentialRisks"`
	UserPreferences    map[string]string `json:"userPreferences"`
}

var riskTriggers = []string{"difficult", "challenge", "problem", "issue", "risk", "concern", "worry"}

// Checked in order; the first matching pattern names the risk.
var riskPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)difficulty with ([^.!?]+)`),
	regexp.MustCompile(`(?i)problem with ([^.!?]+)`),
	regexp.MustCompile(`(?i)challenge in ([^.!?]+)`),
	regexp.MustCompile(`(?i)risk of ([^.!?]+)`),
	regexp.MustCompile(`(?i)concern about ([^.!?]+)`),
}

// Miner distills reusable learnings out of past task records.
type Miner struct{}

func NewMiner() *Miner {
	return &Miner{}
}

// ExtractLearnings mines completed subtasks, feedback texts and stored
// preferences from the given records.
func (m *Miner) ExtractLearnings(records []task.Record) Learnings {
	learnings := Learnings{
		SuccessfulPatterns: []string{},
		CommonSteps:        []string{},
		PotentialRisks:     []string{},
		UserPreferences:    map[string]string{},
	}

	// Completed subtasks of completed tasks are proven patterns.
	stepCounts := map[string]int{}
	for _, rec := range records {
		if rec.Status != task.StatusCompleted {
			continue
		}
		for _, st := range rec.Subtasks {
			if !st.Completed || strings.TrimSpace(st.Title) == "" {
				continue
			}
			stepCounts[strings.ToLower(st.Title)]++
			learnings.SuccessfulPatterns = appendPattern(learnings.SuccessfulPatterns, st.Title)
		}
	}
	for _, pattern := range learnings.SuccessfulPatterns {
		if stepCounts[strings.ToLower(pattern)] > 1 {
			learnings.CommonSteps = append(learnings.CommonSteps, pattern)
		}
	}

	for _, rec := range records {
		for _, fb := range rec.Feedback {
			if risk, ok := extractRisk(fb.Text); ok {
				learnings.PotentialRisks = append(learnings.PotentialRisks, risk)
			}
		}
	}

	// Later records overwrite earlier ones; empty values never do.
	for _, rec := range records {
		for key, value := range rec.Preferences {
			if value == "" {
				continue
			}
			learnings.UserPreferences[key] = value
		}
	}

	return learnings
}

// appendPattern adds a candidate unless it duplicates an existing
// pattern as a case-insensitive substring in either direction.
func appendPattern(patterns []string, candidate string) []string {
	lowered := strings.ToLower(candidate)
	for _, existing := range patterns {
		le := strings.ToLower(existing)
		if strings.Contains(le, lowered) || strings.Contains(lowered, le) {
			return patterns
		}
	}
	return append(patterns, candidate)
}

// extractRisk turns negative feedback into a risk line. Feedback
// without a trigger word produces nothing.
func extractRisk(text string) (string, bool) {
	lowered := strings.ToLower(text)
	triggered := false
	for _, trigger := range riskTriggers {
		if strings.Contains(lowered, trigger) {
			triggered = true
			break
		}
	}
	if !triggered {
		return "", false
	}

	for _, re := range riskPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return "Risk: " + strings.TrimSpace(m[1]), true
		}
	}
	return "Feedback: " + strings.TrimSpace(text), true
}
