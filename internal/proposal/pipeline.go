// internal/proposal/pipeline.go
package proposal

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"taskmentor/internal/history"
	"taskmentor/internal/similarity"
	"taskmentor/internal/task"
)

// Pipeline turns free text into a task proposal in four stages:
// draft, context injection, personalization, structuring.
type Pipeline struct {
	index *similarity.Index
	miner *history.Miner
}

func NewPipeline(index *similarity.Index, miner *history.Miner) *Pipeline {
	return &Pipeline{
		index: index,
		miner: miner,
	}
}

// Generate runs all stages over the given text and corpus.
func (p *Pipeline) Generate(ctx context.Context, text string, corpus []task.Record, profile task.UserProfile) task.Proposal {
	prop := draftProposal(text)
	prop, related := p.injectContext(ctx, prop, text, corpus)
	prop = personalize(prop, related, profile)
	prop = structureProposal(prop)
	return prop
}

// draftProposal seeds the proposal with placeholders.
func draftProposal(text string) task.Proposal {
	return task.Proposal{
		Summary:           text,
		Steps:             []string{"1. Review what the task needs", "2. Break the work into concrete steps"},
		EstimatedTime:     "To be determined",
		Risks:             []string{"Unknown risks"},
		HistoryReferences: []string{},
	}
}

// injectContext folds learnings from similar past tasks into the
// proposal. An empty retrieval leaves the draft untouched.
func (p *Pipeline) injectContext(ctx context.Context, prop task.Proposal, text string, corpus []task.Record) (task.Proposal, []task.Record) {
	related := p.index.FindRelated(ctx, text, corpus)
	if len(related) == 0 {
		return prop, nil
	}

	learnings := p.miner.ExtractLearnings(related)

	for _, pattern := range learnings.SuccessfulPatterns {
		prop.Steps = appendStep(prop.Steps, pattern)
	}
	for _, step := range learnings.CommonSteps {
		prop.Steps = appendStep(prop.Steps, step)
	}
	prop.Risks = append(prop.Risks, learnings.PotentialRisks...)

	for _, rec := range related {
		prop.HistoryReferences = append(prop.HistoryReferences, rec.ID)
	}

	insight := fmt.Sprintf("Drawing on %d similar tasks: %d proven patterns, %d known risks, %d stored preferences.",
		len(related), len(learnings.SuccessfulPatterns), len(learnings.PotentialRisks), len(learnings.UserPreferences))
	prop.UserAdaptation = appendSentence(prop.UserAdaptation, insight)

	return prop, related
}

// personalize folds the user profile and completion history into the
// proposal text fields.
func personalize(prop task.Proposal, related []task.Record, profile task.UserProfile) task.Proposal {
	if len(profile.Interests) > 0 {
		prop.UserAdaptation = appendSentence(prop.UserAdaptation,
			fmt.Sprintf("Aligned with your interests: %s.", strings.Join(profile.Interests, ", ")))
	}
	if len(profile.Goals) > 0 {
		prop.UserAdaptation = appendSentence(prop.UserAdaptation,
			fmt.Sprintf("Supports your goals: %s.", strings.Join(profile.Goals, ", ")))
	}

	summary := strings.ToLower(strings.TrimSpace(prop.Summary))
	if summary != "" {
		for _, rec := range related {
			if rec.Status == task.StatusCompleted && strings.Contains(strings.ToLower(rec.Title), summary) {
				prop.EstimatedTime = "2-4 hours, judging by similar completed tasks"
				break
			}
		}
	}

	return prop
}

var stepNumberPattern = regexp.MustCompile(`^\d+\.\s+`)

// structureProposal renumbers steps sequentially and drops exact
// duplicate risks. Running it again is a no-op.
func structureProposal(prop task.Proposal) task.Proposal {
	for i, step := range prop.Steps {
		want := fmt.Sprintf("%d. ", i+1)
		if strings.HasPrefix(step, want) {
			continue
		}
		prop.Steps[i] = want + stepNumberPattern.ReplaceAllString(step, "")
	}

	seen := make(map[string]bool)
	deduped := make([]string, 0, len(prop.Risks))
	for _, risk := range prop.Risks {
		if seen[risk] {
			continue
		}
		seen[risk] = true
		deduped = append(deduped, risk)
	}
	prop.Risks = deduped

	return prop
}

// appendStep adds a step unless it duplicates an existing one as a
// case-insensitive substring in either direction.
func appendStep(steps []string, candidate string) []string {
	lowered := strings.ToLower(candidate)
	for _, existing := range steps {
		le := strings.ToLower(existing)
		if strings.Contains(le, lowered) || strings.Contains(lowered, le) {
			return steps
		}
	}
	return append(steps, candidate)
}

func appendSentence(s, sentence string) string {
	if s == "" {
		return sentence
	}
	return s + " " + sentence
}
