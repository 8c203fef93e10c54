// internal/dialogue/engine.go
package dialogue

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"taskmentor/internal/similarity"
	"taskmentor/internal/task"
)

// Engine drives one interactive planning session through its stages.
type Engine struct {
	mu sync.Mutex

	title    string
	category task.Category
	stage    Stage

	questions []Question
	index     int
	answers   map[string]string

	related     []task.Record
	suggestions []Suggestion
	selected    string
	final       *task.Proposal
}

// NewEngine creates an idle engine. Call StartInteraction to begin.
func NewEngine() *Engine {
	return &Engine{
		stage:   StageInitial,
		answers: map[string]string{},
	}
}

// StartInteraction binds the engine to a task title, picks the question
// set for its category and scans the corpus for history questions.
func (e *Engine) StartInteraction(title string, corpus []task.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.title = title
	e.category = task.DetectCategory(title)
	e.related = similarity.MatchByKeywords(title, corpus)

	e.questions = questionsForCategory(e.category)
	e.questions = append(e.questions, historyQuestions(e.category, e.related)...)

	e.stage = StageInitial
	e.index = 0
	e.answers = map[string]string{}
	e.suggestions = nil
	e.selected = ""
	e.final = nil

	log.Printf("[Dialogue] Started session for %q (category %s, %d questions)", title, e.category, len(e.questions))
}

// SubmitAnswer records the answer to a question. For questions with
// options the input is the option ID, otherwise it is free text.
// Answering the last open question produces the suggestions.
func (e *Engine) SubmitAnswer(questionID, input string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stage == StageRefinement || e.stage == StageFinal {
		log.Printf("[Dialogue] WARNING: answer for %q ignored, session is past clarification", questionID)
		return
	}

	question := e.findQuestion(questionID)
	if question == nil {
		log.Printf("[Dialogue] WARNING: unknown question %q ignored", questionID)
		return
	}

	value := input
	if len(question.Options) > 0 {
		option := findOption(question.Options, input)
		if option == nil {
			log.Printf("[Dialogue] WARNING: unknown option %q for question %q ignored", input, questionID)
			return
		}
		value = option.Value
	}
	e.answers[question.ID] = value

	if e.index < len(e.questions)-1 {
		e.index++
		e.advance(StageClarification)
	} else {
		e.generateSuggestions()
		e.advance(StageRefinement)
	}
}

// SelectSuggestion fixes the direction and produces the final proposal.
func (e *Engine) SelectSuggestion(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stage == StageFinal {
		log.Printf("[Dialogue] WARNING: suggestion %q ignored, session already final", id)
		return
	}

	var chosen *Suggestion
	for i := range e.suggestions {
		if e.suggestions[i].ID == id {
			chosen = &e.suggestions[i]
			break
		}
	}
	if chosen == nil {
		log.Printf("[Dialogue] WARNING: unknown suggestion %q ignored", id)
		return
	}

	e.selected = id
	e.final = e.buildFinalProposal(chosen)
	e.advance(StageFinal)
}

// Reset returns the session to its initial stage with the same
// questions, clearing all progress.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stage = StageInitial
	e.index = 0
	e.answers = map[string]string{}
	e.suggestions = nil
	e.selected = ""
	e.final = nil

	log.Printf("[Dialogue] Session for %q reset", e.title)
}

// advance moves to the next stage when the transition table allows it.
func (e *Engine) advance(to Stage) {
	if !CanTransition(e.stage, to) {
		log.Printf("[Dialogue] WARNING: invalid stage transition from %s to %s", e.stage, to)
		return
	}
	e.stage = to
}

func (e *Engine) generateSuggestions() {
	priority := e.priorityAnswer()
	log.Printf("[Dialogue] Generating suggestions for %q (priority signal %q)", e.title, priority)

	e.suggestions = []Suggestion{
		{
			ID:          "efficiency",
			Title:       "Streamlined approach",
			Description: fmt.Sprintf("Finish %q with the fewest possible steps, front-loading the quick wins.", e.title),
			Focus:       "efficiency",
		},
		{
			ID:          "quality",
			Title:       "Thorough approach",
			Description: fmt.Sprintf("Work through %q carefully, with checkpoints and review built in.", e.title),
			Focus:       "quality",
		},
		{
			ID:          "innovation",
			Title:       "Creative approach",
			Description: fmt.Sprintf("Approach %q from a new angle and leave room to experiment.", e.title),
			Focus:       "innovation",
		},
	}
}

// priorityAnswer reads the first priority-like answer. The signal is
// logged for now; all three suggestions are always offered.
func (e *Engine) priorityAnswer() string {
	for _, key := range []string{"work-priority", "general-priority", "learning-style", "health-condition"} {
		if v, ok := e.answers[key]; ok && v != "" {
			return v
		}
	}
	return "balanced"
}

func (e *Engine) buildFinalProposal(chosen *Suggestion) *task.Proposal {
	steps := []string{
		"1. Clarify what done looks like",
		"2. Gather what the task needs",
		"3. Work through the core of the task in focused blocks",
		"4. Review the result against the goal",
		"5. Note what to repeat next time",
	}

	estimate := "3-7 hours"
	if e.hasAnswerValue("urgent", "minimal") {
		estimate = "Under 2 hours"
	} else if e.hasAnswerValue("relaxed", "intensive") {
		estimate = "Over 8 hours"
	}

	var risks []string
	if e.hasAnswerValue("urgent") {
		risks = append(risks, "Time pressure may squeeze quality")
	}
	if e.hasAnswerValue("team", "stakeholder") {
		risks = append(risks, "Coordination with others may add delays")
	}
	if e.hasAnswerValue("expert") {
		risks = append(risks, "The required effort may exceed the available time")
	}
	if e.hasAnswerValue("recovery") {
		risks = append(risks, "Overtraining during recovery")
	}
	if len(risks) == 0 {
		risks = append(risks, "No specific risk identified")
	}

	refs := make([]string, 0, len(e.related))
	for _, rec := range e.related {
		refs = append(refs, rec.ID)
	}

	return &task.Proposal{
		Summary:           fmt.Sprintf("%s (%s)", e.title, chosen.Title),
		Steps:             steps,
		EstimatedTime:     estimate,
		Risks:             risks,
		HistoryReferences: refs,
		UserAdaptation:    e.adaptationSummary(),
	}
}

func (e *Engine) hasAnswerValue(values ...string) bool {
	for _, v := range e.answers {
		for _, want := range values {
			if v == want {
				return true
			}
		}
	}
	return false
}

// adaptationSummary labels the answers that shaped the plan.
func (e *Engine) adaptationSummary() string {
	var parts []string
	if v := firstAnswer(e.answers, "work-priority", "general-priority"); v != "" {
		parts = append(parts, "Priority: "+v)
	}
	if v := firstAnswer(e.answers, "work-deadline", "general-deadline"); v != "" {
		parts = append(parts, "Deadline: "+v)
	}
	if v := e.answers["learning-style"]; v != "" {
		parts = append(parts, "Learning style: "+v)
	}
	if v := e.answers["health-goal"]; v != "" {
		parts = append(parts, "Health goal: "+v)
	}
	return strings.Join(parts, "; ")
}

func firstAnswer(answers map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := answers[key]; v != "" {
			return v
		}
	}
	return ""
}

func (e *Engine) findQuestion(id string) *Question {
	for i := range e.questions {
		if e.questions[i].ID == id {
			return &e.questions[i]
		}
	}
	return nil
}

func findOption(options []QuestionOption, id string) *QuestionOption {
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}

// Snapshot returns a copy of the visible session state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	answers := make(map[string]string, len(e.answers))
	for k, v := range e.answers {
		answers[k] = v
	}

	var final *task.Proposal
	if e.final != nil {
		cp := *e.final
		final = &cp
	}

	return State{
		Title:                e.title,
		Category:             e.category,
		Stage:                e.stage,
		Questions:            e.questions,
		CurrentQuestionIndex: e.index,
		Answers:              answers,
		Suggestions:          e.suggestions,
		FinalProposal:        final,
	}
}

// Stage returns the current stage.
func (e *Engine) Stage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stage
}

// CurrentQuestion returns the question awaiting an answer, or nil once
// clarification is over.
func (e *Engine) CurrentQuestion() *Question {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stage == StageRefinement || e.stage == StageFinal {
		return nil
	}
	if e.index >= len(e.questions) {
		return nil
	}
	q := e.questions[e.index]
	return &q
}

// FinalProposal returns the proposal once the session is final.
func (e *Engine) FinalProposal() (task.Proposal, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.final == nil {
		return task.Proposal{}, false
	}
	return *e.final, true
}
