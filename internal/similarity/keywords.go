package similarity

import (
	"strings"

	"taskmentor/internal/task"
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true, "would": true,
	"should": true, "could": true, "may": true, "might": true, "can": true,
	"this": true, "that": true, "these": true, "those": true, "every": true,
}

// significantTokens extracts meaningful lowercase words from free text
func significantTokens(text string) []string {
	text = strings.ToLower(text)

	words := strings.Fields(text)
	tokens := []string{}

	for _, word := range words {
		// Remove punctuation
		word = strings.Trim(word, ".,;:!?—-\"'()")

		// Skip if too short, empty, or stop word
		if len(word) < 4 || stopWords[word] {
			continue
		}

		tokens = append(tokens, word)
	}

	return tokens
}

func matchesTokens(rec task.Record, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	haystack := strings.ToLower(rec.Title + " " + rec.Description)
	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			return true
		}
	}
	return false
}
