// internal/embedding/fallback.go
package embedding

import (
	"context"
	"math"
	"strings"
)

// FallbackDim is the dimensionality of locally generated vectors.
const FallbackDim = 128

var signalWords = []string{"work", "project", "meeting", "learn", "study", "health", "exercise", "plan", "urgent"}

// FallbackProvider derives embeddings locally without a model. Vectors
// are deterministic for the same text and only comparable with each
// other, not with remote ones.
type FallbackProvider struct{}

func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

// Embed builds a 128-dim vector from text length, signal words and
// character distribution, then L2-normalizes it. Blank input yields nil.
func (p *FallbackProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	vec := make([]float32, FallbackDim)
	lowered := strings.ToLower(text)

	// Dim 0: text length, capped at 1000 chars
	length := float64(len(text)) / 1000.0
	if length > 1 {
		length = 1
	}
	vec[0] = float32(length)

	// Dims 1-9: signal word presence
	for i, word := range signalWords {
		if strings.Contains(lowered, word) {
			vec[i+1] = 1.0
		}
	}

	// Dims 10-127: character distribution
	for _, r := range lowered {
		bucket := 10 + int(r)%(FallbackDim-10)
		vec[bucket] = float32(math.Mod(float64(vec[bucket])+0.01, 1.0))
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}

	return vec, nil
}
