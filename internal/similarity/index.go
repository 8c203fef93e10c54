// internal/similarity/index.go
package similarity

import (
	"context"
	"log"
	"math"
	"sort"

	"taskmentor/internal/embedding"
	"taskmentor/internal/task"
)

// minResults is the floor on retrieval results when the corpus allows.
const minResults = 3

// Index ranks task records against a query text.
type Index struct {
	provider  embedding.Provider
	threshold float64
}

func NewIndex(provider embedding.Provider, threshold float64) *Index {
	return &Index{
		provider:  provider,
		threshold: threshold,
	}
}

// FindRelated returns corpus records ranked by cosine similarity to
// the query. Records scoring above the threshold are kept, and the
// result is padded with the next-best candidates up to three.
func (ix *Index) FindRelated(ctx context.Context, query string, corpus []task.Record) []task.Record {
	if len(corpus) == 0 {
		return nil
	}

	qvec, err := ix.provider.Embed(ctx, query)
	if err != nil {
		log.Printf("[Similarity] WARNING: query embedding failed: %v", err)
		qvec = nil
	}
	// No query vector at all: hand the whole lookup to keyword matching.
	if len(qvec) == 0 {
		return MatchByKeywords(query, corpus)
	}

	candidates := make([]task.Record, 0, len(corpus))
	seen := make(map[string]bool)
	for _, rec := range corpus {
		if len(rec.Embedding) > 0 && len(rec.Embedding) == len(qvec) {
			candidates = append(candidates, rec)
			seen[rec.ID] = true
		}
	}

	// Too few comparable vectors: widen with keyword matches, then the
	// rest of the corpus in stored order.
	if len(candidates) < minResults {
		for _, rec := range MatchByKeywords(query, corpus) {
			if len(candidates) >= minResults {
				break
			}
			if !seen[rec.ID] {
				candidates = append(candidates, rec)
				seen[rec.ID] = true
			}
		}
		for _, rec := range corpus {
			if len(candidates) >= minResults {
				break
			}
			if !seen[rec.ID] {
				candidates = append(candidates, rec)
				seen[rec.ID] = true
			}
		}
	}

	type scoredRecord struct {
		rec   task.Record
		score float64
	}
	ranked := make([]scoredRecord, 0, len(candidates))
	for _, rec := range candidates {
		ranked = append(ranked, scoredRecord{
			rec:   rec,
			score: cosineSimilarity(qvec, rec.Embedding),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	keep := 0
	for _, s := range ranked {
		if s.score > ix.threshold {
			keep++
		}
	}
	if keep < minResults {
		keep = minResults
	}
	if keep > len(ranked) {
		keep = len(ranked)
	}

	out := make([]task.Record, 0, keep)
	for _, s := range ranked[:keep] {
		out = append(out, s.rec)
	}
	return out
}

// FindRelatedByKeywords is the embedding-free retrieval path.
func (ix *Index) FindRelatedByKeywords(query string, corpus []task.Record) []task.Record {
	return MatchByKeywords(query, corpus)
}

// MatchByKeywords returns corpus records whose title or description
// contains a significant query token, plus records in the query's
// detected category. Order follows the corpus.
func MatchByKeywords(query string, corpus []task.Record) []task.Record {
	tokens := significantTokens(query)
	category := task.DetectCategory(query)

	var out []task.Record
	for _, rec := range corpus {
		if rec.Category == category || matchesTokens(rec, tokens) {
			out = append(out, rec)
		}
	}
	return out
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := 0; i < len(a); i++ {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
