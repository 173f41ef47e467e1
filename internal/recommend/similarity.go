package recommend

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// rankBySimilarity orders candidate ids by cosine similarity to the self
// vector, nearest first, excluding the item itself and any candidate with
// a mismatched dimension.
func rankBySimilarity(self []float32, candidates []ArticleVector, exclude uuid.UUID, limit int) []uuid.UUID {
	type scored struct {
		id    uuid.UUID
		score float64
	}

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.ArticleID == exclude || len(c.Vector) != len(self) {
			continue
		}
		ranked = append(ranked, scored{id: c.ArticleID, score: cosine(self, c.Vector)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	ids := make([]uuid.UUID, len(ranked))
	for i, s := range ranked {
		ids[i] = s.id
	}
	return ids
}

// cosine computes cosine similarity between two equal-length vectors.
// A zero vector scores 0 against everything.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
