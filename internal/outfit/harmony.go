package outfit

import (
	"math"

	"github.com/actuallystonmai/outfit-service/internal/domain"
)

// CosineSimilarity returns 0 for vectors of different length, empty
// vectors and zero-norm vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Harmony is the average cosine similarity over every unordered item pair.
func Harmony(items []domain.ClothingItem) float64 {
	if len(items) < 2 {
		return 0
	}
	var sum float64
	pairs := 0
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			sum += CosineSimilarity(items[i].Embedding, items[j].Embedding)
			pairs++
		}
	}
	return sum / float64(pairs)
}

// HarmonyPercent is the integer score exposed to clients.
func HarmonyPercent(score float64) int {
	return int(math.Round(score * 100))
}
