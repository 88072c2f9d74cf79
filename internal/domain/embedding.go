package domain

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ParseEmbedding decodes an embedding stored as a JSON array string.
// An empty input decodes to an empty vector without error.
func ParseEmbedding(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []float64{}, nil
	}
	var vec []float64
	if err := json.Unmarshal([]byte(raw), &vec); err != nil {
		return []float64{}, fmt.Errorf("decode embedding: %w", err)
	}
	if vec == nil {
		vec = []float64{}
	}
	return vec, nil
}

// FormatEmbedding encodes a vector in the form ParseEmbedding reads.
func FormatEmbedding(vec []float64) string {
	if len(vec) == 0 {
		return "[]"
	}
	b, err := json.Marshal(vec)
	if err != nil {
		// only NaN/Inf fail to encode, neither is a valid embedding
		return "[]"
	}
	return string(b)
}
