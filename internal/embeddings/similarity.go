// Package embeddings ranks embedding vectors by cosine similarity.
package embeddings

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyVector is returned for zero-length input
	ErrEmptyVector = errors.New("vector cannot be empty")
	// ErrZeroVector is returned when a vector has no direction
	ErrZeroVector = errors.New("vector norm cannot be zero")
)

// Match is a candidate's position and its similarity to the query
type Match struct {
	Index int
	Score float64
}

// CosineSimilarity returns the cosine of the angle between a and b, in [-1, 1]
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must have same length: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, ErrEmptyVector
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}

	similarity := floats.Dot(a, b) / (normA * normB)

	// float rounding can push identical directions past 1
	return max(-1, min(1, similarity)), nil
}

// Rank scores every candidate against query and returns the best n, highest
// first. Ties keep candidate order. n < 1 or n > len(candidates) returns all.
func Rank(query []float64, candidates [][]float64, n int) ([]Match, error) {
	matches := make([]Match, len(candidates))
	for i, c := range candidates {
		score, err := CosineSimilarity(query, c)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		matches[i] = Match{Index: i, Score: score}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if n > 0 && n < len(matches) {
		matches = matches[:n]
	}
	return matches, nil
}
