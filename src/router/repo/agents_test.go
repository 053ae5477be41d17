package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEuclidean(t *testing.T) {
	assert.Equal(t, 0.0, Euclidean([]float32{1, 2, 3}, []float32{1, 2, 3}))
	assert.InDelta(t, 5.0, Euclidean([]float32{0, 0}, []float32{3, 4}), 1e-9)
}

func TestEuclideanMismatchedLengths(t *testing.T) {
	// Compared over the shorter prefix.
	assert.InDelta(t, 3.0, Euclidean([]float32{0}, []float32{3, 4}), 1e-9)
	assert.Equal(t, 0.0, Euclidean(nil, []float32{1, 2}))
}
