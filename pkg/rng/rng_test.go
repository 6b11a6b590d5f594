package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicStream(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "streams seeded identically must match at index %d", i)
	}
}

func TestFloat64Range(t *testing.T) {
	r := New(7)
	for i := 0; i < 10000; i++ {
		f := r.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	assert.NotEqual(t, a.Float64(), b.Float64())
}

func TestForRunDisjointSeeds(t *testing.T) {
	base := uint64(1000)
	first := ForRun(base, 0)
	second := ForRun(base, 1)

	same := New(base)
	assert.Equal(t, same.Float64(), first.Float64())

	shifted := New(base + 1)
	assert.Equal(t, shifted.Float64(), second.Float64())
}

func TestGaussianIsRoughlyStandardNormal(t *testing.T) {
	r := New(99)
	const n = 50000
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		g := r.Gaussian()
		sum += g
		sumSq += g * g
	}
	mean := sum / n
	variance := sumSq/n - mean*mean

	assert.InDelta(t, 0.0, mean, 0.05)
	assert.InDelta(t, 1.0, variance, 0.1)
}
