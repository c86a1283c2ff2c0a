package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGini(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []int{7}, 0},
		{"all zero", []int{0, 0, 0}, 0},
		{"equal", []int{5, 5, 5, 5}, 0},
		{"one holds all", []int{0, 0, 0, 10}, 0.75},
		{"linear", []int{1, 2, 3, 4}, 0.25},
		{"unsorted input", []int{4, 1, 3, 2}, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Gini(tt.counts), 1e-9)
		})
	}
}

func TestTopKShare(t *testing.T) {
	counts := []int{50, 30, 20}
	assert.InDelta(t, 0.5, TopKShare(counts, 1), 1e-12)
	assert.InDelta(t, 0.8, TopKShare(counts, 2), 1e-12)
	assert.InDelta(t, 1.0, TopKShare(counts, 3), 1e-12)
	assert.InDelta(t, 1.0, TopKShare(counts, 10), 1e-12)
	assert.Equal(t, 0.0, TopKShare(counts, 0))
	assert.Equal(t, 0.0, TopKShare([]int{0, 0}, 1))
	assert.Equal(t, 0.0, TopKShare(nil, 3))

	t.Run("monotonic in k", func(t *testing.T) {
		c := []int{9, 1, 4, 4, 7, 2, 8}
		prev := 0.0
		for k := 1; k <= len(c)+2; k++ {
			cur := TopKShare(c, k)
			assert.GreaterOrEqual(t, cur, prev)
			prev = cur
		}
		assert.InDelta(t, 1.0, prev, 1e-12)
	})
}

func TestBusFactor(t *testing.T) {
	counts := []int{50, 30, 20}
	assert.Equal(t, 1, BusFactor(counts, 0.5))
	assert.Equal(t, 2, BusFactor(counts, 0.8))
	assert.Equal(t, 3, BusFactor(counts, 1.0))
	assert.Equal(t, 0, BusFactor(nil, 0.5))
	assert.Equal(t, 0, BusFactor([]int{0, 0}, 0.5))

	// equal split sits exactly on the boundary
	assert.Equal(t, 5, BusFactor([]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 0.5))
	assert.LessOrEqual(t, BusFactor(counts, 0.5), BusFactor(counts, 0.8))
}

func TestMeanAndStdDev(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]int{1, 2, 3, 4}), 1e-12)

	assert.Equal(t, 0.0, SampleStdDev([]int{3}))
	assert.InDelta(t, math.Sqrt(5.0/3.0), SampleStdDev([]int{1, 2, 3, 4}), 1e-12)
	assert.Equal(t, 0.0, SampleStdDev([]int{2, 2, 2}))
}

func TestCoefficientOfVariation(t *testing.T) {
	assert.Nil(t, CoefficientOfVariation(0, 1))
	cv := CoefficientOfVariation(2, 1)
	require.NotNil(t, cv)
	assert.InDelta(t, 0.5, *cv, 1e-12)
}

func TestStabilityScore(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name string
		cv   *float64
		want float64
	}{
		{"undefined", nil, 0},
		{"zero", f(0), 0},
		{"peak", f(0.25), 1},
		{"midway below", f(0.125), 0.5},
		{"midway above", f(0.375), 0.5},
		{"upper edge", f(0.5), 0},
		{"above edge", f(0.9), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, StabilityScore(tt.cv), 1e-12)
		})
	}
}

func TestNormalizedEntropy(t *testing.T) {
	assert.Nil(t, NormalizedEntropy(nil))
	assert.Nil(t, NormalizedEntropy([]int{0, 0, 0}))

	single := NormalizedEntropy([]int{5})
	require.NotNil(t, single)
	assert.Equal(t, 0.0, *single)

	uniform := NormalizedEntropy([]int{3, 3, 3, 3})
	require.NotNil(t, uniform)
	assert.InDelta(t, 1.0, *uniform, 1e-12)

	peaked := NormalizedEntropy([]int{0, 0, 9, 0})
	require.NotNil(t, peaked)
	assert.InDelta(t, 0.0, *peaked, 1e-12)

	// empty months still count toward M
	half := NormalizedEntropy([]int{1, 1, 0, 0})
	require.NotNil(t, half)
	assert.InDelta(t, 0.5, *half, 1e-12)
}

func FuzzGini(f *testing.F) {
	f.Add(0, 0, 0, 10)
	f.Add(1, 2, 3, 4)
	f.Add(5, 5, 5, 5)
	f.Fuzz(func(t *testing.T, a, b, c, d int) {
		counts := []int{a % 10000, b % 10000, c % 10000, d % 10000}
		g := Gini(counts)
		if g < 0 || g > 1 || math.IsNaN(g) {
			t.Fatalf("gini out of range for %v: %f", counts, g)
		}
	})
}

func FuzzNormalizedEntropy(f *testing.F) {
	f.Add(uint16(1), uint16(1), uint16(0))
	f.Add(uint16(0), uint16(0), uint16(0))
	f.Fuzz(func(t *testing.T, a, b, c uint16) {
		h := NormalizedEntropy([]int{int(a), int(b), int(c)})
		if h == nil {
			if int(a)+int(b)+int(c) != 0 {
				t.Fatalf("nil entropy for non-zero total")
			}
			return
		}
		if *h < 0 || *h > 1 || math.IsNaN(*h) {
			t.Fatalf("entropy out of range: %f", *h)
		}
	})
}
