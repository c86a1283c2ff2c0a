// Package algo has the pure statistics shared by the rhythm, concentration and entropy engines.
package algo

import (
	"math"
	"slices"
)

// busEpsilon absorbs floating-point error at the bus-factor boundary.
const busEpsilon = 1e-12

// Stability score shape: a triangle peaking at idealCV and reaching zero at 0 and maxStableCV.
const (
	idealCV     = 0.25
	maxStableCV = 0.50
)

// Sum returns the total of counts.
func Sum(counts []int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// Mean returns the arithmetic mean of counts, or 0 for an empty slice.
func Mean(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	return float64(Sum(counts)) / float64(len(counts))
}

// SampleStdDev returns the sample standard deviation (n-1 denominator).
// It is 0 when there are fewer than two values.
func SampleStdDev(counts []int) float64 {
	n := len(counts)
	if n < 2 {
		return 0
	}
	mu := Mean(counts)
	var ss float64
	for _, c := range counts {
		d := float64(c) - mu
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// CoefficientOfVariation returns sigma/mu, or nil when mu is 0.
func CoefficientOfVariation(mu, sigma float64) *float64 {
	if mu == 0 {
		return nil
	}
	cv := sigma / mu
	return &cv
}

// StabilityScore maps a coefficient of variation to phi_c in [0,1].
func StabilityScore(cv *float64) float64 {
	if cv == nil {
		return 0
	}
	v := *cv
	if v < 0 || v > maxStableCV {
		return 0
	}
	return math.Max(0, 1-math.Abs(v-idealCV)/idealCV)
}

// sortedDesc returns a descending copy of counts.
func sortedDesc(counts []int) []int {
	out := slices.Clone(counts)
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

// TopKShare returns the share of the total held by the k largest counts.
// It is 0 when the total is 0 or k is not positive.
func TopKShare(counts []int, k int) float64 {
	total := Sum(counts)
	if total == 0 || k <= 0 {
		return 0
	}
	desc := sortedDesc(counts)
	if k > len(desc) {
		k = len(desc)
	}
	return float64(Sum(desc[:k])) / float64(total)
}

// Gini returns the Gini coefficient of counts, clamped to [0,1].
// Negative counts are ignored. It is 0 when fewer than two values remain or the total is 0.
func Gini(counts []int) float64 {
	vals := make([]int, 0, len(counts))
	for _, c := range counts {
		if c >= 0 {
			vals = append(vals, c)
		}
	}
	n := len(vals)
	total := Sum(vals)
	if n < 2 || total == 0 {
		return 0
	}
	slices.Sort(vals)

	var weighted float64
	for i, x := range vals {
		weighted += float64(i+1) * float64(x)
	}
	g := (2*weighted)/(float64(n)*float64(total)) - float64(n+1)/float64(n)
	return math.Min(math.Max(g, 0), 1)
}

// BusFactor returns the smallest number of top contributors whose cumulative
// count reaches fraction x of the total. It is 0 when the total is 0.
func BusFactor(counts []int, x float64) int {
	total := Sum(counts)
	if total == 0 {
		return 0
	}
	target := x * float64(total)
	cum := 0
	for i, c := range sortedDesc(counts) {
		cum += c
		if float64(cum) >= target-busEpsilon {
			return i + 1
		}
	}
	return len(counts)
}

// NormalizedEntropy returns the Shannon entropy of the distribution divided by ln(M),
// where M counts every bucket including empty ones. It is nil when the total is not
// positive and exactly 0 when there is at most one bucket.
func NormalizedEntropy(counts []int) *float64 {
	total := Sum(counts)
	if total <= 0 {
		return nil
	}
	zero := 0.0
	m := len(counts)
	if m <= 1 {
		return &zero
	}

	var h float64
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log(p)
	}
	hn := math.Min(math.Max(h/math.Log(float64(m)), 0), 1)
	return &hn
}
