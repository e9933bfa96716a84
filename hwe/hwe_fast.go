package hwe

import "github.com/BenLubar/memoize"

var memoizedApproximate = memoize.Memoize(Approximate).(func(float64, float64, float64) float64)

// Fast uses the chi square approximation, and only computes the exact P value
// when the approximation falls below cutoff.
func Fast(AA, Aa, aa, cutoff float64) float64 {
	p := memoizedApproximate(AA, Aa, aa)

	if p < cutoff {
		return Exact(int64(AA), int64(Aa), int64(aa))
	}

	return p
}
