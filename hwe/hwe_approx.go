package hwe

import (
	"math"

	"github.com/tokenme/probab/dst"
)

// Approximate returns the 1 degree of freedom chi square P value for
// departure from Hardy-Weinberg equilibrium.
func Approximate(AA, Aa, aa float64) (p float64) {
	// dst panics on some degenerate inputs; treat those as no evidence.
	defer func() {
		if recover() != nil {
			p = 1.0
		}
	}()

	return 1.0 - dst.ChiSquareCDF(1)(ChiSquare(AA, Aa, aa))
}

// ChiSquare compares observed genotype counts with those expected under
// Hardy-Weinberg equilibrium given the observed allele frequencies.
func ChiSquare(AA, Aa, aa float64) float64 {
	A := AA*2 + Aa
	a := aa*2 + Aa

	// Monomorphic sites would divide by zero. A chi square of 0 (P=1) is the
	// natural answer, since every sample matches the expectation.
	if A == 0 || a == 0 {
		return 0.0
	}

	N := AA + Aa + aa
	p := A / (A + a)
	q := a / (A + a)

	eAA := p * p * N
	eAa := 2.0 * p * q * N
	eaa := q * q * N

	return math.Pow(eAA-AA, 2)/eAA +
		math.Pow(eAa-Aa, 2)/eAa +
		math.Pow(eaa-aa, 2)/eaa
}
