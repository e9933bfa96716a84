package hwe

import (
	"math"
	"math/big"

	"github.com/BenLubar/memoize"
)

var memoizedExactFor = memoize.Memoize(exactFor).(func(int64, int64, int64) float64)
var memoizedFactorial = memoize.Memoize(factorial).(func(int64, int64) *big.Int)

// Exact computes an exact Hardy-Weinberg equilibrium P value from counts of
// homozygous (AA, aa) and heterozygous (Aa) individuals, following Wigginton,
// Cutler and Abecasis (2005). It is safe to call from concurrent goroutines.
// https://www.cog-genomics.org/software/stats was used for sanity checks.
func Exact(AA, Aa, aa int64) float64 {
	// Enforce AA common, aa rare
	if aa > AA {
		AA, aa = aa, AA
	}

	// The P value is the probability of the observed configuration plus that of
	// every configuration with the same allele counts that is no more likely.
	baseP := memoizedExactFor(AA, Aa, aa)

	// More heterozygotes: each step converts one AA and one aa into two Aa.
	// Fewer heterozygotes: the reverse.
	return baseP +
		tail(baseP, AA, Aa, aa, -1, +2) +
		tail(baseP, AA, Aa, aa, +1, -2)
}

// tail sums the probabilities of the configurations reached by repeatedly
// moving dHom individuals into each homozygous class and dHet into the
// heterozygous class, skipping any that are more likely than baseP.
func tail(baseP float64, AA, Aa, aa, dHom, dHet int64) float64 {
	sumP := 0.0

	for {
		AA, Aa, aa = AA+dHom, Aa+dHet, aa+dHom
		if AA < 0 || Aa < 0 || aa < 0 {
			break
		}

		p := memoizedExactFor(AA, Aa, aa)
		if p > baseP {
			continue
		}

		if p <= math.SmallestNonzeroFloat64 {
			break
		}

		sumP += p
	}

	return sumP
}

// exactFor yields the probability of observing exactly Aa heterozygotes in a
// sample of AA+Aa+aa individuals with Aa+2*aa minor alleles.
func exactFor(AA, Aa, aa int64) float64 {
	A := AA*2 + Aa
	a := aa*2 + Aa
	N := AA + Aa + aa

	var num, denom big.Int

	// 2^Aa * A! * a!
	num.Exp(big.NewInt(2), big.NewInt(Aa), nil)
	num.Mul(&num, memoizedFactorial(1, A))
	num.Mul(&num, memoizedFactorial(1, a))

	// (2N)!/N! * AA! * Aa! * aa!
	denom.Set(memoizedFactorial(N+1, 2*N))
	denom.Mul(&denom, memoizedFactorial(1, AA))
	denom.Mul(&denom, memoizedFactorial(1, Aa))
	denom.Mul(&denom, memoizedFactorial(1, aa))

	final, _ := new(big.Rat).SetFrac(&num, &denom).Float64()

	return final
}

// factorial is the product a*(a+1)*...*b, or 1 if a > b.
func factorial(a, b int64) *big.Int {
	return new(big.Int).MulRange(a, b)
}
