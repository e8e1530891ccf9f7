package domain

import (
	"math/big"
	"math/bits"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// FftG1 computes an FFT (Fast Fourier Transform) of the G1 elements.
//
// The elements are returned in order as opposed to being returned in
// bit-reversed order.
func (domain *Domain) FftG1(values []bls12381.G1Affine) []bls12381.G1Affine {
	return fftG1(values, domain.Generator)
}

// IfftG1 computes an inverse FFT (Fast Fourier Transform) of the G1 elements.
//
// The elements are returned in order as opposed to being returned in
// bit-reversed order.
func (domain *Domain) IfftG1(values []bls12381.G1Affine) []bls12381.G1Affine {
	var invDomainBI big.Int
	domain.CardinalityInv.BigInt(&invDomainBI)

	inverseFFT := fftG1(values, domain.GeneratorInv)

	// scale by the inverse of the domain size
	for i := 0; i < len(inverseFFT); i++ {
		inverseFFT[i].ScalarMultiplication(&inverseFFT[i], &invDomainBI)
	}

	return inverseFFT
}

// fftG1 computes an FFT of the group elements using the given nthRootOfUnity.
//
// The elements are returned in order as opposed to being returned in
// bit-reversed order.
func fftG1(values []bls12381.G1Affine, nthRootOfUnity fr.Element) []bls12381.G1Affine {
	n := len(values)
	if n == 1 {
		return values
	}

	var generatorSquared fr.Element
	generatorSquared.Square(&nthRootOfUnity) // generator with half the order

	even, odd := takeEvenOdd(values)

	fftEven := fftG1(even, generatorSquared)
	fftOdd := fftG1(odd, generatorSquared)

	inputPoint := fr.One()
	evaluations := make([]bls12381.G1Affine, n)
	for k := 0; k < n/2; k++ {
		var inputPointBI big.Int
		inputPoint.BigInt(&inputPointBI)

		var secondTerm bls12381.G1Affine
		secondTerm.ScalarMultiplication(&fftOdd[k], &inputPointBI)

		evaluations[k].Add(&fftEven[k], &secondTerm)
		evaluations[k+n/2].Sub(&fftEven[k], &secondTerm)

		inputPoint.Mul(&inputPoint, &nthRootOfUnity)
	}

	return evaluations
}

// FftFr computes an FFT (Fast Fourier Transform) of the field elements.
//
// The elements are returned in order as opposed to being returned in
// bit-reversed order.
func (domain *Domain) FftFr(values []fr.Element) []fr.Element {
	result := make([]fr.Element, len(values))
	copy(result, values)

	fftFr(result, domain.Generator)

	return result
}

// FftFrInto computes an FFT and writes the result to the output parameter.
// Useful to avoid allocations in hot paths.
func (domain *Domain) FftFrInto(values []fr.Element, output []fr.Element) {
	copy(output, values)

	fftFr(output, domain.Generator)
}

// IfftFr computes an inverse FFT (Fast Fourier Transform) of the field elements.
//
// The elements are returned in order as opposed to being returned in
// bit-reversed order.
func (domain *Domain) IfftFr(values []fr.Element) []fr.Element {
	result := make([]fr.Element, len(values))
	copy(result, values)

	fftFr(result, domain.GeneratorInv)

	// scale by the inverse of the domain size
	for i := 0; i < len(result); i++ {
		result[i].Mul(&result[i], &domain.CardinalityInv)
	}

	return result
}

// IfftFrInto computes an inverse FFT and writes the result to the output
// parameter.
func (domain *Domain) IfftFrInto(values []fr.Element, output []fr.Element) {
	copy(output, values)

	fftFr(output, domain.GeneratorInv)

	// scale by the inverse of the domain size
	for i := 0; i < len(output); i++ {
		output[i].Mul(&output[i], &domain.CardinalityInv)
	}
}

// fftFr computes an in-place FFT of `values` using the given nthRootOfUnity.
//
// The kernel is a decimation-in-frequency radix-2 transform, so a final
// bit-reversal permutation is applied to return the elements in order.
func fftFr(values []fr.Element, nthRootOfUnity fr.Element) {
	n := len(values)
	logN := log2PowerOf2(uint64(n))

	if n != 1<<logN {
		panic("input size must be a power of 2")
	}

	// Precompute twiddle factors
	twiddles := make([]fr.Element, n/2)
	twiddles[0] = fr.One()
	for i := 1; i < n/2; i++ {
		twiddles[i].Mul(&twiddles[i-1], &nthRootOfUnity)
	}

	// Gentleman-Sande butterflies, largest stride first
	for halfSize := n / 2; halfSize >= 1; halfSize /= 2 {
		tStep := n / (halfSize * 2)
		for start := 0; start < n; start += halfSize * 2 {
			for k := 0; k < halfSize; k++ {
				var tmp fr.Element
				tmp.Sub(&values[start+k], &values[start+k+halfSize])
				values[start+k].Add(&values[start+k], &values[start+k+halfSize])
				values[start+k+halfSize].Mul(&tmp, &twiddles[k*tStep])
			}
		}
	}

	bitReversePerm(values)
}

// bitReversePerm applies an in-place bit-reversal permutation, undoing the
// scrambled output order of the decimation-in-frequency kernel.
func bitReversePerm(values []fr.Element) {
	n := uint64(len(values))
	shift := 64 - log2PowerOf2(n)

	for i := uint64(0); i < n; i++ {
		irev := bits.Reverse64(i) >> shift
		if irev > i {
			values[i], values[irev] = values[irev], values[i]
		}
	}
}

func log2PowerOf2(n uint64) uint64 {
	if n == 0 || (n&(n-1)) != 0 {
		panic("input must be a power of 2")
	}
	return uint64(bits.TrailingZeros64(n))
}

// takeEvenOdd Takes a slice and return two slices
// The first slice contains (a copy of) all of the elements
// at even indices, the second slice contains
// (a copy of) all of the elements at odd indices
//
// We assume that the length of the given values slice is even
// so the returned arrays will be the same length.
// This is the case for a radix-2 FFT
func takeEvenOdd[T interface{}](values []T) ([]T, []T) {
	n := len(values)
	even := make([]T, 0, n/2)
	odd := make([]T, 0, n/2)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			even = append(even, values[i])
		} else {
			odd = append(odd, values[i])
		}
	}

	return even, odd
}
