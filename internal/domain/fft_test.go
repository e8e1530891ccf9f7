package domain

import (
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func TestFFtRoundTrip(t *testing.T) {
	n := uint64(8)
	domain := NewDomain(n)

	polyLagrange := randomScalars(n)

	polyMonomial := domain.IfftFr(polyLagrange)
	gotLagrange := domain.FftFr(polyMonomial)

	for i := uint64(0); i < n; i++ {
		if !polyLagrange[i].Equal(&gotLagrange[i]) {
			t.Fatal("fft and ifft should be inverses of each other")
		}
	}

	// The FFT of the monomial form should agree with naive
	// evaluation over the roots of the domain.
	for i := uint64(0); i < n; i++ {
		eval := evalPolynomial(polyMonomial, domain.Roots[i])
		if !eval.Equal(&polyLagrange[i]) {
			t.Fatal("fft disagrees with naive polynomial evaluation")
		}
	}
}

func TestCosetFFtRoundTrip(t *testing.T) {
	n := uint64(16)
	domain := NewDomain(n)

	var gen fr.Element
	gen.SetUint64(7)
	var genInv fr.Element
	genInv.Inverse(&gen)

	cosetDomain := NewCosetDomain(domain, FFTCoset{
		CosetGen:    gen,
		InvCosetGen: genInv,
	})

	polyMonomial := randomScalars(n)

	polyLagrange := cosetDomain.CosetFFtFr(polyMonomial)
	gotMonomial := cosetDomain.CosetIFFtFr(polyLagrange)

	for i := uint64(0); i < n; i++ {
		if !polyMonomial[i].Equal(&gotMonomial[i]) {
			t.Fatal("coset fft and coset ifft should be inverses of each other")
		}
	}

	// Coset evaluations should agree with naive evaluation over the
	// shifted roots.
	for i := uint64(0); i < n; i++ {
		var shiftedRoot fr.Element
		shiftedRoot.Mul(&gen, &domain.Roots[i])

		eval := evalPolynomial(polyMonomial, shiftedRoot)
		if !eval.Equal(&polyLagrange[i]) {
			t.Fatal("coset fft disagrees with naive polynomial evaluation")
		}
	}
}

func TestFFtG1RoundTrip(t *testing.T) {
	n := uint64(8)
	domain := NewDomain(n)

	_, _, g1Gen, _ := bls12381.Generators()

	points := make([]bls12381.G1Affine, n)
	for i := uint64(0); i < n; i++ {
		var scalar fr.Element
		scalar.SetUint64(i + 1)

		var scalarBI big.Int
		scalar.BigInt(&scalarBI)
		points[i].ScalarMultiplication(&g1Gen, &scalarBI)
	}

	coeffs := domain.IfftG1(points)
	gotPoints := domain.FftG1(coeffs)

	for i := uint64(0); i < n; i++ {
		if !points[i].Equal(&gotPoints[i]) {
			t.Fatal("group fft and ifft should be inverses of each other")
		}
	}
}

func TestFFtIntoMatchesAllocating(t *testing.T) {
	n := uint64(32)
	domain := NewDomain(n)

	values := randomScalars(n)

	got := make([]fr.Element, n)
	domain.FftFrInto(values, got)
	expected := domain.FftFr(values)

	for i := uint64(0); i < n; i++ {
		if !got[i].Equal(&expected[i]) {
			t.Fatal("FftFrInto and FftFr should compute the same result")
		}
	}

	domain.IfftFrInto(values, got)
	expected = domain.IfftFr(values)

	for i := uint64(0); i < n; i++ {
		if !got[i].Equal(&expected[i]) {
			t.Fatal("IfftFrInto and IfftFr should compute the same result")
		}
	}
}

func TestFFtInPlaceKernel(t *testing.T) {
	n := uint64(64)
	domain := NewDomain(n)

	values := randomScalars(n)
	expected := fftFrRef(values, domain.Generator)

	got := make([]fr.Element, n)
	copy(got, values)
	fftFr(got, domain.Generator)

	for i := uint64(0); i < n; i++ {
		if !got[i].Equal(&expected[i]) {
			t.Fatal("in-place kernel disagrees with recursive reference fft")
		}
	}
}

// fftFrRef is a simple recursive radix-2 FFT used as a reference
// implementation.
func fftFrRef(values []fr.Element, nthRootOfUnity fr.Element) []fr.Element {
	n := len(values)
	if n == 1 {
		return values
	}

	var generatorSquared fr.Element
	generatorSquared.Square(&nthRootOfUnity)

	even, odd := takeEvenOdd(values)

	fftEven := fftFrRef(even, generatorSquared)
	fftOdd := fftFrRef(odd, generatorSquared)

	inputPoint := fr.One()
	evaluations := make([]fr.Element, n)
	for k := 0; k < n/2; k++ {
		var tmp fr.Element
		tmp.Mul(&inputPoint, &fftOdd[k])

		evaluations[k].Add(&fftEven[k], &tmp)
		evaluations[k+n/2].Sub(&fftEven[k], &tmp)

		inputPoint.Mul(&inputPoint, &nthRootOfUnity)
	}

	return evaluations
}

func evalPolynomial(poly []fr.Element, inputPoint fr.Element) fr.Element {
	var result fr.Element
	for i := len(poly) - 1; i >= 0; i-- {
		result.Mul(&result, &inputPoint)
		result.Add(&result, &poly[i])
	}
	return result
}
