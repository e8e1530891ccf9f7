// Package poly provides methods for polynomials in coefficient (monomial) form.
package poly

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// PolynomialCoeff is a polynomial in monomial form, ie
// the polynomial f(x) = a_0 + a_1 * x + ... + a_n * x^n
// is stored as [a_0, a_1, ..., a_n]
type PolynomialCoeff = []fr.Element

// PolyAdd returns the sum of the two polynomials.
//
// The resulting polynomial has the length of the larger of the two inputs.
func PolyAdd(a, b PolynomialCoeff) PolynomialCoeff {
	minPolyLen := min(len(a), len(b))
	maxPolyLen := max(len(a), len(b))

	result := make(PolynomialCoeff, maxPolyLen)
	for i := 0; i < minPolyLen; i++ {
		result[i].Add(&a[i], &b[i])
	}

	// Copy over the excess coefficients of the larger polynomial
	if len(a) > len(b) {
		copy(result[minPolyLen:], a[minPolyLen:])
	} else {
		copy(result[minPolyLen:], b[minPolyLen:])
	}

	return result
}

// PolyNeg returns the negation of the polynomial.
func PolyNeg(a PolynomialCoeff) PolynomialCoeff {
	result := make(PolynomialCoeff, len(a))
	for i := 0; i < len(a); i++ {
		result[i].Neg(&a[i])
	}

	return result
}

// PolySub returns the difference of the two polynomials.
//
// The polynomials can be of different lengths.
func PolySub(a, b PolynomialCoeff) PolynomialCoeff {
	return PolyAdd(a, PolyNeg(b))
}

// PolyMul returns the product of the two polynomials.
func PolyMul(a, b PolynomialCoeff) PolynomialCoeff {
	productDegree := len(a) + len(b) - 1
	result := make(PolynomialCoeff, productDegree)

	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			var mulRes fr.Element
			mulRes.Mul(&a[i], &b[j])
			result[i+j].Add(&result[i+j], &mulRes)
		}
	}

	return result
}

// PolyEval evaluates the polynomial at the given input point using Horner's
// method.
func PolyEval(poly PolynomialCoeff, evalPoint fr.Element) fr.Element {
	var result fr.Element
	for i := len(poly) - 1; i >= 0; i-- {
		result.Mul(&result, &evalPoint)
		result.Add(&result, &poly[i])
	}
	return result
}

// DividePolyByXminusA computes f(x) / (x - a) using synthetic division.
//
// The division is assumed to be exact, ie `a` should be a root of f(x).
// If it is not, then the remainder is silently discarded.
func DividePolyByXminusA(poly PolynomialCoeff, a fr.Element) PolynomialCoeff {
	quotient := make(PolynomialCoeff, len(poly))

	var carry fr.Element
	for i := len(poly) - 1; i >= 0; i-- {
		quotient[i].Add(&poly[i], &carry)
		carry.Mul(&quotient[i], &a)
	}

	// The constant term of the intermediate result is the remainder,
	// everything above it is the quotient.
	return quotient[1:]
}

// LagrangeInterpolate returns the unique polynomial of degree less than
// len(points) that passes through all (point, value) pairs.
//
// The points are assumed to be distinct. This is a naive quadratic time
// algorithm, it is only used on small inputs.
func LagrangeInterpolate(points, values []fr.Element) PolynomialCoeff {
	if len(points) != len(values) {
		panic("number of points must equal number of values")
	}

	result := make(PolynomialCoeff, len(points))

	for i := 0; i < len(points); i++ {
		// Compute the i'th Lagrange basis polynomial,
		// scaled by values[i]
		basis := PolynomialCoeff{values[i]}

		var denominator fr.Element
		denominator.SetOne()
		for j := 0; j < len(points); j++ {
			if j == i {
				continue
			}

			var negRoot fr.Element
			negRoot.Neg(&points[j])
			basis = PolyMul(basis, PolynomialCoeff{negRoot, fr.One()})

			var diff fr.Element
			diff.Sub(&points[i], &points[j])
			denominator.Mul(&denominator, &diff)
		}

		denominator.Inverse(&denominator)
		for k := range basis {
			basis[k].Mul(&basis[k], &denominator)
		}

		result = PolyAdd(result, basis)
	}

	return result
}

func equalPoly(a, b PolynomialCoeff) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}
