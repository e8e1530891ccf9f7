package kzg

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/domain"
)

// EvaluateLagrangePolynomial evaluates the polynomial in Lagrange form at
// the given point. The evaluation point may be inside or outside of the
// domain.
//
// [evaluate_polynomial_in_evaluation_form]: https://github.com/ethereum/consensus-specs/blob/017a8495f7671f5fff2075a9bfc9238c1a0982f8/specs/deneb/polynomial-commitments.md#evaluate_polynomial_in_evaluation_form
func EvaluateLagrangePolynomial(d *domain.Domain, poly Polynomial, evalPoint fr.Element) (*fr.Element, error) {
	outputPoint, _, err := evaluateLagrangePolynomial(d, poly, evalPoint)
	return outputPoint, err
}

// evaluateLagrangePolynomial evaluates the polynomial and additionally
// returns the index of the evaluation point iff it was in the domain,
// -1 otherwise.
func evaluateLagrangePolynomial(d *domain.Domain, poly Polynomial, evalPoint fr.Element) (*fr.Element, int, error) {
	indexInDomain := -1

	if d.Cardinality != uint64(len(poly)) {
		return nil, indexInDomain, ErrPolynomialMismatchedSizeDomain
	}

	// If the evaluation point is in the domain
	// then evaluation of the polynomial in lagrange form
	// is the same as indexing it with the position
	// that the evaluation point is in, in the domain
	indexInDomain = d.FindRootIndex(evalPoint)
	if indexInDomain != -1 {
		return &poly[indexInDomain], indexInDomain, nil
	}

	denom := make([]fr.Element, d.Cardinality)
	for i := range denom {
		denom[i].Sub(&evalPoint, &d.Roots[i])
	}
	invDenom := fr.BatchInvert(denom)

	var result fr.Element
	for i := 0; i < int(d.Cardinality); i++ {
		var num fr.Element
		num.Mul(&poly[i], &d.Roots[i])

		var div fr.Element
		div.Mul(&num, &invDenom[i])

		result.Add(&result, &div)
	}

	// result * (x^width - 1) * 1/width
	var tmp fr.Element
	tmp.Exp(evalPoint, big.NewInt(int64(d.Cardinality)))
	one := fr.One()
	tmp.Sub(&tmp, &one)
	tmp.Mul(&tmp, &d.CardinalityInv)
	result.Mul(&tmp, &result)

	return &result, indexInDomain, nil
}
