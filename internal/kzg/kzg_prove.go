package kzg

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/domain"
)

// Open creates a KZG proof that a polynomial f(x) when evaluated at a point `a` is equal to `f(a)`.
//
// The polynomial is given in Lagrange form.
//
// [compute_kzg_proof_impl]: https://github.com/ethereum/consensus-specs/blob/017a8495f7671f5fff2075a9bfc9238c1a0982f8/specs/deneb/polynomial-commitments.md#compute_kzg_proof_impl
func Open(d *domain.Domain, p Polynomial, evalPoint fr.Element, ck *CommitKey, numGoRoutines int) (OpeningProof, error) {
	if len(p) == 0 || len(p) > len(ck.G1) {
		return OpeningProof{}, ErrInvalidPolynomialSize
	}

	outputPoint, indexInDomain, err := evaluateLagrangePolynomial(d, p, evalPoint)
	if err != nil {
		return OpeningProof{}, err
	}

	res := OpeningProof{
		InputPoint:   evalPoint,
		ClaimedValue: *outputPoint,
	}

	// compute the quotient polynomial
	quotientPoly, err := dividePolyByXminusA(d, p, indexInDomain, res.ClaimedValue, evalPoint)
	if err != nil {
		return OpeningProof{}, err
	}

	// commit to Quotient polynomial
	quotientCommit, err := ck.Commit(quotientPoly, numGoRoutines)
	if err != nil {
		return OpeningProof{}, err
	}
	res.QuotientCommitment.Set(quotientCommit)

	return res, nil
}

// dividePolyByXminusA computes (f - f(a)) / (x - a) for a polynomial in
// Lagrange form.
//
// The evaluation point `a` may be inside or outside of the domain. If it
// is inside, indexInDomain holds its index, otherwise indexInDomain is -1.
func dividePolyByXminusA(d *domain.Domain, f Polynomial, indexInDomain int, fa, a fr.Element) ([]fr.Element, error) {
	if d.Cardinality != uint64(len(f)) {
		return nil, ErrPolynomialMismatchedSizeDomain
	}

	if indexInDomain != -1 {
		return dividePolyByXminusAOnDomain(d, f, uint64(indexInDomain))
	}

	return dividePolyByXminusAOutsideDomain(d, f, fa, a)
}

func dividePolyByXminusAOutsideDomain(d *domain.Domain, f Polynomial, fa, a fr.Element) ([]fr.Element, error) {
	// first we compute f-f(a)
	numer := make([]fr.Element, len(f))
	for i := 0; i < len(f); i++ {
		numer[i].Sub(&f[i], &fa)
	}

	// Now compute 1/(roots - a)
	denom := make([]fr.Element, len(f))
	for i := 0; i < len(f); i++ {
		denom[i].Sub(&d.Roots[i], &a)
	}
	denom = fr.BatchInvert(denom)

	for i := 0; i < len(f); i++ {
		denom[i].Mul(&denom[i], &numer[i])
	}

	return denom, nil
}

// dividePolyByXminusAOnDomain divides by X-w^m when w^m is in the domain.
//
// [compute_quotient_eval_within_domain]: https://github.com/ethereum/consensus-specs/blob/017a8495f7671f5fff2075a9bfc9238c1a0982f8/specs/deneb/polynomial-commitments.md#compute_quotient_eval_within_domain
func dividePolyByXminusAOnDomain(d *domain.Domain, f Polynomial, index uint64) ([]fr.Element, error) {
	y := f[index]
	z := d.Roots[index]
	invZ := d.PreComputedInverses[index]

	rootsMinusZ := make([]fr.Element, d.Cardinality)
	for i := 0; i < int(d.Cardinality); i++ {
		rootsMinusZ[i].Sub(&d.Roots[i], &z)
	}
	invRootsMinusZ := fr.BatchInvert(rootsMinusZ)

	quotientPoly := make([]fr.Element, d.Cardinality)
	for j := 0; j < int(d.Cardinality); j++ {
		// check if we are on the current root of unity
		if uint64(j) == index {
			continue
		}

		// Compute q_j = (f_j - y) / (w^j - w^m)
		var qj fr.Element
		qj.Sub(&f[j], &y)
		qj.Mul(&qj, &invRootsMinusZ[j])
		quotientPoly[j] = qj

		// Compute the j'th term in q_m denoted `qmj`
		// qmj = -q_j * w^{j-m}
		var qmj fr.Element
		qmj.Neg(&qj)
		qmj.Mul(&qmj, &d.Roots[j])
		qmj.Mul(&qmj, &invZ)

		quotientPoly[index].Add(&quotientPoly[index], &qmj)
	}

	return quotientPoly, nil
}
