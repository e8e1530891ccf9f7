package kzgmulti

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/kzg_multi/fk20"
	"github.com/jtraglia/peerdas-kzg/internal/poly"
)

// ComputeMultiPointKZGProofs computes one opening proof per coset of the
// extended domain, along with the evaluations of the polynomial over
// each coset.
//
// Both the cosets and the evaluations inside of each coset are in
// bit-reversed order.
func ComputeMultiPointKZGProofs(fk *fk20.FK20, polyCoeff poly.PolynomialCoeff) ([]bls12381.G1Affine, [][]fr.Element, error) {
	proofs, err := fk.ComputeMultiOpenProof(polyCoeff)
	if err != nil {
		return nil, nil, err
	}
	cosetEvals := fk.ComputeExtendedPolynomial(polyCoeff)

	return proofs, cosetEvals, nil
}
