// Package kzg implements the KZG polynomial commitment scheme for
// polynomials in Lagrange form over the BLS12-381 curve.
package kzg

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Commitment to a polynomial
type Commitment = bls12381.G1Affine

// Polynomial in Lagrange form, ie each element
// is the evaluation of the polynomial at the
// corresponding root of unity in the domain.
type Polynomial = []fr.Element
