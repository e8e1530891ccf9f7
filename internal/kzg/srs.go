package kzg

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/domain"
	"github.com/jtraglia/peerdas-kzg/internal/multiexp"
)

// OpeningKey is the key used to verify opening proofs
type OpeningKey struct {
	// GenG1 is the generator of the G1 group
	GenG1 bls12381.G1Affine
	// GenG2 is the generator of the G2 group
	GenG2 bls12381.G2Affine
	// AlphaG2 is the secret point multiplied by the
	// generator of the G2 group
	AlphaG2 bls12381.G2Affine
}

// CommitKey is the key used to commit to polynomials and by extension make opening proofs
type CommitKey struct {
	// G1 points, the number of elements that we can commit to
	// is bounded by the number of G1 points.
	G1 []bls12381.G1Affine
}

// ReversePoints applies the bit-reversal permutation to the G1 points.
//
// This is used when the commitment key is in Lagrange form and the
// polynomials being committed to are stored in bit-reversed order.
func (c *CommitKey) ReversePoints() {
	domain.BitReverse(c.G1)
}

// Commit commits to a polynomial using a multi exponentiation with the
// commitment key.
//
// numGoRoutines is used to configure the amount of concurrency needed.
// Setting this value to a negative number or 0 will make it default to
// the number of CPUs.
func (c *CommitKey) Commit(p Polynomial, numGoRoutines int) (*Commitment, error) {
	if len(p) == 0 || len(p) > len(c.G1) {
		return nil, ErrInvalidPolynomialSize
	}

	return multiexp.MultiExpG1(p, c.G1[:len(p)], numGoRoutines)
}

// SRS is the structured reference string (SRS) for making
// and verifying KZG proofs
//
// This codebase is only concerned with polynomials in Lagrange
// form, so only the Lagrange SRS is exposed.
type SRS struct {
	CommitKey  CommitKey
	OpeningKey OpeningKey
}

// NewLagrangeSRSInsecure creates an SRS with the commitment key in
// Lagrange form.
//
// The secret scalar is provided as input, so this method should never
// be used in production. It exists for testing and for the insecure
// development setup.
func NewLagrangeSRSInsecure(d domain.Domain, bAlpha *big.Int) (*SRS, error) {
	return newSRS(d, bAlpha, true)
}

// NewMonomialSRSInsecure creates an SRS with the commitment key in
// monomial form. See NewLagrangeSRSInsecure.
func NewMonomialSRSInsecure(d domain.Domain, bAlpha *big.Int) (*SRS, error) {
	return newSRS(d, bAlpha, false)
}

func newSRS(d domain.Domain, bAlpha *big.Int, convertToLagrange bool) (*SRS, error) {
	srs, err := newMonomialSRS(d.Cardinality, bAlpha)
	if err != nil {
		return nil, err
	}

	if convertToLagrange {
		// Convert SRS from monomial form to lagrange form
		srs.CommitKey.G1 = d.IfftG1(srs.CommitKey.G1)
	}

	return srs, nil
}

func newMonomialSRS(size uint64, bAlpha *big.Int) (*SRS, error) {
	if size < 2 {
		return nil, ErrMinSRSSize
	}

	var commitKey CommitKey
	var openKey OpeningKey
	commitKey.G1 = make([]bls12381.G1Affine, size)

	var alpha fr.Element
	alpha.SetBigInt(bAlpha)

	_, _, gen1Aff, gen2Aff := bls12381.Generators()
	commitKey.G1[0] = gen1Aff
	openKey.GenG1 = gen1Aff
	openKey.GenG2 = gen2Aff
	openKey.AlphaG2.ScalarMultiplication(&gen2Aff, bAlpha)

	alphas := make([]fr.Element, size-1)
	alphas[0] = alpha
	for i := 1; i < len(alphas); i++ {
		alphas[i].Mul(&alphas[i-1], &alpha)
	}
	g1s := bls12381.BatchScalarMultiplicationG1(&gen1Aff, alphas)
	copy(commitKey.G1[1:], g1s)

	return &SRS{
		CommitKey:  commitKey,
		OpeningKey: openKey,
	}, nil
}
