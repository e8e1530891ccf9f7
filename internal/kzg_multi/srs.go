package kzgmulti

import (
	"math/big"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/domain"
	"github.com/jtraglia/peerdas-kzg/internal/kzg"
	"github.com/jtraglia/peerdas-kzg/internal/multiexp"
)

// VerifyBuffers holds scratch buffers that are reused across batch
// verifications to avoid allocations.
type VerifyBuffers struct {
	weights           []fr.Element
	weightedRPowers   []fr.Element
	interpolationPoly []fr.Element
	cosetMonomialBuf  []fr.Element
}

// OpeningKey is the key used to verify multi-point opening proofs.
type OpeningKey struct {
	// G1 points in monomial form. These are used to commit to
	// the interpolation polynomial of a coset, so we only need
	// CosetSize+1 points.
	G1 []bls12381.G1Affine
	// G2 powers of the secret, [g2, s*g2, s^2*g2, ..., s^CosetSize * g2]
	G2 []bls12381.G2Affine

	// CosetSize is the size of each coset that proofs are opened over.
	CosetSize uint64

	// cosetDomains[k] interpolates evaluations over the k'th coset.
	// The cosets are indexed in bit-reversed order.
	cosetDomains []*domain.CosetDomain

	// CosetShiftsPowCosetSize[k] is the k'th coset shift raised to the
	// power of the coset size.
	CosetShiftsPowCosetSize []fr.Element

	verifyBufPool sync.Pool
}

// NewOpeningKey creates the key needed to verify multi-point opening
// proofs over cosets.
//
// g1 are monomial G1 points (at least cosetSize of them) and g2 are
// monomial G2 points (at least cosetSize+1 of them). numPointsToOpen is
// the size of the extended domain, ie cosetSize multiplied by the number
// of cosets.
func NewOpeningKey(g1 []bls12381.G1Affine, g2 []bls12381.G2Affine, numPointsToOpen, cosetSize uint64) *OpeningKey {
	extDomain := domain.NewDomain(numPointsToOpen)
	numCosets := numPointsToOpen / cosetSize

	cosetDomains := make([]*domain.CosetDomain, numCosets)
	cosetShiftsPowCosetSize := make([]fr.Element, numCosets)

	for k := uint64(0); k < numCosets; k++ {
		// The cosets are in bit-reversed order, ie the k'th coset is
		// generated by the shift w^{bitreverse(k)}.
		cosetShift := extDomain.Roots[domain.BitReverseInt(k, numCosets)]

		var invCosetShift fr.Element
		invCosetShift.Inverse(&cosetShift)

		cosetDomains[k] = domain.NewCosetDomain(domain.NewDomain(cosetSize), domain.FFTCoset{
			CosetGen:    cosetShift,
			InvCosetGen: invCosetShift,
		})

		cosetShiftsPowCosetSize[k].Exp(cosetShift, big.NewInt(int64(cosetSize)))
	}

	openKey := &OpeningKey{
		G1:                      g1,
		G2:                      g2,
		CosetSize:               cosetSize,
		cosetDomains:            cosetDomains,
		CosetShiftsPowCosetSize: cosetShiftsPowCosetSize,
	}

	openKey.verifyBufPool = sync.Pool{
		New: func() any {
			return &VerifyBuffers{
				weights:           make([]fr.Element, 0, numCosets),
				weightedRPowers:   make([]fr.Element, 0, numCosets),
				interpolationPoly: make([]fr.Element, cosetSize),
				cosetMonomialBuf:  make([]fr.Element, cosetSize),
			}
		},
	}

	return openKey
}

// CommitG1 commits to the scalars using the monomial G1 points.
func (o *OpeningKey) CommitG1(scalars []fr.Element) (*bls12381.G1Affine, error) {
	if len(scalars) == 0 || len(scalars) > len(o.G1) {
		return nil, ErrInvalidPolynomialSize
	}
	return multiexp.MultiExpG1(scalars, o.G1[:len(scalars)], 0)
}

func (o *OpeningKey) genG2() *bls12381.G2Affine {
	return &o.G2[0]
}

// SRS is the structured reference string for making and verifying
// multi-point KZG proofs.
//
// The OpeningKey is held as a pointer since it carries a buffer pool.
type SRS struct {
	CommitKey  kzg.CommitKey
	OpeningKey *OpeningKey
}

// newMonomialSRSInsecureUint64 creates an SRS with the G1 points in
// monomial form from the given secret. It should only be used for testing.
func newMonomialSRSInsecureUint64(size, numPointsToOpen, cosetSize uint64, bAlpha *big.Int) (*SRS, error) {
	if size < 2 {
		return nil, ErrMinSRSSize
	}

	var alpha fr.Element
	alpha.SetBigInt(bAlpha)

	_, _, gen1Aff, gen2Aff := bls12381.Generators()

	g1Points := make([]bls12381.G1Affine, size)
	g1Points[0] = gen1Aff

	alphas := make([]fr.Element, size-1)
	alphas[0] = alpha
	for i := 1; i < len(alphas); i++ {
		alphas[i].Mul(&alphas[i-1], &alpha)
	}
	g1s := bls12381.BatchScalarMultiplicationG1(&gen1Aff, alphas)
	copy(g1Points[1:], g1s)

	g2Points := make([]bls12381.G2Affine, cosetSize+1)
	g2Points[0] = gen2Aff
	g2s := bls12381.BatchScalarMultiplicationG2(&gen2Aff, alphas[:cosetSize])
	copy(g2Points[1:], g2s)

	openKey := NewOpeningKey(g1Points[:cosetSize+1], g2Points, numPointsToOpen, cosetSize)

	return &SRS{
		CommitKey:  kzg.CommitKey{G1: g1Points},
		OpeningKey: openKey,
	}, nil
}
