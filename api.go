// Package peerdaskzg implements the cryptography needed to commit to
// blobs of data, to create and verify opening proofs for single points
// and for cells of the extended blob, and to recover an extended blob
// from a subset of its cells.
package peerdaskzg

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/domain"
	"github.com/jtraglia/peerdas-kzg/internal/erasure_code"
	"github.com/jtraglia/peerdas-kzg/internal/kzg"
	kzgmulti "github.com/jtraglia/peerdas-kzg/internal/kzg_multi"
	"github.com/jtraglia/peerdas-kzg/internal/kzg_multi/fk20"
	"github.com/jtraglia/peerdas-kzg/internal/multiexp"
)

// Context holds all of the necessary configuration needed to create and
// verify proofs.
//
// It is immutable after construction, so all methods are safe for
// concurrent use.
type Context struct {
	domain            *domain.Domain
	commitKeyLagrange *kzg.CommitKey
	commitKeyMonomial *kzg.CommitKey
	openKey4844       *kzg.OpeningKey
	openKey7594       *kzgmulti.OpeningKey

	fk20         *fk20.FK20
	dataRecovery *erasure_code.DataRecovery

	fixedBaseMSM *multiexp.MSMTable
}

// ContextOption configures optional behaviour of a Context.
type ContextOption func(*Context)

// WithFixedBaseMSM precomputes a fixed-base MSM table over the lagrange
// commit key, which speeds up BlobToKZGCommitment at the cost of memory.
// `wbits` is the Booth window width in bits.
func WithFixedBaseMSM(wbits uint8) ContextOption {
	return func(ctx *Context) {
		ctx.fixedBaseMSM = multiexp.NewMSMTable(ctx.commitKeyLagrange.G1, wbits)
	}
}

// NewContext4096Insecure1337 creates a new context object which will
// hold the state needed for one to use the EIP-4844 and EIP-7594
// methods.
//
// The `4096` denotes that we will only be able to commit to polynomials
// with at most 4096 evaluations.
// The `Insecure` denotes that this method should not be used in
// production since the secret is known. In particular, it is `1337`.
func NewContext4096Insecure1337(opts ...ContextOption) (*Context, error) {
	const secret = int64(1337)

	var alpha fr.Element
	alpha.SetBigInt(big.NewInt(secret))

	// alphas = [alpha, alpha^2, ..., alpha^(ScalarsPerBlob-1)]
	alphas := make([]fr.Element, ScalarsPerBlob-1)
	alphas[0] = alpha
	for i := 1; i < len(alphas); i++ {
		alphas[i].Mul(&alphas[i-1], &alpha)
	}

	_, _, gen1Aff, gen2Aff := bls12381.Generators()

	g1Monomial := make([]bls12381.G1Affine, ScalarsPerBlob)
	g1Monomial[0] = gen1Aff
	copy(g1Monomial[1:], bls12381.BatchScalarMultiplicationG1(&gen1Aff, alphas))

	g2Monomial := make([]bls12381.G2Affine, ScalarsPerCell+1)
	g2Monomial[0] = gen2Aff
	copy(g2Monomial[1:], bls12381.BatchScalarMultiplicationG2(&gen2Aff, alphas[:ScalarsPerCell]))

	// The distributed setup files carry the lagrange form, here we
	// compute it from the monomial form instead.
	g1Lagrange := domain.NewDomain(ScalarsPerBlob).IfftG1(g1Monomial)

	return newContext(g1Monomial, g1Lagrange, g2Monomial, opts...)
}

// NewContext4096 creates a new context object from a trusted setup,
// holding the state needed for one to use the EIP-4844 and EIP-7594
// methods.
func NewContext4096(trustedSetup *JSONTrustedSetup, opts ...ContextOption) (*Context, error) {
	if len(trustedSetup.SetupG1Monomial) != ScalarsPerBlob {
		return nil, ErrTrustedSetupG1Size
	}
	if len(trustedSetup.SetupG1Lagrange) != len(trustedSetup.SetupG1Monomial) {
		return nil, ErrMonomialLagrangeMismatch
	}
	if len(trustedSetup.SetupG2) < ScalarsPerCell+1 {
		return nil, ErrTrustedSetupG2Size
	}

	g1Monomial, g1Lagrange, g2Monomial, err := parseTrustedSetup(trustedSetup)
	if err != nil {
		return nil, fmt.Errorf("could not parse trusted setup: %w", err)
	}

	return newContext(g1Monomial, g1Lagrange, g2Monomial, opts...)
}

func newContext(g1Monomial, g1Lagrange []bls12381.G1Affine, g2Monomial []bls12381.G2Affine, opts ...ContextOption) (*Context, error) {
	d := domain.NewDomain(ScalarsPerBlob)

	commitKeyLagrange := &kzg.CommitKey{G1: g1Lagrange}
	commitKeyMonomial := &kzg.CommitKey{G1: g1Monomial}

	openKey4844 := &kzg.OpeningKey{
		GenG1:   g1Monomial[0],
		GenG2:   g2Monomial[0],
		AlphaG2: g2Monomial[1],
	}
	openKey7594 := kzgmulti.NewOpeningKey(
		g1Monomial[:ScalarsPerCell+1],
		g2Monomial[:ScalarsPerCell+1],
		scalarsPerExtBlob,
		ScalarsPerCell,
	)

	fk20Prover := fk20.NewFK20(g1Monomial, scalarsPerExtBlob, ScalarsPerCell)

	// Bit-Reverse the roots and the lagrange commit key according to
	// the specs. The polynomial in a blob is given in evaluation form
	// with the evaluations in bit-reversed order.
	commitKeyLagrange.ReversePoints()
	d.ReverseRoots()

	ctx := &Context{
		domain:            d,
		commitKeyLagrange: commitKeyLagrange,
		commitKeyMonomial: commitKeyMonomial,
		openKey4844:       openKey4844,
		openKey7594:       openKey7594,
		fk20:              &fk20Prover,
		dataRecovery:      erasure_code.NewDataRecovery(ScalarsPerCell, ScalarsPerBlob, expansionFactor),
	}

	for _, opt := range opts {
		opt(ctx)
	}

	return ctx, nil
}

// blobToPolynomial deserializes a blob and converts it to the
// coefficient form of the polynomial it holds.
func (ctx *Context) blobToPolyCoeff(blob *Blob) ([]fr.Element, error) {
	poly, err := DeserializeBlob(blob)
	if err != nil {
		return nil, err
	}

	// The blob carries evaluations in bit-reversed order, undo the
	// permutation before interpolating.
	domain.BitReverse(poly)

	return ctx.domain.IfftFr(poly), nil
}
