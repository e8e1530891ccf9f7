// Package fk20 implements the FK20 algorithm for computing KZG multi-open
// proofs over cosets of a power of two domain.
//
// See [FK20] for the underlying algorithm.
//
// [FK20]: https://github.com/khovratovich/Kate/blob/master/Kate_amortized.pdf
package fk20

import (
	"errors"
	"slices"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/domain"
	"github.com/jtraglia/peerdas-kzg/internal/utils"
)

type FK20 struct {
	batchMulAgg BatchToeplitzMatrixVecMul

	proofDomain domain.Domain
	extDomain   domain.Domain

	numPointsToOpen int
	evalSetSize     int
}

// NewFK20 creates a prover that can open a polynomial on `numPointsToOpen`
// points, grouped into cosets of size `evalSetSize`.
//
// The srs points are in monomial form.
func NewFK20(srs []bls12381.G1Affine, numPointsToOpen, evalSetSize int) FK20 {
	if !utils.IsPowerOfTwo(uint64(evalSetSize)) {
		panic("the evaluation set size should be a power of two. It is the size of each coset")
	}

	srs = slices.Clone(srs)

	slices.Reverse(srs)
	srsTruncated := srs[evalSetSize:]
	srsVectors := takeEveryNth(srsTruncated, evalSetSize)
	padToPowerOfTwo(srsVectors)

	batchMul := newBatchToeplitzMatrixVecMul(srsVectors)

	// Compute the number of proofs
	numProofs := numPointsToOpen / evalSetSize

	proofDomain := domain.NewDomain(uint64(numProofs))

	// The size of the extension domain corresponds to the number of points that we want to open
	extDomain := domain.NewDomain(uint64(numPointsToOpen))

	return FK20{
		batchMulAgg: batchMul,
		proofDomain: *proofDomain,
		extDomain:   *extDomain,

		numPointsToOpen: numPointsToOpen,
		evalSetSize:     evalSetSize,
	}
}

// ComputeExtendedPolynomial evaluates the polynomial on the extended
// domain and returns the evaluations grouped into cosets.
//
// The cosets are in bit-reversed order, and the evaluations inside of
// each coset are bit-reversed too.
func (fk *FK20) ComputeExtendedPolynomial(polyCoeff []fr.Element) [][]fr.Element {
	// Pad to the size of the extended domain
	paddedPolyCoeff := make([]fr.Element, len(fk.extDomain.Roots))
	copy(paddedPolyCoeff, polyCoeff)

	evaluations := fk.extDomain.FftFr(paddedPolyCoeff)
	domain.BitReverse(evaluations)

	return partition(evaluations, fk.evalSetSize)
}

// ComputeMultiOpenProof computes one opening proof per coset of the
// extended domain.
//
// The proofs are returned in bit-reversed order, matching the coset
// ordering of ComputeExtendedPolynomial.
func (fk *FK20) ComputeMultiOpenProof(poly []fr.Element) ([]bls12381.G1Affine, error) {
	hComms, err := fk.computeHPolysComm(poly)
	if err != nil {
		return nil, err
	}

	// Pad hComms since fft does not do this
	numProofs := len(fk.proofDomain.Roots)
	for i := len(hComms); i < numProofs; i++ {
		hComms = append(hComms, bls12381.G1Affine{})
	}

	proofs := fk.proofDomain.FftG1(hComms)
	domain.BitReverse(proofs)

	return proofs, nil
}

// computeHPolysComm computes commitments to the h polynomials of the FK20
// scheme. The commitments are computed as a batched Toeplitz
// matrix-vector multiplication with the srs.
func (fk *FK20) computeHPolysComm(polyCoeff []fr.Element) ([]bls12381.G1Affine, error) {
	if !utils.IsPowerOfTwo(uint64(len(polyCoeff))) {
		return nil, errors.New("expected the polynomial to have power of two number of coefficients")
	}

	// Reverse polynomial so that we have the highest coefficient
	// be first. Clone since the caller may still need the polynomial.
	polyCoeff = slices.Clone(polyCoeff)
	slices.Reverse(polyCoeff)

	toeplitzRows := takeEveryNth(polyCoeff, fk.evalSetSize)

	toeplitzMatrices := make([]toeplitzMatrix, len(toeplitzRows))
	for i := 0; i < len(toeplitzRows); i++ {
		row := toeplitzRows[i]

		column := make([]fr.Element, len(row))
		column[0] = row[0]

		toeplitzMatrices[i] = newToeplitz(row, column)
	}

	return fk.batchMulAgg.BatchMulAggregation(toeplitzMatrices)
}

// takeEveryNth returns `n` lists, where the i'th list contains every
// n'th element of the input list, starting at offset i.
func takeEveryNth[T any](list []T, n int) [][]T {
	result := make([][]T, n)

	for i := 0; i < n; i++ {
		subList := make([]T, 0, (len(list)+n-1)/n)
		for j := i; j < len(list); j += n {
			subList = append(subList, list[j])
		}
		result[i] = subList
	}

	return result
}

// nextPowerOfTwo returns the next power of two greater than or equal to n
func nextPowerOfTwo(n int) int {
	k := 1
	for k < n {
		k <<= 1
	}
	return k
}

// padToPowerOfTwo pads each inner slice to the next power of two in-place
func padToPowerOfTwo(matrix [][]bls12381.G1Affine) {
	for i, slice := range matrix {
		currentLen := len(slice)
		nextPow2 := nextPowerOfTwo(currentLen)

		identityPoint := bls12381.G1Affine{}
		for j := currentLen; j < nextPow2; j++ {
			matrix[i] = append(matrix[i], identityPoint)
		}
	}
}

// partition groups a slice into chunks of size k
//
// Example:
// Input: [1, 2, 3, 4, 5, 6, 7, 8, 9], k: 3
// Output: [[1, 2, 3], [4, 5, 6], [7, 8, 9]]
//
// Panics if the slice cannot be divided into chunks of size k
func partition(slice []fr.Element, k int) [][]fr.Element {
	var result [][]fr.Element

	for i := 0; i < len(slice); i += k {
		end := i + k
		if end > len(slice) {
			panic("all partitions should have the same size")
		}
		result = append(result, slice[i:end])
	}

	return result
}
