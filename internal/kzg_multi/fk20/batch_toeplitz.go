package fk20

import (
	"errors"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/domain"
	"github.com/jtraglia/peerdas-kzg/internal/multiexp"
	"golang.org/x/sync/errgroup"
)

// BatchToeplitzMatrixVecMul computes the aggregated sum of many
// Toeplitz matrix-vector multiplications where the vectors are fixed
// G1 points.
//
// Each Toeplitz multiplication is carried out by embedding the matrix
// into a circulant matrix of twice the size and doing a cyclic
// convolution with FFTs. Since the vectors are fixed, their FFTs are
// precomputed once at construction.
type BatchToeplitzMatrixVecMul struct {
	// transposedFFTVectors[i] holds the i'th frequency component of
	// every precomputed vector FFT.
	transposedFFTVectors [][]bls12381.G1Affine
	circulantDomain      domain.Domain

	// size of each vector before the circulant embedding
	vectorLen int
}

func newBatchToeplitzMatrixVecMul(vectors [][]bls12381.G1Affine) BatchToeplitzMatrixVecMul {
	if len(vectors) == 0 {
		panic("expected at least one vector")
	}
	vectorLen := len(vectors[0])
	for _, vector := range vectors {
		if len(vector) != vectorLen {
			panic("expected all vectors to have the same length")
		}
	}

	// The circulant embedding doubles the dimension
	circulantDomain := domain.NewDomain(uint64(vectorLen * 2))

	fftVectors := make([][]bls12381.G1Affine, len(vectors))
	for i, vector := range vectors {
		padded := make([]bls12381.G1Affine, vectorLen*2)
		copy(padded, vector)
		fftVectors[i] = circulantDomain.FftG1(padded)
	}

	return BatchToeplitzMatrixVecMul{
		transposedFFTVectors: transposeVectors(fftVectors),
		circulantDomain:      *circulantDomain,
		vectorLen:            vectorLen,
	}
}

// BatchMulAggregation computes the sum of matrices[i] * vectors[i], where
// the vectors are the ones this structure was created with.
func (bt *BatchToeplitzMatrixVecMul) BatchMulAggregation(matrices []toeplitzMatrix) ([]bls12381.G1Affine, error) {
	numVectors := len(bt.transposedFFTVectors[0])
	if len(matrices) != numVectors {
		return nil, errors.New("number of toeplitz matrices does not match the number of vectors")
	}

	// Embed each matrix into a circulant matrix and compute the FFT
	// of its first column.
	colFFTs := make([][]fr.Element, len(matrices))
	for i, matrix := range matrices {
		circulant := matrix.embedCirculant()
		colFFTs[i] = bt.circulantDomain.FftFr(circulant.row)
	}
	transposedColFFTs := transposeVectors(colFFTs)

	// For each frequency component, aggregate across all of the
	// matrix-vector pairs. The aggregation is an inner product between
	// the scalar components and the point components.
	aggregatedPoints := make([]bls12381.G1Affine, bt.vectorLen*2)

	var group errgroup.Group
	for i := 0; i < len(aggregatedPoints); i++ {
		frequencySlot := i
		group.Go(func() error {
			// The inner products are small, parallelism comes from
			// computing the frequency slots concurrently.
			result, err := multiexp.MultiExpG1(transposedColFFTs[frequencySlot], bt.transposedFFTVectors[frequencySlot], 1)
			if err != nil {
				return err
			}
			aggregatedPoints[frequencySlot] = *result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Take the inverse FFT of the aggregated result and truncate it,
	// undoing the circulant embedding.
	aggregatedSum := bt.circulantDomain.IfftG1(aggregatedPoints)

	return aggregatedSum[:bt.vectorLen], nil
}

// transposeVectors transposes a matrix of vectors.
//
// All vectors are assumed to have the same length.
func transposeVectors[T any](vectors [][]T) [][]T {
	innerLen := len(vectors[0])

	result := make([][]T, innerLen)
	for i := 0; i < innerLen; i++ {
		result[i] = make([]T, len(vectors))
		for j := 0; j < len(vectors); j++ {
			result[i][j] = vectors[j][i]
		}
	}

	return result
}
