package peerdaskzg_test

import (
	"testing"

	peerdaskzg "github.com/jtraglia/peerdas-kzg"
	"github.com/stretchr/testify/require"
)

func TestBytesAPIMatchesTypedAPI(t *testing.T) {
	blob := GetRandBlob(77)

	commitment, err := ctx.BlobToKZGCommitment(blob, NumGoRoutines)
	require.NoError(t, err)
	commitmentFromBytes, err := ctx.BlobToKZGCommitmentBytes(blob[:], NumGoRoutines)
	require.NoError(t, err)
	require.Equal(t, commitment, commitmentFromBytes)

	cells, proofs, err := ctx.ComputeCellsAndKZGProofs(blob, NumGoRoutines)
	require.NoError(t, err)

	ok, err := ctx.VerifyCellKZGProofBytes(commitment[:], 0, cells[0][:], proofs[0][:])
	require.NoError(t, err)
	require.True(t, ok)

	half := peerdaskzg.CellsPerExtBlob / 2
	cellIndices := make([]uint64, half)
	cellBytes := make([][]byte, half)
	for i := 0; i < half; i++ {
		cellIndices[i] = uint64(i)
		cellBytes[i] = cells[i][:]
	}
	recoveredCells, recoveredProofs, err := ctx.RecoverCellsAndComputeKZGProofsBytes(cellIndices, cellBytes, NumGoRoutines)
	require.NoError(t, err)
	require.Equal(t, cells, recoveredCells)
	require.Equal(t, proofs, recoveredProofs)
}

func TestBytesAPIInvalidLengths(t *testing.T) {
	blob := GetRandBlob(78)
	commitment, err := ctx.BlobToKZGCommitment(blob, NumGoRoutines)
	require.NoError(t, err)
	cells, proofs, err := ctx.ComputeCellsAndKZGProofs(blob, NumGoRoutines)
	require.NoError(t, err)

	_, err = ctx.BlobToKZGCommitmentBytes(blob[:peerdaskzg.BytesPerBlob-1], NumGoRoutines)
	var blobErr peerdaskzg.ErrBlobHasInvalidLength
	require.ErrorAs(t, err, &blobErr)

	_, err = ctx.VerifyCellKZGProofBytes(commitment[:40], 0, cells[0][:], proofs[0][:])
	var pointErr peerdaskzg.ErrPointHasInvalidLength
	require.ErrorAs(t, err, &pointErr)

	// A truncated cell reports its index and the actual and expected
	// byte counts
	half := peerdaskzg.CellsPerExtBlob / 2
	cellIndices := make([]uint64, half)
	cellBytes := make([][]byte, half)
	for i := 0; i < half; i++ {
		cellIndices[i] = uint64(i)
		cellBytes[i] = cells[i][:]
	}
	cellBytes[5] = cellBytes[5][:100]

	_, _, err = ctx.RecoverCellsAndComputeKZGProofsBytes(cellIndices, cellBytes, NumGoRoutines)
	var cellErr peerdaskzg.ErrCellDoesNotContainEnoughBytes
	require.ErrorAs(t, err, &cellErr)
	require.Equal(t, uint64(5), cellErr.CellIndex)
	require.Equal(t, 100, cellErr.Length)
	require.Equal(t, peerdaskzg.BytesPerCell, cellErr.ExpectedLength)

	_, _, err = ctx.RecoverCellsAndComputeKZGProofsBytes(cellIndices[:half-1], cellBytes, NumGoRoutines)
	var countErr peerdaskzg.ErrNumCellIndicesNotEqualToNumCells
	require.ErrorAs(t, err, &countErr)
}
