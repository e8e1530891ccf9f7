package peerdaskzg

import (
	"errors"
	"fmt"
)

var (
	ErrBatchLengthCheck   = errors.New("the number of blobs, commitments, and proofs must be the same")
	ErrNonCanonicalScalar = errors.New("scalar is not canonical when interpreted as a big integer in big-endian")
	ErrInvalidCellID      = errors.New("cell ID should be less than CellsPerExtBlob")
	ErrInvalidRowIndex    = errors.New("row index should be less than the number of row commitments")

	// ErrRecoveryFailure is returned when the supplied cells do not lie
	// on the extension of a single blob polynomial.
	ErrRecoveryFailure = errors.New("cells could not be recovered")
)

// ErrBatchVerificationInputsMustHaveSameLength is returned when the
// collections given to batch verification do not have the same length.
type ErrBatchVerificationInputsMustHaveSameLength struct {
	RowCommitmentsLength int
	RowIndicesLength     int
	ColumnIndicesLength  int
	CellsLength          int
	ProofsLength         int
}

func (e ErrBatchVerificationInputsMustHaveSameLength) Error() string {
	return fmt.Sprintf("all inputs to VerifyCellKZGProofBatch must have the same length, row_commitments: %d, row_indices: %d, column_indices: %d, cells: %d, proofs: %d",
		e.RowCommitmentsLength, e.RowIndicesLength, e.ColumnIndicesLength, e.CellsLength, e.ProofsLength)
}

// ErrNumCellIndicesNotEqualToNumCells is returned when the number of
// cell indices given to recovery does not match the number of cells.
type ErrNumCellIndicesNotEqualToNumCells struct {
	NumCellIndices int
	NumCells       int
}

func (e ErrNumCellIndicesNotEqualToNumCells) Error() string {
	return fmt.Sprintf("number of cell indices %d does not equal number of cells %d", e.NumCellIndices, e.NumCells)
}

// ErrTooManyCellsReceived is returned when recovery is given more cells
// than the extended blob contains.
type ErrTooManyCellsReceived struct {
	NumCellsReceived int
	MaxNumCells      int
}

func (e ErrTooManyCellsReceived) Error() string {
	return fmt.Sprintf("%d cells were received, but an extended blob only has %d cells", e.NumCellsReceived, e.MaxNumCells)
}

// ErrNotEnoughCellsToReconstruct is returned when recovery is given
// fewer cells than are needed to reconstruct the blob.
type ErrNotEnoughCellsToReconstruct struct {
	NumCellsReceived int
	NumCellsNeeded   int
}

func (e ErrNotEnoughCellsToReconstruct) Error() string {
	return fmt.Sprintf("%d cells were received, but %d cells are needed to reconstruct the blob", e.NumCellsReceived, e.NumCellsNeeded)
}

// ErrCellIndicesNotUnique is returned when the cell indices given to
// recovery contain duplicates.
type ErrCellIndicesNotUnique struct {
	DuplicateCellIndex uint64
}

func (e ErrCellIndicesNotUnique) Error() string {
	return fmt.Sprintf("cell index %d was found more than once", e.DuplicateCellIndex)
}

// ErrCellIndexOutOfRange is returned when a cell index is not smaller
// than CellsPerExtBlob.
type ErrCellIndexOutOfRange struct {
	CellIndex uint64
}

func (e ErrCellIndexOutOfRange) Error() string {
	return fmt.Sprintf("cell index %d should be less than %d", e.CellIndex, CellsPerExtBlob)
}

// ErrBlobHasInvalidLength is returned by the byte-slice entry points
// when the blob does not have exactly BytesPerBlob bytes.
type ErrBlobHasInvalidLength struct {
	Length int
}

func (e ErrBlobHasInvalidLength) Error() string {
	return fmt.Sprintf("blob has length %d, expected %d", e.Length, BytesPerBlob)
}

// ErrCellDoesNotContainEnoughBytes is returned by the byte-slice entry
// points when a cell does not have exactly BytesPerCell bytes.
type ErrCellDoesNotContainEnoughBytes struct {
	CellIndex      uint64
	Length         int
	ExpectedLength int
}

func (e ErrCellDoesNotContainEnoughBytes) Error() string {
	return fmt.Sprintf("cell %d has length %d, expected %d", e.CellIndex, e.Length, e.ExpectedLength)
}

// ErrPointHasInvalidLength is returned by the byte-slice entry points
// when a compressed G1 point does not have exactly CompressedG1Size bytes.
type ErrPointHasInvalidLength struct {
	Length int
}

func (e ErrPointHasInvalidLength) Error() string {
	return fmt.Sprintf("point has length %d, expected %d", e.Length, CompressedG1Size)
}

// ErrScalarHasInvalidLength is returned by the byte-slice entry points
// when a serialized scalar does not have exactly SerializedScalarSize bytes.
type ErrScalarHasInvalidLength struct {
	Length int
}

func (e ErrScalarHasInvalidLength) Error() string {
	return fmt.Sprintf("scalar has length %d, expected %d", e.Length, SerializedScalarSize)
}
