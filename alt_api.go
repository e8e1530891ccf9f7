package peerdaskzg

// Alternative entry points that take raw byte slices, so callers that
// hold wire data do not need to convert to the fixed-size array types
// themselves. The length of every input is validated before use.

func toBlob(blob []byte) (*Blob, error) {
	if len(blob) != BytesPerBlob {
		return nil, ErrBlobHasInvalidLength{Length: len(blob)}
	}

	return (*Blob)(blob), nil
}

func toCell(cellIndex uint64, cell []byte) (*Cell, error) {
	if len(cell) != BytesPerCell {
		return nil, ErrCellDoesNotContainEnoughBytes{
			CellIndex:      cellIndex,
			Length:         len(cell),
			ExpectedLength: BytesPerCell,
		}
	}

	return (*Cell)(cell), nil
}

func toG1Point(point []byte) (G1Point, error) {
	if len(point) != CompressedG1Size {
		return G1Point{}, ErrPointHasInvalidLength{Length: len(point)}
	}

	return G1Point(point), nil
}

// BlobToKZGCommitmentBytes is BlobToKZGCommitment for raw byte slices.
func (ctx *Context) BlobToKZGCommitmentBytes(blob []byte, numGoRoutines int) (KZGCommitment, error) {
	typedBlob, err := toBlob(blob)
	if err != nil {
		return KZGCommitment{}, err
	}

	return ctx.BlobToKZGCommitment(typedBlob, numGoRoutines)
}

// VerifyCellKZGProofBytes is VerifyCellKZGProof for raw byte slices.
func (ctx *Context) VerifyCellKZGProofBytes(commitment []byte, cellIndex uint64, cell, proof []byte) (bool, error) {
	typedCommitment, err := toG1Point(commitment)
	if err != nil {
		return false, err
	}

	typedCell, err := toCell(cellIndex, cell)
	if err != nil {
		return false, err
	}

	typedProof, err := toG1Point(proof)
	if err != nil {
		return false, err
	}

	return ctx.VerifyCellKZGProof(typedCommitment, cellIndex, typedCell, typedProof)
}

// RecoverCellsAndComputeKZGProofsBytes is RecoverCellsAndComputeKZGProofs
// for raw byte slices.
func (ctx *Context) RecoverCellsAndComputeKZGProofsBytes(cellIndices []uint64, cells [][]byte, numGoRoutines int) ([CellsPerExtBlob]*Cell, [CellsPerExtBlob]KZGProof, error) {
	if len(cellIndices) != len(cells) {
		return [CellsPerExtBlob]*Cell{}, [CellsPerExtBlob]KZGProof{}, ErrNumCellIndicesNotEqualToNumCells{
			NumCellIndices: len(cellIndices),
			NumCells:       len(cells),
		}
	}

	typedCells := make([]*Cell, len(cells))
	for i, cell := range cells {
		typedCell, err := toCell(cellIndices[i], cell)
		if err != nil {
			return [CellsPerExtBlob]*Cell{}, [CellsPerExtBlob]KZGProof{}, err
		}
		typedCells[i] = typedCell
	}

	return ctx.RecoverCellsAndComputeKZGProofs(cellIndices, typedCells, numGoRoutines)
}
