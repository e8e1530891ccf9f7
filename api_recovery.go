package peerdaskzg

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/domain"
	"github.com/jtraglia/peerdas-kzg/internal/erasure_code"
)

// RecoverCells recovers the full set of cells of an extended blob from
// any subset of at least half of them, without computing proofs.
func (ctx *Context) RecoverCells(cellIndices []uint64, cells []*Cell, numGoRoutines int) ([CellsPerExtBlob]*Cell, error) {
	polyCoeff, err := ctx.recoverPolynomialCoeffs(cellIndices, cells)
	if err != nil {
		return [CellsPerExtBlob]*Cell{}, err
	}

	cosetEvals := ctx.fk20.ComputeExtendedPolynomial(polyCoeff)

	return serializeCells(cosetEvals)
}

// RecoverCellsAndComputeKZGProofs recovers the full set of cells of an
// extended blob from any subset of at least half of them, re-deriving
// the opening proofs for all cells.
//
// Cells that do not come from the extension of a single blob are
// rejected whenever more than the minimum number of cells is supplied.
// At exactly the minimum, any set of cells interpolates to some blob,
// so inconsistency is undetectable and recovery succeeds.
//
// [recover_cells_and_kzg_proofs](https://github.com/ethereum/consensus-specs/blob/dev/specs/fulu/polynomial-commitments-sampling.md#recover_cells_and_kzg_proofs)
func (ctx *Context) RecoverCellsAndComputeKZGProofs(cellIndices []uint64, cells []*Cell, numGoRoutines int) ([CellsPerExtBlob]*Cell, [CellsPerExtBlob]KZGProof, error) {
	polyCoeff, err := ctx.recoverPolynomialCoeffs(cellIndices, cells)
	if err != nil {
		return [CellsPerExtBlob]*Cell{}, [CellsPerExtBlob]KZGProof{}, err
	}

	return ctx.computeCellsAndKZGProofsFromPolyCoeff(polyCoeff)
}

// recoverPolynomialCoeffs validates the supplied cells and recovers the
// coefficients of the blob polynomial.
func (ctx *Context) recoverPolynomialCoeffs(cellIndices []uint64, cells []*Cell) ([]fr.Element, error) {
	// 1. Check that the number of cell indices matches the number of cells
	if len(cellIndices) != len(cells) {
		return nil, ErrNumCellIndicesNotEqualToNumCells{
			NumCellIndices: len(cellIndices),
			NumCells:       len(cells),
		}
	}

	// 2. Check that we do not have too many cells
	if len(cells) > CellsPerExtBlob {
		return nil, ErrTooManyCellsReceived{
			NumCellsReceived: len(cells),
			MaxNumCells:      CellsPerExtBlob,
		}
	}

	// 3. Check that we have enough cells to reconstruct the blob
	if len(cells) < ctx.dataRecovery.NumBlocksNeededToReconstruct() {
		return nil, ErrNotEnoughCellsToReconstruct{
			NumCellsReceived: len(cells),
			NumCellsNeeded:   ctx.dataRecovery.NumBlocksNeededToReconstruct(),
		}
	}

	// 4. Check that the cell indices are unique
	cellIndexSet := make(map[uint64]struct{}, len(cellIndices))
	for _, cellIndex := range cellIndices {
		if _, ok := cellIndexSet[cellIndex]; ok {
			return nil, ErrCellIndicesNotUnique{DuplicateCellIndex: cellIndex}
		}
		cellIndexSet[cellIndex] = struct{}{}
	}

	// 5. Check that the cell indices are within range
	for _, cellIndex := range cellIndices {
		if cellIndex >= CellsPerExtBlob {
			return nil, ErrCellIndexOutOfRange{CellIndex: cellIndex}
		}
	}

	// Place the evaluations of each supplied cell into the extended
	// blob. The extended blob stores evaluations in bit-reversed order,
	// with missing evaluations left as zero.
	extendedBlobEvals := make([]fr.Element, scalarsPerExtBlob)
	for i, cellIndex := range cellIndices {
		cosetEval, err := DeserializeCell(cells[i])
		if err != nil {
			return nil, err
		}
		copy(extendedBlobEvals[cellIndex*ScalarsPerCell:(cellIndex+1)*ScalarsPerCell], cosetEval)
	}

	// Undo the bit-reversal, so the evaluations are laid out over the
	// extended domain in natural order.
	domain.BitReverse(extendedBlobEvals)

	// In natural order, the evaluations of a cell form a stride class
	// of the extended domain. A cell with index `k` covers the class
	// whose index is the bit-reversal of `k`.
	missingIndices := make([]erasure_code.BlockErasureIndex, 0, CellsPerExtBlob)
	for cellIndex := uint64(0); cellIndex < CellsPerExtBlob; cellIndex++ {
		if _, ok := cellIndexSet[cellIndex]; !ok {
			missingIndices = append(missingIndices, domain.BitReverseInt(cellIndex, CellsPerExtBlob))
		}
	}

	polyCoeff, err := ctx.dataRecovery.RecoverPolynomialCoefficients(extendedBlobEvals, missingIndices)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRecoveryFailure, err)
	}

	return polyCoeff, nil
}
