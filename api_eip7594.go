package peerdaskzg

import (
	"errors"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/kzg"
	kzgmulti "github.com/jtraglia/peerdas-kzg/internal/kzg_multi"
	"golang.org/x/sync/errgroup"
)

// ComputeCells computes the cells of the extended blob without
// computing opening proofs for them.
func (ctx *Context) ComputeCells(blob *Blob, numGoRoutines int) ([CellsPerExtBlob]*Cell, error) {
	polyCoeff, err := ctx.blobToPolyCoeff(blob)
	if err != nil {
		return [CellsPerExtBlob]*Cell{}, err
	}

	cosetEvals := ctx.fk20.ComputeExtendedPolynomial(polyCoeff)

	return serializeCells(cosetEvals)
}

// ComputeCellsAndKZGProofs computes the cells of the extended blob
// along with an opening proof for each cell.
//
// [compute_cells_and_kzg_proofs](https://github.com/ethereum/consensus-specs/blob/dev/specs/fulu/polynomial-commitments-sampling.md#compute_cells_and_kzg_proofs)
func (ctx *Context) ComputeCellsAndKZGProofs(blob *Blob, numGoRoutines int) ([CellsPerExtBlob]*Cell, [CellsPerExtBlob]KZGProof, error) {
	polyCoeff, err := ctx.blobToPolyCoeff(blob)
	if err != nil {
		return [CellsPerExtBlob]*Cell{}, [CellsPerExtBlob]KZGProof{}, err
	}

	return ctx.computeCellsAndKZGProofsFromPolyCoeff(polyCoeff)
}

func (ctx *Context) computeCellsAndKZGProofsFromPolyCoeff(polyCoeff []fr.Element) ([CellsPerExtBlob]*Cell, [CellsPerExtBlob]KZGProof, error) {
	proofs, cosetEvals, err := kzgmulti.ComputeMultiPointKZGProofs(ctx.fk20, polyCoeff)
	if err != nil {
		return [CellsPerExtBlob]*Cell{}, [CellsPerExtBlob]KZGProof{}, err
	}

	cells, err := serializeCells(cosetEvals)
	if err != nil {
		return [CellsPerExtBlob]*Cell{}, [CellsPerExtBlob]KZGProof{}, err
	}

	var serProofs [CellsPerExtBlob]KZGProof
	for i, proof := range proofs {
		serProofs[i] = SerializeG1Point(proof)
	}

	return cells, serProofs, nil
}

func serializeCells(cosetEvals [][]fr.Element) ([CellsPerExtBlob]*Cell, error) {
	if len(cosetEvals) != CellsPerExtBlob {
		return [CellsPerExtBlob]*Cell{}, errors.New("expected one coset of evaluations per cell of the extended blob")
	}

	var cells [CellsPerExtBlob]*Cell
	for i, cosetEval := range cosetEvals {
		cells[i] = serializeEvaluations(cosetEval)
	}

	return cells, nil
}

// VerifyCellKZGProof verifies that a cell belongs to the blob committed
// to by `commitment`. It is a batch of one; see VerifyCellKZGProofBatch
// for the meaning of the return values.
func (ctx *Context) VerifyCellKZGProof(commitment KZGCommitment, cellIndex uint64, cell *Cell, proof KZGProof) (bool, error) {
	return ctx.VerifyCellKZGProofBatch(
		[]KZGCommitment{commitment},
		[]uint64{0},
		[]uint64{cellIndex},
		[]*Cell{cell},
		[]KZGProof{proof},
	)
}

// VerifyCellKZGProofBatch verifies a batch of cell opening proofs.
//
// The cell at position i in `cells` belongs to the blob committed to by
// rowCommitments[rowIndices[i]] and sits at column columnIndices[i] of
// the extended blob.
//
// The boolean return value reports the cryptographic outcome: false
// means that at least one proof in the batch did not verify. A non-nil
// error means that the inputs were malformed and nothing was verified.
//
// [verify_cell_kzg_proof_batch](https://github.com/ethereum/consensus-specs/blob/dev/specs/fulu/polynomial-commitments-sampling.md#verify_cell_kzg_proof_batch)
func (ctx *Context) VerifyCellKZGProofBatch(rowCommitments []KZGCommitment, rowIndices, columnIndices []uint64, cells []*Cell, proofs []KZGProof) (bool, error) {
	// 1. Check that all of the collections have the same size
	batchSize := len(rowIndices)
	lengthsAreEqual := batchSize == len(columnIndices) && batchSize == len(cells) && batchSize == len(proofs)
	if !lengthsAreEqual {
		return false, ErrBatchVerificationInputsMustHaveSameLength{
			RowCommitmentsLength: len(rowCommitments),
			RowIndicesLength:     len(rowIndices),
			ColumnIndicesLength:  len(columnIndices),
			CellsLength:          len(cells),
			ProofsLength:         len(proofs),
		}
	}

	// An empty batch is valid
	if batchSize == 0 {
		return true, nil
	}

	// 2. Check that the indices are within range
	for _, rowIndex := range rowIndices {
		if rowIndex >= uint64(len(rowCommitments)) {
			return false, ErrInvalidRowIndex
		}
	}
	for _, columnIndex := range columnIndices {
		if columnIndex >= CellsPerExtBlob {
			return false, ErrInvalidCellID
		}
	}

	// 3. Deserialize the proofs and commitments on separate go-routines.
	// The deserialization does a subgroup check, which is the expensive
	// part of the batch after the pairing.
	commitmentsG1 := make([]bls12381.G1Affine, len(rowCommitments))
	proofsG1 := make([]bls12381.G1Affine, batchSize)
	cosetEvals := make([][]fr.Element, batchSize)

	var errG errgroup.Group
	for i := range rowCommitments {
		_i := i
		errG.Go(func() error {
			commitment, err := DeserializeKZGCommitment(rowCommitments[_i])
			if err != nil {
				return err
			}
			commitmentsG1[_i] = commitment
			return nil
		})
	}
	for i := 0; i < batchSize; i++ {
		_i := i
		errG.Go(func() error {
			proof, err := DeserializeKZGProof(proofs[_i])
			if err != nil {
				return err
			}
			proofsG1[_i] = proof

			cosetEval, err := DeserializeCell(cells[_i])
			if err != nil {
				return err
			}
			cosetEvals[_i] = cosetEval
			return nil
		})
	}
	if err := errG.Wait(); err != nil {
		return false, err
	}

	// 4. Verify the proofs
	err := kzgmulti.VerifyMultiPointKZGProofBatch(commitmentsG1, rowIndices, columnIndices, proofsG1, cosetEvals, ctx.openKey7594)
	if err != nil {
		if errors.Is(err, kzg.ErrVerifyOpeningProof) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
