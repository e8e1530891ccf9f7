package peerdaskzg

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/jtraglia/peerdas-kzg/internal/fiatshamir"
	"github.com/jtraglia/peerdas-kzg/internal/kzg"
	"golang.org/x/sync/errgroup"
)

// BlobToKZGCommitment commits to a blob.
//
// numGoRoutines is used to configure the amount of concurrency needed.
// Setting it to a negative number or 0 will make it default to the
// number of CPU cores.
//
// [blob_to_kzg_commitment](https://github.com/ethereum/consensus-specs/blob/017a8495f7671f5fff2075a9bfc9238c1a0982f8/specs/deneb/polynomial-commitments.md#blob_to_kzg_commitment)
func (ctx *Context) BlobToKZGCommitment(blob *Blob, numGoRoutines int) (KZGCommitment, error) {
	// 1. Deserialize the Blob into a polynomial
	poly, err := DeserializeBlob(blob)
	if err != nil {
		return KZGCommitment{}, err
	}

	// 2. Commit to the polynomial
	if ctx.fixedBaseMSM != nil {
		commitmentJac := ctx.fixedBaseMSM.MultiScalarMul(poly)
		var commitment bls12381.G1Affine
		commitment.FromJacobian(&commitmentJac)

		return SerializeG1Point(commitment), nil
	}

	commitment, err := ctx.commitKeyLagrange.Commit(poly, numGoRoutines)
	if err != nil {
		return KZGCommitment{}, err
	}

	// 3. Serialize the commitment
	return SerializeG1Point(*commitment), nil
}

// ComputeKZGProof computes a KZG proof that a polynomial, given in its
// blob representation, evaluates to the claimed value at the input
// point. The claimed value is returned alongside the proof.
//
// [compute_kzg_proof](https://github.com/ethereum/consensus-specs/blob/017a8495f7671f5fff2075a9bfc9238c1a0982f8/specs/deneb/polynomial-commitments.md#compute_kzg_proof)
func (ctx *Context) ComputeKZGProof(blob *Blob, inputPointBytes Scalar, numGoRoutines int) (KZGProof, Scalar, error) {
	// 1. Deserialize the Blob into a polynomial
	poly, err := DeserializeBlob(blob)
	if err != nil {
		return KZGProof{}, [32]byte{}, err
	}

	// 2. Deserialize input point
	inputPoint, err := DeserializeScalar(inputPointBytes)
	if err != nil {
		return KZGProof{}, [32]byte{}, err
	}

	// 3. Create opening proof
	openingProof, err := kzg.Open(ctx.domain, poly, inputPoint, ctx.commitKeyLagrange, numGoRoutines)
	if err != nil {
		return KZGProof{}, [32]byte{}, err
	}

	// 4. Serialize the quotient commitment and the claimed value
	kzgProof := SerializeG1Point(openingProof.QuotientCommitment)
	claimedValueBytes := SerializeScalar(openingProof.ClaimedValue)

	return kzgProof, claimedValueBytes, nil
}

// ComputeBlobKZGProof computes a KZG proof that a blob evaluates to the
// expected value at a random evaluation challenge.
//
// Note: This method does not check that the commitment corresponds to
// the blob. The method will still fail if the commitment is not a valid
// commitment to some polynomial.
//
// [compute_blob_kzg_proof](https://github.com/ethereum/consensus-specs/blob/017a8495f7671f5fff2075a9bfc9238c1a0982f8/specs/deneb/polynomial-commitments.md#compute_blob_kzg_proof)
func (ctx *Context) ComputeBlobKZGProof(blob *Blob, blobCommitment KZGCommitment, numGoRoutines int) (KZGProof, error) {
	// 1. Deserialize the Blob into a polynomial
	poly, err := DeserializeBlob(blob)
	if err != nil {
		return KZGProof{}, err
	}

	// 2. Deserialize the commitment, checking that it is a valid point
	_, err = DeserializeKZGCommitment(blobCommitment)
	if err != nil {
		return KZGProof{}, err
	}

	// 3. Compute the Fiat-Shamir challenge
	evaluationChallenge := fiatshamir.ComputeChallenge(ScalarsPerBlob, blob[:], blobCommitment[:])

	// 4. Create opening proof
	openingProof, err := kzg.Open(ctx.domain, poly, evaluationChallenge, ctx.commitKeyLagrange, numGoRoutines)
	if err != nil {
		return KZGProof{}, err
	}

	// 5. Serialize the quotient commitment
	return SerializeG1Point(openingProof.QuotientCommitment), nil
}

// VerifyKZGProof verifies that a polynomial, committed to by
// `blobCommitment`, evaluates to `claimedValueBytes` at
// `inputPointBytes`.
//
// [verify_kzg_proof](https://github.com/ethereum/consensus-specs/blob/017a8495f7671f5fff2075a9bfc9238c1a0982f8/specs/deneb/polynomial-commitments.md#verify_kzg_proof)
func (ctx *Context) VerifyKZGProof(blobCommitment KZGCommitment, inputPointBytes, claimedValueBytes Scalar, kzgProof KZGProof) error {
	// 1. Deserialization
	claimedValue, err := DeserializeScalar(claimedValueBytes)
	if err != nil {
		return err
	}

	inputPoint, err := DeserializeScalar(inputPointBytes)
	if err != nil {
		return err
	}

	polynomialCommitment, err := DeserializeKZGCommitment(blobCommitment)
	if err != nil {
		return err
	}

	quotientCommitment, err := DeserializeKZGProof(kzgProof)
	if err != nil {
		return err
	}

	// 2. Verify opening proof
	proof := kzg.OpeningProof{
		QuotientCommitment: quotientCommitment,
		InputPoint:         inputPoint,
		ClaimedValue:       claimedValue,
	}

	return kzg.Verify(&polynomialCommitment, &proof, ctx.openKey4844)
}

// VerifyBlobKZGProof verifies that a blob and its commitment are
// consistent, using the proof created by ComputeBlobKZGProof.
//
// [verify_blob_kzg_proof](https://github.com/ethereum/consensus-specs/blob/017a8495f7671f5fff2075a9bfc9238c1a0982f8/specs/deneb/polynomial-commitments.md#verify_blob_kzg_proof)
func (ctx *Context) VerifyBlobKZGProof(blob *Blob, blobCommitment KZGCommitment, kzgProof KZGProof) error {
	// 1. Deserialize
	polynomial, err := DeserializeBlob(blob)
	if err != nil {
		return err
	}

	polynomialCommitment, err := DeserializeKZGCommitment(blobCommitment)
	if err != nil {
		return err
	}

	quotientCommitment, err := DeserializeKZGProof(kzgProof)
	if err != nil {
		return err
	}

	// 2. Compute the evaluation challenge
	evaluationChallenge := fiatshamir.ComputeChallenge(ScalarsPerBlob, blob[:], blobCommitment[:])

	// 3. Compute the output point / claimed value
	outputPoint, err := kzg.EvaluateLagrangePolynomial(ctx.domain, polynomial, evaluationChallenge)
	if err != nil {
		return err
	}

	// 4. Verify opening proof
	openingProof := kzg.OpeningProof{
		QuotientCommitment: quotientCommitment,
		InputPoint:         evaluationChallenge,
		ClaimedValue:       *outputPoint,
	}

	return kzg.Verify(&polynomialCommitment, &openingProof, ctx.openKey4844)
}

// VerifyBlobKZGProofBatch verifies multiple blob proofs with a single
// randomized pairing check.
//
// [verify_blob_kzg_proof_batch](https://github.com/ethereum/consensus-specs/blob/017a8495f7671f5fff2075a9bfc9238c1a0982f8/specs/deneb/polynomial-commitments.md#verify_blob_kzg_proof_batch)
func (ctx *Context) VerifyBlobKZGProofBatch(blobs []Blob, polynomialCommitments []KZGCommitment, kzgProofs []KZGProof) error {
	// 1. Check that all components in the batch have the same size
	blobsLen := len(blobs)
	lengthsAreEqual := blobsLen == len(polynomialCommitments) && blobsLen == len(kzgProofs)
	if !lengthsAreEqual {
		return ErrBatchLengthCheck
	}
	batchSize := blobsLen

	// 2. Collect opening proofs
	openingProofs := make([]kzg.OpeningProof, batchSize)
	commitments := make([]bls12381.G1Affine, batchSize)
	for i := 0; i < batchSize; i++ {
		// 2a. Deserialize
		serComm := polynomialCommitments[i]
		polynomialCommitment, err := DeserializeKZGCommitment(serComm)
		if err != nil {
			return err
		}

		quotientCommitment, err := DeserializeKZGProof(kzgProofs[i])
		if err != nil {
			return err
		}

		polynomial, err := DeserializeBlob(&blobs[i])
		if err != nil {
			return err
		}

		// 2b. Compute the evaluation challenge
		evaluationChallenge := fiatshamir.ComputeChallenge(ScalarsPerBlob, blobs[i][:], serComm[:])

		// 2c. Compute the output point / claimed value
		outputPoint, err := kzg.EvaluateLagrangePolynomial(ctx.domain, polynomial, evaluationChallenge)
		if err != nil {
			return err
		}

		// 2d. Append the opening proof to the list
		openingProofs[i] = kzg.OpeningProof{
			QuotientCommitment: quotientCommitment,
			InputPoint:         evaluationChallenge,
			ClaimedValue:       *outputPoint,
		}
		commitments[i] = polynomialCommitment
	}

	// 3. Verify the opening proofs
	return kzg.BatchVerifyMultiPoints(commitments, openingProofs, ctx.openKey4844)
}

// VerifyBlobKZGProofBatchPar is the same as VerifyBlobKZGProofBatch,
// however the blobs in the batch are processed on separate go-routines.
//
// If you are worried about resource starvation on large batches, then
// it is advised to schedule your own go-routines in a more intricate
// way than done below.
func (ctx *Context) VerifyBlobKZGProofBatchPar(blobs []Blob, polynomialCommitments []KZGCommitment, kzgProofs []KZGProof) error {
	// 1. Check that all components in the batch have the same size
	blobsLen := len(blobs)
	lengthsAreEqual := blobsLen == len(polynomialCommitments) && blobsLen == len(kzgProofs)
	if !lengthsAreEqual {
		return ErrBatchLengthCheck
	}

	var errG errgroup.Group

	// 2. Verify each opening proof on its own go-routine
	for i := 0; i < blobsLen; i++ {
		_i := i
		errG.Go(func() error {
			return ctx.VerifyBlobKZGProof(&blobs[_i], polynomialCommitments[_i], kzgProofs[_i])
		})
	}

	// 3. Wait for all go-routines to complete and check if any returned an error
	return errG.Wait()
}

// VerifyKZGProofBatch verifies multiple single-point opening proofs
// with a single randomized pairing check.
func (ctx *Context) VerifyKZGProofBatch(blobCommitments []KZGCommitment, inputPoints, claimedValues []Scalar, kzgProofs []KZGProof) error {
	// 1. Check that all components in the batch have the same size
	batchSize := len(blobCommitments)
	lengthsAreEqual := batchSize == len(inputPoints) && batchSize == len(claimedValues) && batchSize == len(kzgProofs)
	if !lengthsAreEqual {
		return ErrBatchLengthCheck
	}

	// 2. Collect opening proofs
	openingProofs := make([]kzg.OpeningProof, batchSize)
	commitments := make([]bls12381.G1Affine, batchSize)
	for i := 0; i < batchSize; i++ {
		polynomialCommitment, err := DeserializeKZGCommitment(blobCommitments[i])
		if err != nil {
			return err
		}

		quotientCommitment, err := DeserializeKZGProof(kzgProofs[i])
		if err != nil {
			return err
		}

		inputPoint, err := DeserializeScalar(inputPoints[i])
		if err != nil {
			return err
		}

		claimedValue, err := DeserializeScalar(claimedValues[i])
		if err != nil {
			return err
		}

		openingProofs[i] = kzg.OpeningProof{
			QuotientCommitment: quotientCommitment,
			InputPoint:         inputPoint,
			ClaimedValue:       claimedValue,
		}
		commitments[i] = polynomialCommitment
	}

	// 3. Verify the opening proofs
	return kzg.BatchVerifyMultiPoints(commitments, openingProofs, ctx.openKey4844)
}
