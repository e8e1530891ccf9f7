package peerdaskzg

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/kzg"
	"github.com/jtraglia/peerdas-kzg/internal/utils"
)

// ScalarsPerBlob is the number of serialized scalars in a blob.
//
// It matches the number of field elements the protocol commits to
// per blob and is not related to any cryptographic assumptions.
const ScalarsPerBlob = 4096

// ScalarsPerCell is the number of serialized scalars in a cell.
const ScalarsPerCell = 64

// CellsPerExtBlob is the number of cells in an extended blob.
//
// The extension doubles the number of evaluations, so this is
// (ScalarsPerBlob * expansionFactor) / ScalarsPerCell.
const CellsPerExtBlob = 128

// expansionFactor is the factor by which a blob is erasure-coded.
const expansionFactor = 2

// scalarsPerExtBlob is the number of evaluations in an extended blob.
const scalarsPerExtBlob = ScalarsPerBlob * expansionFactor

// SerializedScalarSize is the number of bytes needed to represent a
// field element corresponding to the order of the G1 group.
const SerializedScalarSize = fr.Bytes

// CompressedG1Size is the number of bytes needed to represent a group
// element in G1 when compressed.
const CompressedG1Size = 48

// BytesPerBlob is the total byte size of a blob.
const BytesPerBlob = ScalarsPerBlob * SerializedScalarSize

// BytesPerCell is the total byte size of a cell.
const BytesPerCell = ScalarsPerCell * SerializedScalarSize

type (
	// G1Point is a zcash-format compressed G1 group element.
	G1Point = [CompressedG1Size]byte

	// Scalar is a serialized field element in big-endian format.
	Scalar = [SerializedScalarSize]byte

	// Blob is a flattened representation of a serialized polynomial in
	// evaluation form. The evaluations follow the bit-reversed ordering
	// of the consensus-specs.
	Blob = [BytesPerBlob]byte

	// Cell is a flattened representation of one coset of evaluations of
	// the extended blob.
	Cell = [BytesPerCell]byte

	// KZGProof is a commitment to the quotient polynomial of an opening.
	KZGProof = G1Point

	// KZGCommitment is a commitment to the blob polynomial.
	KZGCommitment = G1Point
)

// BlsModulus is the big-endian serialization of the modulus of the
// scalar field of bls12-381.
var BlsModulus = [32]byte{
	0x73, 0xed, 0xa7, 0x53, 0x29, 0x9d, 0x7d, 0x48,
	0x33, 0x39, 0xd8, 0x08, 0x09, 0xa1, 0xd8, 0x05,
	0x53, 0xbd, 0xa4, 0x02, 0xff, 0xfe, 0x5b, 0xfe,
	0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x01,
}

// PointAtInfinity is the compressed serialization of the G1 identity.
var PointAtInfinity = [48]byte{0xc0}

func SerializeG1Point(affine bls12381.G1Affine) G1Point {
	return affine.Bytes()
}

func deserializeG1Point(serPoint G1Point) (bls12381.G1Affine, error) {
	var point bls12381.G1Affine

	// This also does a subgroup check
	_, err := point.SetBytes(serPoint[:])
	if err != nil {
		return bls12381.G1Affine{}, err
	}

	return point, nil
}

// DeserializeKZGProof deserializes a KZG proof.
func DeserializeKZGProof(proof KZGProof) (bls12381.G1Affine, error) {
	return deserializeG1Point(G1Point(proof))
}

// DeserializeKZGCommitment deserializes a KZG commitment.
func DeserializeKZGCommitment(commitment KZGCommitment) (bls12381.G1Affine, error) {
	return deserializeG1Point(G1Point(commitment))
}

// DeserializeBlob deserializes a blob into a polynomial in
// evaluation form.
func DeserializeBlob(blob *Blob) (kzg.Polynomial, error) {
	poly := make(kzg.Polynomial, ScalarsPerBlob)

	for i, j := 0, 0; i < BytesPerBlob; i, j = i+SerializedScalarSize, j+1 {
		chunk := blob[i : i+SerializedScalarSize]
		serScalar := (*Scalar)(chunk)

		scalar, err := DeserializeScalar(*serScalar)
		if err != nil {
			return nil, err
		}
		poly[j] = scalar
	}

	return poly, nil
}

// DeserializeCell deserializes a cell into the evaluations it holds.
func DeserializeCell(cell *Cell) ([]fr.Element, error) {
	evals := make([]fr.Element, ScalarsPerCell)

	for i, j := 0, 0; i < BytesPerCell; i, j = i+SerializedScalarSize, j+1 {
		chunk := cell[i : i+SerializedScalarSize]
		serScalar := (*Scalar)(chunk)

		scalar, err := DeserializeScalar(*serScalar)
		if err != nil {
			return nil, err
		}
		evals[j] = scalar
	}

	return evals, nil
}

// DeserializeScalar deserializes a field element in big-endian format.
//
// Returns an error if the scalar is not canonical, ie if the big
// integer interpretation is not less than the field modulus.
func DeserializeScalar(serScalar Scalar) (fr.Element, error) {
	scalar, err := utils.ReduceCanonicalBigEndian(serScalar[:])
	if err != nil {
		return fr.Element{}, ErrNonCanonicalScalar
	}

	return scalar, nil
}

// SerializeScalar serializes a field element in big-endian format.
func SerializeScalar(element fr.Element) Scalar {
	return element.Bytes()
}

// SerializePoly serializes a polynomial in evaluation form into a blob.
//
// This method is never used in the API because we always expect a byte
// array and will never receive deserialized field elements. We include
// it so that upstream fuzzers do not need to reimplement it.
func SerializePoly(poly kzg.Polynomial) *Blob {
	var blob Blob
	for i, j := 0, 0; j < len(poly); i, j = i+SerializedScalarSize, j+1 {
		serScalar := SerializeScalar(poly[j])
		copy(blob[i:i+SerializedScalarSize], serScalar[:])
	}

	return &blob
}

// serializeEvaluations serializes one coset of evaluations into a cell.
func serializeEvaluations(evals []fr.Element) *Cell {
	var cell Cell
	for i, j := 0, 0; j < len(evals); i, j = i+SerializedScalarSize, j+1 {
		serScalar := SerializeScalar(evals[j])
		copy(cell[i:i+SerializedScalarSize], serScalar[:])
	}

	return &cell
}
