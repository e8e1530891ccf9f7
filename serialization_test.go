package peerdaskzg_test

import (
	"bytes"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	peerdaskzg "github.com/jtraglia/peerdas-kzg"
	"github.com/jtraglia/peerdas-kzg/internal/kzg"
	"github.com/stretchr/testify/require"
)

func TestG1RoundTripSmoke(t *testing.T) {
	_, _, g1Aff, _ := bls12381.Generators()
	g1Bytes := peerdaskzg.SerializeG1Point(g1Aff)
	aff, err := peerdaskzg.DeserializeKZGProof(peerdaskzg.KZGProof(g1Bytes))
	if err != nil {
		t.Error(err)
	}
	if !aff.Equal(&g1Aff) {
		t.Error("G1 serialization roundtrip fail")
	}
}

func TestSerializePolyNotZero(t *testing.T) {
	// Check that blobs are not all zeroes
	// This would indicate that serialization
	// did not do anything.

	poly := randPoly4096()
	blob := peerdaskzg.SerializePoly(poly)

	var zeroBlob peerdaskzg.Blob
	if bytes.Equal(blob[:], zeroBlob[:]) {
		t.Error("blobs are all zeroes, which can only happen with negligible probability")
	}
}

func TestSerializePolyRoundTrip(t *testing.T) {
	expectedPolyA := randPoly4096()
	expectedPolyB := randPoly4096()

	blobA := peerdaskzg.SerializePoly(expectedPolyA)
	blobB := peerdaskzg.SerializePoly(expectedPolyB)

	gotPolyA, err := peerdaskzg.DeserializeBlob(blobA)
	if err != nil {
		t.Error(err)
	}
	gotPolyB, err := peerdaskzg.DeserializeBlob(blobB)
	if err != nil {
		t.Error(err)
	}
	assertPolyEqual(t, expectedPolyA, gotPolyA)
	assertPolyEqual(t, expectedPolyB, gotPolyB)

	assertPolyNotEqual(t, expectedPolyA, gotPolyB)
}

func TestScalarRoundTrip(t *testing.T) {
	var scalar fr.Element
	_, err := scalar.SetRandom()
	require.NoError(t, err)

	serScalar := peerdaskzg.SerializeScalar(scalar)
	gotScalar, err := peerdaskzg.DeserializeScalar(serScalar)
	require.NoError(t, err)
	require.True(t, gotScalar.Equal(&scalar))
}

// Check element-wise that each evaluation in the polynomial is the same
func assertPolyEqual(t *testing.T, lhs, rhs kzg.Polynomial) {
	t.Helper()
	polyLen := assertPolySameLength(t, lhs, rhs)

	for i := 0; i < polyLen; i++ {
		if !lhs[i].Equal(&rhs[i]) {
			t.Errorf("polynomials differ at index %d, therefore they are not the same", i)
		}
	}
}

// Assert that two polynomials are different -- at least one evaluation differs
func assertPolyNotEqual(t *testing.T, lhs, rhs kzg.Polynomial) {
	t.Helper()
	polyLen := assertPolySameLength(t, lhs, rhs)

	for i := 0; i < polyLen; i++ {
		if !lhs[i].Equal(&rhs[i]) {
			return
		}
	}
	// If we get here then the polynomials were the same at every index
	t.Error("polynomials had the same evaluations and are therefore the same")
}

func assertPolySameLength(t *testing.T, lhs, rhs kzg.Polynomial) int {
	t.Helper()
	// Assert that the polynomials are the same size
	require.Equal(t, len(lhs), len(rhs))
	return len(lhs)
}

func randPoly4096() kzg.Polynomial {
	poly := make(kzg.Polynomial, 4096)
	for i := 0; i < 4096; i++ {
		var eval fr.Element
		_, err := eval.SetRandom()
		if err != nil {
			panic(err)
		}
		poly[i] = eval
	}
	return poly
}
