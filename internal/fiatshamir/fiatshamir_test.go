package fiatshamir

import (
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/require"
)

// This is both an interop test and a regression check
// If the way ComputeChallenge is computed is updated
// then this test will fail
func TestComputeChallengeInterop(t *testing.T) {
	blob := make([]byte, 4096*32)
	var infinity bls12381.G1Affine
	commitment := infinity.Bytes()
	challenge := ComputeChallenge(4096, blob, commitment[:])
	expected := []byte{
		74, 224, 7, 172, 45, 248, 194, 77,
		97, 121, 60, 237, 58, 204, 104, 56,
		229, 102, 90, 193, 10, 125, 209, 176,
		95, 242, 22, 178, 79, 233, 127, 59,
	}
	got := challenge.Bytes()
	require.Equal(t, expected, got[:])
}

func TestTo16Bytes(t *testing.T) {
	number := uint64(4096)
	// Generated using the following python snippet:
	// FIELD_ELEMENTS_PER_BLOB = 4096
	// degree_poly = int.to_bytes(FIELD_ELEMENTS_PER_BLOB, 16, 'little')
	// " ".join(format(x, "d") for x in degree_poly)
	expected := []byte{0, 16, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	got := u64ToByteArray16(number)
	require.Equal(t, expected, got)
}
