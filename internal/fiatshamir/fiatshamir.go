// Package fiatshamir derives the evaluation challenge used when proving
// and verifying blob openings.
package fiatshamir

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/utils"
)

// Domain Separator to identify the protocol
const DomSepProtocol = "FSBLOBVERIFY_V1_"

// ComputeChallenge hashes the blob and its commitment into a field
// element, following the deneb consensus-specs `compute_challenge`.
//
// The challenge binds the degree of the polynomial, so callers pass
// the number of scalars the blob holds.
func ComputeChallenge(polyDegree uint64, blob, commitment []byte) fr.Element {
	polyDegreeBytes := u64ToByteArray16(polyDegree)
	data := append([]byte(DomSepProtocol), polyDegreeBytes...)
	data = append(data, blob...)
	data = append(data, commitment...)

	return hashToBLSField(data)
}

// hashToBLSField reduces the sha256 digest of `data` into a field element,
// following `hash_to_bls_field` in the consensus-specs.
func hashToBLSField(data []byte) fr.Element {
	digest := sha256.Sum256(data)

	// Reverse the digest, so that we reduce the little-endian
	// representation
	utils.Reverse(digest[:])

	// Now interpret those bytes as a field element
	// If gnark had a SetBytesLE method, we would not need to reverse
	// the bytes
	var challenge fr.Element
	challenge.SetBytes(digest[:])

	return challenge
}

// Convert a u64 to a 16 byte slice in little endian format
func u64ToByteArray16(number uint64) []byte {
	bytes := make([]byte, 16)
	binary.LittleEndian.PutUint64(bytes, number)

	return bytes
}
