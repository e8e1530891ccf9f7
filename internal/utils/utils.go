package utils

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ComputePowers returns the powers x^0, x^1, ..., x^(n-1).
// If n == 0, an empty slice is returned.
func ComputePowers(x fr.Element, n uint) []fr.Element {
	if n == 0 {
		return []fr.Element{}
	}

	powers := make([]fr.Element, n)
	powers[0].SetOne()
	for i := uint(1); i < n; i++ {
		powers[i].Mul(&powers[i-1], &x)
	}

	return powers
}

// IsPowerOfTwo returns true if `value` is a power of two.
// `0` will return false.
func IsPowerOfTwo(value uint64) bool {
	return value > 0 && (value&(value-1) == 0)
}

// Reverse reverses the list in-place.
func Reverse[K interface{}](list []K) {
	last := len(list) - 1
	for i := 0; i < len(list)/2; i++ {
		list[i], list[last-i] = list[last-i], list[i]
	}
}

// ClearAndResize returns a slice of length `size` backed by the input
// slice where possible, with every element set to the zero value.
func ClearAndResize[K interface{}](slice []K, size int) []K {
	if cap(slice) < size {
		return make([]K, size)
	}
	slice = slice[:size]

	var zero K
	for i := range slice {
		slice[i] = zero
	}

	return slice
}

// ReduceCanonicalBigEndian interprets the byte slice as a big-endian
// integer and tries to convert it to a field element.
// Returns an error if the byte slice was not a canonical representation
// of the field element.
// Canonical meaning that the big integer interpretation was less than
// the field's prime. ie it lies within the range [0, p-1] (inclusive)
func ReduceCanonicalBigEndian(serScalar []byte) (fr.Element, error) {
	var scalar fr.Element
	err := scalar.SetBytesCanonical(serScalar)
	return scalar, err
}
