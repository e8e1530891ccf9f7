package domain

import (
	"math"
	"math/big"
	"math/bits"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/jtraglia/peerdas-kzg/internal/utils"
)

func TestRootsSmoke(t *testing.T) {
	domain := NewDomain(4)

	roots0 := domain.Roots[0]
	roots1 := domain.Roots[1]
	roots2 := domain.Roots[2]
	roots3 := domain.Roots[3]

	// First root should be 1 : omega^0
	if !roots0.IsOne() {
		t.Error("the first root should be one")
	}

	// Second root should have an order of 4 : omega^1
	var res fr.Element
	res.Exp(roots1, big.NewInt(4))
	if !res.IsOne() {
		t.Error("root does not have an order of 4")
	}

	// Third root should have an order of 2 : omega^2
	res.Exp(roots2, big.NewInt(2))
	if !res.IsOne() {
		t.Error("root does not have an order of 2")
	}

	// Fourth root when multiplied by first root should give 1 : omega^3
	res.Mul(&roots3, &roots1)
	if !res.IsOne() {
		t.Error("root order seems to be incorrect")
	}
}

func TestPrecomputedInverses(t *testing.T) {
	domain := NewDomain(16)

	for i := uint64(0); i < domain.Cardinality; i++ {
		var res fr.Element
		res.Mul(&domain.Roots[i], &domain.PreComputedInverses[i])
		if !res.IsOne() {
			t.Error("precomputed root inverse is incorrect")
		}
	}

	domain.ReverseRoots()

	for i := uint64(0); i < domain.Cardinality; i++ {
		var res fr.Element
		res.Mul(&domain.Roots[i], &domain.PreComputedInverses[i])
		if !res.IsOne() {
			t.Error("roots and inverses should be permuted in the same way")
		}
	}
}

func TestBitReversal(t *testing.T) {
	powInt := func(x, y uint64) uint64 {
		return uint64(math.Pow(float64(x), float64(y)))
	}

	// We only go up to 20 because we don't want a long running test
	for i := uint64(0); i < 20; i++ {
		size := powInt(2, i)

		scalars := randomScalars(size)
		reversed := bitReversalPermutation(scalars)

		BitReverse(scalars)

		for i := uint64(0); i < size; i++ {
			if !scalars[i].Equal(&reversed[i]) {
				t.Error("bit reversal methods are not consistent")
			}
		}
	}
}

// bitReversalPermutation is a reference implementation that returns a
// bit-reversed copy of the input list.
func bitReversalPermutation(l []fr.Element) []fr.Element {
	size := uint64(len(l))
	if !utils.IsPowerOfTwo(size) {
		panic("size of list must be a power of two")
	}

	out := make([]fr.Element, size)

	for i := range l {
		j := bits.Reverse64(uint64(i)) >> (65 - bits.Len64(size))
		out[i] = l[j]
	}

	return out
}

func randomScalars(size uint64) []fr.Element {
	res := make([]fr.Element, size)
	for i := uint64(0); i < size; i++ {
		var tmp fr.Element
		_, err := tmp.SetRandom()
		if err != nil {
			panic(err)
		}
		res[i] = tmp
	}
	return res
}
