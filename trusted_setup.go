package peerdaskzg

import (
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// G1CompressedHexStr is a hex string for a compressed G1 point,
// with or without a `0x` prefix.
type G1CompressedHexStr = string

// G2CompressedHexStr is a hex string for a compressed G2 point,
// with or without a `0x` prefix.
type G2CompressedHexStr = string

// JSONTrustedSetup mirrors the JSON format of the trusted setup files
// distributed after the ethereum ceremony.
//
// The G1 points are needed in both monomial and lagrange form. The
// lagrange points could be computed from the monomial ones, however the
// distributed files carry both, which saves a G1 FFT on startup.
type JSONTrustedSetup struct {
	SetupG1Monomial []G1CompressedHexStr `json:"g1_monomial"`
	SetupG1Lagrange []G1CompressedHexStr `json:"g1_lagrange"`
	SetupG2         []G2CompressedHexStr `json:"g2_monomial"`
}

var (
	ErrMonomialLagrangeMismatch = errors.New("lagrange G1 setup and monomial G1 setup should have the same number of elements")
	ErrTrustedSetupG1Size       = errors.New("trusted setup G1 setup should have ScalarsPerBlob elements")
	ErrTrustedSetupG2Size       = errors.New("trusted setup G2 setup should have at least ScalarsPerCell+1 elements")
)

// CheckTrustedSetupIsWellFormed checks the sizes of the trusted setup
// and that every point deserializes to a point on the curve in the
// correct subgroup.
func CheckTrustedSetupIsWellFormed(trustedSetup *JSONTrustedSetup) error {
	if len(trustedSetup.SetupG1Monomial) != ScalarsPerBlob {
		return ErrTrustedSetupG1Size
	}
	if len(trustedSetup.SetupG1Lagrange) != len(trustedSetup.SetupG1Monomial) {
		return ErrMonomialLagrangeMismatch
	}
	if len(trustedSetup.SetupG2) < ScalarsPerCell+1 {
		return ErrTrustedSetupG2Size
	}

	_, _, _, err := parseTrustedSetup(trustedSetup)

	return err
}

func parseTrustedSetup(trustedSetup *JSONTrustedSetup) ([]bls12381.G1Affine, []bls12381.G1Affine, []bls12381.G2Affine, error) {
	setupMonomialG1Points, err := parseG1PointsPar(trustedSetup.SetupG1Monomial)
	if err != nil {
		return nil, nil, nil, err
	}

	setupLagrangeG1Points, err := parseG1PointsPar(trustedSetup.SetupG1Lagrange)
	if err != nil {
		return nil, nil, nil, err
	}

	setupG2Points, err := parseG2PointsPar(trustedSetup.SetupG2)
	if err != nil {
		return nil, nil, nil, err
	}

	return setupMonomialG1Points, setupLagrangeG1Points, setupG2Points, nil
}

func parseG1Point(hexString string) (bls12381.G1Affine, error) {
	byts, err := hex.DecodeString(strings.TrimPrefix(hexString, "0x"))
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	if len(byts) != CompressedG1Size {
		return bls12381.G1Affine{}, ErrPointHasInvalidLength{Length: len(byts)}
	}

	var serPoint G1Point
	copy(serPoint[:], byts)

	return deserializeG1Point(serPoint)
}

func parseG2Point(hexString string) (bls12381.G2Affine, error) {
	byts, err := hex.DecodeString(strings.TrimPrefix(hexString, "0x"))
	if err != nil {
		return bls12381.G2Affine{}, err
	}

	var point bls12381.G2Affine
	_, err = point.SetBytes(byts)
	if err != nil {
		return bls12381.G2Affine{}, err
	}

	return point, nil
}

func parseG1PointsPar(hexStrings []string) ([]bls12381.G1Affine, error) {
	numG1 := len(hexStrings)
	g1Points := make([]bls12381.G1Affine, numG1)
	errs := make([]error, numG1)

	var wg sync.WaitGroup
	wg.Add(numG1)
	for i := 0; i < numG1; i++ {
		go func(_i int) {
			defer wg.Done()
			g1Points[_i], errs[_i] = parseG1Point(hexStrings[_i])
		}(i)
	}
	wg.Wait()

	return g1Points, errors.Join(errs...)
}

func parseG2PointsPar(hexStrings []string) ([]bls12381.G2Affine, error) {
	numG2 := len(hexStrings)
	g2Points := make([]bls12381.G2Affine, numG2)
	errs := make([]error, numG2)

	var wg sync.WaitGroup
	wg.Add(numG2)
	for i := 0; i < numG2; i++ {
		go func(_i int) {
			defer wg.Done()
			g2Points[_i], errs[_i] = parseG2Point(hexStrings[_i])
		}(i)
	}
	wg.Wait()

	return g2Points, errors.Join(errs...)
}
