package kzgmulti

import "errors"

var (
	ErrMinSRSSize            = errors.New("minimum srs size is 2")
	ErrInvalidPolynomialSize = errors.New("invalid polynomial size (larger than SRS or == 0)")
)
