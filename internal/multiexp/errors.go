package multiexp

import "errors"

// ErrTooManyGoRoutines is returned when the caller asks for 1024 or more
// goroutines. The underlying gnark-crypto routines reject such
// configurations, we surface the error eagerly instead.
var ErrTooManyGoRoutines = errors.New("requesting more than 1023 go routines to do one multi-exponentiation is not supported")
