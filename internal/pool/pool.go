// Package pool provides type-safe generic wrappers around sync.Pool.
//
// Verification and erasure decoding reuse large scratch buffers across
// calls. This package removes the repetitive type assertions when
// fetching those buffers and surfaces a descriptive error when a pool
// is misconfigured.
package pool

import (
	"fmt"
	"sync"
)

// Get retrieves a value from the pool with type safety.
// Returns an error if:
//   - the pool is nil
//   - the pool returns nil
//   - the pool returns a value of the wrong type
func Get[T any](p *sync.Pool) (T, error) {
	var zero T

	if p == nil {
		return zero, ErrPoolIsNil
	}

	v := p.Get()
	if v == nil {
		return zero, ErrPoolReturnedNil
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: expected %T, got %T",
			ErrPoolWrongType, zero, v)
	}

	return typed, nil
}

// Put returns a value to the pool.
// Silently ignores a nil pool so it is safe to call in a defer.
func Put[T any](p *sync.Pool, v T) {
	if p == nil {
		return
	}
	p.Put(v)
}
