package xtree

import "fmt"

// ErrDimension is returned by New when the requested dimension is not 2 or 3.
type ErrDimension struct {
	Dim int
}

func (e *ErrDimension) Error() string {
	return fmt.Sprintf("xtree: unsupported dimension %d (must be 2 or 3)", e.Dim)
}

// ErrCapacity is returned by New when the configured grid resolution would
// require more evaluator batch slots than the evaluator is guaranteed to
// support (see Options.GridResolution and MaxGridSamples).
type ErrCapacity struct {
	Dim, Resolution, Needed, Capacity int
}

func (e *ErrCapacity) Error() string {
	return fmt.Sprintf("xtree: grid resolution %d over %d dimensions needs %d evaluator slots, capacity is %d",
		e.Resolution, e.Dim, e.Needed, e.Capacity)
}
