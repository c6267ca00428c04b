package tabulatedfunction

import "errors"

var (
	// ErrInvalidConfiguration is returned by the Configure family when the
	// sample data cannot form a table for the evaluation method.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrAllocation is returned when table or scratch storage cannot be
	// obtained.
	ErrAllocation = errors.New("allocation failure")
)
