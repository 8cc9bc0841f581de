package uspec

import "errors"

var (
	// ErrConfiguration is returned when a constraint is built from a
	// configuration that violates its own invariants. Construction fails;
	// a misconfiguration is never silently corrected.
	ErrConfiguration = errors.New("invalid constraint configuration")

	// ErrInvalid marks a non-conforming value in Conform results and Check
	// reports.
	ErrInvalid = errors.New("value does not conform")

	// ErrNotImplemented is signaled by operations that are documented but
	// deliberately unsupported, instead of returning a plausible-looking
	// wrong answer.
	ErrNotImplemented = errors.New("not implemented")
)
