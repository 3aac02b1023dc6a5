// Package rverr defines the error type returned by every construction-time
// failure in this module: overlapping memory windows, duplicate CSR
// providers, malformed ROM images, and similar build-before-first-tick
// problems (spec.md §7, "Construction errors").
//
// Runtime problems (invalid instruction, invalid CSR access, bus
// addresses outside the map) are never reported through this type -
// those are logged diagnostics, not errors, per spec.md §7's
// "never halts on runtime errors; it reports and continues" policy.
package rverr

import "fmt"

// BuildError reports a construction-time failure: the component that
// failed to build and why.
type BuildError struct {
	Component string
	Reason    string
	Err       error // optional wrapped cause
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rvsim: %s: %s: %v", e.Component, e.Reason, e.Err)
	}
	return fmt.Sprintf("rvsim: %s: %s", e.Component, e.Reason)
}

func (e *BuildError) Unwrap() error { return e.Err }

// New builds a BuildError with no wrapped cause.
func New(component, reason string) *BuildError {
	return &BuildError{Component: component, Reason: reason}
}

// Wrap builds a BuildError wrapping an underlying error.
func Wrap(component, reason string, err error) *BuildError {
	return &BuildError{Component: component, Reason: reason, Err: err}
}
