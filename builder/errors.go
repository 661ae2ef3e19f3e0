// SPDX-License-Identifier: MIT
// Package: netsig/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context (pair/point index) using %w.

package builder

import (
	"errors"
	"fmt"
)

// ErrEmptyNodeID indicates a transition with an empty source or target.
// Errors carrying it also wrap core.ErrEmptyNodeID and name the offending pair or point index.
var ErrEmptyNodeID = errors.New("builder: empty node identifier")

// ErrBadResolution indicates a binning resolution that is not strictly positive
// (or not finite).
var ErrBadResolution = errors.New("builder: binning resolution must be positive")

// ErrBadCoordinate indicates a NaN or infinite coordinate in a trajectory point.
var ErrBadCoordinate = errors.New("builder: coordinate is not finite")

// wrapf attaches method context to err while keeping errors.Is working.
func wrapf(method string, err error) error {
	return fmt.Errorf("builder.%s: %w", method, err)
}
