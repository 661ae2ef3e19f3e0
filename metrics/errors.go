// SPDX-License-Identifier: MIT
// Package metrics: sentinel error set.
// Every message is prefixed with "metrics: ..."; callers match with errors.Is.

package metrics

import "errors"

var (
	// ErrNilResult indicates that a nil *partition.Result was passed.
	ErrNilResult = errors.New("metrics: partition result is nil")

	// ErrUnknownScheme indicates a scheme name or value outside
	// {NONE, STANDARD, RECURSIVE}.
	ErrUnknownScheme = errors.New("metrics: unknown significance scheme")

	// ErrNodeOutOfRange indicates a core set referencing a node index outside
	// the partitioned graph.
	ErrNodeOutOfRange = errors.New("metrics: core node index out of range")
)
