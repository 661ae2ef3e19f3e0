// SPDX-License-Identifier: MIT
// Package: metrics
//
// scheme.go — significance scheme enum shared by metrics and sigclu.

package metrics

import (
	"fmt"
	"strings"
)

// Scheme selects how significance cores are computed and labelled.
type Scheme int

const (
	// SchemeNone skips significance clustering; every node keeps core = 0.
	SchemeNone Scheme = iota
	// SchemeStandard yields one core per module; core is a binary flag.
	SchemeStandard
	// SchemeRecursive yields nested cores; core is the 1-based rank.
	SchemeRecursive
)

// String returns the configuration spelling of s.
func (s Scheme) String() string {
	switch s {
	case SchemeNone:
		return "NONE"
	case SchemeStandard:
		return "STANDARD"
	case SchemeRecursive:
		return "RECURSIVE"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// Valid reports whether s is one of the defined schemes.
func (s Scheme) Valid() bool {
	switch s {
	case SchemeNone, SchemeStandard, SchemeRecursive:
		return true
	default:
		return false
	}
}

// ParseScheme maps a configuration value (case-insensitive, surrounding
// spaces ignored) to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NONE":
		return SchemeNone, nil
	case "STANDARD":
		return SchemeStandard, nil
	case "RECURSIVE":
		return SchemeRecursive, nil
	default:
		return SchemeNone, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(text []byte) error {
	v, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = v

	return nil
}
