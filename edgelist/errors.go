package edgelist

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine indicates a record with a wrong field count, an empty
	// node identifier, or a weight that is not a positive integer.
	ErrMalformedLine = errors.New("edgelist: malformed line")

	// ErrDuplicateEdge indicates a (source,target) pair listed twice.
	ErrDuplicateEdge = errors.New("edgelist: duplicate edge")
)

// LineError attaches the 1-based input line to a parse error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("edgelist: line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

func lineErr(line int, sentinel error, format string, args ...any) error {
	return &LineError{Line: line, Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)}
}
