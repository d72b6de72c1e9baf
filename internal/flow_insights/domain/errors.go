package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn means the uploaded table has no chain column.
	ErrMissingColumn = errors.New("missing flow column")

	// ErrEmptyChain is returned for a chain with no step labels.
	ErrEmptyChain = errors.New("empty chain")

	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrDecodeFailed    = errors.New("could not decode upload")
)

// ProcessingError wraps any failure raised while turning chains into a graph.
// Row is the zero-based chain position, or -1 when not tied to a chain.
type ProcessingError struct {
	Op  string
	Row int
	Err error
}

func (e *ProcessingError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("%s: row %d: %v", e.Op, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// MissingColumn builds the input-shape error for column.
func MissingColumn(column string) error {
	return fmt.Errorf("%w: %q", ErrMissingColumn, column)
}
