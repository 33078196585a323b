package regex

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedPattern is returned when a pattern does not reduce to a
	// single tree.
	ErrMalformedPattern = errors.New("malformed pattern")
	// ErrUndefinedReference is returned in strict mode for an identifier
	// that names no definition.
	ErrUndefinedReference = errors.New("undefined reference")
	// ErrCyclicDefinition is returned when definitions reference each
	// other in a loop.
	ErrCyclicDefinition = errors.New("cyclic definition")
)

// PatternError locates a parse failure inside a pattern. Offset counts
// runes.
type PatternError struct {
	Pattern string
	Offset  int
	Msg     string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d in %q", e.Err, e.Msg, e.Offset, e.Pattern)
}

func (e *PatternError) Unwrap() error { return e.Err }

// CycleError names the definitions forming a reference loop. The first
// name is repeated at the end of Path.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicDefinition, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicDefinition }
