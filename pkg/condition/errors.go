package condition

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax is matched by every *SyntaxError.
	ErrSyntax = errors.New("condition syntax error")
	// ErrUndefinedReference is matched by every *UndefinedReferenceError.
	ErrUndefinedReference = errors.New("undefined reference in condition")
)

// SyntaxError reports a condition that does not parse.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("condition %q: offset %d: %s", e.Input, e.Pos, e.Msg)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// UndefinedReferenceError reports identifiers that did not resolve during
// Bind. Names are listed in source order without duplicates.
type UndefinedReferenceError struct {
	Condition string
	Names     []string
	Cause     error // first resolver error, if any
}

func (e *UndefinedReferenceError) Error() string {
	noun := "identifier"
	if len(e.Names) > 1 {
		noun = "identifiers"
	}
	return fmt.Sprintf("condition %q: undefined %s %s", e.Condition, noun, strings.Join(e.Names, ", "))
}

func (e *UndefinedReferenceError) Is(target error) bool { return target == ErrUndefinedReference }

func (e *UndefinedReferenceError) Unwrap() error { return e.Cause }
