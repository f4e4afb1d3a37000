package pixmatrix

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a text matrix has no non-blank lines or a grid
	// to encode has no pixels.
	ErrEmpty = errors.New("pixmatrix: empty matrix")
	// ErrShape is returned when rows of a text matrix differ in length.
	ErrShape = errors.New("pixmatrix: ragged matrix")
	// ErrSyntax marks a token that is not a decimal integer.
	ErrSyntax = errors.New("invalid integer")
	// ErrRange marks an integer outside [0,255].
	ErrRange = errors.New("value out of range [0,255]")
	// ErrDecode wraps failures to decode an image file.
	ErrDecode = errors.New("pixmatrix: cannot decode image")
	// ErrWrite wraps failures to create or write an output.
	ErrWrite = errors.New("pixmatrix: write failed")
	// ErrUnsupportedFormat is returned when no encoder matches an output path.
	ErrUnsupportedFormat = errors.New("pixmatrix: unsupported image format")
)

// ParseError reports a token that could not be read as a pixel value.
// Line and Column are 1-based; Column counts tokens, not bytes.
type ParseError struct {
	Line   int
	Column int
	Token  string
	Err    error // ErrSyntax or ErrRange
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pixmatrix: line %d, value %d: %q: %v", e.Line, e.Column, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError reports a row whose length differs from the first row.
type ShapeError struct {
	Line int
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("pixmatrix: line %d has %d values, want %d", e.Line, e.Got, e.Want)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }
