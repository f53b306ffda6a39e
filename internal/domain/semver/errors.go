package semver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVersion is the sentinel wrapped by ParseError.
	ErrInvalidVersion = errors.New("invalid semantic version")
	// ErrUnknownLevel is returned by ParseLevel for tokens other than MAJOR, MINOR and PATCH.
	ErrUnknownLevel = errors.New("unknown patch level")
	// ErrComponentOverflow means the component selected for a bump is already math.MaxUint64.
	ErrComponentOverflow = errors.New("version component cannot be incremented")
)

// ParseError is returned when text does not match the semantic version grammar.
type ParseError struct {
	// Input is the text as it was handed to Parse, before trimming.
	Input string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("expected MAJOR.MINOR.PATCH(-PRERELEASE+BUILDMETADATA) — got %s", e.Input)
}

// Unwrap returns ErrInvalidVersion so callers can use errors.Is.
func (e *ParseError) Unwrap() error { return ErrInvalidVersion }
