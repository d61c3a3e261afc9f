package pdf

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed matches any LoadError of kind Malformed
	ErrMalformed = errors.New("malformed PDF")
	// ErrAuthenticationRequired matches any LoadError of kind AuthenticationRequired
	ErrAuthenticationRequired = errors.New("incorrect password or damaged file")
)

// LoadErrorKind distinguishes why Load failed
type LoadErrorKind int

const (
	Malformed LoadErrorKind = iota
	AuthenticationRequired
)

func (k LoadErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case AuthenticationRequired:
		return "authentication required"
	default:
		return "unknown"
	}
}

// LoadError is returned by Load. Callers should treat AuthenticationRequired
// as correctable: ask for the password again.
type LoadError struct {
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to load PDF: %s", e.Kind)
	}
	return fmt.Sprintf("failed to load PDF: %s: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformed) and errors.Is(err,
// ErrAuthenticationRequired) work for any LoadError.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == Malformed
	case ErrAuthenticationRequired:
		return e.Kind == AuthenticationRequired
	}
	return false
}

func malformed(format string, v ...any) error {
	return &LoadError{Kind: Malformed, Err: fmt.Errorf(format, v...)}
}

// IndexError reports a page index outside [0, Count)
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("page index %d out of range [0, %d)", e.Index, e.Count)
}

// EncodingError reports that a document could not be serialized
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode PDF: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
