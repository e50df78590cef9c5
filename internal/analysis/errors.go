package analysis

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrTimeout      = errors.New("processing took too long")
	ErrExtraction   = errors.New("extraction failed")
)

// ErrorKind categorises terminal failures of one analysis pass
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindTimeout
	KindExtraction
)

// String returns a string representation of the ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindTimeout:
		return "TIMEOUT"
	case KindExtraction:
		return "EXTRACTION_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Error is a terminal failure of one analysis pass. None are retried.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Op)
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the error kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrExtraction:
		return e.Kind == KindExtraction
	}
	return false
}

// UserMessage returns the text shown to the person who submitted the document
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindTimeout:
		return "Processing took too long. Please upload a smaller PDF."
	case KindInvalidInput:
		return fmt.Sprintf("The document could not be accepted: %v", e.Err)
	default:
		return fmt.Sprintf("An error occurred: %v", e.Err)
	}
}

func newError(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
