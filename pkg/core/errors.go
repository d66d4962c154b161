// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates the override variables are only partially set
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound indicates the native library or its headers could not be found
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedPlatform indicates the target triple is outside the supported set
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrCrossCompilation indicates host and target triples differ
	ErrCrossCompilation = errors.New("cross-compilation is not supported")

	// ErrSchemaGeneration indicates the protobuf generator failed
	ErrSchemaGeneration = errors.New("schema generation failed")

	// ErrCompilation indicates the interop shim failed to compile
	ErrCompilation = errors.New("compilation failed")
)

// Reason refines ErrNotFound
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonLibraryMissing Reason = "library"
	ReasonHeadersMissing Reason = "headers"
	ReasonProbeFailed    Reason = "probe"
)

// Error wraps a failure kind with context and a remediation hint
type Error struct {
	Op     string // Operation that failed
	Kind   error  // One of the Err* sentinels
	Reason Reason // Sub-reason for ErrNotFound
	Msg    string // Human readable description
	Hint   string // Remediation
	Err    error  // Underlying error, if any
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Errorf builds an *Error of the given kind
func Errorf(op string, kind error, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WithHint sets the remediation hint and returns the receiver
func (e *Error) WithHint(format string, args ...any) *Error {
	e.Hint = fmt.Sprintf(format, args...)
	return e
}

// WithReason sets the not-found sub-reason and returns the receiver
func (e *Error) WithReason(r Reason) *Error {
	e.Reason = r
	return e
}

// Wrap sets the underlying cause and returns the receiver
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// KindOf returns the sentinel kind of err, or nil if err is not part of the taxonomy
func KindOf(err error) error {
	for _, k := range []error{
		ErrConfiguration,
		ErrNotFound,
		ErrUnsupportedPlatform,
		ErrCrossCompilation,
		ErrSchemaGeneration,
		ErrCompilation,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// ReasonOf returns the not-found sub-reason carried by err
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ReasonNone
}
