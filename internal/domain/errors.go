package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrMissingInput  = errors.New("missing input")
	ErrService       = errors.New("service error")
	ErrParse         = errors.New("parse error")
	ErrInvalidConfig = errors.New("invalid config")
	ErrMissingKey    = errors.New("missing credential")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	// KindMissingInput marks a required file or directory that is absent.
	// These are fatal: the CLI reports the expected path plus a remedy and
	// exits non-zero.
	KindMissingInput ErrorKind = "missing_input"

	// KindService marks a failed remote counting call. Service errors are
	// propagated and abort the whole run; counts are never zero-filled.
	KindService ErrorKind = "service"

	// KindParse marks a malformed row or file in a diagnostic dump. Parse
	// errors are lenient: the row is skipped and the run continues.
	KindParse ErrorKind = "parse"

	KindInvalidConfig ErrorKind = "invalid_config"
	KindMissingKey    ErrorKind = "missing_credential"
	KindIO            ErrorKind = "io"
	KindInternal      ErrorKind = "internal"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Hint string // Optional: remedy printed for fatal errors
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// HintOf returns the remedy attached to the outermost OpError, if any.
func HintOf(err error) string {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Hint
	}
	return ""
}
