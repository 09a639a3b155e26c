// Package errors provides structured error handling for the engine.
//
// Defects inside the pipeline itself (invalid tree edits, protocol
// violations) are panics, not errors: they indicate bugs and are meant to
// fail loudly. This package covers the boundary with application code,
// chiefly build callbacks and configuration loading, where the engine
// degrades gracefully and reports instead of crashing.
package errors

import (
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindBuild indicates a failure in an application build callback.
	KindBuild
	// KindLayout indicates a failure during the layout phase.
	KindLayout
	// KindPaint indicates a failure during the paint phase.
	KindPaint
	// KindHitTest indicates a failure while routing pointer events.
	KindHitTest
	// KindConfig indicates invalid engine or style configuration.
	KindConfig
	// KindInternal indicates a recovered internal defect.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindBuild:
		return "build"
	case KindLayout:
		return "layout"
	case KindPaint:
		return "paint"
	case KindHitTest:
		return "hittest"
	case KindConfig:
		return "config"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error represents a structured engine error.
type Error struct {
	// Op is the operation that failed (e.g., "core.FlushBuild").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates a structured error with a formatted message.
func Errorf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{
		Op:        op,
		Kind:      kind,
		Err:       fmt.Errorf(format, args...),
		Timestamp: time.Now(),
	}
}

// Wrap wraps an underlying error with operation and kind context. Returns
// nil if err is nil.
func Wrap(op string, kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}
