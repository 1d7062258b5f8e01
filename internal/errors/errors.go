// Package errors provides structured error types for sortvis.
// These errors carry the operation that failed and a coarse category. The
// program maps the category to its exit status: configuration and input
// errors stop it before anything is shown, render and sort errors end a run.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindInput
	KindRender
	KindSort
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration error"
	case KindInput:
		return "input error"
	case KindRender:
		return "render error"
	case KindSort:
		return "sort error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for sortvis.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Config errors
func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindConfig, reason)
}

func UnknownAlgorithm(name string) error {
	return E(Op("sorts.Lookup"), KindConfig, fmt.Sprintf("unknown algorithm %q", name))
}

// Input errors
func InputOpenFailed(path string, err error) error {
	return E(Op("source.Open"), KindInput, fmt.Sprintf("failed to open %s", path), err)
}

func InputMalformed(line int, text string) error {
	return E(Op("source.Read"), KindInput, fmt.Sprintf("line %d: %q is not an unsigned integer", line, text))
}

// Pipeline errors
func SortPanicked(algorithm string, v any) error {
	return E(Op("player.Run"), KindSort, fmt.Sprintf("%s panicked: %v", algorithm, v))
}

func PresentFailed(err error) error {
	return E(Op("render.Present"), KindRender, err)
}
