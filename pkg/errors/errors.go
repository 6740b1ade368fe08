// Package errors defines the error taxonomy shared by every pipeline stage and
// maps errors to process exit codes at the entry point.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfig      = errors.New("configuration error")
	ErrInputFormat = errors.New("input format error")
	ErrIO          = errors.New("i/o error")
	ErrNumeric     = errors.New("numeric error")
)

// ErrEmptyCorpus is an input format error: a model needs at least one document.
var ErrEmptyCorpus = fmt.Errorf("%w: empty document universe", ErrInputFormat)

// AppError attaches the stage and the file or key at fault to a sentinel.
type AppError struct {
	Err     error
	Stage   string
	Path    string
	Message string
}

func (e *AppError) Error() string {
	msg := e.Err.Error()
	if e.Stage != "" {
		msg = e.Stage + ": " + msg
	}
	if e.Path != "" {
		msg += " [" + e.Path + "]"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, stage, path, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Stage:   stage,
		Path:    path,
		Message: message,
	}
}

func Newf(sentinel error, stage, path, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Stage:   stage,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap keeps cause in the chain so both the sentinel and the underlying error
// remain reachable through errors.Is.
func Wrap(sentinel error, stage, path string, cause error) *AppError {
	return &AppError{
		Err:   fmt.Errorf("%w: %w", sentinel, cause),
		Stage: stage,
		Path:  path,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ExitCode returns the process exit code for err: 0 for nil, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Kind names the taxonomy bucket of err for logs and metrics labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrConfig):
		return "config"
	case errors.Is(err, ErrInputFormat):
		return "input_format"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrNumeric):
		return "numeric"
	default:
		return "internal"
	}
}
