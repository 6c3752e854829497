// Package errdef defines the error taxonomy shared by every container in
// this module. Errors carry a Code so wrapped errors with extra context
// still compare equal to the sentinels under errors.Is.
package errdef

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeUnknown          Code = "unknown"
	CodeInvalidCapacity  Code = "invalid capacity"
	CodeOutOfMemory      Code = "out of memory"
	CodeEmpty            Code = "empty"
	CodeOutOfRange       Code = "out of range"
	CodeDestructorFailed Code = "destructor failed"
	CodeDestroyed        Code = "destroyed"
	CodeConfig           Code = "config"
	CodeGame             Code = "game"
)

var (
	ErrInvalidCapacity  = &Error{Code: CodeInvalidCapacity}
	ErrOutOfMemory      = &Error{Code: CodeOutOfMemory}
	ErrEmpty            = &Error{Code: CodeEmpty}
	ErrOutOfRange       = &Error{Code: CodeOutOfRange}
	ErrDestructorFailed = &Error{Code: CodeDestructorFailed}
	ErrDestroyed        = &Error{Code: CodeDestroyed}
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error carrying the same code, so
// errors.Is(errdef.New(CodeEmpty, "..."), errdef.ErrEmpty) holds.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// Wrap annotates an existing error with a code and optional message,
// returning nil when the original error is nil.
func Wrap(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := ""
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Code: ensureCode(code), Message: msg, Err: err}
}

// New creates a formatted error with the supplied code.
func New(code Code, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Code: ensureCode(code), Message: msg}
}

// CodeOf extracts the outermost error code from err.
func CodeOf(err error) Code {
	var e *Error
	if stdErrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// Is reports whether err carries the target code anywhere in its chain.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	return stdErrors.Is(err, &Error{Code: code})
}

func ensureCode(code Code) Code {
	if code == "" {
		return CodeUnknown
	}
	return code
}
