package errors

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Common sentinel errors for quick checks
var (
	// ErrInvalidInput is returned when caller input is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEntropyUnavailable is returned when the OS randomness source fails.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")

	// ErrUnsupportedKeyType is returned when a key scheme has no encoding.
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)

// Error is the base interface for all custom errors in the system.
// It extends the standard error interface with additional context.
type Error interface {
	error
	// Code returns the error code
	Code() string
	// Message returns the human-readable error message
	Message() string
	// Unwrap returns the underlying cause
	Unwrap() error
}

// BaseError provides a foundation for all typed errors.
type BaseError struct {
	code    string
	message string
	cause   error
	stack   []uintptr
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *BaseError) Code() string {
	return e.code
}

// Message returns the error message.
func (e *BaseError) Message() string {
	return e.message
}

// Unwrap returns the underlying cause.
func (e *BaseError) Unwrap() error {
	return e.cause
}

// captureStack captures the current stack trace.
func captureStack(skip int) []uintptr {
	const maxDepth = 32
	stack := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, stack)
	return stack[:n]
}

// StackTrace returns a formatted stack trace string.
func (e *BaseError) StackTrace() string {
	if len(e.stack) == 0 {
		return ""
	}

	var buf strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&buf, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return buf.String()
}

// ValidationError represents an input validation error.
type ValidationError struct {
	*BaseError
	Field string
	Value interface{}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		BaseError: &BaseError{
			code:    CodeValidation,
			message: message,
			stack:   captureStack(1),
		},
		Field: field,
		Value: value,
	}
}

// NewConfigError creates a validation error for a config file or a config
// value that failed to load.
func NewConfigError(field, message string, cause error) *ValidationError {
	return &ValidationError{
		BaseError: &BaseError{
			code:    CodeConfigError,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
		Field: field,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := e.message
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, msg)
	}
	return fmt.Sprintf("validation error: %s", msg)
}

// Is lets errors.Is(err, ErrInvalidInput) match any validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// EntropyError represents a failure to obtain secure randomness or to
// derive key material from it.
type EntropyError struct {
	*BaseError
}

// NewEntropyError creates a new entropy error.
func NewEntropyError(message string, cause error) *EntropyError {
	if message == "" {
		message = "entropy source failure"
	}
	return &EntropyError{
		BaseError: &BaseError{
			code:    CodeEntropyUnavailable,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
	}
}

// Is lets errors.Is(err, ErrEntropyUnavailable) match any entropy error.
func (e *EntropyError) Is(target error) bool {
	return target == ErrEntropyUnavailable
}

// FilesystemError represents a failed directory creation or file write.
type FilesystemError struct {
	*BaseError
	Op   string
	Path string
}

// NewFilesystemError creates a new filesystem error. Permission failures get
// their own code so callers can tell them apart from a full disk.
func NewFilesystemError(op, path string, cause error) *FilesystemError {
	code := CodeStorageError
	if errors.Is(cause, os.ErrPermission) {
		code = CodePermissionDenied
	}
	return &FilesystemError{
		BaseError: &BaseError{
			code:    code,
			message: fmt.Sprintf("%s %s", op, path),
			cause:   cause,
			stack:   captureStack(1),
		},
		Op:   op,
		Path: path,
	}
}

// SerializationError represents a failure to encode a key record.
type SerializationError struct {
	*BaseError
	What string
}

// NewSerializationError creates a new serialization error.
func NewSerializationError(what string, cause error) *SerializationError {
	return &SerializationError{
		BaseError: &BaseError{
			code:    CodeSerializationError,
			message: fmt.Sprintf("failed to encode %s", what),
			cause:   cause,
			stack:   captureStack(1),
		},
		What: what,
	}
}

// InternalError represents an unexpected failure.
type InternalError struct {
	*BaseError
	Operation string
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *InternalError {
	if message == "" {
		message = "internal error"
	}
	return &InternalError{
		BaseError: &BaseError{
			code:    CodeInternal,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
	}
}

// WithOperation sets the operation context.
func (e *InternalError) WithOperation(op string) *InternalError {
	e.Operation = op
	return e
}

// Wrap wraps an error with additional context.
// If the error is already one of our custom types, it preserves the code
// and adds the cause chain. Wrapped sentinels get the code of their kind.
// Anything else becomes an InternalError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var e Error
	if errors.As(err, &e) {
		return &BaseError{
			code:    e.Code(),
			message: message,
			cause:   err,
			stack:   captureStack(1),
		}
	}

	if code := sentinelCode(err); code != "" {
		return &BaseError{
			code:    code,
			message: message,
			cause:   err,
			stack:   captureStack(1),
		}
	}

	return &InternalError{
		BaseError: &BaseError{
			code:    CodeInternal,
			message: message,
			cause:   err,
			stack:   captureStack(1),
		},
	}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

func sentinelCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnsupportedKeyType):
		return CodeInvalidArgument
	case errors.Is(err, ErrEntropyUnavailable):
		return CodeEntropyUnavailable
	default:
		return ""
	}
}
