package errors

import "errors"

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}

	var validationErr *ValidationError
	return errors.As(err, &validationErr) || errors.Is(err, ErrInvalidInput)
}

// IsEntropy checks if an error came from the randomness source.
func IsEntropy(err error) bool {
	if err == nil {
		return false
	}

	var entropyErr *EntropyError
	return errors.As(err, &entropyErr) || errors.Is(err, ErrEntropyUnavailable)
}

// IsFilesystem checks if an error came from a directory or file operation.
func IsFilesystem(err error) bool {
	if err == nil {
		return false
	}

	var fsErr *FilesystemError
	return errors.As(err, &fsErr)
}

// KindOf classifies an error. Wrapped errors keep the kind of their cause.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return KindForCode(customErr.Code())
	}

	if code := sentinelCode(err); code != "" {
		return KindForCode(code)
	}
	return KindInternal
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	if err == nil {
		return CodeOK
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return customErr.Code()
	}

	if code := sentinelCode(err); code != "" {
		return code
	}
	return CodeInternal
}

// GetErrorMessage extracts a human-readable message from an error.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return customErr.Message()
	}

	return err.Error()
}

// Cause returns the underlying cause of an error.
// It unwraps the error chain until it finds the root cause.
func Cause(err error) error {
	for {
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		underlying := unwrapper.Unwrap()
		if underlying == nil {
			return err
		}
		err = underlying
	}
}

// StackTraceOf returns the stack captured by the outermost typed error in
// the chain, or "" when there is none.
func StackTraceOf(err error) string {
	var st interface{ StackTrace() string }
	if errors.As(err, &st) {
		return st.StackTrace()
	}
	return ""
}
