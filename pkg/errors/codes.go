package errors

// Error codes for categorizing errors.
const (
	// CodeOK indicates success (not an error).
	CodeOK = "OK"

	// CodeInvalidArgument indicates the caller passed a malformed argument.
	CodeInvalidArgument = "INVALID_ARGUMENT"

	// CodeValidation indicates input validation failed.
	CodeValidation = "VALIDATION_ERROR"

	// CodeConfigError indicates a configuration error.
	CodeConfigError = "CONFIG_ERROR"

	// CodeEntropyUnavailable indicates the OS entropy source could not be read.
	CodeEntropyUnavailable = "ENTROPY_UNAVAILABLE"

	// CodeStorageError indicates a filesystem operation failed.
	CodeStorageError = "STORAGE_ERROR"

	// CodePermissionDenied indicates the filesystem refused access.
	CodePermissionDenied = "PERMISSION_DENIED"

	// CodeSerializationError indicates serialization/deserialization failed.
	CodeSerializationError = "SERIALIZATION_ERROR"

	// CodeInternal indicates internal errors.
	CodeInternal = "INTERNAL"
)

// Kind is the coarse failure class exposed at the generator boundary.
// Every run stops at the first error; the kind tells the caller why.
type Kind string

const (
	// KindNone is returned for a nil error.
	KindNone Kind = ""

	// KindInput covers malformed group specs, counts, ports and config.
	KindInput Kind = "INPUT"

	// KindEntropy covers failures of the randomness source or key derivation.
	KindEntropy Kind = "ENTROPY"

	// KindFilesystem covers directory creation and file writes.
	KindFilesystem Kind = "FILESYSTEM"

	// KindSerialization covers encoding key records.
	KindSerialization Kind = "SERIALIZATION"

	// KindInternal is everything else.
	KindInternal Kind = "INTERNAL"
)

// KindForCode returns the kind an error code belongs to.
func KindForCode(code string) Kind {
	switch code {
	case CodeOK:
		return KindNone
	case CodeInvalidArgument, CodeValidation, CodeConfigError:
		return KindInput
	case CodeEntropyUnavailable:
		return KindEntropy
	case CodeStorageError, CodePermissionDenied:
		return KindFilesystem
	case CodeSerializationError:
		return KindSerialization
	default:
		return KindInternal
	}
}
