package errors

// Process exit codes, one per failure kind.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInput         = 2
	ExitEntropy       = 3
	ExitFilesystem    = 4
	ExitSerialization = 5
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch KindOf(err) {
	case KindNone:
		return ExitOK
	case KindInput:
		return ExitInput
	case KindEntropy:
		return ExitEntropy
	case KindFilesystem:
		return ExitFilesystem
	case KindSerialization:
		return ExitSerialization
	default:
		return ExitFailure
	}
}
