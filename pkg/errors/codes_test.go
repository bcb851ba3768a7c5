package errors

import "testing"

func TestKindForCode(t *testing.T) {
	tests := []struct {
		code         string
		expectedKind Kind
	}{
		{CodeOK, KindNone},

		{CodeInvalidArgument, KindInput},
		{CodeValidation, KindInput},
		{CodeConfigError, KindInput},

		{CodeEntropyUnavailable, KindEntropy},

		{CodeStorageError, KindFilesystem},
		{CodePermissionDenied, KindFilesystem},

		{CodeSerializationError, KindSerialization},

		{CodeInternal, KindInternal},
		{"SOMETHING_ELSE", KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := KindForCode(tt.code); got != tt.expectedKind {
				t.Errorf("KindForCode(%q) = %q, want %q", tt.code, got, tt.expectedKind)
			}
		})
	}
}
