// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/picsort/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "no_timestamp_error",
			code:    errors.ErrNoTimestamp,
			message: "no usable capture time",
			wantStr: "[NO_TIMESTAMP] no usable capture time",
		},
		{
			name:    "corrupt_ledger_error",
			code:    errors.ErrCorruptLedger,
			message: "ledger is not valid JSON",
			wantStr: "[CORRUPT_LEDGER] ledger is not valid JSON",
		},
		{
			name:    "target_exists_error",
			code:    errors.ErrTargetExists,
			message: "target already on disk",
			wantStr: "[TARGET_EXISTS] target already on disk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrAmbiguousDuplicate, "content mismatch for %s", "2024/01_02.jpg")

	want := "content mismatch for 2024/01_02.jpg"
	if err.Message != want {
		t.Errorf("Newf() message = %q, want %q", err.Message, want)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileAccess, "cannot read source")

		if err.Code != errors.ErrFileAccess {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrFileAccess)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[FILE_ACCESS] cannot read source: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrFileAccess, "cannot read source")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrTargetExists, "target occupied").
		WithDetail("target", "2024/06_01_10_00_00__1th_of_June_at_10h_00m.jpg").
		WithDetail("source", "/camera/DSC_0001.jpg")

	if err.Details["target"] != "2024/06_01_10_00_00__1th_of_June_at_10h_00m.jpg" {
		t.Errorf("WithDetail() target = %v", err.Details["target"])
	}

	if err.Details["source"] != "/camera/DSC_0001.jpg" {
		t.Errorf("WithDetail() source = %v", err.Details["source"])
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrLedgerConflict, "error 1")
	err2 := errors.New(errors.ErrLedgerConflict, "error 2")
	err3 := errors.New(errors.ErrCorruptLedger, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with PicsortError")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrNoTimestamp, "no timestamp"),
			code:     errors.ErrNoTimestamp,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrNoTimestamp, "no timestamp"),
			code:     errors.ErrCorruptLedger,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrFileMove, "move failed"),
			code:     errors.ErrFileMove,
			expected: true,
		},
		{
			name:     "non_picsort_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNoTimestamp,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNoTimestamp,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "picsort_error",
			err:      errors.New(errors.ErrTargetExists, "target exists"),
			expected: errors.ErrTargetExists,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	readErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read ledger file")
	ledgerErr := errors.Wrap(readErr, errors.ErrCorruptLedger, "failed to load ledger")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(ledgerErr, errors.ErrCorruptLedger) {
			t.Error("Top level should have ErrCorruptLedger code")
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(ledgerErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}
