package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNamingConflict, "id_short %s in use", "p1")

	if err.Code != ErrCodeNamingConflict {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNamingConflict)
	}

	if err.Message != "id_short p1 in use" {
		t.Errorf("Message = %v, want %v", err.Message, "id_short p1 in use")
	}

	expected := "NAMING_CONFLICT: id_short p1 in use"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDecodeFailure, cause, "at submodels[0]")

	if err.Code != ErrCodeDecodeFailure {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDecodeFailure)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeNotFound, "test"),
			code:     ErrCodeNotFound,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNotFound, "test"),
			code:     ErrCodeConflict,
			expected: false,
		},
		{
			name:     "outer code of wrapped error",
			err:      Wrap(ErrCodeDecodeFailure, New(ErrCodeMalformedValue, "inner"), "outer"),
			code:     ErrCodeDecodeFailure,
			expected: true,
		},
		{
			name:     "inner code of wrapped error",
			err:      Wrap(ErrCodeDecodeFailure, New(ErrCodeMalformedValue, "inner"), "outer"),
			code:     ErrCodeMalformedValue,
			expected: true,
		},
		{
			name:     "through fmt wrapping",
			err:      fmt.Errorf("node p1: %w", New(ErrCodeNamingConflict, "clash")),
			code:     ErrCodeNamingConflict,
			expected: true,
		},
		{
			name:     "unexpected type error",
			err:      &UnexpectedTypeError{Expected: "Property", Actual: "Range"},
			code:     ErrCodeUnexpectedType,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDuplicate, "test"),
			expected: ErrCodeDuplicate,
		},
		{
			name:     "outermost wins",
			err:      Wrap(ErrCodeDecodeFailure, New(ErrCodeDuplicate, "inner"), "outer"),
			expected: ErrCodeDecodeFailure,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUnexpectedTypeError(t *testing.T) {
	found := struct{ name string }{"p1"}
	var err error = fmt.Errorf("resolve: %w", &UnexpectedTypeError{Found: found, Expected: "Range", Actual: "Property"})

	var ute *UnexpectedTypeError
	if !errors.As(err, &ute) {
		t.Fatal("errors.As should find *UnexpectedTypeError")
	}
	if ute.Found != found {
		t.Errorf("Found = %v, want %v", ute.Found, found)
	}
	want := "UNEXPECTED_TYPE: resolved object is a Property, expected Range"
	if ute.Error() != want {
		t.Errorf("Error() = %q, want %q", ute.Error(), want)
	}
	if GetCode(err) != ErrCodeUnexpectedType {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeUnexpectedType)
	}
}
