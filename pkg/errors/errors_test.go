package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("disk full")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeInvalidArgument, "unit count must be at least 1, got %d", 0),
			"INVALID_ARGUMENT: unit count must be at least 1, got 0"},
		{"wrap", Wrap(ErrCodeInternal, cause, "write %s", "chain.xyz"),
			"INTERNAL_ERROR: write chain.xyz: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write")

	if err.Code != ErrCodeInternal || err.Message != "write" || err.Cause != cause {
		t.Errorf("Wrap = %+v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through errors.Is")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		message  string
		wantCode Code
	}{
		{"coded", New(ErrCodeInvalidFormat, "bad xyz"), ErrCodeInvalidFormat, "bad xyz", ErrCodeInvalidFormat},
		{"outermost wins", Wrap(ErrCodeInternal, New(ErrCodeInvalidArgument, "inner"), "outer"),
			ErrCodeInternal, "outer", ErrCodeInternal},
		{"fmt wrapped", fmt.Errorf("render: %w", New(ErrCodeNumericDomain, "nan")),
			ErrCodeNumericDomain, "nan", ErrCodeNumericDomain},
		{"plain", errors.New("plain"), ErrCodeInvalidArgument, "plain", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode = %q, want %q", got, tt.wantCode)
			}
			if got, want := Is(tt.err, tt.code), tt.wantCode == tt.code; got != want {
				t.Errorf("Is(%s) = %v, want %v", tt.code, got, want)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	if Is(nil, ErrCodeInternal) || GetCode(nil) != "" {
		t.Error("nil error should carry no code")
	}
}

func TestInputCodes(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeInvalidArgument, true},
		{ErrCodeNumericDomain, true},
		{ErrCodeInvalidFormat, true},
		{ErrCodeInvalidStyle, true},
		{ErrCodeInvalidPath, true},
		{ErrCodeFileNotFound, false},
		{ErrCodeInternal, false},
		{ErrCodeUnsupported, false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.code.Input(); got != tt.want {
			t.Errorf("%q.Input() = %v, want %v", tt.code, got, tt.want)
		}
	}

	if !IsInput(fmt.Errorf("parse: %w", New(ErrCodeInvalidFormat, "x"))) {
		t.Error("IsInput should see through fmt wrapping")
	}
	if IsInput(errors.New("plain")) {
		t.Error("plain errors are not input errors")
	}
}
