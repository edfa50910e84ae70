package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidParameter, "width must be positive, got %d", -3)

	if err.Code != ErrCodeInvalidParameter {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidParameter)
	}

	expected := "INVALID_PARAMETER: width must be positive, got -3"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeImageDecode, cause, "decoding image")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "IMAGE_DECODE_ERROR: decoding image: unexpected EOF" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeDimensionMismatch, "x"), ErrCodeDimensionMismatch, true},
		{"non-matching code", New(ErrCodeDimensionMismatch, "x"), ErrCodeInvalidPanelKind, false},
		{"fmt wrapped", fmt.Errorf("extract: %w", New(ErrCodeInvalidPanelKind, "x")), ErrCodeInvalidPanelKind, true},
		{"outer code wins", Wrap(ErrCodeUpstreamGeneration, New(ErrCodeImageDecode, "inner"), "outer"), ErrCodeUpstreamGeneration, true},
		{"plain error", errors.New("boom"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidParameter, "bad width")); got != "bad width" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad width")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}

func TestIsClientError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeInvalidParameter, "x"), true},
		{New(ErrCodeImageDecode, "x"), true},
		{New(ErrCodeDimensionMismatch, "x"), true},
		{New(ErrCodeInvalidPanelKind, "x"), true},
		{New(ErrCodeUpstreamGeneration, "x"), false},
		{New(ErrCodeInternal, "x"), false},
		{errors.New("x"), false},
	}
	for _, tt := range tests {
		if got := IsClientError(tt.err); got != tt.want {
			t.Errorf("IsClientError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
