package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIs_MatchesByCode(t *testing.T) {
	err := InvalidInput("index %d out of range", 5)
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("errors.Is(InvalidInput, ErrInvalidInput) = false, want true")
	}
	if errors.Is(err, ErrIllegalTransition) {
		t.Error("errors.Is(InvalidInput, ErrIllegalTransition) = true, want false")
	}

	wrapped := fmt.Errorf("navigate: %w", err)
	if !errors.Is(wrapped, ErrInvalidInput) {
		t.Error("wrapped error should still match its code")
	}
}

func TestConvert_UnknownErrorIsInternal(t *testing.T) {
	e := Convert(errors.New("boom"))
	if e.Code != CodeInternal {
		t.Errorf("Code = %q, want %q", e.Code, CodeInternal)
	}
	if e.HTTPStatusCode() != http.StatusInternalServerError {
		t.Errorf("HTTPStatusCode = %d, want 500", e.HTTPStatusCode())
	}
}

func TestHTTPStatusCode(t *testing.T) {
	tests := map[Code]int{
		CodeInvalidInput:      http.StatusBadRequest,
		CodeIllegalTransition: http.StatusConflict,
		CodeGenerationFailed:  http.StatusBadGateway,
		CodeNotFound:          http.StatusNotFound,
		Code("bogus"):         http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := New(code).HTTPStatusCode(); got != want {
			t.Errorf("New(%q).HTTPStatusCode() = %d, want %d", code, got, want)
		}
	}
}

func TestGenerationFailed_KeepsCause(t *testing.T) {
	cause := errors.New("rate limited")
	err := GenerationFailed(cause, "generate %d questions", 10)
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
	if CodeOf(err) != CodeGenerationFailed {
		t.Errorf("CodeOf = %q, want %q", CodeOf(err), CodeGenerationFailed)
	}
}
