package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := NewRejectedError("sanitizer rejected input", "ERROR")
	if err.Error() != "rejected: sanitizer rejected input (ERROR)" {
		t.Fatalf("unexpected message: %s", err.Error())
	}

	cause := fmt.Errorf("connection refused")
	netErr := NewNetworkError("sanitizer unreachable", cause)
	if netErr.Error() != "network: sanitizer unreachable: connection refused" {
		t.Fatalf("unexpected message: %s", netErr.Error())
	}
}

func TestIsType_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("recover: %w", NewNotFoundError("entry missing"))

	if !IsType(wrapped, ErrorTypeNotFound) {
		t.Fatalf("expected wrapped error to match %s", ErrorTypeNotFound)
	}
	if IsType(wrapped, ErrorTypeNetwork) {
		t.Fatalf("expected wrapped error not to match %s", ErrorTypeNetwork)
	}
	if IsType(fmt.Errorf("plain"), ErrorTypeNotFound) {
		t.Fatalf("expected plain error not to match")
	}
}

func TestGetStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewValidationError("No files were uploaded."), http.StatusBadRequest},
		{NewTooLargeError("too big", nil), http.StatusRequestEntityTooLarge},
		{fmt.Errorf("wrapped: %w", NewInternalError("boom", nil)), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := GetStatusCode(tt.err); got != tt.want {
			t.Fatalf("GetStatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
