package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "docx-recovery/pkg/errors"
)

func TestWriteText(t *testing.T) {
	rr := httptest.NewRecorder()
	writeText(rr, http.StatusTeapot, "nope")

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("expected plain text content type, got %s", ct)
	}
	if rr.Body.String() != "nope" {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestWriteError_EmptyMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, apperrors.NewValidationError(""))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	req.Header.Set("X-Forwarded-For", "198.51.100.1")

	if ip := clientIP(req); ip != "203.0.113.7" {
		t.Fatalf("expected peer address, got %s", ip)
	}

	req.RemoteAddr = "no-port"
	if ip := clientIP(req); ip != "no-port" {
		t.Fatalf("expected raw remote addr, got %s", ip)
	}
}
