package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"docx-recovery/internal/domain"
	"docx-recovery/pkg/telemetry"
)

func newTestRouter(svc domain.RecoveryService, opts RouterOptions) http.Handler {
	logger := NewMockHandlerLogger()
	if opts.Logger == nil {
		opts.Logger = logger
	}
	if opts.AllowedOrigins == nil {
		opts.AllowedOrigins = []string{"*"}
	}
	return NewRouter(
		NewRecoveryHandler(svc, 50<<20, logger),
		NewSystemHandler("1.4.2"),
		opts,
	)
}

func TestNewRouter_Version(t *testing.T) {
	router := newTestRouter(&mockRecoveryService{}, RouterOptions{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.String() != "1.4.2" {
		t.Fatalf("unexpected response body: %q", rr.Body.String())
	}
}

func TestNewRouter_Status(t *testing.T) {
	router := newTestRouter(&mockRecoveryService{}, RouterOptions{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
}

func TestNewRouter_UploadRoute(t *testing.T) {
	svc := &mockRecoveryService{result: domain.Recovered("text")}
	router := newTestRouter(svc, RouterOptions{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, newUploadRequest(t, []formFile{{"wordfile", "a.docx", []byte("x")}}, nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "text" {
		t.Fatalf("unexpected response: %d %q", rr.Code, rr.Body.String())
	}
}

func TestNewRouter_PanicBecomes500(t *testing.T) {
	svc := &mockRecoveryService{panicMsg: "boom"}
	router := newTestRouter(svc, RouterOptions{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, newUploadRequest(t, []formFile{{"wordfile", "a.docx", []byte("x")}}, nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
}

func TestNewRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter(&mockRecoveryService{}, RouterOptions{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	for k, v := range DefaultSecurityHeaders() {
		if got := rr.Header().Get(k); got != v {
			t.Fatalf("expected header %s=%q, got %q", k, v, got)
		}
	}
}

func TestNewRouter_CORS(t *testing.T) {
	router := newTestRouter(&mockRecoveryService{}, RouterOptions{})

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://client.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive CORS, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set("Origin", "https://client.example")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive CORS on simple request, got %q", got)
	}
}

func TestNewRouter_AccessLogAndRateLimit(t *testing.T) {
	var logBuf bytes.Buffer
	limiter := NewRateLimiter(2, time.Minute, NewMockHandlerLogger())
	limiter.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	router := newTestRouter(&mockRecoveryService{}, RouterOptions{RateLimiter: limiter, AccessLog: &logBuf})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/version", nil))
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status codes: %v", codes)
	}
	// Rejected requests never reach the access log.
	if n := strings.Count(logBuf.String(), "\n"); n != 2 {
		t.Fatalf("expected 2 access log lines, got %d: %s", n, logBuf.String())
	}
}

func TestNewRouter_RateLimitedResponseHasSecurityHeaders(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, NewMockHandlerLogger())
	router := newTestRouter(&mockRecoveryService{}, RouterOptions{RateLimiter: limiter})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rr.Code)
	}
	for k, v := range DefaultSecurityHeaders() {
		if got := rr.Header().Get(k); got != v {
			t.Fatalf("expected header %s=%q on 429, got %q", k, v, got)
		}
	}
}

func TestNewRouter_TracingContinuesIncomingTrace(t *testing.T) {
	tracing := telemetry.New("docx-recovery", "test")
	t.Cleanup(func() { _ = tracing.Shutdown(context.Background()) })

	svc := &mockRecoveryService{result: domain.Recovered("text")}
	router := newTestRouter(svc, RouterOptions{Tracing: tracing})

	req := newUploadRequest(t, []formFile{{"wordfile", "a.docx", []byte("PK")}}, nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if len(svc.spans) != 1 {
		t.Fatalf("expected one recovery call, got %d", len(svc.spans))
	}
	sc := svc.spans[0]
	if !sc.IsValid() || sc.TraceID().String() != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Fatalf("expected recovery to run inside the incoming trace, got %v", sc.TraceID())
	}
	if sc.SpanID().String() == "00f067aa0ba902b7" {
		t.Fatalf("expected a server span, got the remote parent")
	}
}
