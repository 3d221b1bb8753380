package handler

import (
	"net"
	"net/http"

	apperrors "docx-recovery/pkg/errors"
)

// writeText writes a plain text response
func writeText(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

// writeStatus writes a status code with an empty body
func writeStatus(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}

// writeError writes an application error as its status code and message
func writeError(w http.ResponseWriter, err *apperrors.AppError) {
	status := apperrors.GetStatusCode(err)
	if err.Message == "" {
		writeStatus(w, status)
		return
	}
	writeText(w, status, err.Message)
}

// clientIP returns the address of the directly connected peer.
// Forwarding headers are ignored so callers cannot pick their own rate limit bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
