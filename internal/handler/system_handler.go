package handler

import "net/http"

// SystemHandler serves the version and liveness endpoints
type SystemHandler struct {
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{version: version}
}

// Version returns the configured application version as plain text
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, h.version)
}

// Status answers 200 with an empty body
func (h *SystemHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK)
}
