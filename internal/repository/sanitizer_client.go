package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"docx-recovery/internal/domain"
	apperrors "docx-recovery/pkg/errors"
)

// SanitizerClient implements domain.Sanitizer against the cleanup service HTTP API
type SanitizerClient struct {
	endpoint   string
	httpClient *http.Client
	logger     domain.Logger
}

// sanitizerResponse mirrors the service payload. Fields stay raw so a status of
// the wrong type reads as a rejection rather than a decode failure.
type sanitizerResponse struct {
	String json.RawMessage `json:"string"`
	Status json.RawMessage `json:"status"`
}

// NewSanitizerClient creates a client for the configured cleanup endpoint.
// transport is typically the traced transport from pkg/telemetry.
func NewSanitizerClient(config domain.Config, transport http.RoundTripper, logger domain.Logger) *SanitizerClient {
	return NewSanitizerClientWithHTTP(config.GetSanitizerURL(), &http.Client{
		Timeout:   config.GetSanitizerTimeout(),
		Transport: transport,
	}, logger)
}

// NewSanitizerClientWithHTTP creates a client with a caller-supplied HTTP client
func NewSanitizerClientWithHTTP(endpoint string, httpClient *http.Client, logger domain.Logger) *SanitizerClient {
	return &SanitizerClient{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Sanitize posts the formatted XML and decodes the service answer. A non-OK
// status marker is returned as a result, not as an error. The call is made once.
func (c *SanitizerClient) Sanitize(ctx context.Context, text string) (*domain.SanitizationResult, error) {
	form := url.Values{}
	form.Set("function", domain.SanitizerFunctionStrip)
	form.Set("string", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build sanitizer request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("sanitizer request failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Sanitizer responded", "status_code", resp.StatusCode, "bytes_sent", len(text))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read sanitizer response", err)
	}

	// Unmarshal rejects trailing data after the object.
	var payload *sanitizerResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, malformed(err)
	}
	if payload == nil {
		return nil, malformed(fmt.Errorf("empty JSON document"))
	}

	result := &domain.SanitizationResult{Status: statusMarker(payload.Status)}
	if !result.OK() {
		return result, nil
	}
	if isNull(payload.String) {
		return nil, malformed(fmt.Errorf("missing string field"))
	}
	if err := json.Unmarshal(payload.String, &result.Text); err != nil {
		return nil, malformed(err)
	}
	return result, nil
}

// statusMarker returns the status string, or the raw JSON when it is not a string.
func statusMarker(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func malformed(cause error) error {
	return apperrors.NewProcessingError(
		"failed to decode sanitizer response",
		fmt.Errorf("%w: %v", domain.ErrMalformedResponse, cause),
	)
}
