package handler

import (
	"errors"
	"io"
	"net/http"

	"docx-recovery/internal/domain"
	apperrors "docx-recovery/pkg/errors"
)

const (
	wordFileField = "wordfile"
	// multipartMemory is how much of a multipart body is kept in memory
	// before the rest spills to temporary files.
	multipartMemory = 32 << 20
	// multipartSlack covers boundaries and part headers on top of the file itself.
	multipartSlack = 1 << 20

	outcomeHeader = "X-Recovery-Outcome"

	noFilesMessage  = "No files were uploaded."
	tooLargeMessage = "File size limit has been reached"
)

// RecoveryHandler accepts .docx uploads and answers with recovered text
type RecoveryHandler struct {
	recoveryService domain.RecoveryService
	maxFileSize     int64
	logger          domain.Logger
}

// NewRecoveryHandler creates a new recovery handler
func NewRecoveryHandler(recoveryService domain.RecoveryService, maxFileSize int64, logger domain.Logger) *RecoveryHandler {
	return &RecoveryHandler{
		recoveryService: recoveryService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// Recover handles POST / with a single multipart file under "wordfile".
//
// Pipeline failures are answered with 200 and a sentinel body, not an error
// status. Existing clients match on those bodies, so this stays as is; the
// outcome is also exposed in the X-Recovery-Outcome header.
func (h *RecoveryHandler) Recover(w http.ResponseWriter, r *http.Request) {
	data, appErr := h.readUpload(w, r)
	if appErr != nil {
		h.logger.Debug("Upload rejected", "reason", appErr.Error())
		writeError(w, appErr)
		return
	}

	result := h.recoveryService.Recover(r.Context(), data)
	h.logger.Info("Recovery finished", "outcome", result.Outcome.String(), "upload_bytes", len(data))

	w.Header().Set(outcomeHeader, result.Outcome.String())
	writeText(w, http.StatusOK, result.Body())
}

func (h *RecoveryHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, *apperrors.AppError) {
	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartSlack)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperrors.NewTooLargeError(tooLargeMessage, err)
		}
		return nil, apperrors.NewValidationError(noFilesMessage, err.Error())
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File[wordFileField]
	switch {
	case len(files) == 0:
		return nil, apperrors.NewValidationError(noFilesMessage)
	case len(files) > 1:
		return nil, apperrors.NewValidationError("", domain.ErrMultipleFiles.Error())
	}

	header := files[0]
	if header.Size == 0 {
		return nil, apperrors.NewValidationError(noFilesMessage, domain.ErrNoFilesUploaded.Error())
	}
	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		return nil, apperrors.NewTooLargeError(tooLargeMessage, nil)
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.NewValidationError(noFilesMessage, err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewValidationError(noFilesMessage, err.Error())
	}
	return data, nil
}
