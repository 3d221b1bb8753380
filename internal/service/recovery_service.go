package service

import (
	"context"
	"fmt"

	"docx-recovery/internal/domain"
	apperrors "docx-recovery/pkg/errors"
)

// RecoveryService implements domain.RecoveryService
type RecoveryService struct {
	extractor domain.ArchiveExtractor
	formatter domain.XMLFormatter
	sanitizer domain.Sanitizer
	logger    domain.Logger
}

// NewRecoveryService creates a new recovery pipeline
func NewRecoveryService(
	extractor domain.ArchiveExtractor,
	formatter domain.XMLFormatter,
	sanitizer domain.Sanitizer,
	logger domain.Logger,
) *RecoveryService {
	return &RecoveryService{
		extractor: extractor,
		formatter: formatter,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// Recover extracts, formats, sanitizes and cleans the document body of an
// uploaded archive. It never returns an error: failures map to outcomes.
func (s *RecoveryService) Recover(ctx context.Context, data []byte) (result domain.RecoveryResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Something went wrong", fmt.Errorf("panic during recovery: %v", r))
			result = domain.Failure(domain.OutcomeFailed)
		}
	}()

	text, err := s.run(ctx, data)
	switch {
	case err == nil:
		return domain.Recovered(text)
	case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
		s.logger.Debug("Document entry not found", "reason", err.Error())
		return domain.Failure(domain.OutcomeNotFound)
	case apperrors.IsType(err, apperrors.ErrorTypeRejected):
		s.logger.Debug("Sanitizer rejected document", "reason", err.Error())
		return domain.Failure(domain.OutcomeServiceRejected)
	default:
		s.logger.Error("Something went wrong", err)
		return domain.Failure(domain.OutcomeFailed)
	}
}

func (s *RecoveryService) run(ctx context.Context, data []byte) (string, error) {
	text, found, err := s.extractor.Extract(data)
	if err != nil {
		return "", apperrors.NewProcessingError("failed to read archive", err)
	}
	if !found {
		return "", notFound(domain.ErrEntryNotFound)
	}
	// An entry that exists but is empty is reported the same way as a missing one.
	if text == "" {
		return "", notFound(domain.ErrEmptyDocument)
	}

	formatted, err := s.formatter.Format(text)
	if err != nil {
		return "", apperrors.NewProcessingError("failed to format document xml", err)
	}

	res, err := s.sanitizer.Sanitize(ctx, formatted)
	if err != nil {
		return "", err
	}
	if !res.OK() {
		status := ""
		if res != nil {
			status = res.Status
		}
		return "", apperrors.NewRejectedError("sanitizer rejected document", status)
	}

	return CleanRecoveredText(res.Text), nil
}

func notFound(cause error) error {
	err := apperrors.NewNotFoundError(domain.DocumentEntryPath)
	err.Cause = cause
	return err
}
