package domain

import "errors"

// Domain errors
var (
	ErrEntryNotFound     = errors.New("document entry not found")
	ErrEmptyDocument     = errors.New("document entry is empty")
	ErrNoFilesUploaded   = errors.New("no files were uploaded")
	ErrMultipleFiles     = errors.New("multiple files under one field")
	ErrMalformedResponse = errors.New("malformed sanitizer response")
)
