package service

import (
	"bytes"
	"fmt"
	"io"

	"docx-recovery/internal/domain"

	"github.com/klauspost/compress/zip"
	"golang.org/x/text/encoding/unicode"
)

// ArchiveExtractor reads a single well-known entry out of an in-memory zip container
type ArchiveExtractor struct {
	entryName string
}

// NewArchiveExtractor creates an extractor for the .docx body part
func NewArchiveExtractor() *ArchiveExtractor {
	return NewArchiveExtractorFor(domain.DocumentEntryPath)
}

// NewArchiveExtractorFor creates an extractor for an arbitrary entry name
func NewArchiveExtractorFor(entryName string) *ArchiveExtractor {
	return &ArchiveExtractor{entryName: entryName}
}

// Extract returns the UTF-8 text of the target entry. A missing entry is not an
// error; an unreadable container or entry is.
func (e *ArchiveExtractor) Extract(data []byte) (string, bool, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", false, fmt.Errorf("failed to open archive: %w", err)
	}

	raw, found, err := readZipEntry(zr, e.entryName)
	if err != nil || !found {
		return "", found, err
	}

	// Invalid sequences become U+FFFD rather than failing the decode.
	text, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return "", true, fmt.Errorf("failed to decode %s: %w", e.entryName, err)
	}
	return string(text), true, nil
}

// readZipEntry matches the entry name exactly; the first match wins.
func readZipEntry(zr *zip.Reader, name string) ([]byte, bool, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, true, fmt.Errorf("failed to open %s: %w", name, err)
		}
		defer rc.Close()

		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, true, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return b, true, nil
	}
	return nil, false, nil
}
