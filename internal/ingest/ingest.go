// Package ingest resolves classification input sources into plain text.
// The pipeline itself never branches on source format; PDF extraction
// happens here and surfaces decode failures as ingestion errors.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrDecode indicates an unreadable or corrupt source document.
var ErrDecode = errors.New("ingest: unreadable document")

// PDF extracts plain text from a PDF document. A structurally valid PDF
// with no extractable text returns an empty string and no error; the
// caller treats that as a no-clauses-found condition.
func PDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty pdf payload", ErrDecode)
	}

	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if pages == 0 {
		return "", nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: text extraction failed: %v", ErrDecode, err)
	}

	text, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("%w: text extraction failed: %v", ErrDecode, err)
	}

	return string(text), nil
}
