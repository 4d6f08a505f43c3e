// Package extractor converts a PDF byte stream into plain text plus a page
// count. It is a pure transformation over the stream contents; the caller
// owns the file lifecycle.
package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/paperdesk/research-backend/internal/entity"
)

// Result is the extracted plain text and the number of pages it came from.
type Result struct {
	Text      string
	PageCount int
}

// Extract parses the PDF in r and returns its plain text and page count.
// It fails with *entity.ExtractionError when the stream is empty or not a
// parseable PDF. Pages whose text cannot be decoded are skipped; only a
// document that does not open at all is fatal.
func Extract(r io.ReaderAt, size int64) (*Result, error) {
	if size == 0 {
		return nil, &entity.ExtractionError{Reason: "empty input"}
	}

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, &entity.ExtractionError{Reason: "unreadable or corrupt PDF", Err: err}
	}

	numPages := reader.NumPage()
	var text strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := extractPageText(page)
		if err != nil || pageText == "" {
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return &Result{Text: text.String(), PageCount: numPages}, nil
}

// extractPageText isolates the library call so a panic inside the PDF
// content-stream decoder downgrades to a skipped page.
func extractPageText(page pdf.Page) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page text extraction panicked: %v", rec)
		}
	}()
	return page.GetPlainText(nil)
}
