package extractor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/paperdesk/research-backend/internal/entity"
)

func TestExtract_EmptyInput(t *testing.T) {
	_, err := Extract(bytes.NewReader(nil), 0)

	var extErr *entity.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestExtract_CorruptHeader(t *testing.T) {
	data := []byte("this is definitely not a pdf document at all")
	_, err := Extract(bytes.NewReader(data), int64(len(data)))

	var extErr *entity.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestExtract_TruncatedPDF(t *testing.T) {
	// Valid magic bytes but no body or xref table.
	data := []byte("%PDF-1.7\n")
	_, err := Extract(bytes.NewReader(data), int64(len(data)))

	var extErr *entity.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}
