package validator

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/paperdesk/research-backend/internal/config"
	"github.com/paperdesk/research-backend/internal/entity"
)

func newTestValidator() *Validator {
	return NewUploadValidator(config.IngestConfig{MaxFileSize: 1024})
}

func TestValidateUpload(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		fh      *multipart.FileHeader
		wantErr error
	}{
		{"nil file", nil, entity.ErrMissingField},
		{"wrong extension", &multipart.FileHeader{Filename: "notes.docx", Size: 10}, entity.ErrInvalidExtension},
		{"too large", &multipart.FileHeader{Filename: "paper.pdf", Size: 4096}, entity.ErrFileTooLarge},
		{"ok", &multipart.FileHeader{Filename: "paper.pdf", Size: 512}, nil},
		{"uppercase extension", &multipart.FileHeader{Filename: "PAPER.PDF", Size: 512}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpload(tt.fh)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateURL("https://arxiv.org/pdf/2301.00001.pdf"); err != nil {
		t.Errorf("unexpected error for valid url: %v", err)
	}
	if err := v.ValidateURL(""); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("expected missing field error, got %v", err)
	}
	if err := v.ValidateURL("ftp://example.com/a.pdf"); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Errorf("expected invalid parameter error, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := SanitizeFilename("../some dir/My Paper (final) [v2].pdf")
	want := "My_Paper_final_v2.pdf"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
