package validator

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/paperdesk/research-backend/internal/config"
	"github.com/paperdesk/research-backend/internal/entity"
)

// Validator validates document uploads
type Validator struct {
	cfg config.IngestConfig
}

func NewUploadValidator(cfg config.IngestConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateUpload checks an uploaded PDF's extension and size.
func (v *Validator) ValidateUpload(fh *multipart.FileHeader) error {
	if fh == nil {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" {
		return fmt.Errorf("%w: %s (only .pdf is supported)", entity.ErrInvalidExtension, ext)
	}

	if fh.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, fh.Filename, fh.Size, v.cfg.MaxFileSize)
	}

	return nil
}

// ValidateURL checks an external document reference.
func (v *Validator) ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: url", entity.ErrMissingField)
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: url must be http(s)", entity.ErrInvalidParameter)
	}

	return nil
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}
