package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Project errors
	ErrProjectNotFound = errors.New("project not found")

	// Document errors
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Chat errors
	ErrSessionNotFound = errors.New("session not found")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ExtractionError means the input stream is not a parseable PDF. Ingestion
// aborts and no document row is created.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdf extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("pdf extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EmbeddingProviderError wraps a backend failure (auth, quota, malformed
// input). The caller degrades to keyword search instead of retrying.
type EmbeddingProviderError struct {
	Provider Provider
	Err      error
}

func (e *EmbeddingProviderError) Error() string {
	return fmt.Sprintf("embedding provider %s: %v", e.Provider, e.Err)
}

func (e *EmbeddingProviderError) Unwrap() error { return e.Err }

// AnswerGenerationError wraps a chat backend failure. The turn is not
// persisted and nothing is retried.
type AnswerGenerationError struct {
	Provider Provider
	Err      error
}

func (e *AnswerGenerationError) Error() string {
	return fmt.Sprintf("answer generation via %s: %v", e.Provider, e.Err)
}

func (e *AnswerGenerationError) Unwrap() error { return e.Err }

// ConfigurationError is a user setup problem (typically a missing
// credential), distinct from transient backend faults.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// ErrCredentialNotConfigured is returned at query time when the project has
// no stored credential. The message points to settings, not to a retry.
var ErrCredentialNotConfigured = &ConfigurationError{
	Message: "no API credential configured for this project; add one in project settings before querying",
}
