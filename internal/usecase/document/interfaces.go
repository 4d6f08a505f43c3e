package document

import (
	"context"

	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/integration/embedding"
)

// EmbeddingFactory resolves the embedding backend for a credential; a nil
// credential yields the no-op provider.
type EmbeddingFactory interface {
	ForCredential(cred *entity.Credential) embedding.Provider
}

// CredentialSource looks up a project's stored credential. Absence is
// reported as entity.ErrCredentialNotConfigured.
type CredentialSource interface {
	Get(ctx context.Context, projectID string) (*entity.Credential, error)
}

// FileStore persists uploaded files on disk.
type FileStore interface {
	Save(filename string, data []byte) (string, error)
	Read(location string) ([]byte, error)
	Remove(location string) error
	Owns(location string) bool
}

// Downloader fetches an external document by URL with a size cap.
type Downloader interface {
	Download(ctx context.Context, rawURL string, maxBytes int64) ([]byte, error)
}
