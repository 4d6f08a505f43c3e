package chat

import (
	"context"

	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/integration/embedding"
	"github.com/paperdesk/research-backend/internal/integration/llm"
)

// EmbeddingFactory resolves the embedding backend for a credential.
type EmbeddingFactory interface {
	ForCredential(cred *entity.Credential) embedding.Provider
}

// LLMFactory resolves the chat backend for a credential.
type LLMFactory interface {
	ForCredential(cred *entity.Credential) llm.Client
}

// CredentialSource looks up a project's stored credential. Absence is
// reported as entity.ErrCredentialNotConfigured.
type CredentialSource interface {
	Get(ctx context.Context, projectID string) (*entity.Credential, error)
}
