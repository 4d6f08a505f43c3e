package chat

import (
	"context"

	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/integration/embedding"
	"github.com/paperdesk/research-backend/internal/integration/llm"
)

type mockProjectRepo struct {
	projects map[string]*entity.Project
}

func (m *mockProjectRepo) Create(_ context.Context, p entity.Project) (*entity.Project, error) {
	return &p, nil
}

func (m *mockProjectRepo) Get(_ context.Context, id string) (*entity.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, entity.ErrProjectNotFound
}

func (m *mockProjectRepo) List(context.Context, int, int) ([]*entity.Project, error) {
	return nil, nil
}

func (m *mockProjectRepo) Delete(context.Context, string) error { return nil }

type mockDocumentRepo struct {
	documents []*entity.Document
}

func (m *mockDocumentRepo) Create(_ context.Context, d entity.Document) (*entity.Document, error) {
	return &d, nil
}

func (m *mockDocumentRepo) Get(_ context.Context, id string) (*entity.Document, error) {
	for _, d := range m.documents {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, entity.ErrDocumentNotFound
}

func (m *mockDocumentRepo) ListByProject(_ context.Context, projectID string) ([]*entity.Document, error) {
	var docs []*entity.Document
	for _, d := range m.documents {
		if d.ProjectID == projectID {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func (m *mockDocumentRepo) Update(_ context.Context, d entity.Document) (*entity.Document, error) {
	return &d, nil
}

func (m *mockDocumentRepo) Delete(context.Context, string) error { return nil }

type mockChunkRepo struct {
	chunks []*entity.Chunk
}

func (m *mockChunkRepo) ReplaceForDocument(context.Context, string, []entity.Chunk) error {
	return nil
}

func (m *mockChunkRepo) ListByProject(context.Context, string) ([]*entity.Chunk, error) {
	return m.chunks, nil
}

type mockChatRepo struct {
	sessions map[string]*entity.ChatSession
	turns    []*entity.ChatTurn
	nextID   int
}

func newMockChatRepo() *mockChatRepo {
	return &mockChatRepo{sessions: make(map[string]*entity.ChatSession)}
}

func (m *mockChatRepo) CreateSession(_ context.Context, s entity.ChatSession) (*entity.ChatSession, error) {
	m.nextID++
	s.ID = "00000000-0000-0000-0000-00000000000" + string(rune('0'+m.nextID))
	m.sessions[s.ID] = &s
	return &s, nil
}

func (m *mockChatRepo) GetSession(_ context.Context, id string) (*entity.ChatSession, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, entity.ErrSessionNotFound
}

func (m *mockChatRepo) ListSessions(_ context.Context, projectID string) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, s := range m.sessions {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockChatRepo) DeleteSession(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return entity.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *mockChatRepo) CreateTurn(_ context.Context, t entity.ChatTurn) (*entity.ChatTurn, error) {
	m.turns = append(m.turns, &t)
	return &t, nil
}

func (m *mockChatRepo) ListTurns(_ context.Context, sessionID string) ([]*entity.ChatTurn, error) {
	var out []*entity.ChatTurn
	for _, t := range m.turns {
		if t.SessionID == sessionID {
			out = append(out, t)
		}
	}
	return out, nil
}

type mockCredentials struct {
	cred *entity.Credential
}

func (m *mockCredentials) Get(context.Context, string) (*entity.Credential, error) {
	if m.cred == nil {
		return nil, entity.ErrCredentialNotConfigured
	}
	return m.cred, nil
}

// mockEmbedder returns a fixed vector per known text and records queries.
type mockEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vectors[text]
	}
	return out, nil
}

func (m *mockEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.vectors[text], nil
}

type mockEmbeddingFactory struct {
	provider embedding.Provider
}

func (m *mockEmbeddingFactory) ForCredential(*entity.Credential) embedding.Provider {
	return m.provider
}

type mockLLMFactory struct {
	client llm.Client
}

func (m *mockLLMFactory) ForCredential(*entity.Credential) llm.Client {
	return m.client
}
