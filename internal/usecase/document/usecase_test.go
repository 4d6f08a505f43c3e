package document

import (
	"context"
	"errors"
	"testing"

	"github.com/paperdesk/research-backend/internal/config"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/integration/embedding"
	"github.com/paperdesk/research-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

const (
	testProjectID  = "11111111-1111-1111-1111-111111111111"
	testDocumentID = "22222222-2222-2222-2222-222222222222"
	otherProjectID = "33333333-3333-3333-3333-333333333333"
)

type mockProjectRepo struct{}

func (m *mockProjectRepo) Create(_ context.Context, p entity.Project) (*entity.Project, error) {
	return &p, nil
}

func (m *mockProjectRepo) Get(_ context.Context, id string) (*entity.Project, error) {
	if id == testProjectID {
		return &entity.Project{ID: id}, nil
	}
	return nil, entity.ErrProjectNotFound
}

func (m *mockProjectRepo) List(context.Context, int, int) ([]*entity.Project, error) {
	return nil, nil
}

func (m *mockProjectRepo) Delete(context.Context, string) error { return nil }

type mockDocumentRepo struct {
	docs map[string]*entity.Document
}

func (m *mockDocumentRepo) Create(_ context.Context, d entity.Document) (*entity.Document, error) {
	d.ID = testDocumentID
	return &d, nil
}

func (m *mockDocumentRepo) Get(_ context.Context, id string) (*entity.Document, error) {
	if d, ok := m.docs[id]; ok {
		return d, nil
	}
	return nil, entity.ErrDocumentNotFound
}

func (m *mockDocumentRepo) ListByProject(context.Context, string) ([]*entity.Document, error) {
	return nil, nil
}

func (m *mockDocumentRepo) Update(_ context.Context, d entity.Document) (*entity.Document, error) {
	return &d, nil
}

func (m *mockDocumentRepo) Delete(context.Context, string) error { return nil }

type mockChunkRepo struct {
	replaced []entity.Chunk
}

func (m *mockChunkRepo) ReplaceForDocument(_ context.Context, _ string, chunks []entity.Chunk) error {
	m.replaced = chunks
	return nil
}

func (m *mockChunkRepo) ListByProject(context.Context, string) ([]*entity.Chunk, error) {
	return nil, nil
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

type mockEmbedder struct {
	dim int
	err error
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, m.dim)
		out[i][0] = 1
	}
	return out, nil
}

func (m *mockEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	vec := make([]float32, m.dim)
	vec[0] = 1
	return vec, nil
}

type mockEmbeddingFactory struct {
	provider embedding.Provider
}

func (m *mockEmbeddingFactory) ForCredential(cred *entity.Credential) embedding.Provider {
	if cred == nil {
		return embedding.Noop{}
	}
	return m.provider
}

type mockFileStore struct{}

func (m *mockFileStore) Save(filename string, _ []byte) (string, error) {
	return "/data/uploads/" + filename, nil
}

func (m *mockFileStore) Read(string) ([]byte, error) { return nil, errors.New("not stored") }
func (m *mockFileStore) Remove(string) error         { return nil }
func (m *mockFileStore) Owns(location string) bool {
	return len(location) > 0 && location[0] == '/'
}

type mockDownloader struct{}

func (m *mockDownloader) Download(context.Context, string, int64) ([]byte, error) {
	return nil, errors.New("no network in tests")
}

func newTestUsecase(cred *entity.Credential, provider embedding.Provider, docs map[string]*entity.Document) (*DocumentUsecase, *mockChunkRepo) {
	cfg := config.IngestConfig{
		MaxFileSize:  1 << 20,
		ChunkSize:    100,
		ChunkOverlap: 20,
		EmbedBatch:   100,
	}

	chunkRepo := &mockChunkRepo{}
	uc := NewUsecase(
		&mockProjectRepo{},
		&mockDocumentRepo{docs: docs},
		chunkRepo,
		&mockCredentials{cred: cred},
		&mockEmbeddingFactory{provider: provider},
		&mockFileStore{},
		&mockDownloader{},
		validator.NewUploadValidator(cfg),
		cfg,
		zap.NewNop(),
	)

	return uc, chunkRepo
}

func TestIndexChunks_WithoutCredentialStoresUnembeddedChunks(t *testing.T) {
	uc, chunkRepo := newTestUsecase(nil, nil, nil)

	doc := &entity.Document{ID: testDocumentID, ProjectID: testProjectID}
	if err := uc.indexChunks(context.Background(), doc, "Some extracted text about thermodynamics."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunkRepo.replaced) == 0 {
		t.Fatal("chunks were not stored")
	}
	for i, chunk := range chunkRepo.replaced {
		if chunk.Embedding != nil {
			t.Errorf("chunk %d should have no embedding", i)
		}
		if chunk.SeqIndex != i {
			t.Errorf("chunk %d has seq index %d", i, chunk.SeqIndex)
		}
	}
}

func TestIndexChunks_ProviderFailureDegrades(t *testing.T) {
	failing := &mockEmbedder{err: &entity.EmbeddingProviderError{
		Provider: entity.ProviderOpenAI,
		Err:      errors.New("invalid key"),
	}}
	cred := &entity.Credential{ProjectID: testProjectID, Provider: entity.ProviderOpenAI, APIKey: "bad"}

	uc, chunkRepo := newTestUsecase(cred, failing, nil)

	doc := &entity.Document{ID: testDocumentID, ProjectID: testProjectID}
	if err := uc.indexChunks(context.Background(), doc, "content worth keeping"); err != nil {
		t.Fatalf("embedding failure must not fail ingestion: %v", err)
	}

	for i, chunk := range chunkRepo.replaced {
		if chunk.Embedding != nil {
			t.Errorf("chunk %d should have been stored unembedded", i)
		}
	}
}

func TestIndexChunks_WithCredentialStoresVectors(t *testing.T) {
	cred := &entity.Credential{ProjectID: testProjectID, Provider: entity.ProviderOpenAI, APIKey: "sk-ok"}
	uc, chunkRepo := newTestUsecase(cred, &mockEmbedder{dim: 3}, nil)

	doc := &entity.Document{ID: testDocumentID, ProjectID: testProjectID}
	if err := uc.indexChunks(context.Background(), doc, "short text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunkRepo.replaced) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunkRepo.replaced))
	}
	if len(chunkRepo.replaced[0].Embedding) != 3 {
		t.Errorf("embedding not stored: %v", chunkRepo.replaced[0].Embedding)
	}
}

func TestGetOwned_RejectsForeignDocument(t *testing.T) {
	docs := map[string]*entity.Document{
		testDocumentID: {ID: testDocumentID, ProjectID: otherProjectID},
	}
	uc, _ := newTestUsecase(nil, nil, docs)

	_, err := uc.getOwned(context.Background(), testProjectID, testDocumentID)
	if !errors.Is(err, entity.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestIngest_RejectsInvalidURL(t *testing.T) {
	uc, _ := newTestUsecase(nil, nil, nil)

	_, err := uc.Ingest(context.Background(), &entity.IngestRequest{
		ProjectID: testProjectID,
		URL:       "ftp://example.com/paper.pdf",
	})
	if !errors.Is(err, entity.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestURLFilename(t *testing.T) {
	tests := []struct {
		name string
		req  *entity.IngestRequest
		want string
	}{
		{"explicit filename wins", &entity.IngestRequest{URL: "https://x.org/a.pdf", Filename: "my paper.pdf"}, "my_paper.pdf"},
		{"derived from URL path", &entity.IngestRequest{URL: "https://x.org/papers/attention.pdf"}, "attention.pdf"},
		{"bare host falls back", &entity.IngestRequest{URL: "https://x.org/"}, "document.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := urlFilename(tt.req); got != tt.want {
				t.Errorf("urlFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}
