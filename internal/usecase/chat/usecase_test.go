package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/paperdesk/research-backend/internal/config"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/integration/embedding"
	"github.com/paperdesk/research-backend/internal/integration/llm"
	"go.uber.org/zap"
)

const testProjectID = "11111111-1111-1111-1111-111111111111"

func testCredential() *entity.Credential {
	return &entity.Credential{
		ProjectID: testProjectID,
		Provider:  entity.ProviderOpenAI,
		APIKey:    "sk-test",
	}
}

func testDocNames() map[string]string {
	return map[string]string{"doc-1": "paper.pdf", "doc-2": "appendix.pdf"}
}

func testChunks(contents ...string) []*entity.Chunk {
	chunks := make([]*entity.Chunk, len(contents))
	for i, c := range contents {
		chunks[i] = &entity.Chunk{
			ID:         "chunk-" + string(rune('a'+i)),
			DocumentID: "doc-1",
			SeqIndex:   i,
			Content:    c,
		}
	}
	return chunks
}

type fixture struct {
	uc       *ChatUsecase
	chatRepo *mockChatRepo
	llm      *llm.MockClient
}

func newFixture(chunks []*entity.Chunk, cred *entity.Credential, provider embedding.Provider, response string) *fixture {
	chatRepo := newMockChatRepo()
	client := llm.NewMockClient(response)

	uc := NewUsecase(
		&mockProjectRepo{projects: map[string]*entity.Project{testProjectID: {ID: testProjectID}}},
		&mockDocumentRepo{documents: []*entity.Document{
			{ID: "doc-1", ProjectID: testProjectID, Filename: "paper.pdf"},
			{ID: "doc-2", ProjectID: testProjectID, Filename: "appendix.pdf"},
		}},
		&mockChunkRepo{chunks: chunks},
		chatRepo,
		&mockCredentials{cred: cred},
		&mockEmbeddingFactory{provider: provider},
		&mockLLMFactory{client: client},
		config.RetrievalConfig{TopK: 5},
		zap.NewNop(),
	)

	return &fixture{uc: uc, chatRepo: chatRepo, llm: client}
}

func TestQuery_MissingCredentialFailsBeforeRetrieval(t *testing.T) {
	f := newFixture(testChunks("some content"), nil, embedding.Noop{}, "")

	_, err := f.uc.Query(context.Background(), testProjectID, &entity.QueryRequest{Query: "anything"})
	if !errors.Is(err, entity.ErrCredentialNotConfigured) {
		t.Fatalf("expected ErrCredentialNotConfigured, got %v", err)
	}
	if len(f.chatRepo.turns) != 0 {
		t.Errorf("no turns should be persisted, got %d", len(f.chatRepo.turns))
	}
	if len(f.llm.Requests) != 0 {
		t.Errorf("backend should not be invoked")
	}
}

func TestQuery_NoChunksReturnsCannedResponse(t *testing.T) {
	f := newFixture(nil, testCredential(), embedding.Noop{}, "should never be used")

	resp, err := f.uc.Query(context.Background(), testProjectID, &entity.QueryRequest{Query: "what is entropy?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Response != noContextResponse {
		t.Errorf("unexpected response: %q", resp.Response)
	}
	if len(resp.Citations) != 0 || len(resp.Sources) != 0 {
		t.Errorf("expected empty citations and sources")
	}
	if len(f.llm.Requests) != 0 {
		t.Errorf("synthesizer must not be invoked with no context")
	}
	// The exchange is still part of the session history.
	if len(f.chatRepo.turns) != 2 {
		t.Errorf("expected 2 persisted turns, got %d", len(f.chatRepo.turns))
	}
}

func TestQuery_KeywordFallbackAndPartialCitations(t *testing.T) {
	chunks := testChunks(
		"entropy entropy entropy is disorder",
		"entropy entropy in thermodynamics",
		"entropy of information",
	)

	f := newFixture(chunks, testCredential(), embedding.Noop{},
		"Entropy measures disorder [Source 1]. It also appears in information theory [Source 3].")

	resp, err := f.uc.Query(context.Background(), testProjectID, &entity.QueryRequest{Query: "define entropy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Citations) != 2 {
		t.Fatalf("expected exactly 2 citations, got %d", len(resp.Citations))
	}
	// Keyword scoring orders by occurrence count, so Source 1 is chunk-a.
	if resp.Citations[0].ChunkID != "chunk-a" || resp.Citations[1].ChunkID != "chunk-c" {
		t.Errorf("unexpected cited chunks: %s, %s", resp.Citations[0].ChunkID, resp.Citations[1].ChunkID)
	}
	if len(resp.Sources) != 3 {
		t.Errorf("sources should cover all retrieved chunks, got %d", len(resp.Sources))
	}
	if len(f.chatRepo.turns) != 2 {
		t.Errorf("expected 2 persisted turns, got %d", len(f.chatRepo.turns))
	}
}

func TestQuery_GenerationFailureLeavesNoTrace(t *testing.T) {
	f := newFixture(testChunks("entropy is disorder"), testCredential(), embedding.Noop{}, "")
	f.llm.Err = &entity.AnswerGenerationError{Provider: entity.ProviderOpenAI, Err: errors.New("quota exceeded")}

	_, err := f.uc.Query(context.Background(), testProjectID, &entity.QueryRequest{Query: "define entropy"})

	var genErr *entity.AnswerGenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected AnswerGenerationError, got %v", err)
	}
	if len(f.chatRepo.turns) != 0 {
		t.Errorf("failed turns must not be persisted, got %d", len(f.chatRepo.turns))
	}
}

func TestQuery_SessionCreatedLazilyWithTruncatedTitle(t *testing.T) {
	f := newFixture(nil, testCredential(), embedding.Noop{}, "")

	longQuery := strings.Repeat("q", 100)
	resp, err := f.uc.Query(context.Background(), testProjectID, &entity.QueryRequest{Query: longQuery})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session := f.chatRepo.sessions[resp.SessionID]
	if session == nil {
		t.Fatal("session was not created")
	}
	wantTitle := strings.Repeat("q", sessionTitleLimit) + "…"
	if session.Title != wantTitle {
		t.Errorf("unexpected session title: %q", session.Title)
	}
}

func TestFindRelevant_CosineOrderingAndTopKBound(t *testing.T) {
	queryVec := []float32{1, 0}
	vectors := map[string][]float32{"query": queryVec}

	contents := []string{"c0", "c1", "c2", "c3", "c4", "c5", "c6"}
	chunks := testChunks(contents...)
	// Increasing angle from the query vector: later chunks score lower.
	angles := []float32{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4}
	for i, chunk := range chunks {
		chunk.Embedding = []float32{angles[i], 1 - angles[i]}
	}

	f := newFixture(chunks, testCredential(), &mockEmbedder{vectors: vectors}, "")

	scored, err := f.uc.findRelevant(context.Background(), testProjectID, "query", testDocNames(), &mockEmbedder{vectors: vectors})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scored) != 5 {
		t.Fatalf("expected topK=5 results, got %d", len(scored))
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[i-1].Score {
			t.Errorf("scores not non-increasing at %d: %f > %f", i, scored[i].Score, scored[i-1].Score)
		}
	}
	if scored[0].Chunk.Content != "c0" {
		t.Errorf("best match should be c0, got %s", scored[0].Chunk.Content)
	}
	if scored[0].DocumentName != "paper.pdf" {
		t.Errorf("document name not resolved: %q", scored[0].DocumentName)
	}
}

func TestFindRelevant_EmbedFailureFallsBackToKeywords(t *testing.T) {
	chunks := testChunks("gravity bends light", "unrelated text")
	chunks[0].Embedding = []float32{1, 0}
	chunks[1].Embedding = []float32{0, 1}

	failing := &mockEmbedder{err: &entity.EmbeddingProviderError{
		Provider: entity.ProviderOpenAI,
		Err:      errors.New("backend down"),
	}}

	f := newFixture(chunks, testCredential(), failing, "")

	scored, err := f.uc.findRelevant(context.Background(), testProjectID, "gravity light", testDocNames(), failing)
	if err != nil {
		t.Fatalf("fallback should not error: %v", err)
	}
	if len(scored) != 1 || scored[0].Chunk.Content != "gravity bends light" {
		t.Fatalf("unexpected keyword results: %+v", scored)
	}
}

func TestFindRelevant_UnembeddedChunksUseKeywords(t *testing.T) {
	chunks := testChunks("neural networks learn features", "stochastic gradient descent")

	f := newFixture(chunks, testCredential(), embedding.Noop{}, "")

	scored, err := f.uc.findRelevant(context.Background(), testProjectID, "gradient descent", testDocNames(), embedding.Noop{})
	if err != nil {
		t.Fatalf("keyword search must never error: %v", err)
	}
	if len(scored) != 1 || scored[0].Chunk.Content != "stochastic gradient descent" {
		t.Fatalf("unexpected results: %+v", scored)
	}
}

func TestFindRelevant_ZeroChunks(t *testing.T) {
	f := newFixture(nil, testCredential(), embedding.Noop{}, "")

	scored, err := f.uc.findRelevant(context.Background(), testProjectID, "anything", testDocNames(), embedding.Noop{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 0 {
		t.Errorf("expected no results, got %d", len(scored))
	}
}

func TestExtractCitations_DedupeAndOutOfRange(t *testing.T) {
	retrieved := []entity.ScoredChunk{
		{Chunk: &entity.Chunk{ID: "c1", DocumentID: "d1", Content: "first"}, DocumentName: "a.pdf"},
		{Chunk: &entity.Chunk{ID: "c2", DocumentID: "d1", Content: "second"}, DocumentName: "a.pdf"},
	}

	response := "Claim [Source 2], again [Source 2], and a bogus [Source 7]."
	citations := extractCitations(response, retrieved)

	if len(citations) != 1 {
		t.Fatalf("expected exactly 1 citation, got %d", len(citations))
	}
	if citations[0].ChunkID != "c2" || citations[0].SourceIndex != 2 {
		t.Errorf("unexpected citation: %+v", citations[0])
	}
}

func TestExtractCitations_PreviewTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	retrieved := []entity.ScoredChunk{
		{Chunk: &entity.Chunk{ID: "c1", DocumentID: "d1", Content: long}, DocumentName: "a.pdf"},
	}

	citations := extractCitations("see [Source 1]", retrieved)
	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	if got := len([]rune(citations[0].Preview)); got != 201 {
		t.Errorf("preview should be 200 runes plus ellipsis, got %d", got)
	}
	if !strings.HasSuffix(citations[0].Preview, "…") {
		t.Errorf("preview should end with ellipsis")
	}
}

func TestBuildSystemPrompt_EnumeratesSources(t *testing.T) {
	retrieved := []entity.ScoredChunk{
		{Chunk: &entity.Chunk{ID: "c1", Content: "alpha"}, DocumentName: "a.pdf"},
		{Chunk: &entity.Chunk{ID: "c2", Content: "beta"}, DocumentName: "b.pdf"},
	}
	docNames := map[string]string{"d1": "a.pdf", "d2": "b.pdf", "d3": "unretrieved.pdf"}

	prompt := buildSystemPrompt(retrieved, docNames)

	wants := []string{
		"- a.pdf", "- b.pdf", "- unretrieved.pdf",
		"[Source 1] (document: a.pdf)", "[Source 2] (document: b.pdf)",
		"alpha", "beta",
	}
	for _, want := range wants {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestQuery_PromptListsAllProjectDocuments(t *testing.T) {
	// All chunks come from paper.pdf; appendix.pdf has none retrieved but
	// must still be listed so the model knows what it has access to.
	f := newFixture(testChunks("entropy is disorder"), testCredential(), embedding.Noop{},
		"Entropy measures disorder [Source 1].")

	_, err := f.uc.Query(context.Background(), testProjectID, &entity.QueryRequest{Query: "define entropy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.llm.Requests) != 1 {
		t.Fatalf("expected 1 backend request, got %d", len(f.llm.Requests))
	}

	system := f.llm.Requests[0].System
	for _, want := range []string{"- paper.pdf", "- appendix.pdf"} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	if strings.Contains(system, "(document: appendix.pdf)") {
		t.Errorf("no excerpt should be attributed to the unretrieved document")
	}
}
