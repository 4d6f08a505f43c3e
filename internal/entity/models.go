package entity

import (
	"fmt"
	"time"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

func (p Provider) Validate() error {
	switch p {
	case ProviderOpenAI, ProviderGemini:
		return nil
	default:
		return fmt.Errorf("unknown provider: %s", p)
	}
}

type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

type Project struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	Documents   []*Document `json:"documents,omitempty"`
}

// Document is one uploaded or linked PDF, owned by its project.
// PageCount stays nil until extraction has succeeded.
type Document struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Filename   string    `json:"name"`
	Location   string    `json:"location"`
	PageCount  *int      `json:"page_count,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Chunk is a contiguous span of a document's extracted text, the unit of
// retrieval. Embedding is nil when none was generated at ingestion time.
// Chunks are immutable; re-ingestion replaces a document's set wholesale.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	SeqIndex   int       `json:"seq_index"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"-"`
}

// ScoredChunk pairs a chunk with its relevance score for one query.
type ScoredChunk struct {
	Chunk        *Chunk
	DocumentName string
	Score        float64
}

type ChatSession struct {
	ID        string    `json:"session_id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatTurn struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Role      TurnRole   `json:"role"`
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Citation points a [Source N] marker in an answer back to the chunk and
// document it came from. Preview is bounded to previewLimit runes.
type Citation struct {
	SourceIndex  int    `json:"source_index"`
	ChunkID      string `json:"chunk_id"`
	DocumentID   string `json:"document_id"`
	DocumentName string `json:"document_name"`
	Preview      string `json:"preview"`
}

const previewLimit = 200

// NewCitation builds a citation for the chunk behind a [Source N] marker.
func NewCitation(sourceIndex int, sc ScoredChunk) Citation {
	return Citation{
		SourceIndex:  sourceIndex,
		ChunkID:      sc.Chunk.ID,
		DocumentID:   sc.Chunk.DocumentID,
		DocumentName: sc.DocumentName,
		Preview:      TruncatePreview(sc.Chunk.Content, previewLimit),
	}
}

// TruncatePreview bounds s to limit runes, appending an ellipsis when cut.
func TruncatePreview(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

// Credential is a project-scoped provider key. The provider is an explicit
// tag set at configuration time, never inferred from the key's format.
type Credential struct {
	ProjectID     string
	Provider      Provider
	APIKey        string
	ModelOverride *string
	UpdatedAt     time.Time
}
