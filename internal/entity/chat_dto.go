package entity

import "time"

type QueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
	Model     string `json:"model,omitempty"`
}

// SourcePreview is a bounded view of a retrieved chunk. Unlike citations it
// covers everything retrieval returned, cited or not.
type SourcePreview struct {
	ChunkID      string  `json:"chunk_id"`
	DocumentID   string  `json:"document_id"`
	DocumentName string  `json:"document_name"`
	Content      string  `json:"content"`
	Score        float64 `json:"score"`
}

type QueryResponse struct {
	SessionID string          `json:"session_id"`
	Response  string          `json:"response"`
	Citations []Citation      `json:"citations"`
	Sources   []SourcePreview `json:"sources"`
}

type SessionDTO struct {
	ID        string    `json:"session_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ListSessionsResponse struct {
	Sessions []*SessionDTO `json:"sessions"`
}

type TurnDTO struct {
	ID        string     `json:"id"`
	Role      TurnRole   `json:"role"`
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type SessionDetailResponse struct {
	ID        string     `json:"session_id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	Turns     []*TurnDTO `json:"turns"`
}

type DeleteSessionResponse struct {
	Status string `json:"status"`
}

type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatDOCX     ExportFormat = "docx"
	FormatPDF      ExportFormat = "pdf"
)

func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}
