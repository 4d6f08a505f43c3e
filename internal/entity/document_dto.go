package entity

import "mime/multipart"

// IngestRequest carries one PDF into a project, either as an uploaded file
// or as an external URL reference.
type IngestRequest struct {
	ProjectID string
	File      *multipart.FileHeader
	URL       string
	Filename  string
}

type IngestURLRequest struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

type DocumentDetail struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PageCount  *int   `json:"page_count,omitempty"`
	UploadedAt string `json:"uploaded_at"`
}

type ListDocumentsResponse struct {
	Documents []*DocumentDetail `json:"documents"`
}

type DeleteDocumentResponse struct {
	Status string `json:"status"`
}
