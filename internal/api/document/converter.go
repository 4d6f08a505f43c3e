package document

import "github.com/paperdesk/research-backend/internal/entity"

// toDocumentDetail converts Document entity to DocumentDetail DTO
func toDocumentDetail(d *entity.Document) *entity.DocumentDetail {
	return &entity.DocumentDetail{
		ID:         d.ID,
		Name:       d.Filename,
		PageCount:  d.PageCount,
		UploadedAt: d.UploadedAt.Format("2006-01-02T15:04:05Z"),
	}
}
