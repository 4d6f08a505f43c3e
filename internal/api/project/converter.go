package project

import "github.com/paperdesk/research-backend/internal/entity"

// toProjectSummary converts Project entity to ProjectSummary DTO
func toProjectSummary(p *entity.Project) *entity.ProjectSummary {
	return &entity.ProjectSummary{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
	}
}

// toProjectDetail converts Project entity to ProjectDetailResponse DTO
func toProjectDetail(p *entity.Project) *entity.ProjectDetailResponse {
	documents := make([]*entity.DocumentDetail, 0, len(p.Documents))
	for _, d := range p.Documents {
		documents = append(documents, toDocumentDetail(d))
	}

	return &entity.ProjectDetailResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Documents:   documents,
	}
}

// toDocumentDetail converts Document entity to DocumentDetail DTO
func toDocumentDetail(d *entity.Document) *entity.DocumentDetail {
	return &entity.DocumentDetail{
		ID:         d.ID,
		Name:       d.Filename,
		PageCount:  d.PageCount,
		UploadedAt: d.UploadedAt.Format("2006-01-02T15:04:05Z"),
	}
}
