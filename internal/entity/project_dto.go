package entity

type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ListProjectsRequest struct {
	Skip  int
	Limit int
}

func (lp *ListProjectsRequest) Normalize() {
	if lp.Limit <= 0 {
		lp.Limit = 10
	}

	lp.Limit = min(lp.Limit, 100)
}

type ListProjectsResponse struct {
	Projects []*ProjectSummary `json:"projects"`
}

type ProjectSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProjectDetailResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Documents   []*DocumentDetail `json:"documents"`
}

type DeleteProjectResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
