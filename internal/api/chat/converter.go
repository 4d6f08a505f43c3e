package chat

import "github.com/paperdesk/research-backend/internal/entity"

// toSessionDTO converts ChatSession entity to SessionDTO
func toSessionDTO(s *entity.ChatSession) *entity.SessionDTO {
	return &entity.SessionDTO{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
	}
}

// toSessionDetail converts a session and its turns to SessionDetailResponse
func toSessionDetail(s *entity.ChatSession, turns []*entity.ChatTurn) *entity.SessionDetailResponse {
	turnDTOs := make([]*entity.TurnDTO, 0, len(turns))
	for _, t := range turns {
		turnDTOs = append(turnDTOs, &entity.TurnDTO{
			ID:        t.ID,
			Role:      t.Role,
			Content:   t.Content,
			Citations: t.Citations,
			CreatedAt: t.CreatedAt,
		})
	}

	return &entity.SessionDetailResponse{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		Turns:     turnDTOs,
	}
}
