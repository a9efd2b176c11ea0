package dto

import (
	"time"

	"github.com/goalboard/goalboard-api/internal/models"
)

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParticipantDTO represents one board membership
type ParticipantDTO struct {
	User      UserDTO                `json:"user"`
	Role      models.ParticipantRole `json:"role"`
	CreatedAt time.Time              `json:"created_at"`
}

// BoardDetailDTO represents a board with its roster and the caller's role
type BoardDetailDTO struct {
	BoardDTO
	Participants []ParticipantDTO       `json:"participants"`
	YourRole     models.ParticipantRole `json:"your_role"`
}

// ToBoardDTO converts a board model to DTO
func ToBoardDTO(board models.Board) BoardDTO {
	return BoardDTO{
		ID:        board.ID,
		Title:     board.Title,
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
	}
}

// ToParticipantDTO converts a participant to DTO
func ToParticipantDTO(participant models.BoardParticipant) ParticipantDTO {
	return ParticipantDTO{
		User:      ToUserDTO(participant.User),
		Role:      participant.Role,
		CreatedAt: participant.CreatedAt,
	}
}

// ToBoardDetailDTO converts a board with its roster to a detailed DTO
func ToBoardDetailDTO(board models.Board, participants []models.BoardParticipant, yourRole models.ParticipantRole) BoardDetailDTO {
	participantDTOs := make([]ParticipantDTO, len(participants))
	for i, participant := range participants {
		participantDTOs[i] = ToParticipantDTO(participant)
	}

	return BoardDetailDTO{
		BoardDTO:     ToBoardDTO(board),
		Participants: participantDTOs,
		YourRole:     yourRole,
	}
}
