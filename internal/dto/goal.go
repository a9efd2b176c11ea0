package dto

import (
	"time"

	"github.com/goalboard/goalboard-api/internal/models"
)

// CategoryDTO represents a goal category in API responses
type CategoryDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	BoardID   uint64    `json:"board_id"`
	Creator   UserDTO   `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GoalDTO represents a goal in API responses
type GoalDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	CategoryID  uint64              `json:"category_id"`
	Creator     UserDTO             `json:"creator"`
	Status      models.GoalStatus   `json:"status"`
	Priority    models.GoalPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CommentDTO represents a goal comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	GoalID    uint64    `json:"goal_id"`
	Author    UserDTO   `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryDTO converts a category model to DTO
func ToCategoryDTO(category models.GoalCategory) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Title:     category.Title,
		BoardID:   category.BoardID,
		Creator:   ToUserDTO(category.User),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToGoalDTO converts a goal model to DTO
func ToGoalDTO(goal models.Goal) GoalDTO {
	return GoalDTO{
		ID:          goal.ID,
		Title:       goal.Title,
		Description: goal.Description,
		CategoryID:  goal.CategoryID,
		Creator:     ToUserDTO(goal.User),
		Status:      goal.Status,
		Priority:    goal.Priority,
		DueDate:     goal.DueDate,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}

// ToCommentDTO converts a comment model to DTO
func ToCommentDTO(comment models.GoalComment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		Text:      comment.Text,
		GoalID:    comment.GoalID,
		Author:    ToUserDTO(comment.User),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// ToCategoryDTOs converts a slice of categories
func ToCategoryDTOs(categories []models.GoalCategory) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = ToCategoryDTO(category)
	}
	return dtos
}

// ToGoalDTOs converts a slice of goals
func ToGoalDTOs(goals []models.Goal) []GoalDTO {
	dtos := make([]GoalDTO, len(goals))
	for i, goal := range goals {
		dtos[i] = ToGoalDTO(goal)
	}
	return dtos
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.GoalComment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		dtos[i] = ToCommentDTO(comment)
	}
	return dtos
}
