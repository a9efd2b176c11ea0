package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goalboard/goalboard-api/internal/models"
	"github.com/goalboard/goalboard-api/internal/permissions"
	"github.com/goalboard/goalboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrGoalNotFound       = errors.New("goal not found")
	ErrInvalidGoalStatus  = errors.New("invalid goal status")
	ErrInvalidPriority    = errors.New("invalid goal priority")
	ErrArchivedAtCreation = errors.New("a goal cannot be created in the archived state")
)

// GoalService provides business logic for goal operations. Goals are
// never removed: deletion forces the archived status.
type GoalService struct {
	goalRepo     repository.GoalRepository
	categoryRepo repository.CategoryRepository
	boardRepo    repository.BoardRepository
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo repository.GoalRepository, categoryRepo repository.CategoryRepository, boardRepo repository.BoardRepository) *GoalService {
	return &GoalService{
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		boardRepo:    boardRepo,
	}
}

// CreateGoalInput represents input for creating a goal.
type CreateGoalInput struct {
	CategoryID  uint64
	Title       string
	Description string
	Status      models.GoalStatus
	Priority    models.GoalPriority
	DueDate     *time.Time
}

// CreateGoal creates a goal under a category the actor can write to.
func (s *GoalService) CreateGoal(userID uint64, input CreateGoalInput) (*models.Goal, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.GoalStatusInProgress
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidGoalStatus
	}
	if input.Status == models.GoalStatusArchived {
		return nil, ErrArchivedAtCreation
	}

	if input.Priority == 0 {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	category, err := s.categoryRepo.FindScopedByID(input.CategoryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	membership, err := s.boardRepo.FindParticipant(category.BoardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify board membership: %w", err)
	}

	if !(permissions.GoalRule{}).Allow(membership, permissions.ActionWrite) {
		return nil, ErrPermissionDenied
	}

	goal := &models.Goal{
		Title:       input.Title,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		UserID:      userID,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}

	if err := s.goalRepo.Create(goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

// ListGoals returns goals visible to the user.
func (s *GoalService) ListGoals(filter repository.GoalFilter) ([]models.Goal, int64, error) {
	goals, total, err := s.goalRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, total, nil
}

// GetGoal returns a goal the user can see.
func (s *GoalService) GetGoal(userID, goalID uint64) (*models.Goal, error) {
	return s.resolveGoal(userID, goalID, permissions.ActionRead)
}

// UpdateGoalInput represents input for updating a goal.
type UpdateGoalInput struct {
	Title        *string
	Description  *string
	Status       *models.GoalStatus
	Priority     *models.GoalPriority
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateGoal updates an existing goal.
func (s *GoalService) UpdateGoal(userID, goalID uint64, input UpdateGoalInput) (*models.Goal, error) {
	goal, err := s.resolveGoal(userID, goalID, permissions.ActionWrite)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidGoalStatus
		}
		goal.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		goal.Priority = *input.Priority
	}
	if input.ClearDueDate {
		goal.DueDate = nil
	} else if input.DueDate != nil {
		goal.DueDate = input.DueDate
	}

	if err := s.goalRepo.Update(goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, nil
}

// DeleteGoal archives the goal. The row stays; archiving an already
// archived goal succeeds without touching anything.
func (s *GoalService) DeleteGoal(userID, goalID uint64) error {
	goal, err := s.resolveGoal(userID, goalID, permissions.ActionDelete)
	if err != nil {
		return err
	}

	if goal.Status == models.GoalStatusArchived {
		return nil
	}

	goal.Status = models.GoalStatusArchived
	if err := s.goalRepo.Update(goal); err != nil {
		return fmt.Errorf("failed to archive goal: %w", err)
	}

	return nil
}

// resolveGoal loads a visible goal and evaluates the goal rule for the
// action. Unscoped goals surface as not found.
func (s *GoalService) resolveGoal(userID, goalID uint64, action permissions.Action) (*models.Goal, error) {
	goal, err := s.goalRepo.FindScopedByID(goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	category, err := s.categoryRepo.FindScopedByID(goal.CategoryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	membership, err := s.boardRepo.FindParticipant(category.BoardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to verify board membership: %w", err)
	}

	if !(permissions.GoalRule{}).Allow(membership, action) {
		return nil, ErrPermissionDenied
	}

	return goal, nil
}
