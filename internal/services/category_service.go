package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goalboard/goalboard-api/internal/models"
	"github.com/goalboard/goalboard-api/internal/permissions"
	"github.com/goalboard/goalboard-api/internal/repository"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryService provides business logic for goal category operations.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	boardRepo    repository.BoardRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository, boardRepo repository.BoardRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		boardRepo:    boardRepo,
	}
}

// CreateCategory creates a category on a board the actor can write to.
func (s *CategoryService) CreateCategory(userID, boardID uint64, title string) (*models.GoalCategory, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	membership, err := s.membershipOnLiveBoard(userID, boardID)
	if err != nil {
		return nil, err
	}

	if !(permissions.CategoryRule{}).Allow(membership, permissions.ActionWrite) {
		return nil, ErrPermissionDenied
	}

	category := &models.GoalCategory{
		Title:   title,
		BoardID: boardID,
		UserID:  userID,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// ListCategories returns categories visible to the user.
func (s *CategoryService) ListCategories(filter repository.CategoryFilter) ([]models.GoalCategory, int64, error) {
	categories, total, err := s.categoryRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// GetCategory returns a category the user can see.
func (s *CategoryService) GetCategory(userID, categoryID uint64) (*models.GoalCategory, error) {
	return s.resolveCategory(userID, categoryID, permissions.ActionRead)
}

// UpdateCategory renames a category.
func (s *CategoryService) UpdateCategory(userID, categoryID uint64, title string) (*models.GoalCategory, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	category, err := s.resolveCategory(userID, categoryID, permissions.ActionWrite)
	if err != nil {
		return nil, err
	}

	category.Title = title
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory soft-deletes the category. Goals under it keep their
// status: only board deletion archives goals.
func (s *CategoryService) DeleteCategory(userID, categoryID uint64) error {
	if _, err := s.resolveCategory(userID, categoryID, permissions.ActionDelete); err != nil {
		return err
	}

	if err := s.categoryRepo.SoftDelete(categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}

// resolveCategory loads a visible category and evaluates the category
// rule for the action. Unscoped categories surface as not found.
func (s *CategoryService) resolveCategory(userID, categoryID uint64, action permissions.Action) (*models.GoalCategory, error) {
	category, err := s.categoryRepo.FindScopedByID(categoryID, userID)
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

	if !(permissions.CategoryRule{}).Allow(membership, action) {
		return nil, ErrPermissionDenied
	}

	return category, nil
}

// membershipOnLiveBoard returns the actor's membership on a live board,
// masking missing boards and missing memberships alike.
func (s *CategoryService) membershipOnLiveBoard(userID, boardID uint64) (*models.BoardParticipant, error) {
	if _, err := s.boardRepo.FindLiveByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	membership, err := s.boardRepo.FindParticipant(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to verify board membership: %w", err)
	}

	return membership, nil
}
