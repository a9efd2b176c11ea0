package repository

import (
	"github.com/goalboard/goalboard-api/internal/database"
	"github.com/goalboard/goalboard-api/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// scoped restricts category queries to live categories on live boards
// the user participates in.
func (r *GormCategoryRepository) scoped(userID uint64) *gorm.DB {
	return r.db.Model(&models.GoalCategory{}).
		Joins("JOIN boards ON boards.id = goal_categories.board_id").
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ?", userID).
		Where("boards.is_deleted = ?", false).
		Where("goal_categories.is_deleted = ?", false)
}

// Create creates a new category and loads its creator
func (r *GormCategoryRepository) Create(category *models.GoalCategory) error {
	if err := r.db.Create(category).Error; err != nil {
		return err
	}
	return r.db.Preload("User").First(category, category.ID).Error
}

// FindScopedByID finds a visible category by ID
func (r *GormCategoryRepository) FindScopedByID(id, userID uint64) (*models.GoalCategory, error) {
	var category models.GoalCategory
	if err := r.scoped(userID).
		Preload("User").
		Where("goal_categories.id = ?", id).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List retrieves visible categories with filtering and pagination
func (r *GormCategoryRepository) List(filter CategoryFilter) ([]models.GoalCategory, int64, error) {
	var categories []models.GoalCategory

	query := r.scoped(filter.UserID)

	if filter.BoardID != nil {
		query = query.Where("goal_categories.board_id = ?", *filter.BoardID)
	}
	if filter.CreatorID != nil {
		query = query.Where("goal_categories.user_id = ?", *filter.CreatorID)
	}
	if filter.Search != "" {
		query = query.Where("goal_categories.title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.OrderByCreate {
		listQuery = listQuery.Order("goal_categories.created_at ASC")
	} else {
		listQuery = listQuery.Order("goal_categories.title ASC")
	}

	listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("User").Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

// Update updates a category
func (r *GormCategoryRepository) Update(category *models.GoalCategory) error {
	return r.db.Save(category).Error
}

// SoftDelete marks the category deleted. The goals under it keep their
// status: board deletion is the only cascade.
func (r *GormCategoryRepository) SoftDelete(id uint64) error {
	return r.db.Model(&models.GoalCategory{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
