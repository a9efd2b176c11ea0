package repository

import (
	"github.com/goalboard/goalboard-api/internal/database"
	"github.com/goalboard/goalboard-api/internal/models"
	"gorm.io/gorm"
)

// GormGoalRepository is a GORM implementation of GoalRepository
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &GormGoalRepository{db: db}
}

// scoped restricts goal queries to goals whose category and board are
// live and whose board the user participates in. Archived goals stay
// visible: archival is a status, not a soft-delete.
func (r *GormGoalRepository) scoped(userID uint64) *gorm.DB {
	return r.db.Model(&models.Goal{}).
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
		Joins("JOIN boards ON boards.id = goal_categories.board_id").
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ?", userID).
		Where("boards.is_deleted = ?", false).
		Where("goal_categories.is_deleted = ?", false)
}

// Create creates a new goal and loads its creator
func (r *GormGoalRepository) Create(goal *models.Goal) error {
	if err := r.db.Create(goal).Error; err != nil {
		return err
	}
	return r.db.Preload("User").First(goal, goal.ID).Error
}

// FindScopedByID finds a visible goal by ID
func (r *GormGoalRepository) FindScopedByID(id, userID uint64) (*models.Goal, error) {
	var goal models.Goal
	if err := r.scoped(userID).
		Preload("User").
		Where("goals.id = ?", id).
		First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// List retrieves visible goals with filtering and pagination
func (r *GormGoalRepository) List(filter GoalFilter) ([]models.Goal, int64, error) {
	var goals []models.Goal

	query := r.scoped(filter.UserID)

	if filter.CategoryID != nil {
		query = query.Where("goals.category_id = ?", *filter.CategoryID)
	}
	if filter.Status != nil {
		query = query.Where("goals.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("goals.priority = ?", *filter.Priority)
	}
	if filter.DueDateFrom != nil {
		query = query.Where("goals.due_date >= ?", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		// DueDateTo names a day; everything due on it is in range
		query = query.Where("goals.due_date < ?", filter.DueDateTo.AddDate(0, 0, 1))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("goals.title LIKE ? OR goals.description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.OrderByDue {
		listQuery = listQuery.Order("CASE WHEN goals.due_date IS NULL THEN 1 ELSE 0 END, goals.due_date ASC")
	} else {
		listQuery = listQuery.Order("goals.priority ASC, goals.due_date ASC")
	}

	listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("User").Find(&goals).Error; err != nil {
		return nil, 0, err
	}

	return goals, total, nil
}

// Update updates a goal
func (r *GormGoalRepository) Update(goal *models.Goal) error {
	return r.db.Save(goal).Error
}
