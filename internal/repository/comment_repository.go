package repository

import (
	"github.com/goalboard/goalboard-api/internal/database"
	"github.com/goalboard/goalboard-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// scoped restricts comment queries to comments whose goal sits under a
// live category on a live board the user participates in. Comments
// under a deleted chain stay in storage but fall out of every scoped
// query.
func (r *GormCommentRepository) scoped(userID uint64) *gorm.DB {
	return r.db.Model(&models.GoalComment{}).
		Joins("JOIN goals ON goals.id = goal_comments.goal_id").
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
		Joins("JOIN boards ON boards.id = goal_categories.board_id").
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ?", userID).
		Where("boards.is_deleted = ?", false).
		Where("goal_categories.is_deleted = ?", false)
}

// Create creates a new comment and loads its author
func (r *GormCommentRepository) Create(comment *models.GoalComment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return err
	}
	return r.db.Preload("User").First(comment, comment.ID).Error
}

// FindScopedByID finds a visible comment by ID
func (r *GormCommentRepository) FindScopedByID(id, userID uint64) (*models.GoalComment, error) {
	var comment models.GoalComment
	if err := r.scoped(userID).
		Preload("User").
		Where("goal_comments.id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// List retrieves visible comments, newest first
func (r *GormCommentRepository) List(filter CommentFilter) ([]models.GoalComment, int64, error) {
	var comments []models.GoalComment

	query := r.scoped(filter.UserID)

	if filter.GoalID != nil {
		query = query.Where("goal_comments.goal_id = ?", *filter.GoalID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("goal_comments.created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("User").Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// Update updates a comment
func (r *GormCommentRepository) Update(comment *models.GoalComment) error {
	return r.db.Save(comment).Error
}

// Delete removes a comment
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.GoalComment{}, id).Error
}
