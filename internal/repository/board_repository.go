package repository

import (
	"github.com/goalboard/goalboard-api/internal/database"
	"github.com/goalboard/goalboard-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// CreateWithOwner creates a board and its owner participant atomically
func (r *GormBoardRepository) CreateWithOwner(board *models.Board, ownerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}

		participant := &models.BoardParticipant{
			BoardID: board.ID,
			UserID:  ownerID,
			Role:    models.RoleOwner,
		}

		return tx.Create(participant).Error
	})
}

// FindLiveByID finds a non-deleted board by ID
func (r *GormBoardRepository) FindLiveByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.Where("is_deleted = ?", false).First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// ListForUser lists non-deleted boards the user participates in
func (r *GormBoardRepository) ListForUser(userID uint64, page, pageSize int) ([]models.Board, int64, error) {
	var boards []models.Board

	query := r.db.Model(&models.Board{}).
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ?", userID).
		Where("boards.is_deleted = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("boards.title ASC").
		Scopes(database.Paginate(page, pageSize))

	if err := listQuery.Find(&boards).Error; err != nil {
		return nil, 0, err
	}

	return boards, total, nil
}

// FindParticipant finds a user's membership record on a board
func (r *GormBoardRepository) FindParticipant(boardID, userID uint64) (*models.BoardParticipant, error) {
	var participant models.BoardParticipant
	if err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// ListParticipants lists all participants of a board
func (r *GormBoardRepository) ListParticipants(boardID uint64) ([]models.BoardParticipant, error) {
	var participants []models.BoardParticipant
	if err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// Update updates a board's mutable fields
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// ReplaceParticipants rewrites the non-owner roster of a board atomically
func (r *GormBoardRepository) ReplaceParticipants(boardID uint64, participants []models.BoardParticipant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ? AND role <> ?", boardID, models.RoleOwner).
			Delete(&models.BoardParticipant{}).Error; err != nil {
			return err
		}

		if len(participants) == 0 {
			return nil
		}

		return tx.Create(&participants).Error
	})
}

// SoftDeleteCascade flags the board and its categories deleted and
// archives every goal under those categories. Everything commits in one
// transaction so a concurrent reader never observes partial state.
func (r *GormBoardRepository) SoftDeleteCascade(boardID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Board{}).
			Where("id = ?", boardID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.GoalCategory{}).
			Where("board_id = ?", boardID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		categoryIDs := tx.Model(&models.GoalCategory{}).
			Select("id").
			Where("board_id = ?", boardID)

		return tx.Model(&models.Goal{}).
			Where("category_id IN (?)", categoryIDs).
			Update("status", models.GoalStatusArchived).Error
	})
}
