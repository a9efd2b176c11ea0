package repository

import (
	"time"

	"github.com/goalboard/goalboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// CreateWithOwner creates a board and its owner participant within a
	// single transaction.
	CreateWithOwner(board *models.Board, ownerID uint64) error

	// FindLiveByID finds a non-deleted board by ID
	FindLiveByID(id uint64) (*models.Board, error)

	// ListForUser lists non-deleted boards the user participates in,
	// ordered by title ascending
	ListForUser(userID uint64, page, pageSize int) ([]models.Board, int64, error)

	// FindParticipant finds a user's membership record on a board
	FindParticipant(boardID, userID uint64) (*models.BoardParticipant, error)

	// ListParticipants lists all participants of a board
	ListParticipants(boardID uint64) ([]models.BoardParticipant, error)

	// Update updates a board's mutable fields
	Update(board *models.Board) error

	// ReplaceParticipants rewrites the non-owner roster of a board in a
	// single transaction; the owner row is never touched.
	ReplaceParticipants(boardID uint64, participants []models.BoardParticipant) error

	// SoftDeleteCascade marks the board deleted, marks all of its
	// categories deleted, and archives every goal under those categories.
	// All writes commit atomically or not at all.
	SoftDeleteCascade(boardID uint64) error
}

// CategoryFilter holds filtering options for listing categories
type CategoryFilter struct {
	UserID        uint64
	BoardID       *uint64
	CreatorID     *uint64
	Search        string
	OrderByCreate bool
	Page          int
	PageSize      int
}

// CategoryRepository defines the interface for goal category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.GoalCategory) error

	// FindScopedByID finds a live category on a live board the user
	// participates in
	FindScopedByID(id, userID uint64) (*models.GoalCategory, error)

	// List retrieves categories visible to the scoping user with
	// filtering and pagination
	List(filter CategoryFilter) ([]models.GoalCategory, int64, error)

	// Update updates a category
	Update(category *models.GoalCategory) error

	// SoftDelete marks the category deleted. Goals under it are left
	// untouched.
	SoftDelete(id uint64) error
}

// GoalFilter holds filtering options for listing goals
type GoalFilter struct {
	UserID        uint64
	CategoryID    *uint64
	Status        *models.GoalStatus
	Priority      *models.GoalPriority
	DueDateFrom   *time.Time
	DueDateTo     *time.Time // inclusive of the named day
	Search        string
	OrderByDue    bool
	Page          int
	PageSize      int
}

// GoalRepository defines the interface for goal data access
type GoalRepository interface {
	// Create creates a new goal
	Create(goal *models.Goal) error

	// FindScopedByID finds a goal whose category and board are live and
	// whose board the user participates in
	FindScopedByID(id, userID uint64) (*models.Goal, error)

	// List retrieves goals visible to the scoping user with filtering
	// and pagination
	List(filter GoalFilter) ([]models.Goal, int64, error)

	// Update updates a goal
	Update(goal *models.Goal) error
}

// CommentFilter holds filtering options for listing comments
type CommentFilter struct {
	UserID   uint64
	GoalID   *uint64
	Page     int
	PageSize int
}

// CommentRepository defines the interface for goal comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.GoalComment) error

	// FindScopedByID finds a comment reachable through the user's board
	// participation
	FindScopedByID(id, userID uint64) (*models.GoalComment, error)

	// List retrieves comments visible to the scoping user, newest first
	List(filter CommentFilter) ([]models.GoalComment, int64, error)

	// Update updates a comment
	Update(comment *models.GoalComment) error

	// Delete removes a comment
	Delete(id uint64) error
}
