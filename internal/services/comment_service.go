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

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrTextRequired    = errors.New("comment text is required")
)

// CommentService provides business logic for goal comments. Visibility
// runs transitively through goal, category and board; mutation is
// reserved for the author.
type CommentService struct {
	commentRepo  repository.CommentRepository
	goalRepo     repository.GoalRepository
	categoryRepo repository.CategoryRepository
	boardRepo    repository.BoardRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, goalRepo repository.GoalRepository, categoryRepo repository.CategoryRepository, boardRepo repository.BoardRepository) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		boardRepo:    boardRepo,
	}
}

// CreateComment attaches a comment to a goal. The goal id comes from
// the request payload, not the path.
func (s *CommentService) CreateComment(userID, goalID uint64, text string) (*models.GoalComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	membership, err := s.goalMembership(userID, goalID)
	if err != nil {
		return nil, err
	}

	if !(permissions.GoalRule{}).Allow(membership, permissions.ActionWrite) {
		return nil, ErrPermissionDenied
	}

	comment := &models.GoalComment{
		Text:   text,
		GoalID: goalID,
		UserID: userID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListComments returns comments visible to the user, newest first.
func (s *CommentService) ListComments(filter repository.CommentFilter) ([]models.GoalComment, int64, error) {
	comments, total, err := s.commentRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

// GetComment returns a comment the user can see.
func (s *CommentService) GetComment(userID, commentID uint64) (*models.GoalComment, error) {
	comment, _, err := s.resolveComment(userID, commentID, permissions.ActionRead)
	return comment, err
}

// UpdateComment edits the comment text; only the author may do this.
func (s *CommentService) UpdateComment(userID, commentID uint64, text string) (*models.GoalComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	comment, _, err := s.resolveComment(userID, commentID, permissions.ActionWrite)
	if err != nil {
		return nil, err
	}

	comment.Text = text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment removes a comment; only the author may do this.
func (s *CommentService) DeleteComment(userID, commentID uint64) error {
	if _, _, err := s.resolveComment(userID, commentID, permissions.ActionDelete); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// resolveComment loads a visible comment and evaluates the comment rule.
// Participants who are not the author get PermissionDenied on writes:
// they can already see the comment, so there is nothing to mask.
func (s *CommentService) resolveComment(userID, commentID uint64, action permissions.Action) (*models.GoalComment, *models.BoardParticipant, error) {
	comment, err := s.commentRepo.FindScopedByID(commentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCommentNotFound
		}
		return nil, nil, fmt.Errorf("failed to find comment: %w", err)
	}

	membership, err := s.goalMembership(userID, comment.GoalID)
	if err != nil {
		return nil, nil, err
	}

	rule := permissions.CommentRule{AuthorID: comment.UserID, ActorID: userID}
	if !rule.Allow(membership, action) {
		return nil, nil, ErrPermissionDenied
	}

	return comment, membership, nil
}

// goalMembership resolves the actor's membership on the board that a
// goal belongs to, masking every gap in the chain as goal-not-found.
func (s *CommentService) goalMembership(userID, goalID uint64) (*models.BoardParticipant, error) {
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

	return membership, nil
}
