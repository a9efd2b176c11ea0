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
	ErrBoardNotFound     = errors.New("board not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidRole       = errors.New("participant role must be writer or reader")
	ErrOwnerInRoster     = errors.New("the board owner cannot appear in the participant roster")
	ErrDuplicateInRoster = errors.New("a user appears more than once in the participant roster")
	ErrUnknownRosterUser = errors.New("one or more roster users do not exist")
)

// BoardService provides business logic for board operations, including
// the cascading soft-delete.
type BoardService struct {
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, userRepo repository.UserRepository) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		userRepo:  userRepo,
	}
}

// CreateBoard creates a board with the acting user as its sole owner
// participant.
func (s *BoardService) CreateBoard(userID uint64, title string) (*models.Board, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	board := &models.Board{Title: title}
	if err := s.boardRepo.CreateWithOwner(board, userID); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return board, nil
}

// ListBoards returns non-deleted boards the user participates in.
func (s *BoardService) ListBoards(userID uint64, page, pageSize int) ([]models.Board, int64, error) {
	boards, total, err := s.boardRepo.ListForUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, total, nil
}

// GetBoard returns a board, its participants and the actor's role.
// Boards the user does not participate in are reported as not found.
func (s *BoardService) GetBoard(userID, boardID uint64) (*models.Board, []models.BoardParticipant, models.ParticipantRole, error) {
	board, membership, err := s.resolveBoard(userID, boardID, permissions.ActionRead)
	if err != nil {
		return nil, nil, "", err
	}

	participants, err := s.boardRepo.ListParticipants(boardID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to list participants: %w", err)
	}

	return board, participants, membership.Role, nil
}

// RosterEntry is one requested non-owner participant.
type RosterEntry struct {
	UserID uint64
	Role   models.ParticipantRole
}

// UpdateBoardInput represents mutable board fields.
type UpdateBoardInput struct {
	Title        *string
	Participants []RosterEntry
}

// UpdateBoard updates the title and, when a roster is supplied,
// replaces the non-owner participants. The owner row is immutable:
// exactly one owner per board, always the creator.
func (s *BoardService) UpdateBoard(userID, boardID uint64, input UpdateBoardInput) (*models.Board, error) {
	board, membership, err := s.resolveBoard(userID, boardID, permissions.ActionWrite)
	if err != nil {
		return nil, err
	}

	// Validate everything before writing anything, so a rejected
	// request leaves the board untouched.
	var rows []models.BoardParticipant
	if input.Participants != nil {
		rows, err = s.validateRoster(boardID, membership.UserID, input.Participants)
		if err != nil {
			return nil, err
		}
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		board.Title = *input.Title
		if err := s.boardRepo.Update(board); err != nil {
			return nil, fmt.Errorf("failed to update board: %w", err)
		}
	}

	if input.Participants != nil {
		if err := s.boardRepo.ReplaceParticipants(boardID, rows); err != nil {
			return nil, fmt.Errorf("failed to replace participants: %w", err)
		}
	}

	return board, nil
}

// DeleteBoard soft-deletes the board and cascades: all of its
// categories become deleted and every goal under them is archived, in
// one atomic transaction.
func (s *BoardService) DeleteBoard(userID, boardID uint64) error {
	if _, _, err := s.resolveBoard(userID, boardID, permissions.ActionDelete); err != nil {
		return err
	}

	if err := s.boardRepo.SoftDeleteCascade(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	return nil
}

// resolveBoard loads a live board, checks the actor's membership and
// evaluates the board rule for the action. Missing boards and missing
// memberships are indistinguishable to the caller.
func (s *BoardService) resolveBoard(userID, boardID uint64, action permissions.Action) (*models.Board, *models.BoardParticipant, error) {
	board, err := s.boardRepo.FindLiveByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBoardNotFound
		}
		return nil, nil, fmt.Errorf("failed to find board: %w", err)
	}

	membership, err := s.boardRepo.FindParticipant(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBoardNotFound
		}
		return nil, nil, fmt.Errorf("failed to verify board membership: %w", err)
	}

	if !(permissions.BoardRule{}).Allow(membership, action) {
		return nil, nil, ErrPermissionDenied
	}

	return board, membership, nil
}

func (s *BoardService) validateRoster(boardID, ownerID uint64, entries []RosterEntry) ([]models.BoardParticipant, error) {
	seen := make(map[uint64]struct{}, len(entries))
	rows := make([]models.BoardParticipant, 0, len(entries))

	for _, entry := range entries {
		if entry.UserID == ownerID {
			return nil, ErrOwnerInRoster
		}
		if _, dup := seen[entry.UserID]; dup {
			return nil, ErrDuplicateInRoster
		}
		seen[entry.UserID] = struct{}{}

		if entry.Role != models.RoleWriter && entry.Role != models.RoleReader {
			return nil, ErrInvalidRole
		}

		if _, err := s.userRepo.FindByID(entry.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownRosterUser
			}
			return nil, fmt.Errorf("failed to verify roster user: %w", err)
		}

		rows = append(rows, models.BoardParticipant{
			BoardID: boardID,
			UserID:  entry.UserID,
			Role:    entry.Role,
		})
	}

	return rows, nil
}
