package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goalboard/goalboard-api/internal/dto"
	apierrors "github.com/goalboard/goalboard-api/internal/errors"
	"github.com/goalboard/goalboard-api/internal/middleware"
	"github.com/goalboard/goalboard-api/internal/models"
	"github.com/goalboard/goalboard-api/internal/services"
	"github.com/goalboard/goalboard-api/internal/utils"
)

// BoardHandler coordinates board HTTP handlers.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// CreateBoard creates a board owned by the current user.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateBoardRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(userID, req.Title)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*board))
}

// ListBoards returns boards the current user participates in, ordered
// by title.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	boards, total, err := h.boardService.ListBoards(userID, params.Page, params.Limit)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	boardDTOs := make([]dto.BoardDTO, len(boards))
	for i, board := range boards {
		boardDTOs[i] = dto.ToBoardDTO(board)
	}

	c.JSON(http.StatusOK, gin.H{
		"boards": boardDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetBoard returns a board with its participant roster.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	boardID, ok := parseIDParam(c)
	if !ok {
		return
	}

	board, participants, role, err := h.boardService.GetBoard(userID, boardID)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDetailDTO(*board, participants, role))
}

// UpdateBoard updates the title and participant roster; owner only.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	boardID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type RosterEntryRequest struct {
		UserID uint64                 `json:"user_id" binding:"required"`
		Role   models.ParticipantRole `json:"role" binding:"required"`
	}
	type UpdateBoardRequest struct {
		Title        *string              `json:"title"`
		Participants []RosterEntryRequest `json:"participants"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateBoardInput{Title: req.Title}
	if req.Participants != nil {
		input.Participants = make([]services.RosterEntry, len(req.Participants))
		for i, entry := range req.Participants {
			input.Participants[i] = services.RosterEntry{
				UserID: entry.UserID,
				Role:   entry.Role,
			}
		}
	}

	board, err := h.boardService.UpdateBoard(userID, boardID, input)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// DeleteBoard soft-deletes the board with the full cascade; owner only.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	boardID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(userID, boardID); err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board deleted successfully",
	})
}
