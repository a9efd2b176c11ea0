package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goalboard/goalboard-api/internal/dto"
	apierrors "github.com/goalboard/goalboard-api/internal/errors"
	"github.com/goalboard/goalboard-api/internal/middleware"
	"github.com/goalboard/goalboard-api/internal/repository"
	"github.com/goalboard/goalboard-api/internal/services"
	"github.com/goalboard/goalboard-api/internal/utils"
)

// CommentHandler coordinates goal comment HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment attaches a comment to a goal named in the payload.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateCommentRequest struct {
		GoalID uint64 `json:"goal" binding:"required"`
		Text   string `json:"text" binding:"required"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(userID, req.GoalID, req.Text)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments returns comments visible to the current user, newest
// first, optionally filtered by goal.
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	filter := repository.CommentFilter{
		UserID:   userID,
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if goalStr := c.Query("goal"); goalStr != "" {
		goalID, err := strconv.ParseUint(goalStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid goal filter")
			return
		}
		filter.GoalID = &goalID
	}

	comments, total, err := h.commentService.ListComments(filter)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": dto.ToCommentDTOs(comments),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetComment returns a single comment.
func (h *CommentHandler) GetComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	commentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(userID, commentID)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// UpdateComment edits a comment; author only.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	commentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateCommentRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(userID, commentID, req.Text)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment; author only.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	commentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(userID, commentID); err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}
