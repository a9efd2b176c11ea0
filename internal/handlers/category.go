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

// CategoryHandler coordinates goal category HTTP handlers.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategory creates a category on a board.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateCategoryRequest struct {
		BoardID uint64 `json:"board" binding:"required"`
		Title   string `json:"title" binding:"required"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.BoardID, req.Title)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// ListCategories returns categories visible to the current user.
// Supports filtering by board and creator, title search, and ordering
// by title or creation date.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	filter := repository.CategoryFilter{
		UserID:        userID,
		Search:        c.Query("search"),
		OrderByCreate: c.Query("ordering") == "created",
		Page:          params.Page,
		PageSize:      params.Limit,
	}

	if boardStr := c.Query("board"); boardStr != "" {
		boardID, err := strconv.ParseUint(boardStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid board filter")
			return
		}
		filter.BoardID = &boardID
	}
	if creatorStr := c.Query("user"); creatorStr != "" {
		creatorID, err := strconv.ParseUint(creatorStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user filter")
			return
		}
		filter.CreatorID = &creatorID
	}

	categories, total, err := h.categoryService.ListCategories(filter)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": dto.ToCategoryDTOs(categories),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetCategory returns a single category.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(userID, categoryID)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// UpdateCategory renames a category.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateCategoryRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, req.Title)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// DeleteCategory soft-deletes a category; its goals keep their status.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}
