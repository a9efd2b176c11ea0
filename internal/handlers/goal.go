package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goalboard/goalboard-api/internal/dto"
	apierrors "github.com/goalboard/goalboard-api/internal/errors"
	"github.com/goalboard/goalboard-api/internal/middleware"
	"github.com/goalboard/goalboard-api/internal/models"
	"github.com/goalboard/goalboard-api/internal/repository"
	"github.com/goalboard/goalboard-api/internal/services"
	"github.com/goalboard/goalboard-api/internal/utils"
)

// GoalHandler coordinates goal HTTP handlers.
type GoalHandler struct {
	goalService *services.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// CreateGoal creates a goal under a category.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateGoalRequest struct {
		CategoryID  uint64              `json:"category" binding:"required"`
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Status      models.GoalStatus   `json:"status"`
		Priority    models.GoalPriority `json:"priority"`
		DueDate     *time.Time          `json:"due_date"`
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	goal, err := h.goalService.CreateGoal(userID, services.CreateGoalInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGoalDTO(*goal))
}

// ListGoals returns goals visible to the current user. Supports
// filtering by category, status, priority and due date range, search
// over title and description, and due-date ordering.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	filter := repository.GoalFilter{
		UserID:     userID,
		Search:     c.Query("search"),
		OrderByDue: c.Query("ordering") == "due_date",
		Page:       params.Page,
		PageSize:   params.Limit,
	}

	if categoryStr := c.Query("category"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid category filter")
			return
		}
		filter.CategoryID = &categoryID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.GoalStatus(statusStr)
		if !status.Valid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Status = &status
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		value, err := strconv.Atoi(priorityStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid priority filter")
			return
		}
		priority := models.GoalPriority(value)
		if !priority.Valid() {
			apierrors.BadRequest(c, "Invalid priority filter")
			return
		}
		filter.Priority = &priority
	}
	if fromStr := c.Query("due_date_from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date_from, expected YYYY-MM-DD")
			return
		}
		filter.DueDateFrom = &from
	}
	if toStr := c.Query("due_date_to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date_to, expected YYYY-MM-DD")
			return
		}
		filter.DueDateTo = &to
	}

	goals, total, err := h.goalService.ListGoals(filter)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goals": dto.ToGoalDTOs(goals),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetGoal returns a single goal.
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	goalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoal(userID, goalID)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalDTO(*goal))
}

// UpdateGoal updates goal fields.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	goalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateGoalRequest struct {
		Title        *string              `json:"title"`
		Description  *string              `json:"description"`
		Status       *models.GoalStatus   `json:"status"`
		Priority     *models.GoalPriority `json:"priority"`
		DueDate      *time.Time           `json:"due_date"`
		ClearDueDate bool                 `json:"clear_due_date"`
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, services.UpdateGoalInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	})
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalDTO(*goal))
}

// DeleteGoal archives a goal. Repeating the call is a no-op success.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	goalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Goal archived successfully",
	})
}
