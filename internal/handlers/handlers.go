package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/goalboard/goalboard-api/internal/errors"
	"github.com/goalboard/goalboard-api/internal/services"
)

// parseIDParam reads a numeric id from the request path.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

// respondResourceError maps service errors from the lifecycle services
// onto HTTP responses. Scoped-out resources arrive here as not-found
// sentinels, so absence and inaccessibility answer identically.
func respondResourceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrGoalNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTextRequired),
		errors.Is(err, services.ErrInvalidGoalStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrArchivedAtCreation),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrOwnerInRoster),
		errors.Is(err, services.ErrDuplicateInRoster),
		errors.Is(err, services.ErrUnknownRosterUser):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
