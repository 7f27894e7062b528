package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internos/internos-api/internal/dto"
	apierrors "github.com/internos/internos-api/internal/errors"
	"github.com/internos/internos-api/internal/services"
	"github.com/internos/internos-api/internal/utils"
)

// ActivityHandler serves the audit trail feed.
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// List returns a page of activity entries, newest first.
func (h *ActivityHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	entries, total, err := h.activityService.List(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch activity")
		return
	}

	items := make([]dto.ActivityEntryDTO, len(entries))
	for i, entry := range entries {
		items[i] = dto.ToActivityEntryDTO(entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
