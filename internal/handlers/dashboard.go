package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/internos/internos-api/internal/errors"
	"github.com/internos/internos-api/internal/services"
)

// DashboardHandler serves the admin rollup.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats returns the dashboard counters, recomputed on every call.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats()
	if err != nil {
		apierrors.InternalError(c, "Failed to compute dashboard stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
