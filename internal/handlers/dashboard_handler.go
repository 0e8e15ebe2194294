package handlers

import (
	"net/http"

	"store_manager/internal/logger"
	"store_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
	log              *logger.Logger
}

func NewDashboardHandler(dashboardService services.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, log: log}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	snapshot, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
