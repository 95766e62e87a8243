package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildxpert/internal/services"
)

type DashboardHandler struct {
	*BaseHandler
	dashboard *services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, dashboard: dashboard}
}

// Summary godoc
// @Summary Back-office dashboard counters
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
