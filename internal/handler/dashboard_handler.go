package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/service"
	"github.com/gco-office/gco-api/pkg/response"
)

// DashboardHandler serves the staff dashboard aggregates.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview godoc
// @Summary Dashboard overview counters and distributions
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// Refresh godoc
// @Summary Drop the cached dashboard so the next read rebuilds it
// @Tags Dashboard
// @Produce json
// @Success 204 {object} nil
// @Router /dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	h.dashboard.Invalidate(c.Request.Context())
	response.NoContent(c)
}
