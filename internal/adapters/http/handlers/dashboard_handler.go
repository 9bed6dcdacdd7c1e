package handlers

import (
	"teampulse/internal/core/services"
	"teampulse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns the ranking, chart and recent activity
// @Summary Get dashboard
// @Description Monthly ranking with bonuses. Closed months are served from the archive.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} response.Response{data=services.DashboardData}
// @Failure 400 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	month, err := parseMonthQuery(c, "month")
	if err != nil {
		return respondError(c, err, "Invalid month")
	}

	data, err := h.dashboardService.GetDashboard(c.UserContext(), month)
	if err != nil {
		return respondError(c, err, "Failed to get dashboard data")
	}

	return response.Success(c, "Dashboard data retrieved", data)
}
