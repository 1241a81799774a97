package handlers

import (
	"agrisense-api/internal/adapters/http/middleware"
	"agrisense-api/internal/core/services"
	"agrisense-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	log              *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		log:              log,
	}
}

// GetFarmerDashboard returns the caller's dashboard
// @Summary Farmer dashboard
// @Description Refreshes weather readings best-effort, then returns soil health, crop scores and yield history
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.DashboardData
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /farmer/dashboard [get]
func (h *DashboardHandler) GetFarmerDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetFarmerDashboard(c.Context(), middleware.CurrentClaims(c))
	if err != nil {
		return handleError(c, h.log, err)
	}

	return response.JSON(c, fiber.StatusOK, data)
}
