package handlers

import (
	"encoding/json"

	"agrisense-api/internal/adapters/http/middleware"
	"agrisense-api/internal/core/services"
	"agrisense-api/internal/pkg/pagination"
	"agrisense-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FarmerHandler handles farmer profile endpoints
type FarmerHandler struct {
	farmerService *services.FarmerService
	log           *zap.Logger
}

// NewFarmerHandler creates a new farmer handler
func NewFarmerHandler(farmerService *services.FarmerService, log *zap.Logger) *FarmerHandler {
	return &FarmerHandler{
		farmerService: farmerService,
		log:           log,
	}
}

// GetProfile returns the caller's profile
// @Summary Get my profile
// @Tags Farmer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.FarmerResponse
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /farmer/profile [get]
func (h *FarmerHandler) GetProfile(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	farmer, err := h.farmerService.GetProfile(c.Context(), claims.FarmerID)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return response.JSON(c, fiber.StatusOK, farmer)
}

// UpdateProfile applies a partial update to the caller's profile
// @Summary Update my profile
// @Description Only agronomic and location fields may change; identity fields are rejected
// @Tags Farmer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Router /farmer/update [put]
func (h *FarmerHandler) UpdateProfile(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	var body map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	farmer, err := h.farmerService.UpdateProfile(c.Context(), claims.FarmerID, body)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return response.Success(c, "Profile updated", fiber.Map{"farmer": farmer})
}

// ListFarmers lists every farmer (admin)
// @Summary List farmers
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} pagination.Response
// @Failure 403 {object} response.ErrorBody
// @Router /admin/farmers [get]
func (h *FarmerHandler) ListFarmers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.farmerService.ListFarmers(c.Context(), params)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return response.JSON(c, fiber.StatusOK, result)
}
