package handlers

import (
	"agrisense-api/internal/adapters/http/middleware"
	"agrisense-api/internal/core/services"
	"agrisense-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssetHandler handles farmer asset endpoints
type AssetHandler struct {
	assetService *services.AssetService
	log          *zap.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService *services.AssetService, log *zap.Logger) *AssetHandler {
	return &AssetHandler{assetService: assetService, log: log}
}

// GetAssets returns a farmer's assets
// @Summary Get farmer assets
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param farmerId path string true "Farmer ID"
// @Success 200 {object} services.AssetLists
// @Failure 403 {object} response.ErrorBody
// @Router /farmer/assets/{farmerId} [get]
func (h *AssetHandler) GetAssets(c *fiber.Ctx) error {
	lists, err := h.assetService.Get(c.Context(), middleware.CurrentClaims(c), c.Params("farmerId"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.JSON(c, fiber.StatusOK, lists)
}

// SaveAssets replaces a farmer's assets
// @Summary Save farmer assets
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SaveAssetsInput true "Assets"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /farmer/assets [post]
func (h *AssetHandler) SaveAssets(c *fiber.Ctx) error {
	var req services.SaveAssetsInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	lists, err := h.assetService.Save(c.Context(), middleware.CurrentClaims(c), &req)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return response.Success(c, "Assets saved successfully", fiber.Map{"assets": lists})
}

// GetStats returns asset counts for a farmer
// @Summary Farmer asset statistics
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param farmerId path string true "Farmer ID"
// @Success 200 {object} services.AssetStats
// @Failure 403 {object} response.ErrorBody
// @Router /farmer/assets/{farmerId}/stats [get]
func (h *AssetHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.assetService.Stats(c.Context(), middleware.CurrentClaims(c), c.Params("farmerId"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.JSON(c, fiber.StatusOK, stats)
}

// ListAll returns every asset record with totals (admin)
// @Summary All farmer assets
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.AdminAssetsOutput
// @Router /admin/assets [get]
func (h *AssetHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.assetService.AdminSummary(c.Context())
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}
