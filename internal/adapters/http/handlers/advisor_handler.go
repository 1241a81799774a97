package handlers

import (
	"errors"

	"agrisense-api/internal/adapters/http/middleware"
	"agrisense-api/internal/core/domain"
	"agrisense-api/internal/core/services"
	"agrisense-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdvisorHandler handles AI advisory endpoints
type AdvisorHandler struct {
	advisorService *services.AdvisorService
	log            *zap.Logger
}

// NewAdvisorHandler creates a new advisor handler
func NewAdvisorHandler(advisorService *services.AdvisorService, log *zap.Logger) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService, log: log}
}

// ChatRequest represents chat request body
type ChatRequest struct {
	Text string `json:"text"`
}

// FinanceAdviceRequest represents finance advice request body
type FinanceAdviceRequest struct {
	Language string `json:"language" example:"en"`
}

// CropPricesResponse wraps a page of market prices
type CropPricesResponse struct {
	Message string               `json:"message"`
	Data    *services.CropPrices `json:"data"`
}

// RecommendCrop forwards the caller to the crop recommendation model
// @Summary Crop recommendation
// @Tags Advisor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} response.ErrorBody
// @Router /farmer/recommend-crop [post]
func (h *AdvisorHandler) RecommendCrop(c *fiber.Ctx) error {
	out, err := h.advisorService.RecommendCrop(c.Context(), middleware.CurrentClaims(c))
	if err != nil {
		return handleError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(out)
}

// PredictYield forwards the caller to the yield prediction model
// @Summary Yield prediction
// @Tags Advisor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} response.ErrorBody
// @Router /farmer/predict-yield [post]
func (h *AdvisorHandler) PredictYield(c *fiber.Ctx) error {
	out, err := h.advisorService.PredictYield(c.Context(), middleware.CurrentClaims(c))
	if err != nil {
		return handleError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(out)
}

// Chat answers a question using the caller's farm data as context
// @Summary Agricultural assistant chat
// @Tags Advisor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChatRequest true "Question"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /farmer/chat [post]
func (h *AdvisorHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reply, err := h.advisorService.Chat(c.Context(), middleware.CurrentClaims(c), req.Text)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{"response": reply})
}

// CropPrices returns mandi prices, defaulting to the caller's state
// @Summary Market crop prices
// @Description Daily wholesale prices from Agmarknet. Without a state filter the farmer's own state is used.
// @Tags Advisor
// @Produce json
// @Security BearerAuth
// @Param state query string false "State"
// @Param district query string false "District"
// @Param market query string false "Market"
// @Param commodity query string false "Commodity"
// @Param variety query string false "Variety"
// @Param grade query string false "Grade"
// @Param limit query int false "Records per page" default(10)
// @Param offset query int false "Records to skip" default(0)
// @Success 200 {object} CropPricesResponse
// @Failure 502 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /farmer/crop-prices [get]
func (h *AdvisorHandler) CropPrices(c *fiber.Ctx) error {
	query := domain.PriceQuery{
		State:     c.Query("state"),
		District:  c.Query("district"),
		Market:    c.Query("market"),
		Commodity: c.Query("commodity"),
		Variety:   c.Query("variety"),
		Grade:     c.Query("grade"),
		Limit:     c.QueryInt("limit", 10),
		Offset:    c.QueryInt("offset", 0),
	}

	out, err := h.advisorService.CropPrices(c.Context(), middleware.CurrentClaims(c), query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrServiceNotConfigured):
			return response.ServiceUnavailable(c, "Crop price service is not configured on the server.")
		case errors.Is(err, domain.ErrServiceUnavailable):
			return response.ServiceUnavailable(c, "Crop price service is unavailable. Please try again later.")
		}
		return handleError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(CropPricesResponse{
		Message: "Crop prices fetched successfully",
		Data:    out,
	})
}

// FinanceAdvice generates finance tips for farmers
// @Summary Finance advice
// @Description Six AI-generated finance tips, each with an illustrative photo
// @Tags Advisor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FinanceAdviceRequest false "Language: en, hi or kn"
// @Success 200 {array} services.FinanceTip
// @Failure 502 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /farmer/finance-advice [post]
func (h *AdvisorHandler) FinanceAdvice(c *fiber.Ctx) error {
	var req FinanceAdviceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	tips, err := h.advisorService.FinanceAdvice(c.Context(), middleware.CurrentClaims(c), req.Language)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(tips)
}
