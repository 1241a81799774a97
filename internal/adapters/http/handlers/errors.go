package handlers

import (
	"errors"
	"net/http"
	"strings"

	"agrisense-api/internal/core/domain"
	"agrisense-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// handleError maps service errors onto the JSON error taxonomy. Anything
// unrecognised is logged and answered with a generic 500.
func handleError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var upstream *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrValidation):
		return response.BadRequest(c, detailOf(err, domain.ErrValidation, "Invalid request"))
	case errors.Is(err, domain.ErrDuplicateAccount):
		return response.BadRequest(c, "Farmer already exists")
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Farmer not found")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "Access denied")
	case errors.Is(err, domain.ErrServiceNotConfigured):
		return response.ServiceUnavailable(c, "AI service is not configured on the server.")
	case errors.As(err, &upstream):
		status := upstream.StatusCode
		if status < http.StatusBadRequest || status > 599 {
			status = fiber.StatusBadGateway
		}
		return response.Error(c, status, upstream.Detail)
	case errors.Is(err, domain.ErrMalformedResponse):
		return response.Error(c, fiber.StatusBadGateway, detailOf(err, domain.ErrMalformedResponse, "AI returned an unexpected format."))
	case errors.Is(err, domain.ErrServiceUnavailable):
		return response.ServiceUnavailable(c, "AI service is unavailable. Please try again later.")
	default:
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return response.InternalServerError(c, "Internal Server Error")
	}
}

// detailOf strips the "<sentinel>: " prefix added by fmt.Errorf("%w: ...")
func detailOf(err, sentinel error, fallback string) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return fallback
	}
	return msg
}
