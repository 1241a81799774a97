package response

import "github.com/gofiber/fiber/v2"

// ErrorBody is the body of every failed request
type ErrorBody struct {
	Error string `json:"error"`
}

// Message builds a success body {"message": ..., ...fields}
func Message(message string, fields fiber.Map) fiber.Map {
	body := fiber.Map{"message": message}
	for k, v := range fields {
		body[k] = v
	}
	return body
}

// Success sends a 200 response with a message and extra top-level fields
func Success(c *fiber.Ctx, message string, fields fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(Message(message, fields))
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, fields fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(Message(message, fields))
}

// JSON sends v as-is with the given status
func JSON(c *fiber.Ctx, statusCode int, v interface{}) error {
	return c.Status(statusCode).JSON(v)
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusServiceUnavailable, message)
}
