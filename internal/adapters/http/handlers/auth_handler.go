package handlers

import (
	"errors"
	"strings"

	"agrisense-api/internal/core/domain"
	"agrisense-api/internal/core/services"
	"agrisense-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// SignupRequest represents signup request body
type SignupRequest struct {
	FarmerName   string   `json:"farmerName"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Role         string   `json:"role"`
	State        string   `json:"state"`
	District     string   `json:"district"`
	Crop         string   `json:"crop"`
	Season       string   `json:"season"`
	Year         *int     `json:"year"`
	AreaHectare  *float64 `json:"areaHectare"`
	YieldQuintal *float64 `json:"yieldQuintal"`
	N            *float64 `json:"N"`
	P            *float64 `json:"P"`
	K            *float64 `json:"K"`
	Temperature  *float64 `json:"temperature"`
	Humidity     *float64 `json:"humidity"`
	Ph           *float64 `json:"ph"`
	Rainfall     *float64 `json:"rainfall"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	FarmerID string `json:"farmerId"`
}

// Signup handles farmer registration
// @Summary Register new farmer
// @Description Create a farmer account and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "Signup data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /farmer/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.SignupInput{
		FarmerName:   strings.TrimSpace(req.FarmerName),
		Email:        strings.TrimSpace(req.Email),
		Password:     req.Password,
		Role:         strings.TrimSpace(req.Role),
		State:        strings.TrimSpace(req.State),
		District:     strings.TrimSpace(req.District),
		Crop:         strings.TrimSpace(req.Crop),
		Season:       strings.TrimSpace(req.Season),
		Year:         req.Year,
		AreaHectare:  req.AreaHectare,
		YieldQuintal: req.YieldQuintal,
		N:            req.N,
		P:            req.P,
		K:            req.K,
		Temperature:  req.Temperature,
		Humidity:     req.Humidity,
		Ph:           req.Ph,
		Rainfall:     req.Rainfall,
	}

	result, err := h.authService.Signup(c.Context(), input)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Message:  "Farmer registered successfully",
		Token:    result.Token,
		FarmerID: result.FarmerID,
	})
}

// Login handles farmer login
// @Summary Login farmer
// @Description Authenticate a farmer, refresh weather readings and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /farmer/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		// unknown email and wrong password look the same to the caller
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			return response.BadRequest(c, "Invalid credentials")
		}
		return handleError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Message:  "Login successful",
		Token:    result.Token,
		FarmerID: result.FarmerID,
	})
}
