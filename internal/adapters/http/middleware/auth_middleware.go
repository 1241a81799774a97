package middleware

import (
	"errors"
	"strings"

	"agrisense-api/internal/core/domain"
	"agrisense-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// TokenVerifier validates a bearer token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*domain.SessionClaims, error)
}

// AuthMiddleware creates authentication middleware. When roles are given the
// caller's role must be one of them.
func AuthMiddleware(verifier TokenVerifier, roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get token from Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "Access denied, no token provided")
		}

		accessToken, ok := bearerToken(authHeader)
		if !ok {
			return response.BadRequest(c, "Invalid token")
		}

		// 2. Validate token
		claims, err := verifier.Verify(accessToken)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return response.Unauthorized(c, "Token expired")
			}
			return response.BadRequest(c, "Invalid token")
		}

		// 3. Check role
		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			return response.Forbidden(c, "Forbidden")
		}

		// 4. Set claims in context
		c.Locals(claimsKey, claims)

		return c.Next()
	}
}

// FarmerOrAdmin allows both roles
func FarmerOrAdmin(verifier TokenVerifier) fiber.Handler {
	return AuthMiddleware(verifier, domain.RoleFarmer, domain.RoleAdmin)
}

// FarmerOnly allows only the farmer role
func FarmerOnly(verifier TokenVerifier) fiber.Handler {
	return AuthMiddleware(verifier, domain.RoleFarmer)
}

// AdminOnly allows only the admin role
func AdminOnly(verifier TokenVerifier) fiber.Handler {
	return AuthMiddleware(verifier, domain.RoleAdmin)
}

// CurrentClaims returns the claims stored by AuthMiddleware, or nil
func CurrentClaims(c *fiber.Ctx) *domain.SessionClaims {
	claims, _ := c.Locals(claimsKey).(*domain.SessionClaims)
	return claims
}

// bearerToken extracts the credentials of a "Bearer <token>" header. The
// scheme name is case-insensitive (RFC 7235).
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func hasRole(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
