package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role represents a farmer account role
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the two known roles
func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleAdmin
}

// ParseRole returns the role named by s; an empty string yields RoleFarmer
func ParseRole(s string) (Role, bool) {
	if s == "" {
		return RoleFarmer, true
	}
	r := Role(s)
	return r, r.Valid()
}

// SessionClaims is the identity carried by a bearer token
type SessionClaims struct {
	FarmerID  string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// IsAdmin reports whether the session belongs to an admin
func (c *SessionClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// CanAccess reports whether the session may act on farmerID's records
func (c *SessionClaims) CanAccess(farmerID string) bool {
	return c != nil && (c.FarmerID == farmerID || c.IsAdmin())
}

// WeatherReading is the current conditions returned by a weather provider
type WeatherReading struct {
	Temperature      float64
	Humidity         float64
	RainfallLastHour float64
	Location         string
}

// NewFarmerID returns "F" followed by a time-ordered UUIDv7 in hex
func NewFarmerID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return "F" + strings.ReplaceAll(id.String(), "-", ""), nil
}
