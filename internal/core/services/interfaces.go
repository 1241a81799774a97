package services

import (
	"context"
	"encoding/json"

	"agrisense-api/internal/adapters/llm"
	"agrisense-api/internal/core/domain"
)

// PasswordHasher is the one-way hash primitive used by the auth workflow
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(farmerID, email string, role domain.Role) (string, error)
}

// WeatherProvider fetches current conditions for a district/state pair
type WeatherProvider interface {
	FetchCurrent(ctx context.Context, district, state string) (*domain.WeatherReading, error)
}

// ModelService is the external crop/yield model
type ModelService interface {
	RecommendCrop(ctx context.Context, farmerID string) (json.RawMessage, error)
	PredictYield(ctx context.Context, farmerID string) (json.RawMessage, error)
}

// ChatCompleter is an OpenAI-compatible chat backend
type ChatCompleter interface {
	Complete(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error)
}

// PriceSource looks up mandi (wholesale market) prices
type PriceSource interface {
	FetchPrices(ctx context.Context, query domain.PriceQuery) (*domain.PriceResult, error)
}

// ImageFinder returns a photo URL matching a search query
type ImageFinder interface {
	SearchPhoto(ctx context.Context, query string) (string, error)
}
