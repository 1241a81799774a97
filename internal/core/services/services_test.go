package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"agrisense-api/internal/adapters/llm"
	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/adapters/persistence/repositories"
	"agrisense-api/internal/core/domain"
	"agrisense-api/internal/pkg/jwt"
	"agrisense-api/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the services against an in-memory store
type testEnv struct {
	farmers repositories.FarmerRepository
	assets  repositories.AssetRepository
	hasher  *password.Hasher
	tokens  *jwt.Manager
	log     *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))

	return &testEnv{
		farmers: repositories.NewFarmerRepository(db),
		assets:  repositories.NewAssetRepository(db),
		hasher:  password.NewHasher(password.MinCost),
		tokens:  jwt.NewManager("test-secret", time.Hour),
		log:     zap.NewNop(),
	}
}

func (e *testEnv) authService(provider WeatherProvider) *AuthService {
	return NewAuthService(e.farmers, e.assets, e.hasher, e.tokens, e.enricher(provider), e.log, nil)
}

func (e *testEnv) enricher(provider WeatherProvider) *WeatherEnricher {
	return NewWeatherEnricher(provider, e.farmers, e.log, nil)
}

// seedFarmer stores a farmer directly and returns it
func (e *testEnv) seedFarmer(t *testing.T, farmerID, email string, mutate ...func(*models.Farmer)) *models.Farmer {
	t.Helper()

	hash, err := e.hasher.Hash("password123")
	require.NoError(t, err)

	f := &models.Farmer{
		FarmerID:     farmerID,
		FarmerName:   "Asha",
		Email:        email,
		PasswordHash: hash,
		Role:         string(domain.RoleFarmer),
		State:        "Punjab",
		District:     "Ludhiana",
	}
	for _, m := range mutate {
		m(f)
	}
	require.NoError(t, e.farmers.Create(context.Background(), f))
	return f
}

func claimsFor(farmerID string, role domain.Role) *domain.SessionClaims {
	return &domain.SessionClaims{FarmerID: farmerID, Role: role}
}

func floatPtr(v float64) *float64 { return &v }

// fakeWeather is a WeatherProvider driven by function fields
type fakeWeather struct {
	FetchFunc func(ctx context.Context, district, state string) (*domain.WeatherReading, error)
}

func (f *fakeWeather) FetchCurrent(ctx context.Context, district, state string) (*domain.WeatherReading, error) {
	return f.FetchFunc(ctx, district, state)
}

// fakeModel is a ModelService driven by function fields
type fakeModel struct {
	RecommendFunc func(ctx context.Context, farmerID string) (json.RawMessage, error)
	PredictFunc   func(ctx context.Context, farmerID string) (json.RawMessage, error)
}

func (f *fakeModel) RecommendCrop(ctx context.Context, farmerID string) (json.RawMessage, error) {
	return f.RecommendFunc(ctx, farmerID)
}

func (f *fakeModel) PredictYield(ctx context.Context, farmerID string) (json.RawMessage, error) {
	return f.PredictFunc(ctx, farmerID)
}

// fakeChat is a ChatCompleter driven by a function field
type fakeChat struct {
	CompleteFunc func(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error)
}

func (f *fakeChat) Complete(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return f.CompleteFunc(ctx, messages, opts...)
}

// fakePrices is a PriceSource driven by a function field
type fakePrices struct {
	FetchFunc func(ctx context.Context, query domain.PriceQuery) (*domain.PriceResult, error)
}

func (f *fakePrices) FetchPrices(ctx context.Context, query domain.PriceQuery) (*domain.PriceResult, error) {
	return f.FetchFunc(ctx, query)
}

// fakeImages is an ImageFinder driven by a function field
type fakeImages struct {
	SearchFunc func(ctx context.Context, query string) (string, error)
}

func (f *fakeImages) SearchPhoto(ctx context.Context, query string) (string, error) {
	return f.SearchFunc(ctx, query)
}
