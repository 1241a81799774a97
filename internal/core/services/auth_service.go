package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/adapters/persistence/repositories"
	"agrisense-api/internal/core/domain"
	"agrisense-api/internal/pkg/metrics"
	"agrisense-api/internal/pkg/password"

	"go.uber.org/zap"
)

// AuthService coordinates signup and login
type AuthService struct {
	farmers  repositories.FarmerRepository
	assets   repositories.AssetRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	enricher *WeatherEnricher
	log      *zap.Logger
	metrics  *metrics.Metrics
	newID    func() (string, error)
}

// NewAuthService creates a new auth service
func NewAuthService(
	farmers repositories.FarmerRepository,
	assets repositories.AssetRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	enricher *WeatherEnricher,
	log *zap.Logger,
	m *metrics.Metrics,
) *AuthService {
	return &AuthService{
		farmers:  farmers,
		assets:   assets,
		hasher:   hasher,
		tokens:   tokens,
		enricher: enricher,
		log:      log,
		metrics:  m,
		newID:    domain.NewFarmerID,
	}
}

// SignupInput represents signup input
type SignupInput struct {
	FarmerName   string
	Email        string
	Password     string
	Role         string
	State        string
	District     string
	Crop         string
	Season       string
	Year         *int
	AreaHectare  *float64
	YieldQuintal *float64
	N            *float64
	P            *float64
	K            *float64
	Temperature  *float64
	Humidity     *float64
	Ph           *float64
	Rainfall     *float64
}

// LoginInput represents login input
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by Signup and Login. It never carries the hash.
type AuthResult struct {
	Token    string                 `json:"token"`
	FarmerID string                 `json:"farmerId"`
	Farmer   *models.FarmerResponse `json:"farmer"`
}

// Signup registers a new farmer and issues a token
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*AuthResult, error) {
	result, err := s.signup(ctx, input)
	s.metrics.RecordAuth("signup", outcomeOf(err))
	return result, err
}

func (s *AuthService) signup(ctx context.Context, input *SignupInput) (*AuthResult, error) {
	role, err := validateSignup(input)
	if err != nil {
		return nil, err
	}

	// 1. Reject known emails early; the unique index still decides races
	exists, err := s.farmers.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateAccount
	}

	// 2. Hash password
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 3. Generate farmerId
	farmerID, err := s.newID()
	if err != nil {
		return nil, err
	}

	// 4. Persist
	farmer := &models.Farmer{
		FarmerID:     farmerID,
		FarmerName:   input.FarmerName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         string(role),
		State:        input.State,
		District:     input.District,
		Crop:         input.Crop,
		Season:       input.Season,
		Year:         input.Year,
		AreaHectare:  input.AreaHectare,
		YieldQuintal: input.YieldQuintal,
		N:            input.N,
		P:            input.P,
		K:            input.K,
		Temperature:  input.Temperature,
		Humidity:     input.Humidity,
		Ph:           input.Ph,
		Rainfall:     input.Rainfall,
	}
	if err := s.farmers.Create(ctx, farmer); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.ErrDuplicateAccount
		}
		return nil, err
	}

	// Asset bookkeeping is lazily recreated on read, so a failure here is not fatal
	if s.assets != nil {
		empty := &models.FarmerAssets{FarmerID: farmerID, Sensors: []models.Asset{}, Cameras: []models.Asset{}, Drones: []models.Asset{}}
		if err := s.assets.Upsert(ctx, empty); err != nil {
			s.log.Warn("failed to initialise farmer assets", zap.String("farmer_id", farmerID), zap.Error(err))
		}
	}

	// 5. Issue token only after the account is persisted
	token, err := s.tokens.Issue(farmer.FarmerID, farmer.Email, role)
	if err != nil {
		return nil, err
	}

	s.log.Info("farmer registered", zap.String("farmer_id", farmerID), zap.String("role", string(role)))

	return &AuthResult{
		Token:    token,
		FarmerID: farmerID,
		Farmer:   farmer.ToResponse(),
	}, nil
}

// Login authenticates a farmer, refreshes weather best-effort and issues a token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	result, err := s.login(ctx, input)
	s.metrics.RecordAuth("login", outcomeOf(err))
	return result, err
}

func (s *AuthService) login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	if input == nil || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	// 1. Find farmer by email
	farmer, err := s.farmers.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	// 2. Verify password
	if !s.hasher.Verify(input.Password, farmer.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Best-effort weather refresh; never changes the outcome of login
	if enriched, ok := s.enricher.Enrich(ctx, farmer); ok {
		farmer = enriched
	}

	// 4. Issue token
	token, err := s.tokens.Issue(farmer.FarmerID, farmer.Email, domain.Role(farmer.Role))
	if err != nil {
		return nil, err
	}

	s.log.Info("farmer logged in", zap.String("farmer_id", farmer.FarmerID))

	return &AuthResult{
		Token:    token,
		FarmerID: farmer.FarmerID,
		Farmer:   farmer.ToResponse(),
	}, nil
}

func validateSignup(input *SignupInput) (domain.Role, error) {
	if input == nil {
		return "", fmt.Errorf("%w: request body is required", domain.ErrValidation)
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"farmerName", input.FarmerName},
		{"email", input.Email},
		{"password", input.Password},
		{"state", input.State},
		{"district", input.District},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}

	if addr, err := mail.ParseAddress(input.Email); err != nil || addr.Address != input.Email {
		return "", fmt.Errorf("%w: email is not a valid address", domain.ErrValidation)
	}

	if !password.ValidatePassword(input.Password) {
		return "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, password.MinLength)
	}

	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return "", fmt.Errorf("%w: role must be one of farmer, admin", domain.ErrValidation)
	}

	return role, nil
}

func outcomeOf(err error) string {
	if err != nil {
		return metrics.OutcomeFailure
	}
	return metrics.OutcomeSuccess
}
