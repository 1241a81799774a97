package config

import (
	"context"
	"errors"
	"strings"

	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/adapters/persistence/repositories"
	"agrisense-api/internal/core/domain"
	"agrisense-api/internal/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	farmers repositories.FarmerRepository
	hasher  *password.Hasher
	admin   AdminSeedConfig
	log     *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, hasher *password.Hasher, admin AdminSeedConfig, log *zap.Logger) *Seeder {
	return &Seeder{
		farmers: repositories.NewFarmerRepository(db),
		hasher:  hasher,
		admin:   admin,
		log:     log,
	}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	s.log.Info("running database seeders")

	if err := s.seedAdmin(ctx); err != nil {
		s.log.Warn("admin seeder skipped", zap.Error(err))
	}

	return nil
}

// seedAdmin creates the bootstrap admin account once. It is the only way to
// obtain an admin besides signing up with role=admin.
func (s *Seeder) seedAdmin(ctx context.Context) error {
	email := strings.TrimSpace(s.admin.Email)
	if email == "" || s.admin.Password == "" {
		s.log.Debug("no ADMIN_EMAIL/ADMIN_PASSWORD, skipping admin seed")
		return nil
	}
	if !password.ValidatePassword(s.admin.Password) {
		return errors.New("ADMIN_PASSWORD is too short")
	}

	exists, err := s.farmers.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := s.hasher.Hash(s.admin.Password)
	if err != nil {
		return err
	}
	farmerID, err := domain.NewFarmerID()
	if err != nil {
		return err
	}

	name := s.admin.Name
	if name == "" {
		name = "Administrator"
	}

	admin := &models.Farmer{
		FarmerID:     farmerID,
		FarmerName:   name,
		Email:        email,
		PasswordHash: hash,
		Role:         string(domain.RoleAdmin),
	}
	if err := s.farmers.Create(ctx, admin); err != nil {
		// another instance won the race
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil
		}
		return err
	}

	s.log.Info("admin account created", zap.String("farmer_id", farmerID), zap.String("email", email))
	return nil
}
