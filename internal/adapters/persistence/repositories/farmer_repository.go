package repositories

import (
	"context"

	"agrisense-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// passwordColumn is excluded from every read but GetByEmail.
const passwordColumn = "password"

// farmerRepository implements FarmerRepository interface
type farmerRepository struct {
	db *gorm.DB
}

// NewFarmerRepository creates a new farmer repository
func NewFarmerRepository(db *gorm.DB) FarmerRepository {
	return &farmerRepository{db: db}
}

// Create inserts a farmer. Uniqueness of email and farmerId is enforced
// by the table's unique indexes, so concurrent signups cannot both win.
func (r *farmerRepository) Create(ctx context.Context, farmer *models.Farmer) error {
	return translateError(r.db.WithContext(ctx).Create(farmer).Error)
}

// GetByEmail is the verification path and the only read that loads the hash
func (r *farmerRepository) GetByEmail(ctx context.Context, email string) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&farmer).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &farmer, nil
}

// GetByFarmerID gets a farmer by external identifier
func (r *farmerRepository) GetByFarmerID(ctx context.Context, farmerID string) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.db.WithContext(ctx).
		Omit(passwordColumn).
		Where("farmer_id = ?", farmerID).
		First(&farmer).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &farmer, nil
}

// UpdateFields applies a partial update keyed by farmerId and returns the fresh record
func (r *farmerRepository) UpdateFields(ctx context.Context, farmerID string, fields map[string]interface{}) (*models.Farmer, error) {
	if _, err := r.GetByFarmerID(ctx, farmerID); err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		err := r.db.WithContext(ctx).
			Model(&models.Farmer{}).
			Where("farmer_id = ?", farmerID).
			Updates(fields).Error
		if err != nil {
			return nil, translateError(err)
		}
	}

	return r.GetByFarmerID(ctx, farmerID)
}

// ExistsByEmail checks if email exists
func (r *farmerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Farmer{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// List lists farmers with pagination
func (r *farmerRepository) List(ctx context.Context, offset, limit int) ([]*models.Farmer, int64, error) {
	var farmers []*models.Farmer
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Farmer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Omit(passwordColumn).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&farmers).Error
	if err != nil {
		return nil, 0, err
	}

	return farmers, total, nil
}

// EachWithLocation walks every farmer that has district and state, in batches
func (r *farmerRepository) EachWithLocation(ctx context.Context, batchSize int, fn func(*models.Farmer) error) error {
	var batch []*models.Farmer
	return r.db.WithContext(ctx).
		Omit(passwordColumn).
		Where("district <> '' AND state <> ''").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			for _, f := range batch {
				if err := fn(f); err != nil {
					return err
				}
			}
			return nil
		}).Error
}
