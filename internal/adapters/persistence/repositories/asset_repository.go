package repositories

import (
	"context"
	"time"

	"agrisense-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// assetRepository implements AssetRepository interface
type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

// Get gets the asset record of a farmer
func (r *assetRepository) Get(ctx context.Context, farmerID string) (*models.FarmerAssets, error) {
	var assets models.FarmerAssets
	err := r.db.WithContext(ctx).Where("farmer_id = ?", farmerID).First(&assets).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &assets, nil
}

// Upsert replaces the three asset lists, creating the record when missing
func (r *assetRepository) Upsert(ctx context.Context, assets *models.FarmerAssets) error {
	assets.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "farmer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sensors", "cameras", "drones", "updated_at"}),
		}).
		Create(assets).Error
	return translateError(err)
}

// ListAll lists every asset record
func (r *assetRepository) ListAll(ctx context.Context) ([]*models.FarmerAssets, error) {
	var all []*models.FarmerAssets
	err := r.db.WithContext(ctx).Order("id ASC").Find(&all).Error
	return all, err
}
