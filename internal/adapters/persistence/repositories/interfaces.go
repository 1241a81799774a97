package repositories

import (
	"context"

	"agrisense-api/internal/adapters/persistence/models"
)

// FarmerRepository defines the credential store.
// Every read except GetByEmail omits the password hash.
type FarmerRepository interface {
	Create(ctx context.Context, farmer *models.Farmer) error
	GetByEmail(ctx context.Context, email string) (*models.Farmer, error)
	GetByFarmerID(ctx context.Context, farmerID string) (*models.Farmer, error)
	UpdateFields(ctx context.Context, farmerID string, fields map[string]interface{}) (*models.Farmer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Farmer, int64, error)
	EachWithLocation(ctx context.Context, batchSize int, fn func(*models.Farmer) error) error
}

// AssetRepository defines farmer asset bookkeeping storage
type AssetRepository interface {
	Get(ctx context.Context, farmerID string) (*models.FarmerAssets, error)
	Upsert(ctx context.Context, assets *models.FarmerAssets) error
	ListAll(ctx context.Context) ([]*models.FarmerAssets, error)
}
