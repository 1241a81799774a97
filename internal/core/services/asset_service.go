package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/adapters/persistence/repositories"
	"agrisense-api/internal/core/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssetService manages the per-farmer sensor, camera and drone lists
type AssetService struct {
	assets  repositories.AssetRepository
	farmers repositories.FarmerRepository
	log     *zap.Logger
	now     func() time.Time
}

// NewAssetService creates a new asset service
func NewAssetService(assets repositories.AssetRepository, farmers repositories.FarmerRepository, log *zap.Logger) *AssetService {
	return &AssetService{assets: assets, farmers: farmers, log: log, now: time.Now}
}

// AssetInput is one client-supplied asset. Every field is optional.
type AssetInput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Model     string `json:"model"`
	IsActive  *bool  `json:"isActive"`
	AddedDate string `json:"addedDate"`
}

// SaveAssetsInput represents save assets input
type SaveAssetsInput struct {
	FarmerID string       `json:"farmerId"`
	Sensors  []AssetInput `json:"sensors"`
	Cameras  []AssetInput `json:"cameras"`
	Drones   []AssetInput `json:"drones"`
}

// AssetLists is the client view of a farmer's assets
type AssetLists struct {
	Sensors []models.Asset `json:"sensors"`
	Cameras []models.Asset `json:"cameras"`
	Drones  []models.Asset `json:"drones"`
}

// KindStats counts one asset list
type KindStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// AssetStats represents asset statistics for one farmer
type AssetStats struct {
	TotalAssets    int       `json:"totalAssets"`
	ActiveAssets   int       `json:"activeAssets"`
	InactiveAssets int       `json:"inactiveAssets"`
	Sensors        KindStats `json:"sensors"`
	Cameras        KindStats `json:"cameras"`
	Drones         KindStats `json:"drones"`
}

// AssetSummary represents totals across all farmers
type AssetSummary struct {
	TotalFarmersWithAssets int `json:"totalFarmersWithAssets"`
	TotalSensors           int `json:"totalSensors"`
	TotalCameras           int `json:"totalCameras"`
	TotalDrones            int `json:"totalDrones"`
	ActiveSensors          int `json:"activeSensors"`
	ActiveCameras          int `json:"activeCameras"`
	ActiveDrones           int `json:"activeDrones"`
}

// AdminAssetsOutput represents the admin asset listing
type AdminAssetsOutput struct {
	Assets  []*models.FarmerAssets `json:"assets"`
	Summary AssetSummary           `json:"summary"`
}

// Get returns a farmer's assets, creating an empty record on first read
func (s *AssetService) Get(ctx context.Context, claims *domain.SessionClaims, farmerID string) (*AssetLists, error) {
	if !claims.CanAccess(farmerID) {
		return nil, domain.ErrForbidden
	}

	record, err := s.assets.Get(ctx, farmerID)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.requireFarmer(ctx, farmerID); err != nil {
			return nil, err
		}
		record = emptyAssets(farmerID)
		if err := s.assets.Upsert(ctx, record); err != nil {
			return nil, err
		}
		return toLists(record), nil
	}
	if err != nil {
		return nil, err
	}
	return toLists(record), nil
}

// Save replaces a farmer's asset lists after filling in defaults
func (s *AssetService) Save(ctx context.Context, claims *domain.SessionClaims, input *SaveAssetsInput) (*AssetLists, error) {
	if input == nil || strings.TrimSpace(input.FarmerID) == "" {
		return nil, fmt.Errorf("%w: farmerId is required", domain.ErrValidation)
	}
	if !claims.CanAccess(input.FarmerID) {
		return nil, domain.ErrForbidden
	}
	if err := s.requireFarmer(ctx, input.FarmerID); err != nil {
		return nil, err
	}

	now := s.now()
	record := &models.FarmerAssets{
		FarmerID: input.FarmerID,
		Sensors:  sanitizeAssets(input.Sensors, now),
		Cameras:  sanitizeAssets(input.Cameras, now),
		Drones:   sanitizeAssets(input.Drones, now),
	}
	if err := s.assets.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info("farmer assets saved",
		zap.String("farmer_id", input.FarmerID),
		zap.String("by", claims.FarmerID),
		zap.Int("sensors", len(record.Sensors)),
		zap.Int("cameras", len(record.Cameras)),
		zap.Int("drones", len(record.Drones)),
	)
	return toLists(record), nil
}

// Stats counts active and inactive assets; a missing record counts as empty
func (s *AssetService) Stats(ctx context.Context, claims *domain.SessionClaims, farmerID string) (*AssetStats, error) {
	if !claims.CanAccess(farmerID) {
		return nil, domain.ErrForbidden
	}

	record, err := s.assets.Get(ctx, farmerID)
	if errors.Is(err, domain.ErrNotFound) {
		return &AssetStats{}, nil
	}
	if err != nil {
		return nil, err
	}
	return computeStats(record), nil
}

// AdminSummary lists every asset record with overall totals
func (s *AssetService) AdminSummary(ctx context.Context) (*AdminAssetsOutput, error) {
	all, err := s.assets.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &AdminAssetsOutput{Assets: all}
	if out.Assets == nil {
		out.Assets = []*models.FarmerAssets{}
	}
	out.Summary.TotalFarmersWithAssets = len(all)
	for _, a := range all {
		out.Summary.TotalSensors += len(a.Sensors)
		out.Summary.TotalCameras += len(a.Cameras)
		out.Summary.TotalDrones += len(a.Drones)
		out.Summary.ActiveSensors += countStats(a.Sensors).Active
		out.Summary.ActiveCameras += countStats(a.Cameras).Active
		out.Summary.ActiveDrones += countStats(a.Drones).Active
	}
	return out, nil
}

// requireFarmer keeps asset records from being written for unknown accounts
func (s *AssetService) requireFarmer(ctx context.Context, farmerID string) error {
	if _, err := s.farmers.GetByFarmerID(ctx, farmerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrAccountNotFound
		}
		return err
	}
	return nil
}

func emptyAssets(farmerID string) *models.FarmerAssets {
	return &models.FarmerAssets{
		FarmerID: farmerID,
		Sensors:  []models.Asset{},
		Cameras:  []models.Asset{},
		Drones:   []models.Asset{},
	}
}

func sanitizeAssets(in []AssetInput, now time.Time) []models.Asset {
	out := make([]models.Asset, 0, len(in))
	for _, a := range in {
		asset := models.Asset{
			ID:          strings.TrimSpace(a.ID),
			Name:        strings.TrimSpace(a.Name),
			Model:       strings.TrimSpace(a.Model),
			IsActive:    true,
			AddedDate:   strings.TrimSpace(a.AddedDate),
			LastUpdated: now,
		}
		if asset.ID == "" {
			asset.ID = uuid.NewString()
		}
		if asset.Name == "" {
			asset.Name = "Unnamed Asset"
		}
		if asset.Model == "" {
			asset.Model = "Unknown Model"
		}
		if a.IsActive != nil {
			asset.IsActive = *a.IsActive
		}
		if asset.AddedDate == "" {
			asset.AddedDate = now.Format("2006-01-02")
		}
		out = append(out, asset)
	}
	return out
}

func toLists(record *models.FarmerAssets) *AssetLists {
	lists := &AssetLists{
		Sensors: record.Sensors,
		Cameras: record.Cameras,
		Drones:  record.Drones,
	}
	if lists.Sensors == nil {
		lists.Sensors = []models.Asset{}
	}
	if lists.Cameras == nil {
		lists.Cameras = []models.Asset{}
	}
	if lists.Drones == nil {
		lists.Drones = []models.Asset{}
	}
	return lists
}

func countStats(list []models.Asset) KindStats {
	st := KindStats{Total: len(list)}
	for _, a := range list {
		if a.IsActive {
			st.Active++
		} else {
			st.Inactive++
		}
	}
	return st
}

func computeStats(record *models.FarmerAssets) *AssetStats {
	st := &AssetStats{
		Sensors: countStats(record.Sensors),
		Cameras: countStats(record.Cameras),
		Drones:  countStats(record.Drones),
	}
	for _, k := range []KindStats{st.Sensors, st.Cameras, st.Drones} {
		st.TotalAssets += k.Total
		st.ActiveAssets += k.Active
		st.InactiveAssets += k.Inactive
	}
	return st
}
