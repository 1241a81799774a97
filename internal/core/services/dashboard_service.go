package services

import (
	"context"
	"errors"
	"math"

	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/adapters/persistence/repositories"
	"agrisense-api/internal/core/domain"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	farmers  repositories.FarmerRepository
	assets   *AssetService
	enricher *WeatherEnricher
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(farmers repositories.FarmerRepository, assets *AssetService, enricher *WeatherEnricher) *DashboardService {
	return &DashboardService{farmers: farmers, assets: assets, enricher: enricher}
}

// ============================================================
// Farmer Dashboard
// ============================================================

// DashboardData represents farmer dashboard data
type DashboardData struct {
	FarmerData          *models.FarmerResponse `json:"farmerData"`
	AssetStats          *AssetStats            `json:"assetStats"`
	SoilHealthData      []SoilHealthRow        `json:"soilHealthData"`
	CropRecommendations []CropScore            `json:"cropRecommendations"`
	YieldComparison     []YieldPoint           `json:"yieldComparison"`
}

// SoilHealthRow represents one soil parameter against its optimum
type SoilHealthRow struct {
	Parameter string  `json:"parameter"`
	Current   float64 `json:"current"`
	Optimal   float64 `json:"optimal"`
	Status    string  `json:"status"`
}

// CropScore represents a heuristic crop suitability score
type CropScore struct {
	Crop          string `json:"crop"`
	Suitability   int    `json:"suitability"`
	ExpectedYield int    `json:"expectedYield"`
	Profitability int    `json:"profitability"`
}

// YieldPoint represents one year of yield against the district average
type YieldPoint struct {
	Year        int     `json:"year"`
	YourYield   float64 `json:"yourYield"`
	DistrictAvg float64 `json:"districtAvg"`
}

// Status bands
const (
	StatusOptimal  = "Optimal"
	StatusGood     = "Good"
	StatusModerate = "Moderate"
	StatusLow      = "Low"
	StatusPoor     = "Poor"
	StatusUnknown  = "Unknown"
)

// Fallbacks used when a reading is absent
const (
	defaultSoilTemperature = 20.0
	defaultSoilMoisture    = 40.0
)

// GetFarmerDashboard refreshes weather best-effort and builds the dashboard
func (s *DashboardService) GetFarmerDashboard(ctx context.Context, claims *domain.SessionClaims) (*DashboardData, error) {
	farmer, err := s.farmers.GetByFarmerID(ctx, claims.FarmerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	if enriched, ok := s.enricher.Enrich(ctx, farmer); ok {
		farmer = enriched
	}

	stats, err := s.assets.Stats(ctx, claims, farmer.FarmerID)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		FarmerData:          farmer.ToResponse(),
		AssetStats:          stats,
		SoilHealthData:      soilHealth(farmer),
		CropRecommendations: cropScores(farmer),
		YieldComparison:     yieldComparison(farmer),
	}, nil
}

func soilHealth(f *models.Farmer) []SoilHealthRow {
	return []SoilHealthRow{
		{
			Parameter: "pH Level",
			Current:   math.Round(orDefault(f.Ph, 7.2)*10) / 10,
			Optimal:   7.0,
			Status:    phStatus(f.Ph),
		},
		{
			Parameter: "Nitrogen",
			Current:   orDefault(f.N, 25),
			Optimal:   30,
			Status:    nutrientStatus(f.N, 25, 15),
		},
		{
			Parameter: "Phosphorus",
			Current:   orDefault(f.P, 15),
			Optimal:   20,
			Status:    nutrientStatus(f.P, 18, 12),
		},
		{
			Parameter: "Potassium",
			Current:   orDefault(f.K, 20),
			Optimal:   25,
			Status:    nutrientStatus(f.K, 22, 15),
		},
	}
}

func phStatus(ph *float64) string {
	if !present(ph) {
		return StatusUnknown
	}
	switch v := *ph; {
	case v >= 6.5 && v <= 7.5:
		return StatusOptimal
	case v >= 6.0 && v <= 8.0:
		return StatusGood
	default:
		return StatusPoor
	}
}

func nutrientStatus(v *float64, good, moderate float64) string {
	if !present(v) {
		return StatusUnknown
	}
	switch {
	case *v >= good:
		return StatusGood
	case *v >= moderate:
		return StatusModerate
	default:
		return StatusLow
	}
}

func cropScores(f *models.Farmer) []CropScore {
	wheat := 85.0
	if present(f.Ph) {
		wheat += (*f.Ph - 7) * 5
	}
	corn := 80.0
	if present(f.Temperature) {
		corn += (*f.Temperature - 25) * 2
	}

	return []CropScore{
		{
			Crop:          "Wheat",
			Suitability:   clampPercent(wheat),
			ExpectedYield: round(40 + defaultSoilTemperature*0.5),
			Profitability: round(80 + orDefault(f.Humidity, 60)*0.2),
		},
		{
			Crop:          "Rice",
			Suitability:   clampPercent(75 + orDefault(f.Rainfall, 10)*0.5),
			ExpectedYield: round(35 + defaultSoilMoisture*0.3),
			Profitability: round(70 + orDefault(f.N, 20)*0.8),
		},
		{
			Crop:          "Corn",
			Suitability:   clampPercent(corn),
			ExpectedYield: round(38 + orDefault(f.K, 15)*0.4),
			Profitability: round(75 + orDefault(f.P, 10)*1.2),
		},
	}
}

func yieldComparison(f *models.Farmer) []YieldPoint {
	return []YieldPoint{
		{Year: 2022, YourYield: 45, DistrictAvg: 48},
		{Year: 2023, YourYield: 47, DistrictAvg: 49},
		{Year: 2024, YourYield: orDefault(f.YieldQuintal, 49), DistrictAvg: 51},
	}
}

// present treats zero the same as missing
func present(v *float64) bool {
	return v != nil && *v != 0
}

func orDefault(v *float64, def float64) float64 {
	if present(v) {
		return *v
	}
	return def
}

func round(v float64) int {
	return int(math.Round(v))
}

func clampPercent(v float64) int {
	return int(math.Min(100, math.Max(0, math.Round(v))))
}
