package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Farmer accounts
// ============================================================

// Farmer represents farmers table.
// ID is the internal storage key; FarmerID is the external identifier.
type Farmer struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	FarmerID     string    `gorm:"uniqueIndex;size:40;not null" json:"farmerId"`
	FarmerName   string    `gorm:"size:120;not null" json:"farmerName"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:'farmer';index" json:"role"`
	State        string    `gorm:"size:100;index:idx_farmers_location" json:"state"`
	District     string    `gorm:"size:100;index:idx_farmers_location" json:"district"`
	CurrentCity  string    `gorm:"size:100" json:"currentCity,omitempty"`
	Crop         string    `gorm:"size:100" json:"crop,omitempty"`
	Season       string    `gorm:"size:50" json:"season,omitempty"`
	Year         *int      `json:"year,omitempty"`
	AreaHectare  *float64  `json:"areaHectare,omitempty"`
	YieldQuintal *float64  `json:"yieldQuintal,omitempty"`
	N            *float64  `gorm:"column:n" json:"N,omitempty"`
	P            *float64  `gorm:"column:p" json:"P,omitempty"`
	K            *float64  `gorm:"column:k" json:"K,omitempty"`
	Temperature  *float64  `json:"temperature,omitempty"`
	Humidity     *float64  `json:"humidity,omitempty"`
	Ph           *float64  `gorm:"column:ph" json:"ph,omitempty"`
	Rainfall     *float64  `json:"rainfall,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Farmer) TableName() string {
	return "farmers"
}

// HasLocation reports whether the record carries the enrichment lookup keys
func (f *Farmer) HasLocation() bool {
	return f.District != "" && f.State != ""
}

// FarmerResponse DTO. It has no password field at all.
type FarmerResponse struct {
	FarmerID     string    `json:"farmerId"`
	FarmerName   string    `json:"farmerName"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	State        string    `json:"state"`
	District     string    `json:"district"`
	CurrentCity  string    `json:"currentCity,omitempty"`
	Crop         string    `json:"crop,omitempty"`
	Season       string    `json:"season,omitempty"`
	Year         *int      `json:"year,omitempty"`
	AreaHectare  *float64  `json:"areaHectare,omitempty"`
	YieldQuintal *float64  `json:"yieldQuintal,omitempty"`
	N            *float64  `json:"N,omitempty"`
	P            *float64  `json:"P,omitempty"`
	K            *float64  `json:"K,omitempty"`
	Temperature  *float64  `json:"temperature,omitempty"`
	Humidity     *float64  `json:"humidity,omitempty"`
	Ph           *float64  `json:"ph,omitempty"`
	Rainfall     *float64  `json:"rainfall,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (f *Farmer) ToResponse() *FarmerResponse {
	return &FarmerResponse{
		FarmerID:     f.FarmerID,
		FarmerName:   f.FarmerName,
		Email:        f.Email,
		Role:         f.Role,
		State:        f.State,
		District:     f.District,
		CurrentCity:  f.CurrentCity,
		Crop:         f.Crop,
		Season:       f.Season,
		Year:         f.Year,
		AreaHectare:  f.AreaHectare,
		YieldQuintal: f.YieldQuintal,
		N:            f.N,
		P:            f.P,
		K:            f.K,
		Temperature:  f.Temperature,
		Humidity:     f.Humidity,
		Ph:           f.Ph,
		Rainfall:     f.Rainfall,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// ============================================================
// Farmer assets
// ============================================================

// Asset is one bookkeeping entry (sensor, camera or drone)
type Asset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Model       string    `json:"model"`
	IsActive    bool      `json:"isActive"`
	AddedDate   string    `json:"addedDate"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// FarmerAssets represents farmer_assets table, one row per farmer
type FarmerAssets struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	FarmerID  string    `gorm:"uniqueIndex;size:40;not null" json:"farmerId"`
	Sensors   []Asset   `gorm:"serializer:json;type:text" json:"sensors"`
	Cameras   []Asset   `gorm:"serializer:json;type:text" json:"cameras"`
	Drones    []Asset   `gorm:"serializer:json;type:text" json:"drones"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (FarmerAssets) TableName() string {
	return "farmer_assets"
}

// AutoMigrate creates or updates the tables owned by this service.
// MySQL tables get a binary collation so email uniqueness is case-sensitive,
// matching sqlite's default.
func AutoMigrate(db *gorm.DB) error {
	if db.Dialector.Name() == "mysql" {
		db = db.Set("gorm:table_options", "DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin")
	}
	return db.AutoMigrate(
		&Farmer{},
		&FarmerAssets{},
	)
}
