package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/adapters/persistence/repositories"
	"agrisense-api/internal/core/domain"
	"agrisense-api/internal/pkg/pagination"

	"go.uber.org/zap"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
)

type profileField struct {
	column   string
	kind     fieldKind
	required bool
}

// mutableProfileFields is the allow-list for PUT /farmer/update.
// Identity fields (farmerId, email, role, password) are deliberately absent.
var mutableProfileFields = map[string]profileField{
	"farmerName":   {column: "farmer_name", kind: kindString, required: true},
	"state":        {column: "state", kind: kindString, required: true},
	"district":     {column: "district", kind: kindString, required: true},
	"currentCity":  {column: "current_city", kind: kindString},
	"crop":         {column: "crop", kind: kindString},
	"season":       {column: "season", kind: kindString},
	"year":         {column: "year", kind: kindInt},
	"areaHectare":  {column: "area_hectare", kind: kindFloat},
	"yieldQuintal": {column: "yield_quintal", kind: kindFloat},
	"N":            {column: "n", kind: kindFloat},
	"P":            {column: "p", kind: kindFloat},
	"K":            {column: "k", kind: kindFloat},
	"temperature":  {column: "temperature", kind: kindFloat},
	"humidity":     {column: "humidity", kind: kindFloat},
	"ph":           {column: "ph", kind: kindFloat},
	"rainfall":     {column: "rainfall", kind: kindFloat},
}

// FarmerService handles profile reads, updates and the admin listing
type FarmerService struct {
	farmers repositories.FarmerRepository
	log     *zap.Logger
}

// NewFarmerService creates a new farmer service
func NewFarmerService(farmers repositories.FarmerRepository, log *zap.Logger) *FarmerService {
	return &FarmerService{farmers: farmers, log: log}
}

// ListFarmersOutput represents list farmers output
type ListFarmersOutput = pagination.Response

// GetProfile returns the farmer without its password hash
func (s *FarmerService) GetProfile(ctx context.Context, farmerID string) (*models.FarmerResponse, error) {
	farmer, err := s.farmers.GetByFarmerID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return farmer.ToResponse(), nil
}

// UpdateProfile applies an allow-listed partial update taken from a raw JSON object
func (s *FarmerService) UpdateProfile(ctx context.Context, farmerID string, body map[string]json.RawMessage) (*models.FarmerResponse, error) {
	fields, err := buildProfileUpdate(body)
	if err != nil {
		return nil, err
	}

	farmer, err := s.farmers.UpdateFields(ctx, farmerID, fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	s.log.Info("farmer profile updated", zap.String("farmer_id", farmerID), zap.Int("fields", len(fields)))
	return farmer.ToResponse(), nil
}

// ListFarmers lists all farmers with pagination (admin)
func (s *FarmerService) ListFarmers(ctx context.Context, params *pagination.Params) (*ListFarmersOutput, error) {
	farmers, total, err := s.farmers.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]*models.FarmerResponse, len(farmers))
	for i, f := range farmers {
		out[i] = f.ToResponse()
	}

	return pagination.NewResponse(out, params, total), nil
}

func buildProfileUpdate(body map[string]json.RawMessage) (map[string]interface{}, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	var rejected []string
	for key := range body {
		if _, ok := mutableProfileFields[key]; !ok {
			rejected = append(rejected, key)
		}
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		return nil, fmt.Errorf("%w: fields cannot be updated: %s", domain.ErrValidation, strings.Join(rejected, ", "))
	}

	fields := make(map[string]interface{}, len(body))
	for key, raw := range body {
		spec := mutableProfileFields[key]
		value, err := decodeProfileValue(spec, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrValidation, key, err)
		}
		fields[spec.column] = value
	}
	return fields, nil
}

func decodeProfileValue(spec profileField, raw json.RawMessage) (interface{}, error) {
	isNull := bytes.Equal(bytes.TrimSpace(raw), []byte("null"))

	switch spec.kind {
	case kindString:
		var v string
		if !isNull {
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, errors.New("must be a string")
			}
		}
		v = strings.TrimSpace(v)
		if spec.required && v == "" {
			return nil, errors.New("must not be empty")
		}
		return v, nil
	case kindInt:
		if isNull {
			return nil, nil
		}
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.New("must be an integer")
		}
		return v, nil
	default:
		if isNull {
			return nil, nil
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.New("must be a number")
		}
		return v, nil
	}
}
