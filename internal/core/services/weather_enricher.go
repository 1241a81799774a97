package services

import (
	"context"
	"fmt"

	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/adapters/persistence/repositories"
	"agrisense-api/internal/core/domain"
	"agrisense-api/internal/pkg/metrics"

	"go.uber.org/zap"
)

// WeatherEnricher refreshes a farmer's temperature, humidity and rainfall
// from the weather provider. It is best-effort: every failure is logged and
// swallowed, and the caller carries on with the record it already had.
type WeatherEnricher struct {
	provider WeatherProvider
	farmers  repositories.FarmerRepository
	log      *zap.Logger
	metrics  *metrics.Metrics
}

// NewWeatherEnricher creates an enricher. A nil provider disables enrichment.
func NewWeatherEnricher(
	provider WeatherProvider,
	farmers repositories.FarmerRepository,
	log *zap.Logger,
	m *metrics.Metrics,
) *WeatherEnricher {
	return &WeatherEnricher{
		provider: provider,
		farmers:  farmers,
		log:      log,
		metrics:  m,
	}
}

// Enabled reports whether a provider is configured
func (e *WeatherEnricher) Enabled() bool {
	return e != nil && e.provider != nil
}

// Enrich returns the updated record and true on success. On any failure,
// or when enrichment does not apply, it returns farmer unchanged and false.
func (e *WeatherEnricher) Enrich(ctx context.Context, farmer *models.Farmer) (updated *models.Farmer, ok bool) {
	if e == nil {
		return farmer, false
	}
	if e.provider == nil || farmer == nil || !farmer.HasLocation() {
		e.metrics.RecordEnrichment(metrics.OutcomeSkipped)
		return farmer, false
	}

	defer func() {
		if r := recover(); r != nil {
			e.fail(farmer, fmt.Errorf("%w: panic: %v", domain.ErrEnrichmentFailed, r))
			updated, ok = farmer, false
		}
	}()

	reading, err := e.provider.FetchCurrent(ctx, farmer.District, farmer.State)
	if err != nil {
		e.fail(farmer, fmt.Errorf("%w: %v", domain.ErrEnrichmentFailed, err))
		return farmer, false
	}

	fresh, err := e.farmers.UpdateFields(ctx, farmer.FarmerID, map[string]interface{}{
		"temperature": reading.Temperature,
		"humidity":    reading.Humidity,
		"rainfall":    reading.RainfallLastHour,
	})
	if err != nil {
		e.fail(farmer, fmt.Errorf("%w: store: %v", domain.ErrEnrichmentFailed, err))
		return farmer, false
	}

	e.metrics.RecordEnrichment(metrics.OutcomeSuccess)
	e.log.Debug("weather enrichment applied",
		zap.String("farmer_id", farmer.FarmerID),
		zap.Float64("temperature", reading.Temperature),
		zap.Float64("humidity", reading.Humidity),
		zap.Float64("rainfall", reading.RainfallLastHour),
	)
	return fresh, true
}

func (e *WeatherEnricher) fail(farmer *models.Farmer, err error) {
	e.metrics.RecordEnrichment(metrics.OutcomeFailure)
	e.log.Warn("weather enrichment skipped",
		zap.String("farmer_id", farmer.FarmerID),
		zap.String("district", farmer.District),
		zap.String("state", farmer.State),
		zap.Error(err),
	)
}
