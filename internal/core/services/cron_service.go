package services

import (
	"context"
	"sync/atomic"
	"time"

	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const weatherSyncBatchSize = 100

// CronService runs scheduled background jobs
type CronService struct {
	cron     *cron.Cron
	farmers  repositories.FarmerRepository
	enricher *WeatherEnricher
	log      *zap.Logger
	running  atomic.Bool
}

// SyncReport summarises one weather sync run
type SyncReport struct {
	Scanned  int
	Enriched int
	Failed   int
}

// NewCronService creates the scheduler and registers the weather sync job.
// An empty schedule or a disabled enricher registers nothing.
func NewCronService(schedule string, farmers repositories.FarmerRepository, enricher *WeatherEnricher, log *zap.Logger) (*CronService, error) {
	s := &CronService{
		cron:     cron.New(),
		farmers:  farmers,
		enricher: enricher,
		log:      log,
	}

	if schedule == "" || !enricher.Enabled() {
		log.Info("weather sync job disabled")
		return s, nil
	}

	if _, err := s.cron.AddFunc(schedule, s.runWeatherSync); err != nil {
		return nil, err
	}
	log.Info("weather sync job scheduled", zap.String("schedule", schedule))
	return s, nil
}

// Start starts the scheduler in its own goroutine
func (s *CronService) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
}

func (s *CronService) runWeatherSync() {
	// skip overlapping runs
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("weather sync still running, skipping tick")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	start := time.Now()
	report, err := s.SyncWeather(ctx)
	if err != nil {
		s.log.Error("weather sync aborted", zap.Error(err))
		return
	}
	s.log.Info("weather sync completed",
		zap.Int("scanned", report.Scanned),
		zap.Int("enriched", report.Enriched),
		zap.Int("failed", report.Failed),
		zap.Duration("took", time.Since(start)),
	)
}

// SyncWeather enriches every farmer with a registered location. Per-farmer
// failures are counted, never returned.
func (s *CronService) SyncWeather(ctx context.Context) (*SyncReport, error) {
	report := &SyncReport{}
	err := s.farmers.EachWithLocation(ctx, weatherSyncBatchSize, func(f *models.Farmer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Scanned++
		if _, ok := s.enricher.Enrich(ctx, f); ok {
			report.Enriched++
		} else {
			report.Failed++
		}
		return nil
	})
	return report, err
}
