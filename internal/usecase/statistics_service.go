package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trade_analytics/internal/domain"
	applogger "trade_analytics/internal/infra/logger"
	"trade_analytics/internal/metrics"
)

// StatisticsService serves cached statistics and recomputes them in the background.
type StatisticsService struct {
	tradeRepo  domain.TradeRepository
	calculator *StatisticsCalculator
	cache      *StatisticsCache
	pool       *WorkerPool
	notifier   domain.Notifier
}

func NewStatisticsService(tradeRepo domain.TradeRepository, calculator *StatisticsCalculator, cache *StatisticsCache, pool *WorkerPool, notifier domain.Notifier) (*StatisticsService, error) {
	if tradeRepo == nil {
		return nil, errors.New("trade repository required")
	}
	if calculator == nil {
		return nil, errors.New("statistics calculator required")
	}
	if cache == nil {
		return nil, errors.New("statistics cache required")
	}
	if pool == nil {
		return nil, errors.New("worker pool required")
	}
	if notifier == nil {
		return nil, errors.New("notifier required")
	}
	return &StatisticsService{
		tradeRepo:  tradeRepo,
		calculator: calculator,
		cache:      cache,
		pool:       pool,
		notifier:   notifier,
	}, nil
}

// Query returns the last committed series for key, truncated to its trailing maxPoints rows.
// It never waits for a running recompute.
func (s *StatisticsService) Query(key domain.StatisticsKey, maxPoints int) []domain.Statistics {
	return s.cache.Get(key, maxPoints)
}

// Recompute schedules a recalculation of key and returns immediately. Completion is announced
// through the notifier.
func (s *StatisticsService) Recompute(_ context.Context, key domain.StatisticsKey) error {
	generation := s.cache.NextGeneration(key)

	err := s.pool.Submit(func(ctx context.Context) {
		s.recompute(ctx, key, generation)
	})
	if err != nil {
		if errors.Is(err, ErrRecomputeQueueFull) {
			metrics.RecordRecomputeRejected()
		}
		return fmt.Errorf("schedule statistics %s: %w", key, err)
	}
	return nil
}

// Invalidate drops the cached series of a report. Recomputes already queued for it are discarded
// when they finish.
func (s *StatisticsService) Invalidate(reportID int64) int {
	return s.cache.Invalidate(reportID)
}

func (s *StatisticsService) recompute(ctx context.Context, key domain.StatisticsKey, generation uint64) {
	started := time.Now()
	log := applogger.Logger.With().Str("key", key.String()).Uint64("generation", generation).Logger()
	log.Info().Msg("BEGIN statistics calculation")

	series, err := s.calculate(ctx, key)
	metrics.ObserveRecompute(string(key.Interval), started, err)
	if err != nil {
		log.Error().Err(err).Msg("statistics calculation failed")
		return
	}

	if !s.cache.Commit(key, generation, series) {
		log.Info().Msg("statistics superseded by a newer request or invalidated")
		return
	}
	log.Info().Int("periods", len(series)).Dur("took", time.Since(started)).Msg("END statistics calculation")

	notification := domain.Notification{
		Topic:     domain.TopicReport,
		ReportID:  key.ReportID,
		Key:       key.String(),
		Message:   fmt.Sprintf("statistics calculated for report %d", key.ReportID),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		log.Error().Err(err).Msg("notify statistics calculated")
	}
}

func (s *StatisticsService) calculate(ctx context.Context, key domain.StatisticsKey) ([]domain.Statistics, error) {
	trades, err := s.tradeRepo.LoadTrades(ctx, key.ReportID, key.Filter())
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}
	return s.calculator.Calculate(trades, key.Interval)
}
