package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"adrec/internal/domain"
	"adrec/pkg/logger"
	"adrec/pkg/metrics"
)

// ErrEngineNotBuilt is returned for queries before the first successful data
// load.
var ErrEngineNotBuilt = errors.New("recommendation engine not built yet")

// Service owns the current engine instance and swaps it atomically on
// rebuild. Queries running against the previous engine finish on the previous
// snapshot; nothing is mutated in place.
type Service struct {
	source   domain.CampaignSource
	embedder domain.Embedder
	strategy domain.KeyStrategy
	logger   *logger.Logger
	metrics  *metrics.Metrics

	mu     sync.RWMutex
	engine *Engine
}

func NewService(source domain.CampaignSource, embedder domain.Embedder, strategy domain.KeyStrategy, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		source:   source,
		embedder: embedder,
		strategy: strategy,
		logger:   log,
		metrics:  m,
	}
}

// Engine returns the current snapshot's engine.
func (s *Service) Engine() (*Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.engine == nil {
		return nil, ErrEngineNotBuilt
	}
	return s.engine, nil
}

// Rebuild fetches a fresh record set and replaces the engine. On any failure
// the previous engine stays in place.
func (s *Service) Rebuild(ctx context.Context) error {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithField("key_strategy", s.strategy.Name()).Info("Rebuilding recommendation engine")

	records, err := s.source.FetchCampaigns(ctx)
	if err != nil {
		s.metrics.RecordEngineBuild("failed", time.Since(start))
		return fmt.Errorf("failed to fetch campaign records: %w", err)
	}

	engine, err := NewEngine(ctx, records, s.strategy, s.embedder, s.logger, s.metrics)
	if err != nil {
		s.metrics.RecordEngineBuild("failed", time.Since(start))
		return fmt.Errorf("failed to build engine: %w", err)
	}

	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()

	s.metrics.RecordEngineBuild("success", time.Since(start))
	s.metrics.RecordEngineSnapshot(engine.Records(), len(engine.keys))

	log.WithFields(map[string]any{
		"records":  engine.Records(),
		"keys":     len(engine.keys),
		"duration": time.Since(start),
	}).Info("Recommendation engine rebuilt")

	return nil
}
