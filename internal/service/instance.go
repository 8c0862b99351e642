// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/builderstack/appserver/internal/cache"
	"github.com/builderstack/appserver/internal/metrics"
	"github.com/builderstack/appserver/internal/model"
	"github.com/builderstack/appserver/internal/workspace"
)

// InstanceCache stores successful listings between requests.
type InstanceCache interface {
	GetInstances(ctx context.Context) ([]model.InstanceRecord, error)
	SetInstances(ctx context.Context, records []model.InstanceRecord, ttl time.Duration) error
}

// InstanceService lists Lakebase database instances for the API.
type InstanceService struct {
	lister   workspace.Lister
	cache    InstanceCache
	cacheTTL time.Duration
	limit    int
	logger   *slog.Logger
	metrics  metrics.Recorder
}

// InstanceServiceOption configures an InstanceService.
type InstanceServiceOption func(*InstanceService)

// WithCache enables caching of successful listings for ttl.
func WithCache(c InstanceCache, ttl time.Duration) InstanceServiceOption {
	return func(s *InstanceService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder metrics.Recorder) InstanceServiceOption {
	return func(s *InstanceService) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// NewInstanceService creates a new InstanceService returning at most limit records.
func NewInstanceService(lister workspace.Lister, limit int, logger *slog.Logger, opts ...InstanceServiceOption) *InstanceService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &InstanceService{
		lister:  lister,
		limit:   limit,
		logger:  logger,
		metrics: metrics.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limit returns the maximum number of records a listing returns.
func (s *InstanceService) Limit() int {
	return s.limit
}

// List returns the first instances visible to the app. It never fails:
// errors are reported through the InstanceListFailure variant.
func (s *InstanceService) List(ctx context.Context) model.InstanceListResult {
	s.logger.InfoContext(ctx, "listing database instances", slog.Int("limit", s.limit))

	if records, ok := s.cached(ctx); ok {
		s.metrics.IncInstanceList(metrics.OutcomeCached)
		return model.NewInstanceListSuccess(model.Truncate(records, s.limit))
	}

	start := time.Now()
	records, err := s.lister.ListInstances(ctx, s.limit)
	s.metrics.ObserveInstanceListDuration(time.Since(start))

	if err != nil {
		s.logger.ErrorContext(ctx, "error listing databases", slog.String("error", err.Error()))
		s.metrics.IncInstanceList(metrics.OutcomeFailure)
		return model.NewInstanceListFailure(err)
	}

	records = model.Truncate(records, s.limit)
	s.logger.InfoContext(ctx, "listed database instances", slog.Int("count", len(records)))
	s.metrics.IncInstanceList(metrics.OutcomeSuccess)

	s.store(ctx, records)

	return model.NewInstanceListSuccess(records)
}

func (s *InstanceService) cached(ctx context.Context) ([]model.InstanceRecord, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}

	records, err := s.cache.GetInstances(ctx)
	switch {
	case err == nil:
		s.metrics.IncInstanceCacheHit()
		return records, true
	case errors.Is(err, cache.ErrCacheMiss):
		s.metrics.IncInstanceCacheMiss()
	default:
		s.metrics.IncInstanceCacheMiss()
		s.logger.WarnContext(ctx, "instance cache read failed", slog.String("error", err.Error()))
	}
	return nil, false
}

func (s *InstanceService) store(ctx context.Context, records []model.InstanceRecord) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.SetInstances(ctx, records, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "instance cache write failed", slog.String("error", err.Error()))
	}
}
