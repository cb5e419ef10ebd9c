package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stock-tracker/internal/core/cache"
	"stock-tracker/internal/features/alerts/domain"
)

const lastReportKey = "last_check"

// RedisReportRepository implements ports.RunReportRepository using the cache port.
type RedisReportRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisReportRepository creates a new RedisReportRepository.
// A zero ttl keeps the report until it is replaced.
func NewRedisReportRepository(c cache.Cache, ttl time.Duration) *RedisReportRepository {
	return &RedisReportRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Save replaces the stored report.
func (r *RedisReportRepository) Save(ctx context.Context, report *domain.RunReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	if err := r.cache.Set(ctx, lastReportKey, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}
	return nil
}

// Last returns the stored report, or nil when there is none.
func (r *RedisReportRepository) Last(ctx context.Context) (*domain.RunReport, error) {
	data, err := r.cache.Get(ctx, lastReportKey)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run report: %w", err)
	}

	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run report: %w", err)
	}
	return &report, nil
}
