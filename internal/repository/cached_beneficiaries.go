package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"relief-dispatch/internal/domain"
	"relief-dispatch/internal/store"

	"go.uber.org/zap"
)

const countKeyPrefix = "beneficiaries:count:"

// CachedBeneficiaryLookup caches area counts in a KV store in front of another lookup.
// Cache failures are logged and never fail the lookup.
type CachedBeneficiaryLookup struct {
	next   BeneficiaryLookup
	kv     store.KV
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedBeneficiaryLookup(next BeneficiaryLookup, kv store.KV, ttl time.Duration, logger *zap.Logger) *CachedBeneficiaryLookup {
	return &CachedBeneficiaryLookup{next: next, kv: kv, ttl: ttl, logger: logger}
}

func countKey(area domain.AreaNames) string {
	return fmt.Sprintf("%s%s|%s|%s", countKeyPrefix, area.Governorate, area.City, area.District)
}

func (c *CachedBeneficiaryLookup) ListByArea(ctx context.Context, area domain.AreaNames) ([]domain.Beneficiary, error) {
	return c.next.ListByArea(ctx, area)
}

func (c *CachedBeneficiaryLookup) CountByArea(ctx context.Context, area domain.AreaNames) (AreaCount, error) {
	key := countKey(area)

	var cached AreaCount
	err := store.GetJSON(ctx, c.kv, key, &cached)
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, store.ErrMiss):
	default:
		c.logger.Warn("Beneficiary count cache read failed", zap.String("key", key), zap.Error(err))
	}

	count, err := c.next.CountByArea(ctx, area)
	if err != nil {
		return AreaCount{}, err
	}
	if err := store.SetJSON(ctx, c.kv, key, count, c.ttl); err != nil {
		c.logger.Warn("Beneficiary count cache write failed", zap.String("key", key), zap.Error(err))
	}
	return count, nil
}

// Invalidate drops the cached count for an area.
func (c *CachedBeneficiaryLookup) Invalidate(ctx context.Context, area domain.AreaNames) error {
	return c.kv.Delete(ctx, countKey(area))
}
