package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"relief-dispatch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingLookup struct {
	BeneficiaryLookup
	counts int
	err    error
}

func (c *countingLookup) CountByArea(ctx context.Context, area domain.AreaNames) (AreaCount, error) {
	c.counts++
	if c.err != nil {
		return AreaCount{}, c.err
	}
	return c.BeneficiaryLookup.CountByArea(ctx, area)
}

func newCountingLookup(t *testing.T) *countingLookup {
	seeded, err := NewSeededBeneficiariesRepo()
	require.NoError(t, err)
	return &countingLookup{BeneficiaryLookup: seeded}
}

func TestCachedLookup_HitsCacheOnSecondCall(t *testing.T) {
	next := newCountingLookup(t)
	kv := newFakeKV()
	cached := NewCachedBeneficiaryLookup(next, kv, time.Minute, zap.NewNop())
	ctx := context.Background()

	first, err := cached.CountByArea(ctx, jabaliaCamp)
	require.NoError(t, err)
	second, err := cached.CountByArea(ctx, jabaliaCamp)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, AreaCount{Total: 12, Verified: 7}, second)
	assert.Equal(t, 1, next.counts)
	assert.Equal(t, 1, kv.sets)
}

func TestCachedLookup_Invalidate(t *testing.T) {
	next := newCountingLookup(t)
	cached := NewCachedBeneficiaryLookup(next, newFakeKV(), time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := cached.CountByArea(ctx, alRimal)
	require.NoError(t, err)
	require.NoError(t, cached.Invalidate(ctx, alRimal))
	_, err = cached.CountByArea(ctx, alRimal)
	require.NoError(t, err)

	assert.Equal(t, 2, next.counts)
}

func TestCachedLookup_CacheErrorFallsThrough(t *testing.T) {
	next := newCountingLookup(t)
	kv := newFakeKV()
	kv.getErr = errors.New("redis down")
	cached := NewCachedBeneficiaryLookup(next, kv, time.Minute, zap.NewNop())

	c, err := cached.CountByArea(context.Background(), alRimal)
	require.NoError(t, err)
	assert.Equal(t, 10, c.Total)
}

func TestCachedLookup_MalformedEntryIsRefetched(t *testing.T) {
	next := newCountingLookup(t)
	kv := newFakeKV()
	require.NoError(t, kv.Set(context.Background(), countKey(alRimal), "{broken", 0))
	cached := NewCachedBeneficiaryLookup(next, kv, time.Minute, zap.NewNop())

	c, err := cached.CountByArea(context.Background(), alRimal)
	require.NoError(t, err)
	assert.Equal(t, 10, c.Total)
	assert.Equal(t, 1, next.counts)
}

func TestCachedLookup_UpstreamErrorNotCached(t *testing.T) {
	next := newCountingLookup(t)
	next.err = errors.New("db down")
	kv := newFakeKV()
	cached := NewCachedBeneficiaryLookup(next, kv, time.Minute, zap.NewNop())

	_, err := cached.CountByArea(context.Background(), alRimal)
	assert.Error(t, err)
	assert.Equal(t, 0, kv.sets)
}
