package app

import (
	"context"
	"testing"

	commonconfig "relief-dispatch/common/config"
	commonredis "relief-dispatch/common/redis"
	"relief-dispatch/internal/geo"
	"relief-dispatch/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInvalidateCounts(t *testing.T) {
	mr := miniredis.RunT(t)
	client := commonredis.NewRedisClient(&commonconfig.RedisConfig{Addr: mr.Addr()})
	defer func() { _ = commonredis.Close(client) }()

	catalog, err := geo.LoadDefault()
	require.NoError(t, err)
	seeded, err := repository.NewSeededBeneficiariesRepo()
	require.NoError(t, err)
	cache := NewCountCache(client, seeded, testConfig(), zap.NewNop())

	ctx := context.Background()
	_, err = CatalogReport(ctx, catalog, cache, nil)
	require.NoError(t, err)
	require.Len(t, mr.Keys(), catalog.DistrictCount())

	beneficiaries, err := repository.SeedBeneficiaries()
	require.NoError(t, err)
	n, err := InvalidateCounts(ctx, cache, beneficiaries)
	require.NoError(t, err)
	assert.Equal(t, 18, n)

	// only the two districts without beneficiaries stay cached
	assert.Len(t, mr.Keys(), 2)
}

func TestInvalidateCounts_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := commonredis.NewRedisClient(&commonconfig.RedisConfig{Addr: mr.Addr()})
	defer func() { _ = commonredis.Close(client) }()

	seeded, err := repository.NewSeededBeneficiariesRepo()
	require.NoError(t, err)
	cache := NewCountCache(client, seeded, testConfig(), zap.NewNop())
	beneficiaries, err := repository.SeedBeneficiaries()
	require.NoError(t, err)

	mr.SetError("LOADING")
	n, err := InvalidateCounts(context.Background(), cache, beneficiaries)
	require.Error(t, err)
	assert.Equal(t, 0, n)
}
