package app

import (
	"context"
	"testing"

	"relief-dispatch/internal/geo"
	"relief-dispatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogReport(t *testing.T) {
	catalog, err := geo.LoadDefault()
	require.NoError(t, err)
	lookup, err := repository.NewSeededBeneficiariesRepo()
	require.NoError(t, err)

	ticks := 0
	report, err := CatalogReport(context.Background(), catalog, lookup, func() { ticks++ })
	require.NoError(t, err)
	require.Len(t, report, catalog.DistrictCount())
	assert.Equal(t, catalog.DistrictCount(), ticks)

	assert.Equal(t, "dist-010101", report[0].DistrictID)
	assert.Equal(t, 12, report[0].Count.Total)

	total := 0
	empty := 0
	for _, r := range report {
		total += r.Count.Total
		if r.Count.Total == 0 {
			empty++
		}
	}
	assert.Equal(t, 112, total)
	assert.Equal(t, 2, empty)
}

func TestDistrictReportFor(t *testing.T) {
	catalog, err := geo.LoadDefault()
	require.NoError(t, err)
	lookup, err := repository.NewSeededBeneficiariesRepo()
	require.NoError(t, err)

	r, err := DistrictReportFor(context.Background(), catalog, lookup, "dist-010101")
	require.NoError(t, err)
	assert.Equal(t, "Jabalia Camp", r.Area.District)
	assert.Equal(t, "Jabalia", r.Area.City)
	assert.Equal(t, 12, r.Count.Total)
	assert.Equal(t, 7, r.Count.Verified)

	_, err = DistrictReportFor(context.Background(), catalog, lookup, "city-0101")
	assert.ErrorIs(t, err, ErrUnknownDistrict)
}
