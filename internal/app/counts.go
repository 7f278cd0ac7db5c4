package app

import (
	"context"
	"fmt"

	"relief-dispatch/internal/domain"
	"relief-dispatch/internal/repository"
)

// InvalidateCounts drops the cached count of every area the beneficiaries
// live in and returns how many areas were touched.
func InvalidateCounts(ctx context.Context, cache *repository.CachedBeneficiaryLookup, beneficiaries []domain.Beneficiary) (int, error) {
	seen := map[domain.AreaNames]struct{}{}
	for _, b := range beneficiaries {
		if _, ok := seen[b.Location]; ok {
			continue
		}
		seen[b.Location] = struct{}{}
		if err := cache.Invalidate(ctx, b.Location); err != nil {
			return len(seen) - 1, fmt.Errorf("failed to invalidate %s: %w", b.Location.District, err)
		}
	}
	return len(seen), nil
}
