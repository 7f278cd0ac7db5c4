package repository

import (
	"context"
	"sync"

	"relief-dispatch/internal/domain"
)

// MemoryBeneficiariesRepo in-process beneficiary registry keyed by area.
type MemoryBeneficiariesRepo struct {
	mu     sync.RWMutex
	byArea map[domain.AreaNames][]domain.Beneficiary
}

func NewMemoryBeneficiariesRepo(beneficiaries []domain.Beneficiary) *MemoryBeneficiariesRepo {
	r := &MemoryBeneficiariesRepo{byArea: map[domain.AreaNames][]domain.Beneficiary{}}
	for _, b := range beneficiaries {
		r.byArea[b.Location] = append(r.byArea[b.Location], b)
	}
	return r
}

// NewSeededBeneficiariesRepo loads the bundled mock registry.
func NewSeededBeneficiariesRepo() (*MemoryBeneficiariesRepo, error) {
	seed, err := SeedBeneficiaries()
	if err != nil {
		return nil, err
	}
	return NewMemoryBeneficiariesRepo(seed), nil
}

func (r *MemoryBeneficiariesRepo) ListByArea(_ context.Context, area domain.AreaNames) ([]domain.Beneficiary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := r.byArea[area]
	out := make([]domain.Beneficiary, len(found))
	copy(out, found)
	return out, nil
}

func (r *MemoryBeneficiariesRepo) CountByArea(_ context.Context, area domain.AreaNames) (AreaCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var c AreaCount
	for _, b := range r.byArea[area] {
		c.Total++
		if b.VerificationStatus == domain.VerificationVerified {
			c.Verified++
		}
	}
	return c, nil
}
