package repository

import (
	"context"
	"fmt"
	"sync"

	"relief-dispatch/internal/domain"
)

// MemoryRequestsRepo the pending-requests collection for the process lifetime.
// Requests are kept newest first.
type MemoryRequestsRepo struct {
	mu       sync.RWMutex
	requests []*domain.DistributionRequest
	ids      map[string]struct{}
}

func NewMemoryRequestsRepo() *MemoryRequestsRepo {
	return &MemoryRequestsRepo{ids: map[string]struct{}{}}
}

func (r *MemoryRequestsRepo) Prepend(_ context.Context, req *domain.DistributionRequest) error {
	if req == nil {
		return ErrNilRequest
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[req.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRequest, req.ID)
	}
	stored := *req
	r.requests = append([]*domain.DistributionRequest{&stored}, r.requests...)
	r.ids[req.ID] = struct{}{}
	return nil
}

func (r *MemoryRequestsRepo) ListPending(_ context.Context) ([]*domain.DistributionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.DistributionRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if req.Status != domain.RequestStatusPending {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	return out, nil
}
