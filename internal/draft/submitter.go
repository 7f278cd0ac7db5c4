package draft

import (
	"context"
	"time"

	"relief-dispatch/internal/domain"
)

// Submitter hands a finished request to whatever backend accepts it.
type Submitter interface {
	Submit(ctx context.Context, req *domain.DistributionRequest) error
}

// SimulatedSubmitter stands in for a remote backend by waiting Delay.
type SimulatedSubmitter struct {
	Delay time.Duration
}

func NewSimulatedSubmitter(delay time.Duration) *SimulatedSubmitter {
	return &SimulatedSubmitter{Delay: delay}
}

func (s *SimulatedSubmitter) Submit(ctx context.Context, _ *domain.DistributionRequest) error {
	if s.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, req *domain.DistributionRequest) error

func (f SubmitterFunc) Submit(ctx context.Context, req *domain.DistributionRequest) error {
	return f(ctx, req)
}
