package service

import (
	"context"
	"fmt"

	"relief-dispatch/internal/activity"
	"relief-dispatch/internal/area"
	"relief-dispatch/internal/domain"
	"relief-dispatch/internal/draft"
	"relief-dispatch/internal/geo"
	"relief-dispatch/internal/repository"

	"go.uber.org/zap"
)

// BulkSendService entry point of the bulk send workflow for one actor.
type BulkSendService interface {
	// SelectableTemplates lists the actor's active templates.
	SelectableTemplates(ctx context.Context) ([]domain.PackageTemplate, error)
	Governorates() []domain.Governorate
	NewAreaSelection() *area.State
	// AreaOverview counts beneficiaries in a complete selection.
	AreaOverview(ctx context.Context, sel area.Selection) (*AreaOverview, error)
	NewDraft() *draft.Draft
	PendingRequests(ctx context.Context) ([]*domain.DistributionRequest, error)
}

// AreaOverview the live beneficiary counter shown next to the area picker.
type AreaOverview struct {
	Area             domain.AreaNames `json:"area"`
	AreaText         string           `json:"area_text"`
	BeneficiaryCount int              `json:"beneficiary_count"`
	VerifiedCount    int              `json:"verified_count"`
}

// Deps collaborators of the service.
type Deps struct {
	Catalog       *geo.Catalog
	Templates     repository.TemplatesRepository
	Beneficiaries repository.BeneficiaryLookup
	Requests      repository.RequestsRepository
	Submitter     draft.Submitter
	Activity      activity.Logger
	Actor         domain.Actor
}

type bulkSendService struct {
	deps   Deps
	logger *zap.Logger
}

func NewBulkSendService(deps Deps, logger *zap.Logger) BulkSendService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Activity == nil {
		deps.Activity = activity.Nop()
	}
	return &bulkSendService{deps: deps, logger: logger}
}

func (s *bulkSendService) SelectableTemplates(ctx context.Context) ([]domain.PackageTemplate, error) {
	templates, err := s.deps.Templates.ListSelectable(ctx, s.deps.Actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (s *bulkSendService) Governorates() []domain.Governorate {
	return s.deps.Catalog.Governorates()
}

func (s *bulkSendService) NewAreaSelection() *area.State {
	return area.NewState(s.deps.Catalog)
}

// AreaOverview returns nil without error while the selection is incomplete.
func (s *bulkSendService) AreaOverview(ctx context.Context, sel area.Selection) (*AreaOverview, error) {
	state := area.NewState(s.deps.Catalog)
	state.Restore(sel)
	names, ok := state.Resolve()
	if !ok {
		return nil, nil
	}
	count, err := s.deps.Beneficiaries.CountByArea(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to count beneficiaries: %w", err)
	}
	return &AreaOverview{
		Area:             names,
		AreaText:         state.Describe(),
		BeneficiaryCount: count.Total,
		VerifiedCount:    count.Verified,
	}, nil
}

func (s *bulkSendService) NewDraft() *draft.Draft {
	return draft.New(draft.Deps{
		Catalog:       s.deps.Catalog,
		Templates:     s.deps.Templates,
		Beneficiaries: s.deps.Beneficiaries,
		Requests:      s.deps.Requests,
		Submitter:     s.deps.Submitter,
		Activity:      s.deps.Activity,
		Logger:        s.logger.With(zap.String("actor_id", s.deps.Actor.ID)),
		Actor:         s.deps.Actor,
	})
}

func (s *bulkSendService) PendingRequests(ctx context.Context) ([]*domain.DistributionRequest, error) {
	requests, err := s.deps.Requests.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return requests, nil
}
