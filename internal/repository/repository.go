package repository

import (
	"context"
	"errors"

	"relief-dispatch/internal/domain"
)

var (
	ErrTemplateNotFound = errors.New("package template not found")
	ErrNilRequest       = errors.New("distribution request is nil")
	ErrDuplicateRequest = errors.New("distribution request already recorded")
)

// AreaCount beneficiary totals for one district.
type AreaCount struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
}

// BeneficiaryLookup read-only access to registered beneficiaries by area.
type BeneficiaryLookup interface {
	ListByArea(ctx context.Context, area domain.AreaNames) ([]domain.Beneficiary, error)
	CountByArea(ctx context.Context, area domain.AreaNames) (AreaCount, error)
}

// TemplatesRepository package templates available to organizations.
type TemplatesRepository interface {
	// ListSelectable returns the active templates owned by organizationID.
	ListSelectable(ctx context.Context, organizationID string) ([]domain.PackageTemplate, error)
	GetTemplate(ctx context.Context, templateID string) (*domain.PackageTemplate, error)
}

// RequestsRepository the shared pending-requests collection.
type RequestsRepository interface {
	// Prepend records req as the newest pending request.
	Prepend(ctx context.Context, req *domain.DistributionRequest) error
	// ListPending returns pending requests newest first.
	ListPending(ctx context.Context) ([]*domain.DistributionRequest, error)
}
