package repository

import (
	"context"
	"sync"

	"relief-dispatch/internal/domain"
)

// MemoryTemplatesRepo package templates held in process, in insertion order.
type MemoryTemplatesRepo struct {
	mu        sync.RWMutex
	templates []domain.PackageTemplate
}

func NewMemoryTemplatesRepo(templates []domain.PackageTemplate) *MemoryTemplatesRepo {
	cp := make([]domain.PackageTemplate, len(templates))
	copy(cp, templates)
	return &MemoryTemplatesRepo{templates: cp}
}

// NewSeededTemplatesRepo loads the bundled mock templates.
func NewSeededTemplatesRepo() (*MemoryTemplatesRepo, error) {
	seed, err := SeedTemplates()
	if err != nil {
		return nil, err
	}
	return NewMemoryTemplatesRepo(seed), nil
}

func (r *MemoryTemplatesRepo) ListSelectable(_ context.Context, organizationID string) ([]domain.PackageTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.PackageTemplate{}
	for _, t := range r.templates {
		if t.SelectableBy(organizationID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *MemoryTemplatesRepo) GetTemplate(_ context.Context, templateID string) (*domain.PackageTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.templates {
		if t.ID == templateID {
			found := t
			return &found, nil
		}
	}
	return nil, ErrTemplateNotFound
}
