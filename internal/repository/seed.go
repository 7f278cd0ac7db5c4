package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"relief-dispatch/internal/domain"
)

//go:embed seed_beneficiaries.json
var seedBeneficiariesJSON []byte

//go:embed seed_templates.json
var seedTemplatesJSON []byte

// SeedBeneficiaries returns the bundled mock beneficiary registry.
func SeedBeneficiaries() ([]domain.Beneficiary, error) {
	var out []domain.Beneficiary
	if err := json.Unmarshal(seedBeneficiariesJSON, &out); err != nil {
		return nil, fmt.Errorf("failed to decode seed beneficiaries: %w", err)
	}
	return out, nil
}

// SeedTemplates returns the bundled mock package templates.
func SeedTemplates() ([]domain.PackageTemplate, error) {
	var out []domain.PackageTemplate
	if err := json.Unmarshal(seedTemplatesJSON, &out); err != nil {
		return nil, fmt.Errorf("failed to decode seed templates: %w", err)
	}
	return out, nil
}
