package app

import (
	"context"
	"errors"
	"fmt"

	"relief-dispatch/internal/domain"
	"relief-dispatch/internal/geo"
	"relief-dispatch/internal/repository"
)

var ErrUnknownDistrict = errors.New("district is not in the catalog")

// DistrictReport beneficiary counts for one catalog district.
type DistrictReport struct {
	DistrictID string
	Area       domain.AreaNames
	Count      repository.AreaCount
}

// CatalogReport counts beneficiaries for every district in catalog order.
// progress, when set, is called once per district.
func CatalogReport(ctx context.Context, catalog *geo.Catalog, lookup repository.BeneficiaryLookup, progress func()) ([]DistrictReport, error) {
	out := make([]DistrictReport, 0, catalog.DistrictCount())
	err := catalog.Walk(func(gov domain.Governorate, city domain.City, district domain.District) error {
		r, err := countDistrict(ctx, lookup, gov, city, district)
		if err != nil {
			return err
		}
		out = append(out, r)
		if progress != nil {
			progress()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DistrictReportFor counts beneficiaries for a single district.
func DistrictReportFor(ctx context.Context, catalog *geo.Catalog, lookup repository.BeneficiaryLookup, districtID string) (DistrictReport, error) {
	gov, city, district, ok := catalog.Path(districtID)
	if !ok {
		return DistrictReport{}, fmt.Errorf("%w: %s", ErrUnknownDistrict, districtID)
	}
	return countDistrict(ctx, lookup, gov, city, district)
}

func countDistrict(ctx context.Context, lookup repository.BeneficiaryLookup, gov domain.Governorate, city domain.City, district domain.District) (DistrictReport, error) {
	names := domain.AreaNames{Governorate: gov.Name, City: city.Name, District: district.Name}
	count, err := lookup.CountByArea(ctx, names)
	if err != nil {
		return DistrictReport{}, fmt.Errorf("district %s: %w", district.ID, err)
	}
	return DistrictReport{DistrictID: district.ID, Area: names, Count: count}, nil
}
