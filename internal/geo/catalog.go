package geo

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"relief-dispatch/internal/domain"
)

// UnknownName is returned by Name for ids that are not in the catalog.
const UnknownName = "Unknown"

var (
	ErrEmptyID        = errors.New("catalog entry has empty id")
	ErrDuplicateID    = errors.New("catalog id is not unique")
	ErrParentMismatch = errors.New("catalog entry parent id does not match its owner")
)

//go:embed catalog.json
var defaultCatalogJSON []byte

type cityRef struct {
	governorate *domain.Governorate
	city        *domain.City
}

type districtRef struct {
	governorate *domain.Governorate
	city        *domain.City
	district    *domain.District
}

// Catalog is the read-only governorate -> city -> district reference tree.
// Lookups never fail: unknown ids yield empty slices or UnknownName.
type Catalog struct {
	governorates []domain.Governorate

	governorateByID map[string]*domain.Governorate
	cityByID        map[string]cityRef
	districtByID    map[string]districtRef
}

// NewCatalog validates the tree and indexes it by id. Ids must be unique
// across all levels and every child's parent id must name its owner.
// Empty parent ids on children are filled in from the owner.
func NewCatalog(governorates []domain.Governorate) (*Catalog, error) {
	c := &Catalog{
		governorates:    cloneGovernorates(governorates),
		governorateByID: map[string]*domain.Governorate{},
		cityByID:        map[string]cityRef{},
		districtByID:    map[string]districtRef{},
	}

	seen := map[string]string{}
	claim := func(id, level string) error {
		if id == "" {
			return fmt.Errorf("%w: %s", ErrEmptyID, level)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateID, id, prev, level)
		}
		seen[id] = level
		return nil
	}

	for gi := range c.governorates {
		gov := &c.governorates[gi]
		if err := claim(gov.ID, "governorate"); err != nil {
			return nil, err
		}
		c.governorateByID[gov.ID] = gov

		for ci := range gov.Cities {
			city := &gov.Cities[ci]
			if err := claim(city.ID, "city"); err != nil {
				return nil, err
			}
			if city.GovernorateID == "" {
				city.GovernorateID = gov.ID
			} else if city.GovernorateID != gov.ID {
				return nil, fmt.Errorf("%w: city %q declares governorate %q, owned by %q",
					ErrParentMismatch, city.ID, city.GovernorateID, gov.ID)
			}
			c.cityByID[city.ID] = cityRef{governorate: gov, city: city}

			for di := range city.Districts {
				district := &city.Districts[di]
				if err := claim(district.ID, "district"); err != nil {
					return nil, err
				}
				if district.CityID == "" {
					district.CityID = city.ID
				} else if district.CityID != city.ID {
					return nil, fmt.Errorf("%w: district %q declares city %q, owned by %q",
						ErrParentMismatch, district.ID, district.CityID, city.ID)
				}
				c.districtByID[district.ID] = districtRef{governorate: gov, city: city, district: district}
			}
		}
	}

	return c, nil
}

// LoadDefault decodes the embedded catalog.
func LoadDefault() (*Catalog, error) {
	return Decode(defaultCatalogJSON)
}

// Decode builds a catalog from its JSON representation.
func Decode(data []byte) (*Catalog, error) {
	var governorates []domain.Governorate
	if err := json.Unmarshal(data, &governorates); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return NewCatalog(governorates)
}

// Governorates returns every governorate in catalog order.
func (c *Catalog) Governorates() []domain.Governorate {
	return cloneGovernorates(c.governorates)
}

// Cities returns the cities of a governorate, or an empty slice for an unknown id.
func (c *Catalog) Cities(governorateID string) []domain.City {
	gov, ok := c.governorateByID[governorateID]
	if !ok {
		return []domain.City{}
	}
	return cloneCities(gov.Cities)
}

// Districts returns the districts of a city, or an empty slice for an unknown id.
func (c *Catalog) Districts(cityID string) []domain.District {
	ref, ok := c.cityByID[cityID]
	if !ok {
		return []domain.District{}
	}
	out := make([]domain.District, len(ref.city.Districts))
	copy(out, ref.city.Districts)
	return out
}

// Name resolves an id at any level to its display name.
func (c *Catalog) Name(id string) string {
	if gov, ok := c.governorateByID[id]; ok {
		return gov.Name
	}
	if ref, ok := c.cityByID[id]; ok {
		return ref.city.Name
	}
	if ref, ok := c.districtByID[id]; ok {
		return ref.district.Name
	}
	return UnknownName
}

// Path returns the ancestry of a district.
func (c *Catalog) Path(districtID string) (domain.Governorate, domain.City, domain.District, bool) {
	ref, ok := c.districtByID[districtID]
	if !ok {
		return domain.Governorate{}, domain.City{}, domain.District{}, false
	}
	gov := *ref.governorate
	gov.Cities = cloneCities(gov.Cities)
	city := cloneCities([]domain.City{*ref.city})[0]
	return gov, city, *ref.district, true
}

// Walk calls fn for every district with its owners, in catalog order.
// Walking stops at the first error, which is returned.
func (c *Catalog) Walk(fn func(gov domain.Governorate, city domain.City, district domain.District) error) error {
	for _, gov := range c.governorates {
		for _, city := range gov.Cities {
			for _, district := range city.Districts {
				if err := fn(gov, city, district); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// DistrictCount is the number of leaf areas.
func (c *Catalog) DistrictCount() int {
	return len(c.districtByID)
}

func cloneGovernorates(in []domain.Governorate) []domain.Governorate {
	out := make([]domain.Governorate, len(in))
	for i, g := range in {
		out[i] = g
		out[i].Cities = cloneCities(g.Cities)
	}
	return out
}

func cloneCities(in []domain.City) []domain.City {
	out := make([]domain.City, len(in))
	for i, city := range in {
		out[i] = city
		out[i].Districts = make([]domain.District, len(city.Districts))
		copy(out[i].Districts, city.Districts)
	}
	return out
}
