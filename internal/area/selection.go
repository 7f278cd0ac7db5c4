package area

import (
	"strings"

	"relief-dispatch/internal/domain"
	"relief-dispatch/internal/geo"
)

// UnspecifiedLabel is what Describe returns when nothing is selected.
const UnspecifiedLabel = "Unspecified"

// Delimiter joins the selected level names in Describe.
const Delimiter = " - "

// Level one tier of the geographic hierarchy.
type Level int

const (
	LevelGovernorate Level = iota
	LevelCity
	LevelDistrict
)

// Selection the ids chosen at each level. An empty string means "not selected".
type Selection struct {
	GovernorateID string `json:"governorate_id"`
	CityID        string `json:"city_id"`
	DistrictID    string `json:"district_id"`
}

// Complete reports whether all three levels are selected.
func (s Selection) Complete() bool {
	return s.GovernorateID != "" && s.CityID != "" && s.DistrictID != ""
}

// Empty reports whether no level is selected.
func (s Selection) Empty() bool {
	return s.GovernorateID == "" && s.CityID == "" && s.DistrictID == ""
}

// Change a requested update to one level. Reset clears the whole chain and ignores Level and ID.
type Change struct {
	Level Level
	ID    string
	Reset bool
}

// Apply returns the normalized selection after change. Changing a level
// always clears every level below it, even when the id is unchanged.
func Apply(s Selection, change Change) Selection {
	if change.Reset {
		return Selection{}
	}
	switch change.Level {
	case LevelGovernorate:
		return Selection{GovernorateID: change.ID}
	case LevelCity:
		return Selection{GovernorateID: s.GovernorateID, CityID: change.ID}
	case LevelDistrict:
		s.DistrictID = change.ID
		return s
	}
	return s
}

// State a cascading governorate -> city -> district selector over a catalog.
// Not safe for concurrent use; it belongs to a single form.
type State struct {
	catalog   *geo.Catalog
	selection Selection
}

// NewState returns an empty selector.
func NewState(catalog *geo.Catalog) *State {
	return &State{catalog: catalog}
}

// SelectGovernorate sets the governorate and clears city and district.
// An empty id clears the whole chain.
func (s *State) SelectGovernorate(id string) {
	s.selection = Apply(s.selection, Change{Level: LevelGovernorate, ID: id})
}

// SelectCity sets the city and clears the district.
func (s *State) SelectCity(id string) {
	s.selection = Apply(s.selection, Change{Level: LevelCity, ID: id})
}

// SelectDistrict sets the district.
func (s *State) SelectDistrict(id string) {
	s.selection = Apply(s.selection, Change{Level: LevelDistrict, ID: id})
}

// Reset clears all three levels.
func (s *State) Reset() {
	s.selection = Apply(s.selection, Change{Reset: true})
}

// Restore replaces the selection, normalizing it so that a level is only
// kept when every level above it is set.
func (s *State) Restore(sel Selection) {
	next := Apply(Selection{}, Change{Level: LevelGovernorate, ID: sel.GovernorateID})
	if next.GovernorateID != "" {
		next = Apply(next, Change{Level: LevelCity, ID: sel.CityID})
	}
	if next.CityID != "" {
		next = Apply(next, Change{Level: LevelDistrict, ID: sel.DistrictID})
	}
	s.selection = next
}

// Selection returns the current ids.
func (s *State) Selection() Selection {
	return s.selection
}

// Complete reports whether a district has been reached.
func (s *State) Complete() bool {
	return s.selection.Complete()
}

// Cities lists the cities under the selected governorate; empty when none is selected.
func (s *State) Cities() []domain.City {
	if s.selection.GovernorateID == "" {
		return []domain.City{}
	}
	return s.catalog.Cities(s.selection.GovernorateID)
}

// Districts lists the districts under the selected city; empty when none is selected.
func (s *State) Districts() []domain.District {
	if s.selection.CityID == "" {
		return []domain.District{}
	}
	return s.catalog.Districts(s.selection.CityID)
}

// Describe joins the names of the selected levels, e.g. "Gaza - Gaza City - Al-Rimal".
func (s *State) Describe() string {
	parts := make([]string, 0, 3)
	for _, id := range []string{s.selection.GovernorateID, s.selection.CityID, s.selection.DistrictID} {
		if id != "" {
			parts = append(parts, s.catalog.Name(id))
		}
	}
	if len(parts) == 0 {
		return UnspecifiedLabel
	}
	return strings.Join(parts, Delimiter)
}

// Resolve returns the display names of a complete selection.
func (s *State) Resolve() (domain.AreaNames, bool) {
	if !s.selection.Complete() {
		return domain.AreaNames{}, false
	}
	return domain.AreaNames{
		Governorate: s.catalog.Name(s.selection.GovernorateID),
		City:        s.catalog.Name(s.selection.CityID),
		District:    s.catalog.Name(s.selection.DistrictID),
	}, true
}
