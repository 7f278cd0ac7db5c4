package domain

// Governorate is the top level of the geographic catalog.
type Governorate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Cities []City `json:"cities"`
}

// City belongs to exactly one governorate.
type City struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	GovernorateID string     `json:"governorate_id"`
	Districts     []District `json:"districts"`
}

// District is the leaf level; it belongs to exactly one city.
type District struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	CityID string `json:"city_id"`
}

// AreaNames is a resolved governorate/city/district triple by display name.
// Beneficiary locations and distribution targets are recorded this way.
type AreaNames struct {
	Governorate string `json:"governorate"`
	City        string `json:"city"`
	District    string `json:"district"`
}
