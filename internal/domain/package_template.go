package domain

// TemplateStatus package template availability.
type TemplateStatus string

const (
	TemplateStatusActive   TemplateStatus = "active"
	TemplateStatusInactive TemplateStatus = "inactive"
)

// PackageType aid package category.
type PackageType string

const (
	PackageTypeFood     PackageType = "food"
	PackageTypeClothing PackageType = "clothing"
	PackageTypeMedical  PackageType = "medical"
	PackageTypeHygiene  PackageType = "hygiene"
	PackageTypeOther    PackageType = "other"
)

// ContentItem one line of a package template's contents.
type ContentItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// PackageTemplate a reusable aid package definition owned by an organization.
// Templates are read-only for the bulk send workflow.
type PackageTemplate struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	Status         TemplateStatus `json:"status"`
	Name           string         `json:"name"`
	Type           PackageType    `json:"type"`
	Contents       []ContentItem  `json:"contents"`
	TotalWeight    float64        `json:"total_weight"`
	EstimatedCost  float64        `json:"estimated_cost"`
	UsageCount     int            `json:"usage_count"`
}

// SelectableBy reports whether the organization may use the template.
func (t PackageTemplate) SelectableBy(organizationID string) bool {
	return t.Status == TemplateStatusActive && t.OrganizationID == organizationID
}
