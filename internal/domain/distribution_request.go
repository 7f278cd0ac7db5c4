package domain

import "time"

// Priority distribution request urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Label is the fixed display label for the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityNormal:
		return "Normal"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return "Unknown"
}

// EstimatedDeliveryTime maps a priority to the delivery window promised to requesters.
func (p Priority) EstimatedDeliveryTime() string {
	switch p {
	case PriorityUrgent:
		return "6-12 hours"
	case PriorityHigh:
		return "1-2 days"
	case PriorityLow:
		return "3-5 days"
	default:
		return "2-3 days"
	}
}

// RequestStatus distribution request approval state.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// RequestKind how the request was created.
type RequestKind string

const (
	RequestKindBulk RequestKind = "bulk"
)

// RequesterTypeOrganization the requester type recorded for organization actors.
const RequesterTypeOrganization = "organization"

// DistributionRequest a request awaiting approval.
// Once appended to the pending collection it is never mutated by this module.
type DistributionRequest struct {
	ID                    string        `json:"id"`
	RequesterID           string        `json:"requester_id"`
	RequesterType         string        `json:"requester_type"`
	RequesterName         string        `json:"requester_name"`
	CreatedAt             time.Time     `json:"created_at"`
	Status                RequestStatus `json:"status"`
	Kind                  RequestKind   `json:"kind"`
	TemplateID            string        `json:"template_id"`
	Quantity              int           `json:"quantity"`
	TargetGovernorate     string        `json:"target_governorate"`
	TargetCity            string        `json:"target_city"`
	TargetDistrict        string        `json:"target_district"`
	Notes                 string        `json:"notes"`
	Priority              Priority      `json:"priority"`
	EstimatedCost         float64       `json:"estimated_cost"`
	EstimatedDeliveryTime string        `json:"estimated_delivery_time"`
}

// Actor the authenticated party submitting requests. Supplied by the embedding application.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
