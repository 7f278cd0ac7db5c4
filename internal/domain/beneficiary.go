package domain

// VerificationStatus beneficiary identity verification state.
type VerificationStatus string

const (
	VerificationVerified   VerificationStatus = "verified"
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationRejected   VerificationStatus = "rejected"
)

// Beneficiary a registered aid recipient.
type Beneficiary struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Location           AreaNames          `json:"location"`
	VerificationStatus VerificationStatus `json:"verification_status"`
}
