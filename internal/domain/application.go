package domain

import "time"

type ApplicationKind string

const (
	ApplicationVendor     ApplicationKind = "VENDOR"
	ApplicationBeautician ApplicationKind = "BEAUTICIAN"
)

type ApplicationStatus string

const (
	ApplicationPendingManager ApplicationStatus = "PENDING_MANAGER_REVIEW"
	ApplicationPendingAdmin   ApplicationStatus = "PENDING_ADMIN_REVIEW"
	ApplicationApproved       ApplicationStatus = "APPROVED"
	ApplicationRejected       ApplicationStatus = "REJECTED"
)

// Terminal reports whether no further review decision is permitted.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// Application is an onboarding request by a prospective vendor or
// beautician. It moves through a two-step review: a manager decides first,
// an admin makes the terminal call.
type Application struct {
	ID                int64             `json:"id"`
	ApplicantID       int64             `json:"applicant_id"`
	Kind              ApplicationKind   `json:"kind"`
	Status            ApplicationStatus `json:"status"`
	Profile           string            `json:"profile,omitempty" gorm:"type:text"`
	Skills            string            `json:"skills,omitempty" gorm:"type:text"`
	ManagerNotes      string            `json:"manager_notes,omitempty" gorm:"type:text"`
	AdminNotes        string            `json:"admin_notes,omitempty" gorm:"type:text"`
	ManagerApprovedAt *time.Time        `json:"manager_approved_at,omitempty"`
	DecidedAt         *time.Time        `json:"decided_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
