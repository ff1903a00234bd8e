package domain

import "time"

type VendorStatus string

const (
	VendorPending   VendorStatus = "PENDING"
	VendorApproved  VendorStatus = "APPROVED"
	VendorRejected  VendorStatus = "REJECTED"
	VendorSuspended VendorStatus = "SUSPENDED"
)

// Vendor is a salon profile. Its ID equals the owning account's ID.
type Vendor struct {
	ID          int64        `json:"id"`
	ShopName    string       `json:"shop_name" validate:"required"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	Address     string       `json:"address,omitempty"`
	City        string       `json:"city,omitempty"`
	Status      VendorStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	Services []Service `json:"services,omitempty" gorm:"foreignKey:VendorID"`
}

type BeauticianStatus string

const (
	BeauticianPending  BeauticianStatus = "PENDING"
	BeauticianApproved BeauticianStatus = "APPROVED"
	BeauticianRejected BeauticianStatus = "REJECTED"
)

// Beautician is the professional profile of a BEAUTICIAN account.
// Only APPROVED beauticians are eligible for booking assignment.
type Beautician struct {
	ID             int64            `json:"id"`
	Skills         string           `json:"skills,omitempty" gorm:"type:text"`
	ExperienceYrs  int              `json:"experience_years"`
	Certifications string           `json:"certifications,omitempty" gorm:"type:text"`
	Bio            string           `json:"bio,omitempty" gorm:"type:text"`
	Status         BeauticianStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type Service struct {
	ID          int64     `json:"id"`
	VendorID    int64     `json:"vendor_id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Price       float64   `json:"price" validate:"gte=0"`
	DurationMin int       `json:"duration_min"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
