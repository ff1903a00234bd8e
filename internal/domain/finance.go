package domain

import "time"

type CommissionScope string

const (
	CommissionGlobal         CommissionScope = "GLOBAL"
	CommissionVendorSpecific CommissionScope = "VENDOR_SPECIFIC"
)

// Commission is the platform's percentage cut. At most one active GLOBAL
// rule, at most one active override per vendor.
type Commission struct {
	ID         int64           `json:"id"`
	Scope      CommissionScope `json:"scope"`
	VendorID   *int64          `json:"vendor_id,omitempty"`
	Percentage float64         `json:"percentage"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Earning is the commission record emitted when a booking completes.
// BookingID is unique so replayed completion events cannot double-charge.
type Earning struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"booking_id" gorm:"uniqueIndex"`
	VendorID      int64     `json:"vendor_id"`
	Gross         float64   `json:"gross"`
	Rate          float64   `json:"rate"`
	VendorShare   float64   `json:"vendor_share"`
	PlatformShare float64   `json:"platform_share"`
	CreatedAt     time.Time `json:"created_at"`
}

type PayoutStatus string

const (
	PayoutPending  PayoutStatus = "PENDING"
	PayoutApproved PayoutStatus = "APPROVED"
	PayoutRejected PayoutStatus = "REJECTED"
	PayoutPaid     PayoutStatus = "PAID"
)

type Payout struct {
	ID          int64        `json:"id"`
	VendorID    int64        `json:"vendor_id"`
	Reference   string       `json:"reference"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	Status      PayoutStatus `json:"status"`
	DecidedBy   *int64       `json:"decided_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type RefundStatus string

const (
	RefundPending  RefundStatus = "PENDING"
	RefundApproved RefundStatus = "APPROVED"
	RefundRejected RefundStatus = "REJECTED"
)

type Refund struct {
	ID         int64        `json:"id"`
	BookingID  int64        `json:"booking_id"`
	CustomerID int64        `json:"customer_id"`
	Reference  string       `json:"reference"`
	Amount     float64      `json:"amount"`
	Reason     string       `json:"reason" gorm:"type:text"`
	Status     RefundStatus `json:"status"`
	DecidedBy  *int64       `json:"decided_by,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type DisputeStatus string

const (
	DisputeOpen          DisputeStatus = "OPEN"
	DisputeInvestigating DisputeStatus = "INVESTIGATING"
	DisputeResolved      DisputeStatus = "RESOLVED"
	DisputeClosed        DisputeStatus = "CLOSED"
)

func (s DisputeStatus) Terminal() bool {
	return s == DisputeResolved || s == DisputeClosed
}

type Dispute struct {
	ID          int64         `json:"id"`
	BookingID   int64         `json:"booking_id"`
	CustomerID  int64         `json:"customer_id"`
	VendorID    int64         `json:"vendor_id"`
	Description string        `json:"description" gorm:"type:text"`
	Resolution  string        `json:"resolution,omitempty" gorm:"type:text"`
	Status      DisputeStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
