package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingInProgress BookingStatus = "IN_PROGRESS"
	BookingCompleted  BookingStatus = "COMPLETED"
	BookingCancelled  BookingStatus = "CANCELLED"
)

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentFailed   PaymentStatus = "FAILED"
)

type Booking struct {
	ID            int64         `json:"id"`
	CustomerID    int64         `json:"customer_id"`
	VendorID      int64         `json:"vendor_id"`
	BeauticianID  *int64        `json:"beautician_id,omitempty"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	ScheduledDate time.Time     `json:"scheduled_date"`
	ScheduledTime string        `json:"scheduled_time"`
	Address       string        `json:"address,omitempty"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`
	Total         float64       `json:"total"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`

	Items   []BookingItem `json:"items,omitempty" gorm:"foreignKey:BookingID"`
	Payment *Payment      `json:"payment,omitempty" gorm:"foreignKey:BookingID"`
}

// BookingItem snapshots the service price at creation time. Later catalog
// price changes never alter an existing booking.
type BookingItem struct {
	ID        int64   `json:"id"`
	BookingID int64   `json:"booking_id"`
	ServiceID int64   `json:"service_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Payment is the 1:1 settlement record for a booking. It can fail while
// the booking itself stays PENDING.
type Payment struct {
	ID        int64         `json:"id"`
	BookingID int64         `json:"booking_id"`
	Reference string        `json:"reference"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
