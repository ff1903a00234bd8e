package finance

type CommissionRequest struct {
	Scope      string  `json:"scope" binding:"required"` // GLOBAL or VENDOR_SPECIFIC
	VendorID   *int64  `json:"vendor_id"`
	Percentage float64 `json:"percentage"`
}

type PayoutRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

type RefundRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type DisputeRequest struct {
	BookingID   int64  `json:"booking_id" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type DisputeAdvanceRequest struct {
	Status     string `json:"status" binding:"required"`
	Resolution string `json:"resolution"`
}

// Split is the outcome of applying a commission rate to a gross amount.
type Split struct {
	Gross         float64 `json:"gross"`
	Rate          float64 `json:"rate"`
	VendorShare   float64 `json:"vendor_share"`
	PlatformShare float64 `json:"platform_share"`
}
