package booking

type ItemRequest struct {
	ServiceID int64 `json:"service_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type CreateRequest struct {
	VendorID      int64         `json:"vendor_id" binding:"required"`
	ScheduledDate string        `json:"scheduled_date" binding:"required"` // YYYY-MM-DD
	ScheduledTime string        `json:"scheduled_time" binding:"required"` // HH:MM
	Address       string        `json:"address"`
	Notes         string        `json:"notes"`
	Items         []ItemRequest `json:"items" binding:"required,min=1"`
}

type AssignRequest struct {
	BeauticianID int64 `json:"beautician_id" binding:"required"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}
