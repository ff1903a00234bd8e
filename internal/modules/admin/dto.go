package admin

type StatusRequest struct {
	Status string `json:"status" binding:"required"` // ACTIVE or SUSPENDED
}

type Statistics struct {
	TotalUsers       int64   `json:"total_users"`
	TotalCustomers   int64   `json:"total_customers"`
	TotalVendors     int64   `json:"total_vendors"`
	ApprovedVendors  int64   `json:"approved_vendors"`
	TotalBeauticians int64   `json:"total_beauticians"`
	TotalBookings    int64   `json:"total_bookings"`
	CompletedBookings int64  `json:"completed_bookings"`
	OpenDisputes     int64   `json:"open_disputes"`
	GrossRevenue     float64 `json:"gross_revenue"`
	PlatformRevenue  float64 `json:"platform_revenue"`
}
