package catalog

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	DurationMin int     `json:"duration_min" binding:"gte=0"`
	IsActive    *bool   `json:"is_active"`
}

type VendorProfileRequest struct {
	ShopName    string `json:"shop_name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
}
