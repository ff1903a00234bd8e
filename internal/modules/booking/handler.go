package booking

import (
	"context"
	"net/http"
	"strconv"

	"bonzenga/internal/domain"
	"bonzenga/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterCustomerRoutes go on the CUSTOMER-gated group.
func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings", h.ListMine)
	rg.POST("/bookings/:id/payment/confirm", h.ConfirmPayment)
	rg.POST("/bookings/:id/payment/fail", h.FailPayment)
}

// RegisterSharedRoutes go on the authenticated group; the service does
// its own per-booking access checks.
func (h *Handler) RegisterSharedRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/:id", h.Get)
	rg.POST("/bookings/:id/transition", h.Transition)
}

// RegisterVendorRoutes go on the VENDOR-gated group.
func (h *Handler) RegisterVendorRoutes(rg *gin.RouterGroup) {
	rg.GET("/vendor/bookings", h.ListForVendor)
	rg.POST("/bookings/:id/assign", h.Assign)
}

// RegisterBeauticianRoutes go on the BEAUTICIAN-gated group.
func (h *Handler) RegisterBeauticianRoutes(rg *gin.RouterGroup) {
	rg.GET("/beautician/bookings", h.ListForBeautician)
}

// RegisterStaffRoutes go on the MANAGER/ADMIN group.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/assign-staff", h.Assign)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Assign(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.AssignBeautician(
		c.Request.Context(),
		c.GetInt64("user_id"), domain.UserRole(c.GetString("role")),
		id, req.BeauticianID,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Transition(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Transition(
		c.Request.Context(),
		c.GetInt64("user_id"), domain.UserRole(c.GetString("role")),
		id, domain.BookingStatus(req.Status),
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	h.payment(c, h.service.ConfirmPayment)
}

func (h *Handler) FailPayment(c *gin.Context) {
	h.payment(c, h.service.FailPayment)
}

func (h *Handler) ListMine(c *gin.Context) {
	limit, offset := pagination(c)
	bookings, err := h.service.ListForCustomer(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) ListForVendor(c *gin.Context) {
	limit, offset := pagination(c)
	bookings, err := h.service.ListForVendor(c.Request.Context(), c.GetInt64("user_id"), c.Query("status"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) ListForBeautician(c *gin.Context) {
	limit, offset := pagination(c)
	bookings, err := h.service.ListForBeautician(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) payment(c *gin.Context, fn func(ctx context.Context, customerID, bookingID int64) (*domain.Booking, error)) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, err := fn(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to act on this booking")
	case ErrInvalidState:
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Booking state does not allow this transition")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

func pagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
