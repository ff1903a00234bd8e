package finance

import (
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

// RegisterVendorRoutes go on the VENDOR-gated group.
func (h *Handler) RegisterVendorRoutes(rg *gin.RouterGroup) {
	rg.POST("/payouts", h.RequestPayout)
	rg.GET("/payouts", h.ListOwnPayouts)
	rg.GET("/earnings/:booking_id", h.GetEarning)
}

// RegisterCustomerRoutes go on the CUSTOMER-gated group.
func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	rg.POST("/refunds", h.RequestRefund)
	rg.POST("/disputes", h.OpenDispute)
}

// RegisterStaffRoutes go on the MANAGER/ADMIN group.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.GET("/disputes", h.ListDisputes)
	rg.POST("/disputes/:id/advance", h.AdvanceDispute)
}

// RegisterAdminRoutes go on the ADMIN-only group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/commissions", h.SetCommission)
	rg.GET("/commissions", h.ListCommissions)
	rg.GET("/refunds", h.ListRefunds)
	rg.POST("/refunds/:id/approve", h.ApproveRefund)
	rg.POST("/refunds/:id/reject", h.RejectRefund)
	rg.GET("/admin/payouts", h.ListAllPayouts)
	rg.POST("/payouts/:id/approve", h.ApprovePayout)
	rg.POST("/payouts/:id/reject", h.RejectPayout)
	rg.POST("/payouts/:id/mark-paid", h.MarkPayoutPaid)
}

func (h *Handler) SetCommission(c *gin.Context) {
	var req CommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rule, err := h.service.SetCommission(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"commission": rule})
}

func (h *Handler) ListCommissions(c *gin.Context) {
	rules, err := h.service.ListCommissions(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list commission rules")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"commissions": rules})
}

func (h *Handler) GetEarning(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	e, err := h.service.GetEarning(c.Request.Context(), bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if e.VendorID != c.GetInt64("user_id") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your earning")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"earning": e})
}

func (h *Handler) RequestPayout(c *gin.Context) {
	var req PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.RequestPayout(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payout": p})
}

func (h *Handler) ListOwnPayouts(c *gin.Context) {
	limit, offset := pagination(c)
	payouts, err := h.service.ListPayouts(c.Request.Context(), c.GetInt64("user_id"), c.Query("status"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list payouts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payouts": payouts})
}

func (h *Handler) ListAllPayouts(c *gin.Context) {
	limit, offset := pagination(c)
	payouts, err := h.service.ListPayouts(c.Request.Context(), 0, c.Query("status"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list payouts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payouts": payouts})
}

func (h *Handler) ApprovePayout(c *gin.Context) {
	h.decidePayout(c, domain.PayoutApproved)
}

func (h *Handler) RejectPayout(c *gin.Context) {
	h.decidePayout(c, domain.PayoutRejected)
}

func (h *Handler) MarkPayoutPaid(c *gin.Context) {
	h.decidePayout(c, domain.PayoutPaid)
}

func (h *Handler) decidePayout(c *gin.Context, to domain.PayoutStatus) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.DecidePayout(c.Request.Context(), c.GetInt64("user_id"), id, to)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payout": p})
}

func (h *Handler) RequestRefund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rf, err := h.service.RequestRefund(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"refund": rf})
}

func (h *Handler) ListRefunds(c *gin.Context) {
	limit, offset := pagination(c)
	refunds, err := h.service.ListRefunds(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list refunds")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"refunds": refunds})
}

func (h *Handler) ApproveRefund(c *gin.Context) {
	h.decideRefund(c, true)
}

func (h *Handler) RejectRefund(c *gin.Context) {
	h.decideRefund(c, false)
}

func (h *Handler) decideRefund(c *gin.Context, approve bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	rf, err := h.service.DecideRefund(c.Request.Context(), c.GetInt64("user_id"), id, approve)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"refund": rf})
}

func (h *Handler) OpenDispute(c *gin.Context) {
	var req DisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.OpenDispute(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"dispute": d})
}

func (h *Handler) ListDisputes(c *gin.Context) {
	limit, offset := pagination(c)
	disputes, err := h.service.ListDisputes(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list disputes")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"disputes": disputes})
}

func (h *Handler) AdvanceDispute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req DisputeAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.AdvanceDispute(c.Request.Context(), id, domain.DisputeStatus(req.Status), req.Resolution)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"dispute": d})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to act on this record")
	case ErrInvalidState:
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Record state does not allow this transition")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid financial data")
	case ErrNoCommissionRule:
		response.Error(c, http.StatusUnprocessableEntity, "NO_COMMISSION_RULE", "No active commission rule configured")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
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
