package catalog

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/vendors", h.ListVendors)
	rg.GET("/vendors/:id", h.GetVendor)
	rg.GET("/vendors/:id/services", h.ListVendorServices)
}

// RegisterVendorRoutes go on the VENDOR-gated group.
func (h *Handler) RegisterVendorRoutes(rg *gin.RouterGroup) {
	rg.PUT("/vendor/profile", h.UpdateProfile)
	rg.POST("/vendor/services", h.CreateService)
	rg.PUT("/vendor/services/:id", h.UpdateService)
	rg.DELETE("/vendor/services/:id", h.DeleteService)
	rg.GET("/vendor/services", h.ListOwnServices)
}

// RegisterModerationRoutes go on the MANAGER/ADMIN group.
func (h *Handler) RegisterModerationRoutes(rg *gin.RouterGroup) {
	rg.POST("/vendors/:id/suspend", h.SuspendVendor)
	rg.POST("/vendors/:id/reinstate", h.ReinstateVendor)
}

func (h *Handler) ListVendors(c *gin.Context) {
	limit := parseIntDefault(c.Query("limit"), 20)
	offset := parseIntDefault(c.Query("offset"), 0)

	vendors, total, err := h.service.ListVendors(c.Request.Context(), c.Query("city"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list vendors")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vendors": vendors, "total": total})
}

func (h *Handler) GetVendor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID")
		return
	}

	v, err := h.service.GetVendor(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vendor": v})
}

func (h *Handler) ListVendorServices(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID")
		return
	}

	services, err := h.service.ListVendorServices(c.Request.Context(), id, true)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list services")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req VendorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.UpdateVendorProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vendor": v})
}

func (h *Handler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"service": svc})
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.UpdateService(
		c.Request.Context(),
		c.GetInt64("user_id"),
		domain.UserRole(c.GetString("role")),
		id, req,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"service": svc})
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	if err := h.service.DeleteService(
		c.Request.Context(),
		c.GetInt64("user_id"),
		domain.UserRole(c.GetString("role")),
		id,
	); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListOwnServices(c *gin.Context) {
	services, err := h.service.ListVendorServices(c.Request.Context(), c.GetInt64("user_id"), false)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list services")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) SuspendVendor(c *gin.Context) {
	h.moderate(c, h.service.SuspendVendor)
}

func (h *Handler) ReinstateVendor(c *gin.Context) {
	h.moderate(c, h.service.ReinstateVendor)
}

func (h *Handler) moderate(c *gin.Context, fn func(ctx context.Context, id int64) (*domain.Vendor, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID")
		return
	}

	v, err := fn(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vendor": v})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vendor or service not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this resource")
	case ErrInvalidState:
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Vendor status does not allow this transition")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid data")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}
	return v
}
