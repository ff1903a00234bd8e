package review

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

// RegisterApplicantRoutes go on the authenticated group (any role;
// the service decides who may apply).
func (h *Handler) RegisterApplicantRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.Submit)
	rg.GET("/applications/:id", h.Get)
}

// RegisterReviewerRoutes go on the MANAGER/ADMIN group.
func (h *Handler) RegisterReviewerRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications", h.ListPending)
	rg.POST("/applications/:id/review", h.Review)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	app, err := h.service.Submit(
		c.Request.Context(),
		c.GetInt64("user_id"),
		domain.UserRole(c.GetString("role")),
		req,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"application": gin.H{"id": app.ID, "status": app.Status},
	})
}

func (h *Handler) Review(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid application ID")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	app, err := h.service.Review(
		c.Request.Context(),
		id,
		c.GetInt64("user_id"),
		domain.UserRole(c.GetString("role")),
		req,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"application": app})
}

func (h *Handler) ListPending(c *gin.Context) {
	limit := parseIntDefault(c.Query("limit"), 20)
	offset := parseIntDefault(c.Query("offset"), 0)

	apps, total, err := h.service.ListPending(
		c.Request.Context(),
		domain.UserRole(c.GetString("role")),
		limit, offset,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"applications": apps,
		"total":        total,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid application ID")
		return
	}

	app, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	// applicants may only read their own application; reviewers read all
	role := domain.UserRole(c.GetString("role"))
	if role != domain.RoleManager && role != domain.RoleAdmin && app.ApplicantID != c.GetInt64("user_id") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your application")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"application": app})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Application not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Role not allowed to decide this stage")
	case ErrInvalidState:
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Decision not legal from the current status")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection requires a reason")
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
