package middleware

import (
	"context"
	"net/http"
	"strings"

	"bonzenga/internal/domain"
	jwtsvc "bonzenga/internal/pkg/jwt"
	"bonzenga/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountResolver re-checks the token's subject against the identity store.
type AccountResolver interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Auth validates the bearer token and loads the backing account. Suspended
// accounts are refused even when their token is still valid.
func Auth(jwt *jwtsvc.Service, accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		user, err := accounts.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || user == nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account not found")
			c.Abort()
			return
		}
		if user.Status != domain.AccountActive {
			response.Error(c, http.StatusForbidden, "ACCOUNT_SUSPENDED", "Account is suspended")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))

		c.Next()
	}
}

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.UserRole(c.GetString("role"))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}
