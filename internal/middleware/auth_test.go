package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bonzenga/internal/domain"
	jwtsvc "bonzenga/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupRouter(j *jwtsvc.Service, accounts AccountResolver, roles ...domain.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", Auth(j, accounts))
	if len(roles) > 0 {
		group.Use(RequireRoles(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id"), "role": c.GetString("role")})
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingToken(t *testing.T) {
	j := jwtsvc.New("test-secret", time.Hour)
	r := setupRouter(j, new(MockAccountResolver))

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	j := jwtsvc.New("test-secret", time.Hour)
	r := setupRouter(j, new(MockAccountResolver))

	w := doRequest(r, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ActiveAccountPasses(t *testing.T) {
	j := jwtsvc.New("test-secret", time.Hour)
	token, err := j.GenerateToken(101, domain.RoleCustomer)
	assert.NoError(t, err)

	accounts := new(MockAccountResolver)
	accounts.On("GetByID", mock.Anything, int64(101)).Return(&domain.User{
		ID:     101,
		Role:   domain.RoleCustomer,
		Status: domain.AccountActive,
	}, nil)

	r := setupRouter(j, accounts)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"CUSTOMER"`)
}

func TestAuth_SuspendedAccountRefused(t *testing.T) {
	j := jwtsvc.New("test-secret", time.Hour)
	token, _ := j.GenerateToken(101, domain.RoleCustomer)

	accounts := new(MockAccountResolver)
	accounts.On("GetByID", mock.Anything, int64(101)).Return(&domain.User{
		ID:     101,
		Role:   domain.RoleCustomer,
		Status: domain.AccountSuspended,
	}, nil)

	r := setupRouter(j, accounts)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ACCOUNT_SUSPENDED")
}

func TestRequireRoles_WrongRoleRefused(t *testing.T) {
	j := jwtsvc.New("test-secret", time.Hour)
	token, _ := j.GenerateToken(101, domain.RoleCustomer)

	accounts := new(MockAccountResolver)
	accounts.On("GetByID", mock.Anything, int64(101)).Return(&domain.User{
		ID:     101,
		Role:   domain.RoleCustomer,
		Status: domain.AccountActive,
	}, nil)

	r := setupRouter(j, accounts, domain.RoleAdmin)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoles_MatchingRolePasses(t *testing.T) {
	j := jwtsvc.New("test-secret", time.Hour)
	token, _ := j.GenerateToken(101, domain.RoleManager)

	accounts := new(MockAccountResolver)
	accounts.On("GetByID", mock.Anything, int64(101)).Return(&domain.User{
		ID:     101,
		Role:   domain.RoleManager,
		Status: domain.AccountActive,
	}, nil)

	r := setupRouter(j, accounts, domain.RoleManager, domain.RoleAdmin)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}
