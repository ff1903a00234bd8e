package jwt

import (
	"testing"
	"time"

	"bonzenga/internal/domain"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidate_RoundTrip(t *testing.T) {
	svc := New("test-secret", time.Hour)

	token, err := svc.GenerateToken(42, domain.RoleVendor)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleVendor, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := New("test-secret", time.Hour)
	other := New("other-secret", time.Hour)

	token, err := svc.GenerateToken(42, domain.RoleCustomer)
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := New("test-secret", -time.Minute)

	token, err := svc.GenerateToken(42, domain.RoleCustomer)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_UnknownRoleRejected(t *testing.T) {
	svc := New("test-secret", time.Hour)

	// Sign a token carrying a role outside the known set with the same
	// secret; validation must refuse it.
	now := time.Now()
	claims := Claims{
		UserID: 42,
		Role:   domain.UserRole("SUPERUSER"),
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "bonzenga",
			Subject:   "42",
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
