package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kitchensaver/internal/model"
)

func TestJWTService_MintVerifyRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.Mint("maker@example.com", model.RoleCabinetMaker, 7)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "maker@example.com", claims.Subject)
	assert.Equal(t, model.RoleCabinetMaker, claims.Role)
	assert.Equal(t, uint(7), claims.UserID)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestJWTService_VerifyExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.Mint("admin@example.com", model.RoleAdmin, 1)
	assert.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_VerifyWrongSecret(t *testing.T) {
	minter := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := minter.Mint("admin@example.com", model.RoleAdmin, 1)
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_VerifyMalformed(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
