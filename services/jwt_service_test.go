package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractClaims(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken("user-1", "admin@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestExtractClaimsRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken("user-1", "admin@example.com", "admin")
	require.NoError(t, err)

	_, err = svc.ExtractClaims(token + "x")
	assert.Error(t, err)
}

func TestExtractClaimsRejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(testConfig())

	otherCfg := testConfig()
	otherCfg.JWTSecretKey = "different-secret"
	other := NewJWTService(otherCfg)

	token, err := other.GenerateToken("user-1", "admin@example.com", "admin")
	require.NoError(t, err)

	_, err = svc.ExtractClaims(token)
	assert.Error(t, err)
}

func TestExtractClaimsRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testConfig())

	_, err := svc.ExtractClaims("not-a-jwt")
	assert.Error(t, err)
}
