package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_ClaimsRoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "1h")

	companyID := "company-1"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "admin@example.com", &companyID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, "company-1", claims["company_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_NilCompanyID(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "1h")

	tokenString, _, err := svc.GenerateAccessToken("user-1", "admin@example.com", nil, "admin")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims["company_id"])
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("user-1", "admin@example.com", nil, "admin")
	assert.Error(t, err)
}
