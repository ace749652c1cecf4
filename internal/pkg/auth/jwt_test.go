// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func jwtConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "storefront-test"
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	return cfg
}

func TestAccessTokenRoundTrip(t *testing.T) {
	jm := NewJWTManager(jwtConfig())

	token, err := jm.GenerateAccessToken(42, "buyer@example.com", "seller")
	require.NoError(t, err)

	claims, err := jm.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "seller", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	jm := NewJWTManager(jwtConfig())

	token, err := jm.GenerateRefreshToken(42, "buyer@example.com")
	require.NoError(t, err)

	_, err = jm.ValidateAccessToken(token)
	assert.Error(t, err)

	claims, err := jm.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Role)
}

func TestTamperedTokenRejected(t *testing.T) {
	jm := NewJWTManager(jwtConfig())

	token, err := jm.GenerateAccessToken(42, "buyer@example.com", "customer")
	require.NoError(t, err)

	other := jwtConfig()
	other.JWT.Secret = "a-completely-different-signing-secret"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}
