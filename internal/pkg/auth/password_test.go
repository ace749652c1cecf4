// internal/pkg/auth/password_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Security.BcryptCost = bcrypt.MinCost
	return cfg
}

func TestValidatePassword(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	assert.NoError(t, pm.ValidatePassword("Sufficient1"))
	assert.Error(t, pm.ValidatePassword("Short1"))
	assert.Error(t, pm.ValidatePassword("alllowercase1"))
	assert.Error(t, pm.ValidatePassword("ALLUPPERCASE1"))
	assert.Error(t, pm.ValidatePassword("NoNumbersHere"))
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	hash, err := pm.HashPassword("Sufficient1")
	require.NoError(t, err)
	assert.NotEqual(t, "Sufficient1", hash)

	assert.NoError(t, pm.VerifyPassword("Sufficient1", hash))
	assert.Error(t, pm.VerifyPassword("WrongPass1", hash))
}

func TestGenerateResetTokenIsUnique(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	a, err := pm.GenerateResetToken()
	require.NoError(t, err)
	b, err := pm.GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}
