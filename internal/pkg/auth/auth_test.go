package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "storefront-test"
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Security.BcryptCost = 4 // keep test runs fast
	return cfg
}

func TestPasswordHashAndVerify(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	hash, err := pm.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.NoError(t, pm.VerifyPassword("Sup3rSecret", hash))
	assert.Error(t, pm.VerifyPassword("wrong-password", hash))
}

func TestPasswordValidation(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Sup3rSecret", false},
		{"too short", "Ab1", true},
		{"no uppercase", "sup3rsecret", true},
		{"no lowercase", "SUP3RSECRET", true},
		{"no number", "SuperSecret", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := pm.ValidatePassword(tc.password)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJWTRoundTrip(t *testing.T) {
	jm := NewJWTManager(testConfig())

	token, err := jm.GenerateAccessToken("user-123", "alice@example.com", true)
	require.NoError(t, err)

	claims, err := jm.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	jm := NewJWTManager(testConfig())
	token, err := jm.GenerateAccessToken("user-123", "alice@example.com", false)
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	other := NewJWTManager(otherCfg)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Empty(t, ExtractTokenFromHeader("abc"))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Basic abc"))
}
