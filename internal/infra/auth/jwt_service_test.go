package auth

import (
	"testing"

	"ratehub/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	userID := uuid.New()

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID, "OWNER")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	token, err := jwtService.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, "OWNER", claims["role"])
	assert.Equal(t, "access", claims["type"])

	// Validate refresh token
	token, err = jwtService.ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok = token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, "refresh", claims["type"])
	// Refresh tokens don't carry the role.
	_, hasRole := claims["role"]
	assert.False(t, hasRole)
}

func TestJWTService_TokensAreNotInterchangeable(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokens(uuid.New(), "USER")
	require.NoError(t, err)

	// An access token must not validate against the refresh secret, and vice versa.
	_, err = jwtService.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
	_, err = jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_RequiresSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}
