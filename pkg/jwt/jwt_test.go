package jwt

import (
	"testing"
	"time"

	"hospital-scheduling/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{Secret: "secret", AccessExpiry: time.Minute})
	userID := uuid.New()

	token, tokenID, err := service.GenerateAccessToken(userID, "doc@hospital.test", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, 2, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
	assert.Equal(t, "access_token:"+userID.String()+":"+tokenID, SessionKey(userID, tokenID))
}

func TestValidateToken_Rejects(t *testing.T) {
	service := NewJWTService(config.JWTConfig{Secret: "secret", AccessExpiry: time.Minute})
	other := NewJWTService(config.JWTConfig{Secret: "other", AccessExpiry: time.Minute})
	expired := NewJWTService(config.JWTConfig{Secret: "secret", AccessExpiry: -time.Minute})

	token, _, err := other.GenerateAccessToken(uuid.New(), "a@b.c", 3)
	require.NoError(t, err)
	_, err = service.ValidateToken(token)
	assert.Error(t, err)

	token, _, err = expired.GenerateAccessToken(uuid.New(), "a@b.c", 3)
	require.NoError(t, err)
	_, err = service.ValidateToken(token)
	assert.Error(t, err)

	_, err = service.ValidateToken("not-a-token")
	assert.Error(t, err)
}
