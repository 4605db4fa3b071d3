package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/config"
)

func jwtService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := jwtService("secret-1")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := jwtService("secret-1").GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = jwtService("secret-2").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenEmpty(t *testing.T) {
	_, err := jwtService("secret").ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenMalformed(t *testing.T) {
	_, err := jwtService("secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 409, HTTPStatus(&ErrEmailAlreadyExists{Email: "a@b.c"}))
	assert.Equal(t, 401, HTTPStatus(&ErrInvalidCredentials{}))
	assert.Equal(t, 404, HTTPStatus(&ErrUserNotFound{}))
	assert.Equal(t, 400, HTTPStatus(&ErrValidation{Field: "email", Message: "required"}))
	assert.Equal(t, 500, HTTPStatus(assert.AnError))
}
