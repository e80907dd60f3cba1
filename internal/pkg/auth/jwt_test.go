package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/apperrors"
)

func newService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: exp, TokenIssuer: "prereqplanner"})
}

func TestGenerateAndValidate(t *testing.T) {
	s := newService(time.Hour)
	token, expiresAt, err := s.GenerateToken("registrar", models.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := s.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "registrar", claims.Subject)
	assert.Equal(t, string(models.RoleAdmin), claims.RoleType)
}

func TestValidateRejects(t *testing.T) {
	s := newService(time.Hour)
	token, _, err := s.GenerateToken("registrar", models.RoleAdmin)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "prereqplanner"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	wrongIssuer := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "elsewhere"})
	_, err = wrongIssuer.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	expired, _, err := newService(-time.Minute).GenerateToken("registrar", models.RoleAdmin)
	require.NoError(t, err)
	_, err = s.ValidateToken(expired)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	_, err = s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)

	_, err = s.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, _, err = s.GenerateToken(" ", models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	tok, err = ExtractBearerToken("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = ExtractBearerToken("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}
