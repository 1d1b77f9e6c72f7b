package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamforge/internal/pkg/config"
	pkgErrors "teamforge/pkg/errors"
)

func setup(t *testing.T, expire int) {
	t.Helper()
	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{Auth: config.AuthConfig{JWT: config.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpire: expire,
	}}}
	t.Cleanup(func() { config.GlobalConfig = prev })
}

func TestGenerateAndParse(t *testing.T) {
	setup(t, 3600)

	token, err := GenerateAccessToken(42, "ada@example.com")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseExpiredToken(t *testing.T) {
	setup(t, 3600)

	claims := UserClaims{
		UserID: 1,
		Email:  "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(token)
	require.Error(t, err)
	appErr, ok := pkgErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, pkgErrors.CodeUnauthorized, appErr.Code)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	setup(t, 3600)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{Email: "x@example.com"}).
		SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)
}
