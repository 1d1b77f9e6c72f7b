package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamforge/internal/dto"
	"teamforge/internal/pkg/config"
	"teamforge/internal/pkg/jwt"
	"teamforge/internal/repository"
	pkgErrors "teamforge/pkg/errors"
)

func newAuthService(t *testing.T) (AuthService, repository.UserRepository) {
	t.Helper()
	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{Auth: config.AuthConfig{JWT: config.JWTConfig{
		Secret:            "service-secret",
		AccessTokenExpire: 3600,
	}}}
	t.Cleanup(func() { config.GlobalConfig = prev })

	env := newTestEnv(t)
	return NewAuthService(&config.GlobalConfig.Auth, env.users), env.users
}

func TestAuthService_Signup(t *testing.T) {
	svc, users := newAuthService(t)

	user, err := svc.Signup(&dto.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	stored, err := users.FindByEmail("ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Signup(&dto.SignupRequest{Name: "Ada2", Email: "ada@example.com", Password: "other123"})
		assert.True(t, pkgErrors.Is(err, pkgErrors.ErrEmailExists))
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.Signup(&dto.SignupRequest{Name: "Bob", Email: "not-an-email", Password: "secret123"})
		assert.True(t, pkgErrors.Is(err, pkgErrors.ErrInvalidEmail))
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := svc.Signup(&dto.SignupRequest{Name: " ", Email: "bob@example.com", Password: "secret123"})
		appErr, ok := pkgErrors.As(err)
		require.True(t, ok)
		assert.Equal(t, pkgErrors.CodeBadRequest, appErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Signup(&dto.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "/home/home.html?email=ada%40example.com", resp.RedirectURL)
	assert.Equal(t, "Ada", resp.User.Name)

	claims, err := jwt.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, resp.User.ID, claims.UserID)

	_, err = svc.Login(&dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.Same(t, pkgErrors.ErrInvalidCredentials, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.Same(t, pkgErrors.ErrInvalidCredentials, err)
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := newAuthService(t)
	created, err := svc.Signup(&dto.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	me, err := svc.Me(&jwt.UserClaims{UserID: created.ID, Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Name)

	me, err = svc.Me(&jwt.UserClaims{UserID: 99, Email: "gone@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "gone@example.com", me.Email)

	_, err = svc.Me(nil)
	assert.Same(t, pkgErrors.ErrUnauthorized, err)
}
