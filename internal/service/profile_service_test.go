package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamforge/internal/dto"
	pkgErrors "teamforge/pkg/errors"
)

func TestProfileService_GetDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ada", "ada@example.com")

	resp, err := env.profile.Get("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", resp.Name)
	assert.Equal(t, "https://i.pravatar.cc/150?u=ada%40example.com", resp.ProfilePic)
	assert.Equal(t, "beginner", resp.Position)
	assert.Equal(t, 0, resp.Level)
	assert.Empty(t, resp.Skills)

	_, err = env.profile.Get("ghost@example.com")
	assert.Same(t, pkgErrors.ErrUserNotFound, err)
}

func TestProfileService_Update(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ada", "ada@example.com")

	// 库中已有积分, 资料更新时按积分重算等级
	_, err := env.profiles.FirstOrCreate("ada@example.com")
	require.NoError(t, err)
	require.NoError(t, env.profiles.AddPoints("ada@example.com", 250))

	resp, err := env.profile.Update("ada@example.com", &dto.UpdateProfileRequest{
		Name:      "Ada Lovelace",
		Bio:       strPtr("math"),
		Education: []string{"Cambridge"},
		Skills:    []string{" go ", "", "sql"},
		Points:    intPtr(99999),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", resp.Name)
	assert.Equal(t, "math", resp.Bio)
	assert.Equal(t, []string{"go", "sql"}, resp.Skills)
	assert.Equal(t, 250, resp.Points)
	assert.Equal(t, 5, resp.Level)
	assert.Equal(t, "intermediate", resp.Position)

	// 不传skills时保留原技能
	resp, err = env.profile.Update("ada@example.com", &dto.UpdateProfileRequest{Bio: strPtr("poetry")})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, resp.Skills)
	assert.Equal(t, "Ada Lovelace", resp.Name)

	// 传空数组时清空
	resp, err = env.profile.Update("ada@example.com", &dto.UpdateProfileRequest{Skills: []string{}})
	require.NoError(t, err)
	assert.Empty(t, resp.Skills)
}

func TestProfileService_UpdateUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.profile.Update("ghost@example.com", &dto.UpdateProfileRequest{Name: "Ghost"})
	assert.Same(t, pkgErrors.ErrUserNotFound, err)
}

func TestProfileService_UploadPhoto(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ada", "ada@example.com")

	env.uploader.On("Upload", mock.Anything,
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "profile-pics/ada@example.com_") && strings.HasSuffix(key, ".png")
		}),
		int64(3), "image/png").
		Return("https://cdn.local/profile-pics/ada.png", nil).Once()

	resp, err := env.profile.UploadPhoto(context.Background(), "ada@example.com", &UploadFile{
		Filename: "me.PNG", Size: 3, ContentType: "image/png", Body: strings.NewReader("png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.local/profile-pics/ada.png", resp.URL)

	profile, err := env.profile.Get("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.local/profile-pics/ada.png", profile.ProfilePic)
	env.uploader.AssertExpectations(t)
}

func TestProfileService_UploadPhotoErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profile.UploadPhoto(context.Background(), "ada@example.com", nil)
	assert.Same(t, pkgErrors.ErrMissingFile, err)

	env.uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unavailable")).Once()
	_, err = env.profile.UploadPhoto(context.Background(), "ada@example.com", &UploadFile{
		Filename: "a.jpg", Size: 1, ContentType: "image/jpeg", Body: strings.NewReader("x"),
	})
	appErr, ok := pkgErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, pkgErrors.CodeStorageError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus())
}
