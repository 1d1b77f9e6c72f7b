package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "teamforge/pkg/errors"
)

func TestUserService_Search(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ada Lovelace", "ada@example.com")
	env.createUser(t, "Adam Smith", "adam@example.com")
	env.createUser(t, "Bob", "bob@example.com")
	_, err := env.profiles.FirstOrCreate("adam@example.com")
	require.NoError(t, err)
	require.NoError(t, env.profiles.UpdateProfilePic("adam@example.com", "https://cdn.local/adam.png"))

	rows, err := env.user.Search("Ada")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ada Lovelace", rows[0].Name)
	assert.Equal(t, "https://i.pravatar.cc/150?u=ada%40example.com", rows[0].ProfilePic)
	assert.Equal(t, "https://cdn.local/adam.png", rows[1].ProfilePic)

	_, err = env.user.Search("   ")
	assert.Same(t, pkgErrors.ErrInvalidParams, err)
}
