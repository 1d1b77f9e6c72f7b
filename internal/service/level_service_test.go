package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelService_Reconcile(t *testing.T) {
	env := newTestEnv(t)

	for _, email := range []string{"ada@example.com", "bob@example.com", "carol@example.com"} {
		_, err := env.profiles.FirstOrCreate(email)
		require.NoError(t, err)
	}
	// 直接改库造成等级与积分不一致
	require.NoError(t, env.profiles.AddPoints("ada@example.com", 460))
	require.NoError(t, env.profiles.AddPoints("bob@example.com", 10))
	require.NoError(t, env.profiles.UpdateLevel("carol@example.com", 7, "intermediate"))

	fixed, err := env.level.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fixed)

	ada, err := env.profiles.FindByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 9, ada.Level)
	assert.Equal(t, "mentor", ada.Position)

	carol, err := env.profiles.FindByEmail("carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, carol.Level)
	assert.Equal(t, "beginner", carol.Position)

	fixed, err = env.level.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fixed)
}

func TestLevelService_Catalog(t *testing.T) {
	env := newTestEnv(t)
	badges, err := env.level.Catalog()
	require.NoError(t, err)
	require.NotEmpty(t, badges)
	assert.Equal(t, 0, badges[0].Level)
}
