package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teamforge/internal/adapter/notification"
	"teamforge/internal/adapter/storage"
	"teamforge/internal/model"
	"teamforge/internal/pkg/crypto"
	"teamforge/internal/pkg/database/dbtest"
	"teamforge/internal/repository"
)

// testEnv 基于内存库的完整服务集合
type testEnv struct {
	db       *gorm.DB
	uploader *storage.MockUploader
	notifier *notification.MockNotifier

	users    repository.UserRepository
	profiles repository.ProfileRepository
	posts    repository.PostRepository
	teams    repository.TeamRepository
	requests repository.JoinRequestRepository

	profile ProfileService
	post    PostService
	team    TeamService
	join    JoinRequestService
	chat    ChatService
	user    UserService
	level   LevelService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.New(t)
	env := &testEnv{
		db:       db,
		uploader: storage.NewMockUploader(),
		notifier: &notification.MockNotifier{},
		users:    repository.NewUserRepository(db),
		profiles: repository.NewProfileRepository(db),
		posts:    repository.NewPostRepository(db),
		teams:    repository.NewTeamRepository(db),
		requests: repository.NewJoinRequestRepository(db),
	}
	env.profile = NewProfileService(db, env.users, env.profiles, env.uploader)
	env.post = NewPostService(db, env.posts, env.profiles, env.users, env.uploader)
	env.team = NewTeamService(db, env.teams)
	env.join = NewJoinRequestService(db, env.teams, env.requests, env.notifier)
	env.chat = NewChatService(repository.NewChatRepository(db))
	env.user = NewUserService(env.users)
	env.level = NewLevelService(env.profiles)
	return env
}

func (e *testEnv) createUser(t *testing.T, name, email string) *model.User {
	t.Helper()
	hash, err := crypto.HashPassword("secret123")
	require.NoError(t, err)
	user := &model.User{Name: name, Email: email, Password: hash}
	require.NoError(t, e.users.Create(user))
	return user
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
