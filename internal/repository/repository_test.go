package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teamforge/internal/model"
	"teamforge/internal/pkg/database/dbtest"
	"teamforge/pkg/constants"
	pkgErrors "teamforge/pkg/errors"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepositoryErrorMapping(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))
	_, err := repo.FindByEmail("ghost@example.com")
	assert.Same(t, pkgErrors.ErrUserNotFound, err)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnError(errors.New("connection reset"))
	_, err = repo.FindByEmail("ada@example.com")
	appErr, ok := pkgErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, pkgErrors.CodeDatabaseError, appErr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryIncrementLikesMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec("UPDATE `posts` SET `likes`=likes \\+ 1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.IncrementLikes(99)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepositoryListByMember(t *testing.T) {
	db := dbtest.New(t)
	repo := NewTeamRepository(db)

	mine := &model.Team{
		CreatorEmail:      "ada@example.com",
		ProjectName:       "compiler",
		ProjectVisibility: constants.VisibilityPublic,
		Roles:             []model.TeamRole{{Name: "Dev", Count: 2}},
		Members:           []model.TeamMember{{Email: "ada@example.com", Role: constants.DefaultCreatorRole}},
	}
	joined := &model.Team{
		CreatorEmail:      "bob@example.com",
		ProjectName:       "kernel",
		ProjectVisibility: constants.VisibilityPrivate,
		Members: []model.TeamMember{
			{Email: "bob@example.com", Role: constants.DefaultCreatorRole},
			{Email: "ada@example.com", Role: "Dev"},
		},
	}
	other := &model.Team{
		CreatorEmail:      "eve@example.com",
		ProjectName:       "other",
		ProjectVisibility: constants.VisibilityPublic,
		Members:           []model.TeamMember{{Email: "eve@example.com", Role: constants.DefaultCreatorRole}},
	}
	require.NoError(t, repo.Create(mine))
	require.NoError(t, repo.Create(joined))
	require.NoError(t, repo.Create(other))

	teams, err := repo.ListByMember("ada@example.com")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "kernel", teams[0].ProjectName)
	assert.Equal(t, "compiler", teams[1].ProjectName)
	assert.Len(t, teams[0].Members, 2)
	assert.Len(t, teams[1].Roles, 1)

	public, err := repo.ListByVisibility(constants.VisibilityPublic)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	err = repo.AddMember(&model.TeamMember{TeamID: mine.ID, Email: "ada@example.com", Role: "Dev"})
	assert.Same(t, pkgErrors.ErrAlreadyMember, err)
}

func TestProfileRepositoryReplaceSkills(t *testing.T) {
	db := dbtest.New(t)
	repo := NewProfileRepository(db)

	require.NoError(t, repo.ReplaceSkills("ada@example.com", []string{"go", "sql"}))
	require.NoError(t, repo.ReplaceSkills("ada@example.com", []string{" rust ", "", "  "}))

	skills, err := repo.ListSkills("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"rust"}, skills)
}

func TestProfileRepositoryFirstOrCreateAndPoints(t *testing.T) {
	db := dbtest.New(t)
	repo := NewProfileRepository(db)

	p, err := repo.FirstOrCreate("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Points)
	assert.Equal(t, constants.PositionBeginner, p.Position)

	require.NoError(t, repo.AddPoints("ada@example.com", 3))
	_, err = repo.FirstOrCreate("ada@example.com")
	require.NoError(t, err)

	p, err = repo.FindByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Points)
}

func TestJoinRequestRepositoryPendingList(t *testing.T) {
	db := dbtest.New(t)
	teams := NewTeamRepository(db)
	users := NewUserRepository(db)
	requests := NewJoinRequestRepository(db)

	require.NoError(t, users.Create(&model.User{Name: "Bob", Email: "bob@example.com", Password: "x"}))
	team := &model.Team{CreatorEmail: "ada@example.com", ProjectName: "compiler", ProjectVisibility: constants.VisibilityPublic}
	require.NoError(t, teams.Create(team))

	req := &model.JoinRequest{
		TeamID:         team.ID,
		RoleID:         1,
		RequesterEmail: "bob@example.com",
		CreatorEmail:   "ada@example.com",
		RequestedRole:  "Dev",
		Status:         constants.JoinRequestStatusPending,
	}
	require.NoError(t, requests.Create(req))

	pending, err := requests.HasPending(team.ID, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, pending)

	rows, err := requests.ListPendingByCreator("ada@example.com")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob", rows[0].RequesterName)
	assert.Equal(t, "compiler", rows[0].ProjectName)
	assert.Equal(t, req.ID, rows[0].ID)

	_, err = requests.FindPendingForUpdate(req.ID, "mallory@example.com")
	assert.Same(t, pkgErrors.ErrNotFoundOrUnauthorized, err)
}

func TestTeamRepositoryRoleLookupAndMembership(t *testing.T) {
	db := dbtest.New(t)
	repo := NewTeamRepository(db)

	team := &model.Team{
		CreatorEmail:      "ada@example.com",
		ProjectName:       "compiler",
		ProjectVisibility: constants.VisibilityPublic,
		Roles:             []model.TeamRole{{Name: "Dev", Count: 2}, {Name: "Dev", Count: 1}, {Name: "QA", Count: 1}},
		Members:           []model.TeamMember{{Email: "ada@example.com", Role: constants.DefaultCreatorRole}},
	}
	other := &model.Team{CreatorEmail: "bob@example.com", ProjectName: "kernel", ProjectVisibility: constants.VisibilityPublic}
	require.NoError(t, repo.Create(team))
	require.NoError(t, repo.Create(other))

	role, err := repo.FindRoleByName(team.ID, "Dev")
	require.NoError(t, err)
	assert.Equal(t, team.Roles[0].ID, role.ID)

	_, err = repo.FindRoleByName(team.ID, "Designer")
	assert.Same(t, pkgErrors.ErrRoleNotFound, err)

	role, err = repo.FindRole(team.ID, team.Roles[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "QA", role.Name)

	_, err = repo.FindRole(other.ID, team.Roles[2].ID)
	assert.Same(t, pkgErrors.ErrRoleNotFound, err)

	member, err := repo.IsMember(team.ID, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, member)

	member, err = repo.IsMember(other.ID, "ada@example.com")
	require.NoError(t, err)
	assert.False(t, member)
}

func TestApprovalReadsLockRows(t *testing.T) {
	db, mock := newMockDB(t)
	requests := NewJoinRequestRepository(db)
	teams := NewTeamRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `join_requests` WHERE (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "role_id", "status"}).AddRow(7, 1, 3, constants.JoinRequestStatusPending))
	mock.ExpectQuery("SELECT (.+) FROM `team_roles` WHERE (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "name", "count"}).AddRow(3, 1, "Dev", 1))

	req, err := requests.FindPendingForUpdate(7, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), req.RoleID)

	role, err := teams.FindRoleForUpdate(req.RoleID)
	require.NoError(t, err)
	assert.Equal(t, 1, role.Count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
