package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamforge/internal/model"
	pkgErrors "teamforge/pkg/errors"
)

type TeamRepository interface {
	// Create 连同角色与成员一起写入
	Create(team *model.Team) error
	FindByID(id int64, opts ...QueryOption) (*model.Team, error)
	ListByVisibility(visibility string) ([]*model.Team, error)
	ListByCreator(email string) ([]*model.Team, error)
	ListByMember(email string) ([]*model.Team, error)
	FindRole(teamID, roleID int64) (*model.TeamRole, error)
	FindRoleByName(teamID int64, name string) (*model.TeamRole, error)
	// FindRoleForUpdate 行锁读取角色, 仅在事务中使用
	FindRoleForUpdate(roleID int64) (*model.TeamRole, error)
	DecrementRoleCount(roleID int64) error
	IsMember(teamID int64, email string) (bool, error)
	AddMember(member *model.TeamMember) error
	WithTx(tx *gorm.DB) TeamRepository
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) WithTx(tx *gorm.DB) TeamRepository {
	return &teamRepository{db: tx}
}

func (r *teamRepository) Create(team *model.Team) error {
	if err := r.db.Create(team).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建团队失败", err)
	}
	return nil
}

func (r *teamRepository) FindByID(id int64, opts ...QueryOption) (*model.Team, error) {
	var team model.Team
	if err := apply(r.db, opts).First(&team, id).Error; err != nil {
		return nil, wrapFind(err, pkgErrors.ErrTeamNotFound, "查询团队失败")
	}
	return &team, nil
}

func (r *teamRepository) ListByVisibility(visibility string) ([]*model.Team, error) {
	var teams []*model.Team
	err := WithTeamDetail()(r.db).
		Where("project_visibility = ?", visibility).
		Order("created_at DESC, id DESC").
		Find(&teams).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询团队列表失败", err)
	}
	return teams, nil
}

func (r *teamRepository) ListByCreator(email string) ([]*model.Team, error) {
	var teams []*model.Team
	err := WithTeamDetail()(r.db).
		Where("creator_email = ?", email).
		Order("created_at DESC, id DESC").
		Find(&teams).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询团队列表失败", err)
	}
	return teams, nil
}

// ListByMember 用户所在的团队(含自己创建的)
func (r *teamRepository) ListByMember(email string) ([]*model.Team, error) {
	var teams []*model.Team
	err := WithTeamDetail()(r.db).
		Where("id IN (?)", r.db.Model(&model.TeamMember{}).Select("team_id").Where("email = ?", email)).
		Order("created_at DESC, id DESC").
		Find(&teams).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询团队列表失败", err)
	}
	return teams, nil
}

func (r *teamRepository) FindRole(teamID, roleID int64) (*model.TeamRole, error) {
	var role model.TeamRole
	if err := r.db.Where("id = ? AND team_id = ?", roleID, teamID).First(&role).Error; err != nil {
		return nil, wrapFind(err, pkgErrors.ErrRoleNotFound, "查询团队角色失败")
	}
	return &role, nil
}

// FindRoleByName 同名角色取第一个
func (r *teamRepository) FindRoleByName(teamID int64, name string) (*model.TeamRole, error) {
	var role model.TeamRole
	err := r.db.Where("team_id = ? AND name = ?", teamID, name).
		Order("sort ASC, id ASC").
		First(&role).Error
	if err != nil {
		return nil, wrapFind(err, pkgErrors.ErrRoleNotFound, "查询团队角色失败")
	}
	return &role, nil
}

func (r *teamRepository) FindRoleForUpdate(roleID int64) (*model.TeamRole, error) {
	var role model.TeamRole
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&role, roleID).Error
	if err != nil {
		return nil, wrapFind(err, pkgErrors.ErrRoleNotFound, "查询团队角色失败")
	}
	return &role, nil
}

func (r *teamRepository) DecrementRoleCount(roleID int64) error {
	err := r.db.Model(&model.TeamRole{}).
		Where("id = ?", roleID).
		UpdateColumn("count", gorm.Expr("count - 1")).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新角色名额失败", err)
	}
	return nil
}

func (r *teamRepository) IsMember(teamID int64, email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.TeamMember{}).
		Where("team_id = ? AND email = ?", teamID, email).
		Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询团队成员失败", err)
	}
	return count > 0, nil
}

func (r *teamRepository) AddMember(member *model.TeamMember) error {
	if err := r.db.Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgErrors.ErrAlreadyMember
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "添加团队成员失败", err)
	}
	return nil
}
