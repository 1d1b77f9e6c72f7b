package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamforge/internal/model"
	"teamforge/pkg/constants"
	pkgErrors "teamforge/pkg/errors"
)

type JoinRequestRepository interface {
	Create(req *model.JoinRequest) error
	HasPending(teamID int64, requesterEmail string) (bool, error)
	// FindPendingForUpdate 按 id+创建者+待处理 锁定申请, 不满足任一条件返回 ErrNotFoundOrUnauthorized
	FindPendingForUpdate(id int64, creatorEmail string) (*model.JoinRequest, error)
	UpdateStatus(id int64, status string) error
	ListPendingByCreator(creatorEmail string) ([]*model.PendingJoinRequest, error)
	WithTx(tx *gorm.DB) JoinRequestRepository
}

type joinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

func (r *joinRequestRepository) WithTx(tx *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: tx}
}

func (r *joinRequestRepository) Create(req *model.JoinRequest) error {
	if err := r.db.Omit("Team").Create(req).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建加入申请失败", err)
	}
	return nil
}

func (r *joinRequestRepository) HasPending(teamID int64, requesterEmail string) (bool, error) {
	var count int64
	err := r.db.Model(&model.JoinRequest{}).
		Where("team_id = ? AND requester_email = ? AND status = ?", teamID, requesterEmail, constants.JoinRequestStatusPending).
		Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询加入申请失败", err)
	}
	return count > 0, nil
}

func (r *joinRequestRepository) FindPendingForUpdate(id int64, creatorEmail string) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND creator_email = ? AND status = ?", id, creatorEmail, constants.JoinRequestStatusPending).
		First(&req).Error
	if err != nil {
		return nil, wrapFind(err, pkgErrors.ErrNotFoundOrUnauthorized, "查询加入申请失败")
	}
	return &req, nil
}

func (r *joinRequestRepository) UpdateStatus(id int64, status string) error {
	err := r.db.Model(&model.JoinRequest{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新加入申请失败", err)
	}
	return nil
}

func (r *joinRequestRepository) ListPendingByCreator(creatorEmail string) ([]*model.PendingJoinRequest, error) {
	var rows []*model.PendingJoinRequest
	err := r.db.Table(model.JoinRequestTableName+" AS jr").
		Select("jr.*, COALESCE(u.name, '') AS requester_name, t.project_name AS project_name").
		Joins("JOIN "+model.TeamTableName+" AS t ON t.id = jr.team_id").
		Joins("LEFT JOIN "+model.UserTableName+" AS u ON u.email = jr.requester_email").
		Where("jr.creator_email = ? AND jr.status = ?", creatorEmail, constants.JoinRequestStatusPending).
		Order("jr.created_at DESC, jr.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询加入申请列表失败", err)
	}
	return rows, nil
}
