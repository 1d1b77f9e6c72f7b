package service

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamforge/internal/adapter/notification"
	"teamforge/internal/dto"
	"teamforge/internal/model"
	"teamforge/internal/pkg/logger"
	"teamforge/internal/pkg/metrics"
	"teamforge/internal/repository"
	"teamforge/pkg/constants"
	pkgErrors "teamforge/pkg/errors"
)

type JoinRequestService interface {
	// Submit 申请加入团队的某个角色
	Submit(ctx context.Context, requesterEmail string, req *dto.JoinTeamRequest) (*dto.JoinRequestCreatedResponse, error)
	// ListPending 创建者名下待处理的申请
	ListPending(creatorEmail string) ([]*dto.PendingJoinRequestResponse, error)
	// Resolve 通过或拒绝申请, 仅团队创建者可处理
	Resolve(ctx context.Context, creatorEmail string, req *dto.ResolveJoinRequest) (*dto.ResolveJoinResponse, error)
}

type joinRequestService struct {
	db       *gorm.DB
	teamRepo repository.TeamRepository
	repo     repository.JoinRequestRepository
	notifier notification.Notifier
}

func NewJoinRequestService(
	db *gorm.DB,
	teamRepo repository.TeamRepository,
	repo repository.JoinRequestRepository,
	notifier notification.Notifier,
) JoinRequestService {
	return &joinRequestService{
		db:       db,
		teamRepo: teamRepo,
		repo:     repo,
		notifier: notifier,
	}
}

func (s *joinRequestService) Submit(ctx context.Context, requesterEmail string, req *dto.JoinTeamRequest) (*dto.JoinRequestCreatedResponse, error) {
	team, err := s.teamRepo.FindByID(req.TeamID)
	if err != nil {
		return nil, err
	}

	member, err := s.teamRepo.IsMember(team.ID, requesterEmail)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, pkgErrors.ErrAlreadyMember
	}

	pending, err := s.repo.HasPending(team.ID, requesterEmail)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, pkgErrors.ErrPendingRequestExists
	}

	role, err := s.resolveRole(team.ID, req)
	if err != nil {
		return nil, err
	}

	joinReq := &model.JoinRequest{
		TeamID:         team.ID,
		RoleID:         role.ID,
		RequesterEmail: requesterEmail,
		CreatorEmail:   team.CreatorEmail,
		RequestedRole:  role.Name,
		Status:         constants.JoinRequestStatusPending,
	}
	if err := s.repo.Create(joinReq); err != nil {
		return nil, err
	}

	metrics.JoinRequestEvent("submitted")
	logger.Info("加入申请已创建",
		zap.Int64("request_id", joinReq.ID),
		zap.Int64("team_id", team.ID),
		zap.String("requester", requesterEmail),
		zap.String("role", role.Name))

	s.notify(ctx, &notification.JoinRequestEvent{
		Type:           notification.NotifyJoinRequested,
		RequestID:      joinReq.ID,
		TeamID:         team.ID,
		ProjectName:    team.ProjectName,
		RequesterEmail: requesterEmail,
		CreatorEmail:   team.CreatorEmail,
		Role:           role.Name,
	})

	return &dto.JoinRequestCreatedResponse{RequestID: joinReq.ID}, nil
}

// resolveRole 优先按角色ID匹配, 否则取第一个同名角色
func (s *joinRequestService) resolveRole(teamID int64, req *dto.JoinTeamRequest) (*model.TeamRole, error) {
	if req.RoleID != nil {
		return s.teamRepo.FindRole(teamID, *req.RoleID)
	}
	return s.teamRepo.FindRoleByName(teamID, req.RequestedRole)
}

func (s *joinRequestService) ListPending(creatorEmail string) ([]*dto.PendingJoinRequestResponse, error) {
	rows, err := s.repo.ListPendingByCreator(creatorEmail)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row *model.PendingJoinRequest, _ int) *dto.PendingJoinRequestResponse {
		return dto.NewPendingJoinRequestResponse(row)
	}), nil
}

func (s *joinRequestService) Resolve(ctx context.Context, creatorEmail string, req *dto.ResolveJoinRequest) (*dto.ResolveJoinResponse, error) {
	var status string
	var eventType notification.NotificationType
	switch req.Action {
	case constants.JoinActionApprove:
		status, eventType = constants.JoinRequestStatusApprove, notification.NotifyJoinApproved
	case constants.JoinActionReject:
		status, eventType = constants.JoinRequestStatusReject, notification.NotifyJoinRejected
	default:
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "action 只能为 approve 或 reject")
	}

	var joinReq *model.JoinRequest
	var team *model.Team

	err := s.db.Transaction(func(tx *gorm.DB) error {
		requests := s.repo.WithTx(tx)
		teams := s.teamRepo.WithTx(tx)

		var err error
		joinReq, err = requests.FindPendingForUpdate(req.RequestID, creatorEmail)
		if err != nil {
			return err
		}
		team, err = teams.FindByID(joinReq.TeamID)
		if err != nil {
			return err
		}

		if status == constants.JoinRequestStatusApprove {
			if err := approve(teams, joinReq); err != nil {
				return err
			}
		}
		return requests.UpdateStatus(joinReq.ID, status)
	})
	if err != nil {
		return nil, err
	}

	metrics.JoinRequestEvent(status)
	logger.Info("加入申请已处理",
		zap.Int64("request_id", joinReq.ID),
		zap.Int64("team_id", joinReq.TeamID),
		zap.String("requester", joinReq.RequesterEmail),
		zap.String("status", status))

	s.notify(ctx, &notification.JoinRequestEvent{
		Type:           eventType,
		RequestID:      joinReq.ID,
		TeamID:         joinReq.TeamID,
		ProjectName:    team.ProjectName,
		RequesterEmail: joinReq.RequesterEmail,
		CreatorEmail:   creatorEmail,
		Role:           joinReq.RequestedRole,
	})

	return &dto.ResolveJoinResponse{RequestID: joinReq.ID, Status: status}, nil
}

// approve 锁定角色, 添加成员并扣减该角色一个名额
func approve(teams repository.TeamRepository, joinReq *model.JoinRequest) error {
	role, err := teams.FindRoleForUpdate(joinReq.RoleID)
	if err != nil {
		return err
	}
	if role.TeamID != joinReq.TeamID {
		return pkgErrors.ErrRoleNotFound
	}
	if role.Count <= 0 {
		return pkgErrors.ErrRoleFull
	}

	if err := teams.AddMember(&model.TeamMember{
		TeamID: joinReq.TeamID,
		Email:  joinReq.RequesterEmail,
		Role:   joinReq.RequestedRole,
	}); err != nil {
		return err
	}
	return teams.DecrementRoleCount(role.ID)
}

// notify 通知失败只记录日志
func (s *joinRequestService) notify(ctx context.Context, event *notification.JoinRequestEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendJoinRequestNotification(ctx, event); err != nil {
		logger.Warn("发送加入申请通知失败",
			zap.Int64("request_id", event.RequestID),
			zap.String("type", string(event.Type)),
			zap.Error(err))
	}
}
