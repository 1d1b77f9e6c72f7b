package service

import (
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"teamforge/internal/dto"
	"teamforge/internal/model"
	"teamforge/internal/pkg/logger"
	"teamforge/internal/repository"
	"teamforge/pkg/constants"
	pkgErrors "teamforge/pkg/errors"
)

type TeamService interface {
	// Create 创建团队, 创建者自动成为成员
	Create(creatorEmail string, req *dto.CreateTeamRequest) (*dto.TeamCreatedResponse, error)
	GetByID(id int64) (*dto.TeamResponse, error)
	ListPublic() ([]*dto.TeamResponse, error)
	ListCreated(email string) ([]*dto.TeamResponse, error)
	ListJoined(email string) ([]*dto.TeamResponse, error)
}

type teamService struct {
	db   *gorm.DB
	repo repository.TeamRepository
}

func NewTeamService(db *gorm.DB, repo repository.TeamRepository) TeamService {
	return &teamService{
		db:   db,
		repo: repo,
	}
}

func (s *teamService) Create(creatorEmail string, req *dto.CreateTeamRequest) (*dto.TeamCreatedResponse, error) {
	roles := make([]model.TeamRole, 0, len(req.Roles))
	for i, r := range req.Roles {
		name := strings.TrimSpace(r.Name)
		if name == "" || r.Count == nil || *r.Count < 0 {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "角色名称不能为空且名额不能为负数")
		}
		roles = append(roles, model.TeamRole{
			Name:   name,
			Count:  *r.Count,
			Skills: datatypes.NewJSONSlice(cleanList(r.Skills)),
			Sort:   i,
		})
	}

	creatorRole := strings.TrimSpace(req.CreatorRole)
	if creatorRole == "" {
		creatorRole = constants.DefaultCreatorRole
	}

	// 项目标签为所有角色技能按顺序展开, 保留重复项
	tags := lo.FlatMap(roles, func(r model.TeamRole, _ int) []string { return r.Skills })

	team := &model.Team{
		CreatorEmail:       creatorEmail,
		ProjectName:        strings.TrimSpace(req.ProjectName),
		ProjectDescription: req.ProjectDescription,
		ProjectCategory:    strings.TrimSpace(req.ProjectCategory),
		DetailedBrief:      req.DetailedBrief,
		RequiredLevel:      strings.TrimSpace(req.RequiredLevel),
		ProjectTags:        datatypes.NewJSONSlice(tags),
		TotalMembers:       lo.SumBy(roles, func(r model.TeamRole) int { return r.Count }) + 1,
		ProjectVisibility:  strings.ToLower(strings.TrimSpace(req.ProjectVisibility)),
		Roles:              roles,
		Members: []model.TeamMember{
			{Email: creatorEmail, Role: creatorRole},
		},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(team)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("团队创建成功",
		zap.Int64("team_id", team.ID),
		zap.String("creator", creatorEmail),
		zap.Int("roles", len(roles)),
		zap.Int("total_members", team.TotalMembers))

	return &dto.TeamCreatedResponse{TeamID: team.ID}, nil
}

func (s *teamService) GetByID(id int64) (*dto.TeamResponse, error) {
	team, err := s.repo.FindByID(id, repository.WithTeamDetail())
	if err != nil {
		return nil, err
	}
	return dto.NewTeamResponse(team), nil
}

func (s *teamService) ListPublic() ([]*dto.TeamResponse, error) {
	teams, err := s.repo.ListByVisibility(constants.VisibilityPublic)
	if err != nil {
		return nil, err
	}
	return toTeamResponses(teams), nil
}

func (s *teamService) ListCreated(email string) ([]*dto.TeamResponse, error) {
	teams, err := s.repo.ListByCreator(email)
	if err != nil {
		return nil, err
	}
	return toTeamResponses(teams), nil
}

func (s *teamService) ListJoined(email string) ([]*dto.TeamResponse, error) {
	teams, err := s.repo.ListByMember(email)
	if err != nil {
		return nil, err
	}
	return toTeamResponses(teams), nil
}

func toTeamResponses(teams []*model.Team) []*dto.TeamResponse {
	return lo.Map(teams, func(t *model.Team, _ int) *dto.TeamResponse {
		return dto.NewTeamResponse(t)
	})
}
