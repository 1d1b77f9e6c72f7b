package dto

import (
	"github.com/samber/lo"

	"teamforge/internal/model"
)

// TeamRoleRequest 招募角色
type TeamRoleRequest struct {
	Name   string   `json:"name" binding:"required,max=100"`
	Count  *int     `json:"count" binding:"required,gte=0"`
	Skills []string `json:"skills"`
}

// CreateTeamRequest 创建团队请求
type CreateTeamRequest struct {
	ProjectName        string            `json:"projectName" binding:"required,max=200"`
	ProjectDescription string            `json:"projectDescription" binding:"required"`
	ProjectCategory    string            `json:"projectCategory" binding:"required,max=100"`
	DetailedBrief      string            `json:"detailedBrief" binding:"required"`
	RequiredLevel      string            `json:"requiredLevel" binding:"required,max=50"`
	ProjectVisibility  string            `json:"projectVisibility" binding:"required,max=20"`
	Roles              []TeamRoleRequest `json:"roles" binding:"required,min=1,dive"`
	CreatorRole        string            `json:"creatorRole" binding:"omitempty,max=100"`
}

// TeamCreatedResponse 创建结果
type TeamCreatedResponse struct {
	TeamID int64 `json:"teamId"`
}

// TeamRoleResponse 角色
type TeamRoleResponse struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Skills []string `json:"skills"`
}

// TeamMemberResponse 成员
type TeamMemberResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TeamResponse 团队
type TeamResponse struct {
	ID                 int64                `json:"id"`
	CreatorEmail       string               `json:"creatorEmail"`
	ProjectName        string               `json:"projectName"`
	ProjectDescription string               `json:"projectDescription"`
	ProjectCategory    string               `json:"projectCategory"`
	DetailedBrief      string               `json:"detailedBrief"`
	RequiredLevel      string               `json:"requiredLevel"`
	ProjectTags        []string             `json:"projectTags"`
	TotalMembers       int                  `json:"totalMembers"`
	ProjectVisibility  string               `json:"projectVisibility"`
	Roles              []TeamRoleResponse   `json:"roles"`
	Members            []TeamMemberResponse `json:"members"`
	CreatedAt          string               `json:"createdAt"`
}

// NewTeamResponse 转换为响应对象
func NewTeamResponse(team *model.Team) *TeamResponse {
	return &TeamResponse{
		ID:                 team.ID,
		CreatorEmail:       team.CreatorEmail,
		ProjectName:        team.ProjectName,
		ProjectDescription: team.ProjectDescription,
		ProjectCategory:    team.ProjectCategory,
		DetailedBrief:      team.DetailedBrief,
		RequiredLevel:      team.RequiredLevel,
		ProjectTags:        nonNil(team.ProjectTags),
		TotalMembers:       team.TotalMembers,
		ProjectVisibility:  team.ProjectVisibility,
		Roles: lo.Map(team.Roles, func(r model.TeamRole, _ int) TeamRoleResponse {
			return TeamRoleResponse{ID: r.ID, Name: r.Name, Count: r.Count, Skills: nonNil(r.Skills)}
		}),
		Members: lo.Map(team.Members, func(m model.TeamMember, _ int) TeamMemberResponse {
			return TeamMemberResponse{Email: m.Email, Role: m.Role}
		}),
		CreatedAt: formatTime(team.CreatedAt),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
