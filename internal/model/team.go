package model

import "gorm.io/datatypes"

const TeamTableName = "teams"
const TeamRoleTableName = "team_roles"
const TeamMemberTableName = "team_members"

// Team 项目团队
type Team struct {
	BaseModel
	CreatorEmail       string                      `gorm:"size:191;not null;index" json:"creator_email"`
	ProjectName        string                      `gorm:"size:200;not null" json:"project_name"`
	ProjectDescription string                      `gorm:"type:text" json:"project_description"`
	ProjectCategory    string                      `gorm:"size:100" json:"project_category"`
	DetailedBrief      string                      `gorm:"type:text" json:"detailed_brief"`
	RequiredLevel      string                      `gorm:"size:50" json:"required_level"`
	ProjectTags        datatypes.JSONSlice[string] `json:"project_tags"`
	TotalMembers       int                         `gorm:"not null" json:"total_members"`
	ProjectVisibility  string                      `gorm:"size:20;not null;index" json:"project_visibility"`

	Roles   []TeamRole   `gorm:"foreignKey:TeamID" json:"roles,omitempty"`
	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

func (Team) TableName() string {
	return TeamTableName
}

// TeamRole 团队招募角色, Count 为剩余名额
type TeamRole struct {
	ID     int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID int64                       `gorm:"not null;index" json:"team_id"`
	Name   string                      `gorm:"size:100;not null" json:"name"`
	Count  int                         `gorm:"not null" json:"count"`
	Skills datatypes.JSONSlice[string] `json:"skills"`
	Sort   int                         `gorm:"not null;default:0" json:"sort"`
}

func (TeamRole) TableName() string {
	return TeamRoleTableName
}

// TeamMember 团队成员
type TeamMember struct {
	BaseModel
	TeamID int64  `gorm:"column:team_id;not null;uniqueIndex:idx_team_member" json:"team_id"`
	Email  string `gorm:"column:email;size:191;not null;uniqueIndex:idx_team_member;index" json:"email"`
	Role   string `gorm:"column:role;size:100;not null" json:"role"`
}

func (TeamMember) TableName() string {
	return TeamMemberTableName
}
