package model

import (
	"time"

	"gorm.io/datatypes"
)

const UserTableName = "users"
const ProfileTableName = "profiles"
const SkillTableName = "skills"

// User 注册用户
type User struct {
	BaseModel
	Name     string `gorm:"size:100;not null;index" json:"name"`
	Email    string `gorm:"size:191;not null;uniqueIndex" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希, 不返回到前端
}

// TableName 指定表名
func (User) TableName() string {
	return UserTableName
}

// Profile 用户资料, 首次保存资料/上传头像/发帖时创建
type Profile struct {
	Email      string                      `gorm:"size:191;primaryKey" json:"email"`
	Bio        string                      `gorm:"type:text" json:"bio"`
	Education  datatypes.JSONSlice[string] `json:"education"`
	Skills     datatypes.JSONSlice[string] `json:"skills"`
	Projects   datatypes.JSONSlice[string] `json:"projects"`
	ProfilePic string                      `gorm:"size:512" json:"profile_pic"`
	Points     int                         `gorm:"not null;default:0" json:"points"`
	Level      int                         `gorm:"not null;default:0" json:"level"`
	Position   string                      `gorm:"size:32;not null;default:beginner" json:"position"`
	CreatedAt  time.Time                   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time                   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return ProfileTableName
}

// Skill 用户技能(每次更新资料时整体替换)
type Skill struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email string `gorm:"size:191;not null;index" json:"email"`
	Skill string `gorm:"size:100;not null" json:"skill"`
}

func (Skill) TableName() string {
	return SkillTableName
}

// UserSummary 用户搜索结果
type UserSummary struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProfilePic string `json:"profile_pic"`
}
