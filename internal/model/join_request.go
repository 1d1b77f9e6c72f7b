package model

const JoinRequestTableName = "join_requests"

// JoinRequest 加入团队申请, 处理后状态不再变化
type JoinRequest struct {
	BaseModel
	TeamID         int64  `gorm:"not null;index" json:"team_id"`
	RoleID         int64  `gorm:"not null" json:"role_id"`
	RequesterEmail string `gorm:"size:191;not null;index" json:"requester_email"`
	CreatorEmail   string `gorm:"size:191;not null;index" json:"creator_email"`
	RequestedRole  string `gorm:"size:100;not null" json:"requested_role"`
	Status         string `gorm:"size:16;not null;index" json:"status"` // pending, approve, reject

	Team *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

func (JoinRequest) TableName() string {
	return JoinRequestTableName
}

// PendingJoinRequest 待处理申请(附带申请人姓名与项目名)
type PendingJoinRequest struct {
	JoinRequest
	RequesterName string `json:"requester_name"`
	ProjectName   string `json:"project_name"`
}
