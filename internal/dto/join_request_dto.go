package dto

import "teamforge/internal/model"

// JoinTeamRequest 申请加入团队
type JoinTeamRequest struct {
	TeamID        int64  `json:"teamId" binding:"required,min=1"`
	RequestedRole string `json:"requestedRole" binding:"required,max=100"`
	RoleID        *int64 `json:"roleId"` // 优先按角色ID匹配
}

// JoinRequestCreatedResponse 申请结果
type JoinRequestCreatedResponse struct {
	RequestID int64 `json:"requestId"`
}

// ResolveJoinRequest 处理申请
type ResolveJoinRequest struct {
	RequestID int64  `json:"requestId" binding:"required,min=1"`
	Action    string `json:"action" binding:"required,oneof=approve reject"`
}

// ResolveJoinResponse 处理结果
type ResolveJoinResponse struct {
	RequestID int64  `json:"requestId"`
	Status    string `json:"status"`
}

// PendingJoinRequestResponse 待处理申请
type PendingJoinRequestResponse struct {
	ID             int64  `json:"id"`
	TeamID         int64  `json:"teamId"`
	ProjectName    string `json:"projectName"`
	RequesterEmail string `json:"requesterEmail"`
	RequesterName  string `json:"requesterName"`
	RequestedRole  string `json:"requestedRole"`
	RoleID         int64  `json:"roleId"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
}

// NewPendingJoinRequestResponse 转换为响应对象
func NewPendingJoinRequestResponse(row *model.PendingJoinRequest) *PendingJoinRequestResponse {
	return &PendingJoinRequestResponse{
		ID:             row.ID,
		TeamID:         row.TeamID,
		ProjectName:    row.ProjectName,
		RequesterEmail: row.RequesterEmail,
		RequesterName:  row.RequesterName,
		RequestedRole:  row.RequestedRole,
		RoleID:         row.RoleID,
		Status:         row.Status,
		CreatedAt:      formatTime(row.CreatedAt),
	}
}
