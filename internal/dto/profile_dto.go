package dto

// ProfileResponse 用户资料
type ProfileResponse struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Bio        string   `json:"bio"`
	ProfilePic string   `json:"profile_pic"`
	Education  []string `json:"education"`
	Skills     []string `json:"skills"`
	Projects   []string `json:"projects"`
	Points     int      `json:"points"`
	Level      int      `json:"level"`
	Position   string   `json:"position"`
	Badge      string   `json:"badge"`
}

// UpdateProfileRequest 更新资料请求
// 积分由服务端维护, 请求中的 points 会被忽略
type UpdateProfileRequest struct {
	Name       string   `json:"name" binding:"omitempty,max=100"`
	Bio        *string  `json:"bio"`
	Education  []string `json:"education"`
	Skills     []string `json:"skills"` // 不传表示不修改技能
	Projects   []string `json:"projects"`
	ProfilePic *string  `json:"profile_pic" binding:"omitempty,max=512"`
	Points     *int     `json:"points"`
}
