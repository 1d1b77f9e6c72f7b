package dto

// SearchUserQuery 用户搜索参数
type SearchUserQuery struct {
	Username string `form:"username" binding:"required"`
}

// UserSearchResponse 用户搜索结果
type UserSearchResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProfilePic string `json:"profile_pic"`
}
