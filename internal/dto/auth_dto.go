package dto

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,max=191"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token       string    `json:"token"`
	ExpiresIn   int       `json:"expires_in"` // 秒
	RedirectURL string    `json:"redirectUrl"`
	User        *UserInfo `json:"user"`
}

// UserInfo 当前用户信息
type UserInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}
