package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamforge/internal/api/middleware"
	"teamforge/internal/dto"
	"teamforge/internal/pkg/config"
	"teamforge/internal/service"
	"teamforge/pkg/constants"
	"teamforge/pkg/responses"
)

type AuthHandler struct {
	authService service.AuthService
	cfg         *config.AuthConfig
}

func NewAuthHandler(authService service.AuthService, cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// Signup 注册
// @Summary 用户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "注册请求"
// @Success 201 {object} responses.Response{data=dto.UserInfo}
// @Failure 400 {object} responses.Response
// @Failure 409 {object} responses.Response
// @Router /api/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.authService.Signup(&req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Created(c, "注册成功", user)
}

// Login 登录
// @Summary 用户登录
// @Description 登录成功后写入 httpOnly Cookie, 同时在响应中返回Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Success 200 {object} responses.Response{data=dto.LoginResponse}
// @Failure 401 {object} responses.Response
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieToken, resp.Token, resp.ExpiresIn, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
	responses.SuccessWithMessage(c, "登录成功", resp)
}

// Logout 退出登录
// @Summary 退出登录
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.Response
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieToken, "", -1, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
	responses.SuccessWithMessage(c, "已退出登录", nil)
}

// GetMe 当前登录用户
// @Summary 获取当前用户信息
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=dto.UserInfo}
// @Failure 401 {object} responses.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.authService.Me(middleware.CurrentClaims(c))
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, user)
}
