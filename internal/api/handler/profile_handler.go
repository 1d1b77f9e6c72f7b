package handler

import (
	"github.com/gin-gonic/gin"

	"teamforge/internal/api/middleware"
	"teamforge/internal/dto"
	"teamforge/internal/service"
	"teamforge/pkg/constants"
	"teamforge/pkg/responses"
)

type ProfileHandler struct {
	profileService service.ProfileService
	levelService   service.LevelService
}

func NewProfileHandler(profileService service.ProfileService, levelService service.LevelService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		levelService:   levelService,
	}
}

// Get 获取当前用户资料
// @Summary 获取个人资料
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=dto.ProfileResponse}
// @Failure 404 {object} responses.Response
// @Router /api/profile/get-data [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(middleware.CurrentEmail(c))
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, profile)
}

// Update 更新资料
// @Summary 更新个人资料
// @Description 积分由服务端维护, 请求中的 points 会被忽略
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "资料"
// @Success 200 {object} responses.Response{data=dto.ProfileResponse}
// @Router /api/profile/update [post]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.profileService.Update(middleware.CurrentEmail(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.SuccessWithMessage(c, "资料已更新", profile)
}

// UploadPhoto 上传头像
// @Summary 上传头像
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param profile_pic formData file true "头像"
// @Success 200 {object} responses.Response{data=dto.UploadResponse}
// @Failure 400 {object} responses.Response
// @Router /api/profile/upload-photo [post]
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	file, closer, err := formFile(c, constants.FormFieldProfilePic)
	if err != nil {
		responses.Error(c, err)
		return
	}
	defer closer.Close()

	resp, err := h.profileService.UploadPhoto(c.Request.Context(), middleware.CurrentEmail(c), file)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}

// Levels 等级称号表
// @Summary 等级称号表
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]leveling.Badge}
// @Router /api/levels [get]
func (h *ProfileHandler) Levels(c *gin.Context) {
	badges, err := h.levelService.Catalog()
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, badges)
}
