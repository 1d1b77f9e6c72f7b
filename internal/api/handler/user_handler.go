package handler

import (
	"github.com/gin-gonic/gin"

	"teamforge/internal/dto"
	"teamforge/internal/service"
	"teamforge/pkg/responses"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Search 搜索用户
// @Summary 按姓名搜索用户
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param username query string true "姓名关键字"
// @Success 200 {object} responses.Response{data=[]dto.UserSearchResponse}
// @Router /api/search/user [get]
func (h *UserHandler) Search(c *gin.Context) {
	var query dto.SearchUserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	users, err := h.userService.Search(query.Username)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, users)
}
