package handler

import (
	"github.com/gin-gonic/gin"

	"teamforge/internal/api/middleware"
	"teamforge/internal/dto"
	"teamforge/internal/service"
	"teamforge/pkg/responses"
)

type TeamHandler struct {
	teamService service.TeamService
	joinService service.JoinRequestService
}

func NewTeamHandler(teamService service.TeamService, joinService service.JoinRequestService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		joinService: joinService,
	}
}

// Create 创建团队
// @Summary 创建团队
// @Description 项目标签由各角色技能展开, 总人数为各角色名额之和加创建者
// @Tags Team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeamRequest true "创建团队请求"
// @Success 201 {object} responses.Response{data=dto.TeamCreatedResponse}
// @Router /api/teams/create [post]
func (h *TeamHandler) Create(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.teamService.Create(middleware.CurrentEmail(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Created(c, "团队创建成功", resp)
}

// GetByID 获取团队详情
// @Summary 获取团队详情
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Param id query int64 true "团队ID"
// @Success 200 {object} responses.Response{data=dto.TeamResponse}
// @Failure 404 {object} responses.Response
// @Router /api/team [get]
func (h *TeamHandler) GetByID(c *gin.Context) {
	var query dto.IDQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	team, err := h.teamService.GetByID(query.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, team)
}

// ListPublic 公开团队
// @Summary 公开团队列表
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.TeamResponse}
// @Router /api/teams/all [get]
func (h *TeamHandler) ListPublic(c *gin.Context) {
	teams, err := h.teamService.ListPublic()
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, teams)
}

// ListCreated 我创建的团队
// @Summary 我创建的团队
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.TeamResponse}
// @Router /api/teams/created [get]
func (h *TeamHandler) ListCreated(c *gin.Context) {
	teams, err := h.teamService.ListCreated(middleware.CurrentEmail(c))
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, teams)
}

// ListJoined 我加入的团队
// @Summary 我加入的团队(包含自己创建的)
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.TeamResponse}
// @Router /api/teams/joined [get]
func (h *TeamHandler) ListJoined(c *gin.Context) {
	teams, err := h.teamService.ListJoined(middleware.CurrentEmail(c))
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, teams)
}

// RequestJoin 申请加入
// @Summary 申请加入团队
// @Tags JoinRequest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JoinTeamRequest true "申请"
// @Success 201 {object} responses.Response{data=dto.JoinRequestCreatedResponse}
// @Failure 404 {object} responses.Response
// @Failure 409 {object} responses.Response
// @Router /api/teams/join-request [post]
func (h *TeamHandler) RequestJoin(c *gin.Context) {
	var req dto.JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.joinService.Submit(c.Request.Context(), middleware.CurrentEmail(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Created(c, "申请已提交", resp)
}

// ListJoinRequests 待处理申请
// @Summary 我创建的团队收到的待处理申请
// @Tags JoinRequest
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.PendingJoinRequestResponse}
// @Router /api/teams/join-requests [get]
func (h *TeamHandler) ListJoinRequests(c *gin.Context) {
	rows, err := h.joinService.ListPending(middleware.CurrentEmail(c))
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, rows)
}

// ResolveJoinRequest 处理申请
// @Summary 通过或拒绝加入申请
// @Tags JoinRequest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResolveJoinRequest true "处理动作"
// @Success 200 {object} responses.Response{data=dto.ResolveJoinResponse}
// @Failure 404 {object} responses.Response
// @Failure 409 {object} responses.Response
// @Router /api/teams/update-join-request [post]
func (h *TeamHandler) ResolveJoinRequest(c *gin.Context) {
	var req dto.ResolveJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.joinService.Resolve(c.Request.Context(), middleware.CurrentEmail(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.SuccessWithMessage(c, "申请已处理", resp)
}
