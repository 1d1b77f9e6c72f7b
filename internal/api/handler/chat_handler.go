package handler

import (
	"github.com/gin-gonic/gin"

	"teamforge/internal/api/middleware"
	"teamforge/internal/dto"
	"teamforge/internal/service"
	"teamforge/pkg/responses"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Send 发送私信
// @Summary 发送私信
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "消息"
// @Success 201 {object} responses.Response{data=dto.ChatMessageResponse}
// @Router /api/chat/send [post]
func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	msg, err := h.chatService.Send(middleware.CurrentEmail(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Created(c, "发送成功", msg)
}

// Messages 会话消息
// @Summary 两人之间的会话消息
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param user1 query string true "参与者1"
// @Param user2 query string true "参与者2"
// @Success 200 {object} responses.Response{data=[]dto.ChatMessageResponse}
// @Failure 404 {object} responses.Response
// @Router /api/chat/messages [get]
func (h *ChatHandler) Messages(c *gin.Context) {
	var query dto.ListMessagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	msgs, err := h.chatService.ListConversation(middleware.CurrentEmail(c), query.User1, query.User2)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, msgs)
}
