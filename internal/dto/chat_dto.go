package dto

import "teamforge/internal/model"

// SendMessageRequest 发送私信
type SendMessageRequest struct {
	SenderEmail   string `json:"sender_email"` // 可选, 必须与当前用户一致
	ReceiverEmail string `json:"receiver_email" binding:"required,max=191"`
	Message       string `json:"message" binding:"required"`
}

// ListMessagesQuery 会话查询
type ListMessagesQuery struct {
	User1 string `form:"user1" binding:"required"`
	User2 string `form:"user2" binding:"required"`
}

// ChatMessageResponse 私信
type ChatMessageResponse struct {
	ID            int64  `json:"id"`
	SenderEmail   string `json:"sender_email"`
	ReceiverEmail string `json:"receiver_email"`
	Message       string `json:"message"`
	Timestamp     string `json:"timestamp"`
}

// NewChatMessageResponse 转换为响应对象
func NewChatMessageResponse(chat *model.Chat) *ChatMessageResponse {
	return &ChatMessageResponse{
		ID:            chat.ID,
		SenderEmail:   chat.SenderEmail,
		ReceiverEmail: chat.ReceiverEmail,
		Message:       chat.Message,
		Timestamp:     formatTime(chat.Timestamp),
	}
}
