package service

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"teamforge/internal/dto"
	"teamforge/internal/model"
	"teamforge/internal/pkg/logger"
	"teamforge/internal/repository"
	pkgErrors "teamforge/pkg/errors"
)

var (
	errSenderMismatch = pkgErrors.New(pkgErrors.CodeBadRequest, "发送者与当前登录用户不一致")
	errNotParticipant = pkgErrors.New(pkgErrors.CodeNotFound, "会话不存在")
)

type ChatService interface {
	Send(senderEmail string, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error)
	// ListConversation 当前用户必须是会话双方之一
	ListConversation(callerEmail, user1, user2 string) ([]*dto.ChatMessageResponse, error)
}

type chatService struct {
	repo repository.ChatRepository
}

func NewChatService(repo repository.ChatRepository) ChatService {
	return &chatService{repo: repo}
}

func (s *chatService) Send(senderEmail string, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	if sender := strings.TrimSpace(req.SenderEmail); sender != "" && sender != senderEmail {
		return nil, errSenderMismatch
	}
	receiver := strings.TrimSpace(req.ReceiverEmail)
	if receiver == "" || strings.TrimSpace(req.Message) == "" {
		return nil, pkgErrors.ErrInvalidParams
	}

	chat := &model.Chat{
		SenderEmail:   senderEmail,
		ReceiverEmail: receiver,
		Message:       req.Message,
		Timestamp:     time.Now(),
	}
	if err := s.repo.Create(chat); err != nil {
		return nil, err
	}

	logger.Debug("私信已发送", zap.Int64("id", chat.ID), zap.String("from", senderEmail), zap.String("to", receiver))
	return dto.NewChatMessageResponse(chat), nil
}

func (s *chatService) ListConversation(callerEmail, user1, user2 string) ([]*dto.ChatMessageResponse, error) {
	user1, user2 = strings.TrimSpace(user1), strings.TrimSpace(user2)
	if user1 == "" || user2 == "" {
		return nil, pkgErrors.ErrInvalidParams
	}
	if callerEmail != user1 && callerEmail != user2 {
		return nil, errNotParticipant
	}

	chats, err := s.repo.ListConversation(user1, user2)
	if err != nil {
		return nil, err
	}
	return lo.Map(chats, func(c *model.Chat, _ int) *dto.ChatMessageResponse {
		return dto.NewChatMessageResponse(c)
	}), nil
}
