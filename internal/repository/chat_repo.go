package repository

import (
	"gorm.io/gorm"

	"teamforge/internal/model"
	pkgErrors "teamforge/pkg/errors"
)

type ChatRepository interface {
	Create(chat *model.Chat) error
	// ListConversation 两人之间双向消息, 按时间升序
	ListConversation(user1, user2 string) ([]*model.Chat, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(chat *model.Chat) error {
	if err := r.db.Create(chat).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "发送消息失败", err)
	}
	return nil
}

func (r *chatRepository) ListConversation(user1, user2 string) ([]*model.Chat, error) {
	var chats []*model.Chat
	err := r.db.
		Where("(sender_email = ? AND receiver_email = ?) OR (sender_email = ? AND receiver_email = ?)",
			user1, user2, user2, user1).
		Order("timestamp ASC, id ASC").
		Find(&chats).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询消息失败", err)
	}
	return chats, nil
}
