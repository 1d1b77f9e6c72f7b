package model

import "time"

const ChatTableName = "chats"

// Chat 私信, 只追加
type Chat struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderEmail   string    `gorm:"size:191;not null;index:idx_chat_pair" json:"sender_email"`
	ReceiverEmail string    `gorm:"size:191;not null;index:idx_chat_pair" json:"receiver_email"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Timestamp     time.Time `gorm:"not null;autoCreateTime;index" json:"timestamp"`
}

func (Chat) TableName() string {
	return ChatTableName
}
