package model

import (
	"time"

	"gorm.io/datatypes"
)

const PostTableName = "posts"
const PostCommentTableName = "post_comments"

// Post 动态
type Post struct {
	BaseModel
	Email    string                      `gorm:"size:191;not null;index" json:"email"`
	Content  string                      `gorm:"type:text" json:"content"`
	Images   datatypes.JSONSlice[string] `json:"images"`
	VideoURL *string                     `gorm:"size:512" json:"video_url"`
	Likes    int64                       `gorm:"not null;default:0" json:"likes"`

	Comments []PostComment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (Post) TableName() string {
	return PostTableName
}

// PostComment 动态评论, 追加写入
type PostComment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int64     `gorm:"not null;index" json:"post_id"`
	Email     string    `gorm:"size:191;not null" json:"email"`
	User      string    `gorm:"size:100" json:"user"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (PostComment) TableName() string {
	return PostCommentTableName
}
