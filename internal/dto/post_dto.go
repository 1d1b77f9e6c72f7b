package dto

import "teamforge/internal/model"

// CreatePostRequest 发帖请求
type CreatePostRequest struct {
	Content  string   `json:"content"`
	Images   []string `json:"images"`
	VideoURL *string  `json:"video_url"`
}

// PostCreatedResponse 发帖结果
type PostCreatedResponse struct {
	PostID int64 `json:"postId"`
}

// PostsQuery 按作者查询
type PostsQuery struct {
	Email string `form:"email" binding:"required"`
}

// LikePostRequest 点赞请求
type LikePostRequest struct {
	PostID int64 `json:"postId" binding:"required,min=1"`
}

// CommentPostRequest 评论请求
type CommentPostRequest struct {
	PostID  int64  `json:"postId" binding:"required,min=1"`
	Comment string `json:"comment" binding:"required"`
	User    string `json:"user"` // 为空时使用当前用户姓名
}

// CommentResponse 评论
type CommentResponse struct {
	User    string `json:"user"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

// PostResponse 帖子
type PostResponse struct {
	ID        int64             `json:"id"`
	Email     string            `json:"email"`
	Content   string            `json:"content"`
	Images    []string          `json:"images"`
	VideoURL  *string           `json:"video_url"`
	Likes     int64             `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt string            `json:"created_at"`
}

// NewPostResponse 转换为响应对象
func NewPostResponse(post *model.Post) *PostResponse {
	comments := make([]CommentResponse, 0, len(post.Comments))
	for _, c := range post.Comments {
		comments = append(comments, CommentResponse{
			User:    c.User,
			Comment: c.Comment,
			Date:    formatTime(c.CreatedAt),
		})
	}
	images := []string(post.Images)
	if images == nil {
		images = []string{}
	}
	return &PostResponse{
		ID:        post.ID,
		Email:     post.Email,
		Content:   post.Content,
		Images:    images,
		VideoURL:  post.VideoURL,
		Likes:     post.Likes,
		Comments:  comments,
		CreatedAt: formatTime(post.CreatedAt),
	}
}
