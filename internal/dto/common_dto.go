package dto

import "time"

// IDQuery id查询参数
type IDQuery struct {
	ID int64 `form:"id" binding:"required,min=1"`
}

// UploadResponse 上传结果
type UploadResponse struct {
	URL string `json:"url"`
}

// formatTime 统一时间格式
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
