package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamforge/internal/pkg/config"
)

// Uploader 对象存储上传接口
type Uploader interface {
	// Upload 上传对象并返回可公开访问的URL
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// ObjectKey 生成对象键: {prefix}/{email}_{uuid}{.ext}
func ObjectKey(prefix, email, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s_%s%s", strings.TrimRight(prefix, "/"), email, uuid.NewString(), ext)
}

// IsVideo 按MIME类型判断是否为视频
func IsVideo(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "video")
}

// ErrStorageDisabled 未配置对象存储时上传返回该错误
var ErrStorageDisabled = errors.New("对象存储未配置")

// DisabledUploader 未启用对象存储时使用
type DisabledUploader struct{}

func (DisabledUploader) Upload(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", ErrStorageDisabled
}

// NewUploader 按 storage.provider 创建上传器
func NewUploader(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (Uploader, error) {
	switch cfg.Provider {
	case "s3":
		uploader, err := NewS3Uploader(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return uploader, nil
	case "", "none":
		logger.Warn("未配置对象存储, 上传接口不可用")
		return DisabledUploader{}, nil
	default:
		return nil, fmt.Errorf("不支持的存储类型: %s", cfg.Provider)
	}
}
