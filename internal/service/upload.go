package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"teamforge/internal/adapter/storage"
	"teamforge/internal/pkg/logger"
	pkgErrors "teamforge/pkg/errors"
)

// UploadFile 待上传的文件
type UploadFile struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// upload 上传到对象存储, 存储错误按500返回, 细节只记日志
func upload(ctx context.Context, uploader storage.Uploader, key string, file *UploadFile) (string, error) {
	url, err := uploader.Upload(ctx, key, file.Body, file.Size, file.ContentType)
	if err != nil {
		if appErr, ok := pkgErrors.As(err); ok {
			return "", appErr
		}
		logger.Error("上传对象存储失败", zap.String("key", key), zap.Error(err))
		return "", pkgErrors.Wrap(pkgErrors.CodeStorageError, "文件上传失败", err)
	}
	return url, nil
}
