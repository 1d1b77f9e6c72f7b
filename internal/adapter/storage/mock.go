package storage

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockUploader 模拟上传器
type MockUploader struct {
	mock.Mock
}

func NewMockUploader() *MockUploader {
	return &MockUploader{}
}

// Upload 读完内容后按预设返回
func (m *MockUploader) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	args := m.Called(ctx, key, size, contentType)
	return args.String(0), args.Error(1)
}
