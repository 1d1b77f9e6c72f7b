package notification

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifier 模拟通知器
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, msg *NotificationMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockNotifier) SendJoinRequestNotification(ctx context.Context, event *JoinRequestEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
