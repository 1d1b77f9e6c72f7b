package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"teamforge/internal/pkg/config"
	"teamforge/pkg/constants"
)

// NotificationType 通知类型
type NotificationType string

const (
	NotifyJoinRequested NotificationType = "join_requested" // 收到加入申请
	NotifyJoinApproved  NotificationType = "join_approved"  // 申请已通过
	NotifyJoinRejected  NotificationType = "join_rejected"  // 申请被拒绝
)

// NotificationMessage 通知消息
type NotificationMessage struct {
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	Recipient string                 `json:"recipient"`
	Timestamp time.Time              `json:"timestamp"`
	Extra     map[string]interface{} `json:"extra,omitempty"` // 额外信息
}

// JoinRequestEvent 加入申请事件
type JoinRequestEvent struct {
	Type           NotificationType
	RequestID      int64
	TeamID         int64
	ProjectName    string
	RequesterEmail string
	CreatorEmail   string
	Role           string
}

// Notifier 通知器接口
type Notifier interface {
	// Send 发送通知
	Send(ctx context.Context, msg *NotificationMessage) error

	// SendJoinRequestNotification 发送加入申请相关通知
	SendJoinRequestNotification(ctx context.Context, event *JoinRequestEvent) error
}

// NewNotifier 按配置创建通知器, 未启用时仅记录日志
func NewNotifier(cfg *config.NotificationConfig, logger *zap.Logger) Notifier {
	logNotifier := NewLogNotifier(logger)
	if !cfg.Enabled {
		return logNotifier
	}
	switch cfg.Provider {
	case constants.NotifyProviderLark:
		return NewMultiNotifier(logger, logNotifier, NewLarkNotifier(cfg.LarkWebhook, true, logger))
	default:
		return logNotifier
	}
}

// BuildJoinRequestMessage 将事件渲染为通知消息
func BuildJoinRequestMessage(event *JoinRequestEvent) *NotificationMessage {
	var title, color, recipient, content string

	switch event.Type {
	case NotifyJoinRequested:
		title = "📥 新的加入申请"
		color = "blue"
		recipient = event.CreatorEmail
		content = fmt.Sprintf("**项目**: %s\n**申请人**: %s\n**角色**: %s",
			event.ProjectName, event.RequesterEmail, event.Role)
	case NotifyJoinApproved:
		title = "✅ 加入申请已通过"
		color = "green"
		recipient = event.RequesterEmail
		content = fmt.Sprintf("**项目**: %s\n**角色**: %s", event.ProjectName, event.Role)
	case NotifyJoinRejected:
		title = "❌ 加入申请被拒绝"
		color = "red"
		recipient = event.RequesterEmail
		content = fmt.Sprintf("**项目**: %s\n**角色**: %s", event.ProjectName, event.Role)
	default:
		title = "📢 团队通知"
		color = "grey"
		recipient = event.CreatorEmail
	}

	return &NotificationMessage{
		Type:      event.Type,
		Title:     title,
		Content:   content,
		Recipient: recipient,
		Timestamp: time.Now(),
		Extra: map[string]interface{}{
			"request_id": event.RequestID,
			"team_id":    event.TeamID,
			"color":      color,
		},
	}
}

// ============= Lark 通知适配器 =============

// LarkNotifier Lark通知器
type LarkNotifier struct {
	webhookURL string
	enabled    bool
	logger     *zap.Logger
	client     *http.Client
}

// NewLarkNotifier 创建Lark通知器
func NewLarkNotifier(webhookURL string, enabled bool, logger *zap.Logger) *LarkNotifier {
	return &LarkNotifier{
		webhookURL: webhookURL,
		enabled:    enabled,
		logger:     logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send 发送通知
func (n *LarkNotifier) Send(ctx context.Context, msg *NotificationMessage) error {
	if !n.enabled {
		n.logger.Debug("通知已禁用,跳过发送")
		return nil
	}

	if n.webhookURL == "" {
		n.logger.Warn("Lark Webhook URL未配置")
		return nil
	}

	jsonData, err := json.Marshal(n.buildLarkMessage(msg))
	if err != nil {
		return fmt.Errorf("序列化消息失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Lark API返回错误状态码: %d", resp.StatusCode)
	}

	n.logger.Info("Lark通知发送成功",
		zap.String("type", string(msg.Type)),
		zap.String("title", msg.Title))

	return nil
}

// SendJoinRequestNotification 发送加入申请通知
func (n *LarkNotifier) SendJoinRequestNotification(ctx context.Context, event *JoinRequestEvent) error {
	return n.Send(ctx, BuildJoinRequestMessage(event))
}

// buildLarkMessage 构建Lark卡片消息
func (n *LarkNotifier) buildLarkMessage(msg *NotificationMessage) map[string]interface{} {
	color := "grey"
	if c, ok := msg.Extra["color"].(string); ok {
		color = c
	}

	return map[string]interface{}{
		"msg_type": "interactive",
		"card": map[string]interface{}{
			"header": map[string]interface{}{
				"title": map[string]interface{}{
					"tag":     "plain_text",
					"content": msg.Title,
				},
				"template": color,
			},
			"elements": []interface{}{
				map[string]interface{}{
					"tag": "div",
					"text": map[string]interface{}{
						"tag":     "lark_md",
						"content": fmt.Sprintf("%s\n**接收人**: %s", msg.Content, msg.Recipient),
					},
				},
				map[string]interface{}{
					"tag": "div",
					"text": map[string]interface{}{
						"tag":     "plain_text",
						"content": fmt.Sprintf("时间: %s", msg.Timestamp.Format("2006-01-02 15:04:05")),
					},
				},
			},
		},
	}
}

// ============= 多通知器 =============

// MultiNotifier 多通知器(同时发送到多个渠道)
type MultiNotifier struct {
	notifiers []Notifier
	logger    *zap.Logger
}

// NewMultiNotifier 创建多通知器
func NewMultiNotifier(logger *zap.Logger, notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{
		notifiers: notifiers,
		logger:    logger,
	}
}

// Send 发送到所有通知器, 单个失败不影响其他
func (m *MultiNotifier) Send(ctx context.Context, msg *NotificationMessage) error {
	var lastErr error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(ctx, msg); err != nil {
			m.logger.Error("发送通知失败", zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}

// SendJoinRequestNotification 发送加入申请通知到所有通知器
func (m *MultiNotifier) SendJoinRequestNotification(ctx context.Context, event *JoinRequestEvent) error {
	var lastErr error
	for _, notifier := range m.notifiers {
		if err := notifier.SendJoinRequestNotification(ctx, event); err != nil {
			m.logger.Error("发送加入申请通知失败", zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}

// ============= 日志通知器(仅记录日志,不发送实际通知) =============

// LogNotifier 日志通知器
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier 创建日志通知器
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger,
	}
}

// Send 记录通知到日志
func (n *LogNotifier) Send(ctx context.Context, msg *NotificationMessage) error {
	n.logger.Info("📢 通知",
		zap.String("type", string(msg.Type)),
		zap.String("title", msg.Title),
		zap.String("recipient", msg.Recipient),
		zap.Any("extra", msg.Extra))
	return nil
}

// SendJoinRequestNotification 记录加入申请通知到日志
func (n *LogNotifier) SendJoinRequestNotification(ctx context.Context, event *JoinRequestEvent) error {
	n.logger.Info("📢 加入申请通知",
		zap.String("type", string(event.Type)),
		zap.Int64("request_id", event.RequestID),
		zap.Int64("team_id", event.TeamID),
		zap.String("requester", event.RequesterEmail),
		zap.String("creator", event.CreatorEmail),
		zap.String("role", event.Role))
	return nil
}
