package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"teamforge/internal/pkg/config"
)

func TestBuildJoinRequestMessage(t *testing.T) {
	event := &JoinRequestEvent{
		Type:           NotifyJoinRequested,
		RequestID:      3,
		TeamID:         9,
		ProjectName:    "compiler",
		RequesterEmail: "bob@example.com",
		CreatorEmail:   "ada@example.com",
		Role:           "Dev",
	}

	msg := BuildJoinRequestMessage(event)
	assert.Equal(t, "ada@example.com", msg.Recipient)
	assert.Contains(t, msg.Content, "bob@example.com")
	assert.Equal(t, "blue", msg.Extra["color"])

	event.Type = NotifyJoinApproved
	msg = BuildJoinRequestMessage(event)
	assert.Equal(t, "bob@example.com", msg.Recipient)
	assert.Equal(t, "green", msg.Extra["color"])
}

func TestLarkNotifierPostsCard(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewLarkNotifier(srv.URL, true, zap.NewNop())
	err := n.SendJoinRequestNotification(context.Background(), &JoinRequestEvent{
		Type:        NotifyJoinRejected,
		ProjectName: "compiler",
	})
	require.NoError(t, err)
	assert.Equal(t, "interactive", body["msg_type"])
}

func TestLarkNotifierErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewLarkNotifier(srv.URL, true, zap.NewNop())
	assert.Error(t, n.Send(context.Background(), &NotificationMessage{Title: "x"}))

	disabled := NewLarkNotifier(srv.URL, false, zap.NewNop())
	assert.NoError(t, disabled.Send(context.Background(), &NotificationMessage{Title: "x"}))
}

func TestMultiNotifierContinuesOnError(t *testing.T) {
	failing := &MockNotifier{}
	ok := &MockNotifier{}
	failing.On("SendJoinRequestNotification", mock.Anything, mock.Anything).Return(errors.New("down"))
	ok.On("SendJoinRequestNotification", mock.Anything, mock.Anything).Return(nil)

	m := NewMultiNotifier(zap.NewNop(), failing, ok)
	err := m.SendJoinRequestNotification(context.Background(), &JoinRequestEvent{Type: NotifyJoinApproved})

	assert.Error(t, err)
	failing.AssertExpectations(t)
	ok.AssertExpectations(t)
}

func TestNewNotifier(t *testing.T) {
	_, isLog := NewNotifier(&config.NotificationConfig{Enabled: false}, zap.NewNop()).(*LogNotifier)
	assert.True(t, isLog)

	_, isMulti := NewNotifier(&config.NotificationConfig{Enabled: true, Provider: "lark"}, zap.NewNop()).(*MultiNotifier)
	assert.True(t, isMulti)
}
