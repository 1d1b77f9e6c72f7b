package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamforge/internal/adapter/notification"
	"teamforge/internal/adapter/storage"
	"teamforge/internal/api/middleware"
	"teamforge/internal/pkg/config"
	"teamforge/internal/pkg/database/dbtest"
	"teamforge/pkg/constants"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Detail  string          `json:"detail"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t        *testing.T
	engine   *gin.Engine
	uploader *storage.MockUploader
	notifier *notification.MockNotifier
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test", MaxUploadMB: 8},
		Auth: config.AuthConfig{JWT: config.JWTConfig{
			Secret:            "router-secret",
			AccessTokenExpire: 3600,
		}},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	for _, fn := range mutate {
		fn(cfg)
	}
	prev := config.GlobalConfig
	config.GlobalConfig = cfg
	t.Cleanup(func() { config.GlobalConfig = prev })

	notifier := &notification.MockNotifier{}
	notifier.On("SendJoinRequestNotification", mock.Anything, mock.Anything).Return(nil).Maybe()
	uploader := storage.NewMockUploader()

	engine := Setup(cfg, &Dependencies{
		DB:       dbtest.New(t),
		Uploader: uploader,
		Notifier: notifier,
	})
	return &testServer{t: t, engine: engine, uploader: uploader, notifier: notifier}
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.HeaderBearerPrefix+token)
	}
	return s.serve(req)
}

func (s *testServer) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

// register 注册并登录, 返回Token
func (s *testServer) register(name, email string) string {
	s.t.Helper()
	rec, _ := s.do(http.MethodPost, "/api/signup", "", gin.H{"name": name, "email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := s.do(http.MethodPost, "/api/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &login))
	return login.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "teamforge_http_requests_total")
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodPost, "/api/signup", "", gin.H{"name": "Ada", "email": "ada@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, env.Code)
	assert.Contains(t, env.Detail, "password")

	rec, _ = s.do(http.MethodPost, "/api/signup", "", gin.H{"name": "Ada", "email": "ada@example.com", "password": "secret123"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = s.do(http.MethodPost, "/api/signup", "", gin.H{"name": "Ada", "email": "ada@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, http.StatusConflict, env.Code)

	rec, _ = s.do(http.MethodPost, "/api/login", "", gin.H{"email": "ada@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = s.do(http.MethodPost, "/api/login", "", gin.H{"email": "ada@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token       string `json:"token"`
		RedirectURL string `json:"redirectUrl"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.NotEmpty(t, login.Token)
	assert.Contains(t, login.RedirectURL, "ada%40example.com")

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.CookieToken {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	// Cookie 认证
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec, env = s.serve(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "ada@example.com")

	rec, _ = s.do(http.MethodPost, "/api/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/profile/get-data", "/api/teams/all", "/api/posts/feed", "/api/chat/messages"} {
		rec, env := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, http.StatusUnauthorized, env.Code, path)
	}
}

func TestTeamWorkflow(t *testing.T) {
	s := newTestServer(t)
	lead := s.register("Lead", "lead@example.com")
	ada := s.register("Ada", "ada@example.com")

	rec, env := s.do(http.MethodPost, "/api/teams/create", lead, gin.H{
		"projectName": "Compiler", "projectDescription": "toy", "projectCategory": "tooling",
		"detailedBrief": "brief", "requiredLevel": "beginner", "projectVisibility": "public",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Detail, "roles")

	rec, env = s.do(http.MethodPost, "/api/teams/create", lead, gin.H{
		"projectName": "Compiler", "projectDescription": "toy", "projectCategory": "tooling",
		"detailedBrief": "brief", "requiredLevel": "beginner", "projectVisibility": "public",
		"roles": []gin.H{
			{"name": "Backend", "count": 1, "skills": []string{"go"}},
			{"name": "Frontend", "count": 0, "skills": []string{"ts"}},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		TeamID int64 `json:"teamId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env = s.do(http.MethodPost, "/api/teams/join-request", ada, gin.H{"teamId": created.TeamID, "requestedRole": "Backend"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var submitted struct {
		RequestID int64 `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &submitted))

	rec, _ = s.do(http.MethodPost, "/api/teams/join-request", ada, gin.H{"teamId": created.TeamID, "requestedRole": "Backend"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/teams/join-requests", lead, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"requesterName":"Ada"`)

	rec, _ = s.do(http.MethodPost, "/api/teams/update-join-request", lead, gin.H{"requestId": submitted.RequestID, "action": "maybe"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/teams/update-join-request", ada, gin.H{"requestId": submitted.RequestID, "action": "approve"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/teams/update-join-request", lead, gin.H{"requestId": submitted.RequestID, "action": "approve"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = s.do(http.MethodPost, "/api/teams/update-join-request", lead, gin.H{"requestId": submitted.RequestID, "action": "approve"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = s.do(http.MethodGet, fmt.Sprintf("/api/team?id=%d", created.TeamID), ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var team struct {
		Members []struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"members"`
		Roles []struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		} `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &team))
	require.Len(t, team.Members, 2)
	assert.Equal(t, "ada@example.com", team.Members[1].Email)
	assert.Equal(t, 0, team.Roles[0].Count)

	rec, env = s.do(http.MethodGet, "/api/teams/joined", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Compiler")

	rec, _ = s.do(http.MethodGet, "/api/team?id=999", ada, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostsAndProfile(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")

	rec, env := s.do(http.MethodPost, "/api/post/create", ada, gin.H{"content": "hello"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		PostID int64 `json:"postId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	for i := 0; i < 3; i++ {
		rec, _ = s.do(http.MethodPost, "/api/posts/like", ada, gin.H{"postId": created.PostID})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, _ = s.do(http.MethodPost, "/api/posts/like", ada, gin.H{"postId": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/posts/comment", ada, gin.H{"postId": created.PostID, "comment": "nice"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/posts/get?email=ada@example.com", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []struct {
		Likes    int64 `json:"likes"`
		Comments []struct {
			User string `json:"user"`
		} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, int64(3), posts[0].Likes)
	assert.Equal(t, "Ada", posts[0].Comments[0].User)

	rec, env = s.do(http.MethodGet, "/api/profile/get-data", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		Points int    `json:"points"`
		Badge  string `json:"badge"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, 1, profile.Points)
	assert.Equal(t, "The Starter", profile.Badge)

	rec, _ = s.do(http.MethodPost, "/api/profile/update", ada, gin.H{"name": "Ada L", "skills": []string{"go"}, "points": 1000})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, env = s.do(http.MethodGet, "/api/profile/get-data", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"points":1`)
	assert.Contains(t, string(env.Data), `"name":"Ada L"`)

	rec, env = s.do(http.MethodGet, "/api/search/user?username=Ada", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "ada@example.com")

	rec, _ = s.do(http.MethodGet, "/api/search/user", ada, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/levels", ada, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadMedia(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")

	s.uploader.On("Upload", mock.Anything,
		mock.MatchedBy(func(key string) bool { return strings.HasPrefix(key, "posts/videos/") }),
		int64(5), "video/mp4").
		Return("https://cdn.local/clip.mp4", nil).Once()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="media"; filename="clip.mp4"`)
	h.Set("Content-Type", "video/mp4")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("video"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/post/upload-media", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set(constants.HeaderAuthorization, constants.HeaderBearerPrefix+ada)
	rec, env := s.serve(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), "https://cdn.local/clip.mp4")

	// 缺少文件
	req = httptest.NewRequest(http.MethodPost, "/api/profile/upload-photo", strings.NewReader(""))
	req.Header.Set(constants.HeaderAuthorization, constants.HeaderBearerPrefix+ada)
	rec, _ = s.serve(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.uploader.AssertExpectations(t)
}

func TestChat(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")
	bob := s.register("Bob", "bob@example.com")

	rec, _ := s.do(http.MethodPost, "/api/chat/send", ada, gin.H{"receiver_email": "bob@example.com", "message": "hi"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = s.do(http.MethodPost, "/api/chat/send", bob, gin.H{"sender_email": "ada@example.com", "receiver_email": "ada@example.com", "message": "spoof"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := s.do(http.MethodGet, "/api/chat/messages?user1=ada@example.com&user2=bob@example.com", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"message":"hi"`)

	carol := s.register("Carol", "carol@example.com")
	rec, _ = s.do(http.MethodGet, "/api/chat/messages?user1=ada@example.com&user2=bob@example.com", carol, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/chat/messages?user1=ada@example.com", ada, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupRateLimited(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	})

	body := gin.H{"email": "ada@example.com", "password": "x"}
	rec, _ := s.do(http.MethodPost, "/api/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := s.do(http.MethodPost, "/api/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, http.StatusTooManyRequests, env.Code)
}

var _ middleware.Limiter = (*middleware.MemoryLimiter)(nil)
