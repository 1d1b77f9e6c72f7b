package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"teamforge/internal/pkg/config"
	"teamforge/internal/pkg/logger"
	pkgErrors "teamforge/pkg/errors"
	"teamforge/pkg/responses"
)

// Limiter 按key判断是否放行
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NewLimiter 按配置创建限流器, 启用Redis时多实例共享计数
func NewLimiter(cfg *config.RateLimitConfig) Limiter {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisLimiter(client, cfg.RequestsPerMinute, time.Minute)
	}
	return NewMemoryLimiter(cfg.RequestsPerMinute, cfg.Burst)
}

// RateLimitMiddleware 按客户端IP限流, 超限返回429
// 限流器自身故障时放行请求
func RateLimitMiddleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("限流器不可用, 放行请求", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			logger.Warn("请求过于频繁",
				zap.String("key", key),
				zap.String("path", c.Request.URL.Path))
			responses.Error(c, pkgErrors.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ============= 进程内令牌桶 =============

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter 单实例令牌桶限流
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	ttl      time.Duration
}

// NewMemoryLimiter 每分钟 perMinute 次, 允许 burst 次突发
func NewMemoryLimiter(perMinute, burst int) *MemoryLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		ttl:      10 * time.Minute,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	v, ok := m.visitors[key]
	if !ok {
		m.evict(now)
		v = &visitor{limiter: rate.NewLimiter(m.rate, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

// evict 清理长时间未访问的key, 调用方持有锁
func (m *MemoryLimiter) evict(now time.Time) {
	for key, v := range m.visitors {
		if now.Sub(v.lastSeen) > m.ttl {
			delete(m.visitors, key)
		}
	}
}

// ============= Redis 固定窗口 =============

// RedisLimiter 基于 INCR + EXPIRE 的固定窗口计数
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().Unix() / int64(r.window.Seconds())
	redisKey := fmt.Sprintf("teamforge:ratelimit:%s:%d", key, bucket)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(r.limit), nil
}
