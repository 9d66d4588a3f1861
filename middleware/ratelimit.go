package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// KeyFunc 从请求中提取限流 key
type KeyFunc func(c *gin.Context) string

// ClientIPKey 按客户端 IP 限流
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// LoginKey 按 IP + 登录邮箱限流，读取后回填请求体供后续 handler 绑定
func LoginKey(c *gin.Context) string {
	ip := c.ClientIP()
	if c.Request.Body == nil {
		return ip
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ip
	}
	var req struct {
		Email string `json:"emailId"`
	}
	if json.Unmarshal(body, &req) != nil || req.Email == "" {
		return ip
	}
	return ip + "|" + strings.ToLower(strings.TrimSpace(req.Email))
}

// slidingWindow 滑动窗口计数器
type slidingWindow struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	hits        map[string][]time.Time
}

func newSlidingWindow(maxAttempts int, window time.Duration) *slidingWindow {
	return &slidingWindow{
		maxAttempts: maxAttempts,
		window:      window,
		hits:        make(map[string][]time.Time),
	}
}

// prune 移除窗口外的记录，调用方持有锁
func (w *slidingWindow) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-w.window)
	ts := w.hits[key][:0]
	for _, t := range w.hits[key] {
		if t.After(cutoff) {
			ts = append(ts, t)
		}
	}
	if len(ts) == 0 {
		delete(w.hits, key)
		return nil
	}
	w.hits[key] = ts
	return ts
}

// allow 记录一次尝试；超限时返回 false 及需要等待的时间
func (w *slidingWindow) allow(key string, now time.Time) (bool, time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ts := w.prune(key, now)
	if len(ts) >= w.maxAttempts {
		return false, ts[0].Add(w.window).Sub(now)
	}
	w.hits[key] = append(ts, now)
	return true, 0
}

// sweep 清理所有过期 key
func (w *slidingWindow) sweep(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for key := range w.hits {
		w.prune(key, now)
	}
}

// RateLimit 通用限流中间件
// 每个 key 在 window 内最多 maxAttempts 次请求，超过返回 429 并带 Retry-After
func RateLimit(maxAttempts int, window time.Duration, keyFn KeyFunc, message string) gin.HandlerFunc {
	limiter := newSlidingWindow(maxAttempts, window)
	// 定期清理过期数据
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			limiter.sweep(now)
		}
	}()

	return func(c *gin.Context) {
		ok, wait := limiter.allow(keyFn(c), time.Now())
		if !ok {
			seconds := int(math.Ceil(wait.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": message,
			})
			return
		}
		c.Next()
	}
}

// LoginRateLimit 登录接口限流，同一 IP 对同一账号的尝试次数受限
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	return RateLimit(maxAttempts, window, LoginKey, "Too many login attempts, please try again later")
}
