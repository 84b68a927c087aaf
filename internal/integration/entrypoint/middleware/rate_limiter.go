package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed login attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for login attempts.
	defaultWindowDuration = 1 * time.Minute
)

type attemptWindow struct {
	attempts  int
	resetTime time.Time
}

// LoginRateLimiter throttles credential attempts per client IP with a fixed window.
type LoginRateLimiter struct {
	mu             sync.Mutex
	windows        map[string]*attemptWindow
	maxAttempts    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewLoginRateLimiter creates a limiter. Non-positive values fall back to 5 attempts per minute.
func NewLoginRateLimiter(maxAttempts int, windowDuration time.Duration) *LoginRateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	return &LoginRateLimiter{
		windows:        make(map[string]*attemptWindow),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces the limit.
func (rl *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rateLimitDisabled() {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, retryAfter := rl.allow(clientIP)
		if !allowed {
			GetLoggerFromContext(c).Warn("Login attempts throttled", slog.String("ip", clientIP))
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many login attempts. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

func (rl *LoginRateLimiter) allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	window, exists := rl.windows[key]
	if !exists || now.After(window.resetTime) {
		rl.windows[key] = &attemptWindow{attempts: 1, resetTime: now.Add(rl.windowDuration)}
		return true, 0
	}

	if window.attempts < rl.maxAttempts {
		window.attempts++
		return true, 0
	}
	return false, window.resetTime.Sub(now)
}

// Cleanup drops expired windows.
func (rl *LoginRateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, window := range rl.windows {
		if now.After(window.resetTime) {
			delete(rl.windows, key)
		}
	}
}

func rateLimitDisabled() bool {
	return os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test"
}
