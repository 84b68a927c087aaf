package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
)

type stubTokenService struct {
	adapter.TokenService
	claims *adapter.TokenClaims
}

func (s *stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		actor, _ := GetActorFromContext(c)
		c.JSON(http.StatusOK, gin.H{"role": actor.Role})
	})
	engine.GET("/", handlers...)
	return engine
}

func doRequest(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	sales := &adapter.TokenClaims{UserID: uuid.New(), Email: "sales@example.com", Role: entity.UserRoleSales}
	admin := &adapter.TokenClaims{UserID: uuid.New(), Email: "admin@example.com", Role: entity.UserRoleAdmin}

	tests := []struct {
		name       string
		claims     *adapter.TokenClaims
		token      string
		adminOnly  bool
		wantStatus int
	}{
		{name: "missing token", claims: sales, wantStatus: http.StatusUnauthorized},
		{name: "bad token", claims: sales, token: "bad", wantStatus: http.StatusUnauthorized},
		{name: "valid token", claims: sales, token: "good", wantStatus: http.StatusOK},
		{name: "sales on admin route", claims: sales, token: "good", adminOnly: true, wantStatus: http.StatusForbidden},
		{name: "admin on admin route", claims: admin, token: "good", adminOnly: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthMiddleware(&stubTokenService{claims: tt.claims})
			handlers := []gin.HandlerFunc{m.Authenticate()}
			if tt.adminOnly {
				handlers = append(handlers, m.RequireAdmin())
			}

			rec := doRequest(newEngine(handlers...), tt.token)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{claims: &adapter.TokenClaims{UserID: uuid.New(), Role: entity.UserRoleAdmin}})
	engine := newEngine(m.OptionalAuthenticate())

	assert.Equal(t, http.StatusOK, doRequest(engine, "").Code)
	rec := doRequest(engine, "good")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"admin"`)
}

func TestLoginRateLimiter_Allow(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewLoginRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	ok, _ := rl.allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.allow("10.0.0.1")
	assert.True(t, ok)
	ok, retry := rl.allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	ok, _ = rl.allow("10.0.0.2")
	assert.True(t, ok, "limits are per key")

	now = now.Add(61 * time.Second)
	ok, _ = rl.allow("10.0.0.1")
	assert.True(t, ok, "window resets")
}

func TestNewAPILimiter(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("E2E_MODE", "")
	l, err := NewAPILimiter("2-M", nil)
	require.NoError(t, err)

	engine := newEngine(RateLimit(l))
	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		statuses = append(statuses, doRequest(engine, "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	_, err = NewAPILimiter("not-a-rate", nil)
	assert.Error(t, err)
}
