package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reshxs/pocket-storage-backend/internal/core/config"
	"github.com/reshxs/pocket-storage-backend/internal/core/container"
	"github.com/reshxs/pocket-storage-backend/internal/jsonrpc"
	"github.com/reshxs/pocket-storage-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AppEnv: "test", CORSAllowedOrigins: []string{"*"}}
	logger := zap.NewNop()

	web := jsonrpc.NewEndpoint("web", nil, logger)
	web.Register("ping", func(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
		return "pong", nil
	})
	mobile := jsonrpc.NewEndpoint("mobile", nil, logger)

	router := NewRouter(cfg, logger)
	RegisterRPCRoutes(router, &container.Container{WebEndpoint: web, MobileEndpoint: mobile})
	RegisterUtilityRoutes(router, middleware.NewHealthChecker(okPinger{}, "test", logger), logger)

	t.Run("web endpoint", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, WebPath, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"result":"pong"`)
	})

	t.Run("method is scoped to its surface", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, MobilePath, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), `"code":-32601`)
	})

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)

	restricted := corsConfig([]string{"https://admin.example"})
	assert.False(t, restricted.AllowAllOrigins)
	assert.Equal(t, []string{"https://admin.example"}, restricted.AllowOrigins)
}
