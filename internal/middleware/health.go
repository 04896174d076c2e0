package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker serves the cached health status of the application.
type HealthChecker struct {
	db            Pinger
	logger        *zap.Logger
	version       string
	startTime     time.Time
	cacheDuration time.Duration
	now           func() time.Time

	mu     sync.Mutex
	cached *HealthStatus
}

func NewHealthChecker(db Pinger, version string, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		db:            db,
		logger:        logger,
		version:       version,
		startTime:     time.Now(),
		cacheDuration: 5 * time.Second,
		now:           time.Now,
	}
}

func (h *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := h.check(c.Request.Context())

		code := http.StatusOK
		if status.Status != StatusOK {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}

func (h *HealthChecker) check(ctx context.Context) HealthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if h.cached != nil && now.Sub(h.cached.LastChecked) < h.cacheDuration {
		status := *h.cached
		status.Uptime = now.Sub(h.startTime).Round(time.Second).String()
		return status
	}

	status := HealthStatus{
		Status:      StatusOK,
		Database:    StatusOK,
		LastChecked: now,
		Uptime:      now.Sub(h.startTime).Round(time.Second).String(),
		Version:     h.version,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(pingCtx); err != nil {
		h.logger.Warn("Database health check failed", zap.Error(err))
		status.Status = StatusDegraded
		status.Database = err.Error()
	}

	h.cached = &status
	return status
}
