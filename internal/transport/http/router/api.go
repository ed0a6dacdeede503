package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"user-roles-api/internal/core/server"
	mdw "user-roles-api/internal/transport/http/middleware"
	resp "user-roles-api/internal/transport/http/response"
)

// Pinger 健康检查用（*sql.DB 即满足）
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	MaxConcurrency int64
}

func (o Options) withDefaults() Options {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = 300
	}
	return o
}

func NewAPIEngine(l *zap.Logger, o Options, db Pinger, reg *Registry) *gin.Engine {
	o = o.withDefaults()
	r := server.NewRouter(l)

	r.Use(
		mdw.RequestID(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		mdw.ConcurrencyLimit(o.MaxConcurrency),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.RequestTimeout),
	)

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			l.Warn("health check: db ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, resp.Error(resp.CodeUnavailable, "database unavailable"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, ""))
	})

	api := r.Group("/api/v1")
	reg.MountAll(api)

	return r
}
