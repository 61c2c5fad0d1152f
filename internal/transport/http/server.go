// Package tornadohttp 提供图表预览的最小 HTTP 服务：
// 首页直接返回渲染好的图表页面，/api/spec 暴露逻辑图表契约。
package tornadohttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tornado/internal/logger"
	"tornado/internal/tornado"
)

// Snapshot 是某一时刻的渲染结果。watch 模式下会整体替换。
type Snapshot struct {
	Spec *tornado.ChartSpec
	HTML []byte
	Err  error
}

// Server 持有路由与监听地址。
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig 描述预览服务的依赖：一个返回当前快照的取数函数。
type ServerConfig struct {
	Addr   string
	Source func() Snapshot
}

// NewServer 构建预览服务。
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Source == nil {
		return nil, errors.New("preview server requires a snapshot source")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9980"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/", func(c *gin.Context) {
		snap := cfg.Source()
		if snap.Err != nil {
			c.String(http.StatusUnprocessableEntity, "chart unavailable: %v", snap.Err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", snap.HTML)
	})
	router.GET("/api/spec", func(c *gin.Context) {
		snap := cfg.Source()
		if snap.Err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": snap.Err.Error()})
			return
		}
		c.JSON(http.StatusOK, snap.Spec)
	})

	return &Server{addr: cfg.Addr, router: router}, nil
}

// Addr 返回监听地址。
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Start 启动 HTTP 服务，直到 ctx 取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.ClientIP(), time.Since(start))
	}
}
