// Package http 提供查询行业趋势结果的HTTP服务
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"flowquant/flow"
)

// Server HTTP服务器
type Server struct {
	server *http.Server
}

// NewServer 创建HTTP服务器并注册路由
func NewServer(port int, analyzer *flow.Analyzer) *Server {
	mux := http.NewServeMux()
	RegisterHandlers(mux, analyzer)

	handler := RecoveryMiddleware(LoggerMiddleware(mux))

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second, // 首次计算需要等待五次分页抓取
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Start 启动服务器
func (s *Server) Start() error {
	zap.S().Infow("HTTP服务启动", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop 优雅停止服务器
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zap.S().Info("HTTP服务关闭中...")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr 返回监听地址
func (s *Server) Addr() string {
	return s.server.Addr
}
