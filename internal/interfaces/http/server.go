package http

import (
	"context"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tempod/backend/internal/infrastructure/config"
	"github.com/tempod/backend/internal/infrastructure/log"
	"github.com/tempod/backend/internal/interfaces/http/handler"
	"github.com/tempod/backend/internal/interfaces/http/middleware"
	"github.com/tempod/backend/internal/interfaces/mcp"

	_ "github.com/tempod/backend/docs" // Swagger docs
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	serverConfig *config.ServerConfig,
	timerHandler *handler.TimerHandler,
	temporalHandler *handler.TemporalHandler,
	wsHandler *handler.WebSocketHandler,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	router := gin.Default()

	logger := log.NewModuleLogger("http", "server")

	router.Use(middleware.EnsureUTF8Body())

	// 注册路由
	api := router.Group("/api/v1")
	{
		// 计时器生命周期
		api.POST("/timers", timerHandler.Create)
		api.GET("/timers", timerHandler.List)
		api.GET("/timers/:id", timerHandler.Get)
		api.DELETE("/timers/:id", timerHandler.Delete)
		api.POST("/timers/:id/start", timerHandler.Start)
		api.POST("/timers/:id/pause", timerHandler.Pause)
		api.POST("/timers/:id/resume", timerHandler.Resume)
		api.POST("/timers/:id/cancel", timerHandler.Cancel)
		api.POST("/timers/:id/finish", timerHandler.Finish)

		// 管理器运行状态
		api.GET("/temporal/status", temporalHandler.Status)
	}

	// 事件推送
	router.GET("/ws", wsHandler.Handle)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// MCP SSE 端点
	if mcpServer != nil {
		router.Any("/mcp/sse", gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router:   router,
		httpPort: serverConfig.HTTPPort,
		logger:   logger,
	}
}

// Start 启动服务器
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    s.httpPort,
		Handler: s.router,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
