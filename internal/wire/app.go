package wire

import (
	"context"
	"database/sql"
	"time"

	"log/slog"

	appTemporary "github.com/tempod/backend/internal/application/temporary"
	"github.com/tempod/backend/internal/domain/events"
	domainTemporary "github.com/tempod/backend/internal/domain/temporary"
	applog "github.com/tempod/backend/internal/infrastructure/log"
	"github.com/tempod/backend/internal/infrastructure/notification"
	"github.com/tempod/backend/internal/infrastructure/watcher"
	"github.com/tempod/backend/internal/infrastructure/websocket"
	"github.com/tempod/backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer    *interfaces.HTTPServer
	MCPServer     *interfaces.MCPServer
	wsHub         *websocket.Hub
	manager       *domainTemporary.Manager
	timerService  *appTemporary.TimerService
	pusher        *notification.WebSocketPusher
	configWatcher *watcher.ConfigWatcher
	eventBus      events.EventBus
	db            *sql.DB
	logger        *slog.Logger

	// 事件订阅的注销函数
	unsubscribePusher func()
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	wsHub *websocket.Hub,
	manager *domainTemporary.Manager,
	timerService *appTemporary.TimerService,
	pusher *notification.WebSocketPusher,
	configWatcher *watcher.ConfigWatcher,
	eventBus events.EventBus,
	db *sql.DB,
) *App {
	logger := applog.NewModuleLogger("app", "main")

	return &App{
		HTTPServer:    httpServer,
		MCPServer:     mcpServer,
		wsHub:         wsHub,
		manager:       manager,
		timerService:  timerService,
		pusher:        pusher,
		configWatcher: configWatcher,
		eventBus:      eventBus,
		db:            db,
		logger:        logger,
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting tempod backend application")

	// 注册事件订阅者（在恢复之前，保证恢复期间的完成事件可被推送）
	a.setupEventSubscribers()

	// 启动周期清理
	if err := a.manager.Start(); err != nil {
		a.logger.Error("Failed to start temporal manager",
			"error", err,
		)
		return err
	}

	// 从持久化快照恢复计时器
	if err := a.timerService.RestoreAll(); err != nil {
		a.logger.Error("Failed to restore persisted timers",
			"error", err,
		)
	}

	// 启动 WebSocket Hub
	a.wsHub.Start()

	// 启动配置文件监听（日志级别热更新）
	if err := a.configWatcher.Start(); err != nil {
		a.logger.Error("Failed to start config watcher",
			"error", err,
		)
	}

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	a.logger.Info("tempod backend application started successfully")

	// MCP 服务器通过 HTTP Handler 提供服务，不需要单独启动
	// 已在 HTTP 服务器中注册 /mcp/sse 端点

	return nil
}

// setupEventSubscribers 注册事件订阅者
func (a *App) setupEventSubscribers() {
	if a.eventBus == nil || a.pusher == nil {
		return
	}

	a.unsubscribePusher = a.pusher.Subscribe(a.eventBus)
	a.logger.Info("WebSocket pusher subscribed to timer events")
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping tempod backend application")

	// 停止配置文件监听
	if a.configWatcher != nil {
		a.configWatcher.Stop()
		a.logger.Info("Config watcher stopped")
	}

	// 停止周期清理
	a.manager.Stop()
	a.logger.Info("Temporal manager stopped")

	// 注销事件订阅并关闭事件总线
	if a.unsubscribePusher != nil {
		a.unsubscribePusher()
	}
	if a.eventBus != nil {
		a.eventBus.Close()
		a.logger.Info("Event bus closed")
	}

	// 优雅关闭 HTTP 服务器
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}
	if err := a.MCPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop MCP server",
			"error", err,
		)
		return err
	}

	// 关闭数据库连接
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database connection",
				"error", err,
			)
			return err
		}
	}

	a.logger.Info("tempod backend application stopped successfully")

	return nil
}
