package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/tempod/backend/internal/infrastructure/config"
	applog "github.com/tempod/backend/internal/infrastructure/log"
	"github.com/tempod/backend/internal/infrastructure/websocket"
)

// WebSocketHandler 事件推送连接处理器
type WebSocketHandler struct {
	hub      *websocket.Hub
	logger   *slog.Logger
	upgrader gorillaws.Upgrader
}

// NewWebSocketHandler 创建事件推送处理器
func NewWebSocketHandler(hub *websocket.Hub, cfg *config.WebSocketConfig) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: applog.NewModuleLogger("interfaces", "websocket"),
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				// 仅监听本机回环地址，放开跨域检查
				return true
			},
		},
	}
}

// Handle 升级连接并开始推送计时器事件
// @Summary 事件推送
// @Description 升级为 WebSocket 连接，接收计时器生命周期事件广播
// @Tags 事件
// @Router /ws [get]
func (h *WebSocketHandler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("连接升级失败", "error", err)
		return
	}

	client := websocket.NewClient(h.hub, conn)
	client.Serve()
}
