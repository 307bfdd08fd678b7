// Package notification 将计时器领域事件推送给外部订阅者
package notification

import (
	"log/slog"
	"time"

	"github.com/tempod/backend/internal/domain/events"
	applog "github.com/tempod/backend/internal/infrastructure/log"
	"github.com/tempod/backend/internal/infrastructure/websocket"
)

// PushMessage WebSocket 推送的事件载荷
type PushMessage struct {
	// Event 事件类型（timer.created 等）
	Event string `json:"event"`
	// TimerID 计时器标识
	TimerID string `json:"timer_id"`
	// Name 计时器名称
	Name string `json:"name"`
	// State 转换后的对外状态
	State string `json:"state"`
	// Duration 完整时长（H:MM:SS）
	Duration string `json:"duration"`
	// Remaining 剩余时长（H:MM:SS）
	Remaining string `json:"remaining,omitempty"`
	// FinishesAt 预计完成时间
	FinishesAt string `json:"finishes_at,omitempty"`
	// OldDuration 变更前时长（仅时长变更事件）
	OldDuration string `json:"old_duration,omitempty"`
	// Timestamp 事件发生时间
	Timestamp time.Time `json:"timestamp"`
}

// WebSocketPusher 计时器事件的 WebSocket 推送器
// 订阅事件总线上的全部计时器事件并广播给所有连接
type WebSocketPusher struct {
	hub    *websocket.Hub
	logger *slog.Logger
}

// NewWebSocketPusher 创建 WebSocket 推送器
func NewWebSocketPusher(hub *websocket.Hub) *WebSocketPusher {
	return &WebSocketPusher{
		hub:    hub,
		logger: applog.NewModuleLogger("notification", "pusher"),
	}
}

// HandleEvent 实现 events.Handler 接口
func (p *WebSocketPusher) HandleEvent(event events.Event) error {
	timerEvent, ok := event.(*events.TimerEvent)
	if !ok {
		return nil
	}

	msg := &PushMessage{
		Event:       string(timerEvent.EventType),
		TimerID:     timerEvent.TimerID,
		Name:        timerEvent.Name,
		State:       timerEvent.State,
		Duration:    timerEvent.Duration,
		Remaining:   timerEvent.Remaining,
		FinishesAt:  timerEvent.FinishesAt,
		OldDuration: timerEvent.OldDuration,
		Timestamp:   timerEvent.EventTime,
	}

	if err := p.hub.Broadcast(msg); err != nil {
		p.logger.Error("failed to broadcast timer event",
			"event", timerEvent.EventType,
			"timer_id", timerEvent.TimerID,
			"error", err,
		)
		return err
	}
	return nil
}

// Subscribe 订阅事件总线上的全部计时器事件
// 返回取消订阅函数
func (p *WebSocketPusher) Subscribe(bus events.EventBus) func() {
	return bus.SubscribeMultiple(events.AllTimerEvents, p)
}

// 编译时检查接口实现
var _ events.Handler = (*WebSocketPusher)(nil)
