// Package events 定义领域事件类型和接口
// 用于系统内部的事件驱动通信
package events

import "time"

// EventType 事件类型标识
type EventType string

// 计时器相关事件类型
const (
	// TimerCreated 计时器创建（首次启动）事件
	TimerCreated EventType = "timer.created"
	// TimerPaused 计时器暂停事件
	TimerPaused EventType = "timer.paused"
	// TimerResumed 计时器恢复事件
	TimerResumed EventType = "timer.resumed"
	// TimerCancelled 计时器取消事件
	TimerCancelled EventType = "timer.cancelled"
	// TimerFinished 计时器完成事件（自然到期或手动完成，每个计时器恰好一次）
	TimerFinished EventType = "timer.finished"
	// TimerDurationChanged 计时器时长变更事件
	TimerDurationChanged EventType = "timer.duration_changed"
)

// AllTimerEvents 所有计时器事件类型
// 供订阅者一次性订阅全部计时器通知
var AllTimerEvents = []EventType{
	TimerCreated,
	TimerPaused,
	TimerResumed,
	TimerCancelled,
	TimerFinished,
	TimerDurationChanged,
}

// Event 领域事件接口
// 所有事件类型都必须实现此接口
type Event interface {
	// Type 返回事件类型
	Type() EventType
	// Timestamp 返回事件发生时间
	Timestamp() time.Time
}
