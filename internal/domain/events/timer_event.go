package events

import "time"

// TimerEvent 计时器生命周期事件
// 当计时器发生状态转换（创建/暂停/恢复/取消/完成/时长变更）时触发
// 恢复持久化快照期间不会发布此类事件（到期补发的 finished 除外）
type TimerEvent struct {
	// EventType 事件类型（timer.created 等）
	EventType EventType
	// TimerID 计时器标识
	TimerID string
	// Name 计时器显示名称
	Name string
	// State 转换后的对外状态（idle/active/paused）
	State string
	// Duration 配置的完整时长（H:MM:SS 格式）
	Duration string
	// Remaining 剩余时长（H:MM:SS 格式，暂停时有意义）
	Remaining string
	// FinishesAt 预计完成时间（RFC3339，运行中时有值）
	FinishesAt string
	// OldDuration 变更前的时长（仅 timer.duration_changed 事件携带）
	OldDuration string
	// EventTime 事件发生时间
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *TimerEvent) Type() EventType {
	return e.EventType
}

// Timestamp 实现 Event 接口
func (e *TimerEvent) Timestamp() time.Time {
	return e.EventTime
}
