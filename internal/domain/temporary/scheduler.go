package temporary

import (
	"errors"
	"time"
)

// ErrScheduler 调度器无法安排回调
// 仅导致当次启动失败，实体保持原状态
var ErrScheduler = errors.New("scheduler unavailable")

// Handle 已安排回调的取消句柄
type Handle interface {
	// Cancel 取消回调，幂等：重复取消或取消已触发的句柄是空操作
	Cancel()
}

// Scheduler 时钟/调度适配器接口
// 核心只依赖此契约，不关心底层是真实时钟还是测试用的模拟时钟
type Scheduler interface {
	// Now 返回当前 UTC 时间
	Now() time.Time

	// ScheduleAt 在指定时刻执行一次回调
	// 回调在独立的执行流中触发，不得阻塞调度器
	ScheduleAt(at time.Time, fn func()) (Handle, error)

	// ScheduleEvery 按固定间隔重复执行回调
	ScheduleEvery(every time.Duration, fn func()) (Handle, error)
}
