// Package scheduler 提供基于真实时钟的调度适配器实现
package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tempod/backend/internal/domain/temporary"
	applog "github.com/tempod/backend/internal/infrastructure/log"
)

// wallClock 基于 time 包的调度器实现
type wallClock struct {
	logger *slog.Logger
}

// NewWallClock 创建真实时钟调度器
func NewWallClock() temporary.Scheduler {
	return &wallClock{
		logger: applog.NewModuleLogger("scheduler", "wall_clock"),
	}
}

// Now 返回当前 UTC 时间
func (w *wallClock) Now() time.Time {
	return time.Now().UTC()
}

// ScheduleAt 在指定时刻执行一次回调
// 目标时刻已过时立即触发
func (w *wallClock) ScheduleAt(at time.Time, fn func()) (temporary.Handle, error) {
	if fn == nil {
		return nil, fmt.Errorf("schedule at %s: nil callback", at.Format(time.RFC3339))
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}
	return &onceHandle{timer: time.AfterFunc(delay, fn)}, nil
}

// ScheduleEvery 按固定间隔重复执行回调
func (w *wallClock) ScheduleEvery(every time.Duration, fn func()) (temporary.Handle, error) {
	if fn == nil {
		return nil, fmt.Errorf("schedule every %s: nil callback", every)
	}
	if every <= 0 {
		return nil, fmt.Errorf("schedule every %s: interval must be positive", every)
	}

	h := &intervalHandle{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return h, nil
}

// onceHandle 一次性回调的取消句柄
type onceHandle struct {
	timer *time.Timer
}

// Cancel 取消回调，幂等
func (h *onceHandle) Cancel() {
	h.timer.Stop()
}

// intervalHandle 周期回调的取消句柄
type intervalHandle struct {
	once sync.Once
	stop chan struct{}
}

// Cancel 停止周期回调，幂等
func (h *intervalHandle) Cancel() {
	h.once.Do(func() {
		close(h.stop)
	})
}
