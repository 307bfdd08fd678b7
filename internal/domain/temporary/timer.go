package temporary

import (
	"fmt"
	"time"

	"github.com/tempod/backend/internal/domain/events"
	applog "github.com/tempod/backend/internal/infrastructure/log"
)

// remainingPrecision 暂停时剩余时长的舍入精度（秒的两位小数）
// 避免反复暂停/恢复时累积亚毫秒级漂移
const remainingPrecision = 10 * time.Millisecond

// Timer 到期驱动的计时器实体
// 在基础实体之上增加时长、暂停/恢复运算、到期回调与完成事件
// 公开方法自行获取管理器互斥锁，可被 HTTP/MCP 层与调度回调并发调用
type Timer struct {
	Entity

	// duration 配置的完整时长
	duration time.Duration
	// remaining 剩余时长快照，仅暂停期间有意义
	// 运行中为 nil（剩余时长由 endTime 推导）
	remaining *time.Duration

	startTime *time.Time
	endTime   *time.Time

	// deadline 当前待触发的到期句柄，同一时刻至多一个
	deadline Handle
	// deadlineSeq 到期回调代数
	// 每次取消或重新安排都会递增，过期代数的回调不再生效
	// （time.AfterFunc 的回调可能在取消时已在途，仅靠 Cancel 不够）
	deadlineSeq uint64
}

// NewTimer 创建计时器，初始为未启动的静止状态
func NewTimer(mgr *Manager, id, name string, duration time.Duration) *Timer {
	expected := duration
	t := &Timer{
		Entity:   newEntity(mgr, id, name, &expected),
		duration: duration,
	}
	t.state = StateIdle
	t.logger = applog.NewModuleLogger("temporary", "timer")
	return t
}

// Duration 返回配置的完整时长
func (t *Timer) Duration() time.Duration {
	t.mgr.mu.Lock()
	defer t.mgr.mu.Unlock()
	return t.duration
}

// SetDuration 更新计时器时长并重置剩余时长
// 不会自动重启：对运行中的计时器需要再次 Start 才会生效
func (t *Timer) SetDuration(d time.Duration) {
	t.mgr.mu.Lock()
	defer t.mgr.mu.Unlock()

	old := t.duration
	t.duration = d
	t.remaining = &d

	t.mgr.publishStateLocked(t)
	t.mgr.emitLocked(events.TimerDurationChanged, t, FormatDuration(old))

	t.logger.Debug("timer duration changed",
		"id", t.id,
		"old", old.String(),
		"new", d.String(),
	)
}

// Start 启动计时器
// 已有的到期回调会先被取消；剩余时长存在时按剩余时长计时，否则按完整时长
// 调度失败时计时器保持原状态
func (t *Timer) Start() error {
	t.mgr.mu.Lock()
	defer t.mgr.mu.Unlock()
	return t.startLocked(false, false)
}

// Pause 暂停计时器，仅在运行中有效，其余状态为空操作
func (t *Timer) Pause() {
	t.mgr.mu.Lock()
	defer t.mgr.mu.Unlock()
	t.pauseLocked(false)
}

// Resume 恢复已暂停的计时器，其余状态为空操作
func (t *Timer) Resume() error {
	t.mgr.mu.Lock()
	defer t.mgr.mu.Unlock()

	if !t.IsPaused() {
		t.logger.Debug("resume ignored: timer not paused",
			"id", t.id,
			"state", string(t.state),
		)
		return nil
	}

	// 恢复事件先于启动的可见副作用发出
	// 随后的启动以 isResume 方式进行，不再重复发出 created 事件
	t.mgr.emitLocked(events.TimerResumed, t, "")
	return t.startLocked(true, false)
}

// Cancel 取消计时器（用户主动放弃，不具备完成语义）
// 已终结时为空操作
func (t *Timer) Cancel() {
	t.mgr.mu.Lock()
	defer t.mgr.mu.Unlock()

	if t.IsFinalized() {
		return
	}

	t.cancelDeadlineLocked()
	t.remaining = nil
	t.markFinalized()
	t.mgr.publishStateLocked(t)
	t.mgr.emitLocked(events.TimerCancelled, t, "")

	t.logger.Debug("timer cancelled", "id", t.id)
}

// Finish 完成计时器
// 自然到期与手动完成共用此路径；完成事件对每个计时器恰好发出一次
func (t *Timer) Finish() {
	t.mgr.mu.Lock()
	defer t.mgr.mu.Unlock()
	t.finishLocked()
}

// Restore 从持久化快照一次性恢复计时器
// 恢复期间不发布通知（停机期间已到期的计时器立即完成并补发 finished 事件）
func (t *Timer) Restore(snap *Snapshot) {
	t.mgr.mu.Lock()
	defer t.mgr.mu.Unlock()

	t.restoreBase(snap)

	if snap.Duration != "" {
		t.duration = ParseFlexibleDuration(snap.Duration)
	}
	if st, ok := parseTime(snap.StartTime); ok {
		t.startTime = &st
	}
	if et, ok := parseTime(snap.FinishesAt); ok {
		t.endTime = &et
	}

	// 按恢复后的内部状态分派（无法识别的状态已被 restoreBase 映射为 active）
	switch t.state {
	case StateActive:
		// 依据持久化的结束时间重算剩余时长
		// 结束时间缺失时退回持久化的剩余时长字段
		now := t.mgr.scheduler.Now()
		var rem time.Duration
		if t.endTime != nil {
			rem = t.endTime.Sub(now)
		} else if snap.Remaining != "" {
			rem = ParseFlexibleDuration(snap.Remaining)
		}
		if rem > 0 {
			t.remaining = &rem
			if err := t.startLocked(false, true); err != nil {
				t.logger.Error("failed to re-arm restored timer",
					"id", t.id,
					"error", err,
				)
			}
		} else {
			// 停机期间已到期：不能悄悄丢弃，立即完成使 finished 事件仍恰好发出一次
			t.finishLocked()
		}
	case StatePaused:
		if snap.Remaining != "" {
			rem := ParseFlexibleDuration(snap.Remaining)
			t.remaining = &rem
		}
		// 暂停状态不自动启动
	default:
		// idle/finalized 保持基础恢复结果，不安排任何调度
	}

	t.logger.Info("timer restored",
		"id", t.id,
		"state", string(t.state),
		"duration", t.duration.String(),
	)
}

// startLocked 启动计时器，要求已持有管理器锁
// isResume 表示从暂停恢复（不发 created 事件）
// restoring 表示恢复快照触发的启动（不发任何事件）
func (t *Timer) startLocked(isResume, restoring bool) error {
	if t.IsFinalized() {
		t.logger.Debug("start ignored: timer finalized", "id", t.id)
		return nil
	}

	t.cancelDeadlineLocked()

	effective := t.duration
	if t.remaining != nil {
		effective = *t.remaining
	}

	now := t.mgr.scheduler.Now()
	end := now.Add(effective)

	// 先武装到期回调再转换状态：调度失败时不得进入运行态
	t.deadlineSeq++
	seq := t.deadlineSeq
	handle, err := t.mgr.scheduler.ScheduleAt(end, func() {
		t.onDeadline(seq)
	})
	if err != nil {
		t.logger.Error("failed to schedule deadline",
			"id", t.id,
			"end", end.Format(time.RFC3339),
			"error", err,
		)
		return fmt.Errorf("schedule deadline for %s: %w", t.id, err)
	}
	t.deadline = handle

	t.startTime = &now
	t.endTime = &end
	t.remaining = nil
	t.markActive()
	t.mgr.publishStateLocked(t)

	if !isResume && !restoring {
		t.mgr.emitLocked(events.TimerCreated, t, "")
	}

	t.logger.Debug("timer started",
		"id", t.id,
		"effective", effective.String(),
		"finishes_at", end.Format(time.RFC3339),
	)
	return nil
}

// pauseLocked 暂停计时器，要求已持有管理器锁
func (t *Timer) pauseLocked(restoring bool) {
	if !t.IsActive() {
		t.logger.Debug("pause ignored: timer not active",
			"id", t.id,
			"state", string(t.state),
		)
		return
	}

	t.cancelDeadlineLocked()

	if t.endTime != nil {
		rem := t.endTime.Sub(t.mgr.scheduler.Now())
		if rem < 0 {
			rem = 0
		}
		// 按固定精度舍入，防止反复暂停/恢复累积漂移
		rem = rem.Round(remainingPrecision)
		t.remaining = &rem
	}

	t.markPaused()
	t.mgr.publishStateLocked(t)
	if !restoring {
		t.mgr.emitLocked(events.TimerPaused, t, "")
	}

	t.logger.Debug("timer paused",
		"id", t.id,
		"remaining", t.remainingLocked().String(),
	)
}

// finishLocked 完成计时器，要求已持有管理器锁
// 幂等：已终结时不再发出任何事件
func (t *Timer) finishLocked() {
	if t.IsFinalized() {
		return
	}

	t.cancelDeadlineLocked()
	t.remaining = nil
	t.markFinalized()
	t.mgr.publishStateLocked(t)
	t.mgr.emitLocked(events.TimerFinished, t, "")

	t.logger.Info("timer finished", "id", t.id)
}

// onDeadline 到期回调，由调度器在 endTime 触发
// 仅转交给 finishLocked，不在调度线程上做额外工作
func (t *Timer) onDeadline(seq uint64) {
	t.mgr.mu.Lock()
	defer t.mgr.mu.Unlock()

	// 代数不匹配说明该回调已被取消或替换
	if seq != t.deadlineSeq {
		return
	}
	t.deadline = nil
	t.finishLocked()
}

// cancelDeadlineLocked 取消待触发的到期回调，幂等
func (t *Timer) cancelDeadlineLocked() {
	if t.deadline != nil {
		t.deadline.Cancel()
		t.deadline = nil
	}
	// 使在途回调失效
	t.deadlineSeq++
}

// remainingLocked 计算当前剩余时长，要求已持有管理器锁
// 运行中由结束时间推导，暂停时取快照值，其余为 0
func (t *Timer) remainingLocked() time.Duration {
	if t.IsActive() && t.endTime != nil {
		rem := t.endTime.Sub(t.mgr.scheduler.Now())
		if rem < 0 {
			rem = 0
		}
		return rem
	}
	if t.remaining != nil {
		return *t.remaining
	}
	return 0
}

// Snapshot 构造当前属性包，要求已持有管理器锁
// （实现 Temporary 接口，由管理器在持锁状态下调用）
func (t *Timer) Snapshot() *Snapshot {
	snap := t.baseSnapshot()
	snap.Duration = FormatDuration(t.duration)
	snap.Remaining = FormatDuration(t.remainingLocked())
	if t.startTime != nil {
		snap.StartTime = t.startTime.Format(time.RFC3339Nano)
	}
	if t.endTime != nil {
		snap.FinishesAt = t.endTime.Format(time.RFC3339Nano)
	}
	return snap
}

// teardown 实体移除前释放到期句柄，由管理器持锁调用
func (t *Timer) teardown() {
	t.cancelDeadlineLocked()
}
