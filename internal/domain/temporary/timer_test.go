package temporary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempod/backend/internal/domain/events"
)

func TestTimer_Start(t *testing.T) {
	t.Run("启动后进入运行态并发出 created 事件", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)
		mgr.Register(timer)

		require.NoError(t, timer.Start())

		snap, err := mgr.SnapshotOf("timer_1")
		require.NoError(t, err)
		assert.Equal(t, "active", snap.State)
		assert.Equal(t, "0:03:00", snap.Duration)
		assert.Equal(t, "0:03:00", snap.Remaining)
		assert.Equal(t, sched.Now().Add(3*time.Minute).Format(time.RFC3339Nano), snap.FinishesAt)

		created := bus.eventsOf(events.TimerCreated)
		require.Len(t, created, 1)
		assert.Equal(t, "timer_1", created[0].TimerID)
	})

	t.Run("调度失败时保持原状态", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)
		mgr.Register(timer)

		sched.scheduleErr = ErrScheduler
		err := timer.Start()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrScheduler)
		assert.Equal(t, StateIdle, timer.State())
		assert.Empty(t, bus.eventsOf(events.TimerCreated))
	})

	t.Run("已终结的计时器不会重新启动", func(t *testing.T) {
		mgr, _, _, _ := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)
		mgr.Register(timer)

		require.NoError(t, timer.Start())
		timer.Cancel()

		require.NoError(t, timer.Start())
		assert.Equal(t, StateFinalized, timer.State())
	})
}

func TestTimer_NaturalExpiry(t *testing.T) {
	t.Run("到期后终结并恰好发出一次 finished 事件", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "煮蛋", 2*time.Minute)
		mgr.Register(timer)
		require.NoError(t, timer.Start())

		sched.Advance(2 * time.Minute)

		assert.Equal(t, StateFinalized, timer.State())
		assert.Len(t, bus.eventsOf(events.TimerFinished), 1)

		// 对外状态呈现为 idle
		snap, err := mgr.SnapshotOf("timer_1")
		require.NoError(t, err)
		assert.Equal(t, "idle", snap.State)
		assert.Equal(t, "0:00:00", snap.Remaining)
	})

	t.Run("到期前剩余时长随时钟递减", func(t *testing.T) {
		mgr, sched, _, _ := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "煮蛋", 2*time.Minute)
		mgr.Register(timer)
		require.NoError(t, timer.Start())

		sched.Advance(30 * time.Second)

		snap, err := mgr.SnapshotOf("timer_1")
		require.NoError(t, err)
		assert.Equal(t, "active", snap.State)
		assert.Equal(t, "0:01:30", snap.Remaining)
	})
}

func TestTimer_PauseResume(t *testing.T) {
	t.Run("暂停冻结剩余时长", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "专注", 25*time.Minute)
		mgr.Register(timer)
		require.NoError(t, timer.Start())

		sched.Advance(10 * time.Minute)
		timer.Pause()

		assert.Equal(t, StatePaused, timer.State())
		snap, err := mgr.SnapshotOf("timer_1")
		require.NoError(t, err)
		assert.Equal(t, "0:15:00", snap.Remaining)

		// 暂停期间时钟推进不影响剩余时长
		sched.Advance(time.Hour)
		snap, err = mgr.SnapshotOf("timer_1")
		require.NoError(t, err)
		assert.Equal(t, "0:15:00", snap.Remaining)

		assert.Len(t, bus.eventsOf(events.TimerPaused), 1)
	})

	t.Run("非运行状态暂停为空操作", func(t *testing.T) {
		mgr, _, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "专注", 25*time.Minute)
		mgr.Register(timer)

		timer.Pause()

		assert.Equal(t, StateIdle, timer.State())
		assert.Empty(t, bus.eventsOf(events.TimerPaused))
	})

	t.Run("恢复后按剩余时长继续计时", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "专注", 25*time.Minute)
		mgr.Register(timer)
		require.NoError(t, timer.Start())

		sched.Advance(10 * time.Minute)
		timer.Pause()
		sched.Advance(time.Hour)
		require.NoError(t, timer.Resume())

		snap, err := mgr.SnapshotOf("timer_1")
		require.NoError(t, err)
		assert.Equal(t, "active", snap.State)
		assert.Equal(t, "0:15:00", snap.Remaining)

		// 恢复只发 resumed，不再发 created
		assert.Len(t, bus.eventsOf(events.TimerResumed), 1)
		assert.Len(t, bus.eventsOf(events.TimerCreated), 1)

		// 剩余 15 分钟后到期
		sched.Advance(15 * time.Minute)
		assert.Len(t, bus.eventsOf(events.TimerFinished), 1)
	})

	t.Run("反复暂停恢复不累积漂移", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "专注", 10*time.Minute)
		mgr.Register(timer)
		require.NoError(t, timer.Start())

		// 每走 1 分钟暂停一次再恢复，共消耗 5 分钟
		for i := 0; i < 5; i++ {
			sched.Advance(time.Minute)
			timer.Pause()
			sched.Advance(30 * time.Second)
			require.NoError(t, timer.Resume())
		}

		snap, err := mgr.SnapshotOf("timer_1")
		require.NoError(t, err)
		assert.Equal(t, "0:05:00", snap.Remaining)

		sched.Advance(5 * time.Minute)
		assert.Len(t, bus.eventsOf(events.TimerFinished), 1)
	})

	t.Run("非暂停状态恢复为空操作", func(t *testing.T) {
		mgr, _, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "专注", 25*time.Minute)
		mgr.Register(timer)
		require.NoError(t, timer.Start())

		require.NoError(t, timer.Resume())
		assert.Empty(t, bus.eventsOf(events.TimerResumed))
	})
}

func TestTimer_Cancel(t *testing.T) {
	t.Run("取消终结计时器且不发出 finished 事件", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)
		mgr.Register(timer)
		require.NoError(t, timer.Start())

		timer.Cancel()

		assert.Equal(t, StateFinalized, timer.State())
		assert.Len(t, bus.eventsOf(events.TimerCancelled), 1)
		assert.Empty(t, bus.eventsOf(events.TimerFinished))

		// 到期回调已被取消，推进时钟不会再触发完成
		sched.Advance(time.Hour)
		assert.Empty(t, bus.eventsOf(events.TimerFinished))
	})

	t.Run("重复取消为空操作", func(t *testing.T) {
		mgr, _, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)
		mgr.Register(timer)
		require.NoError(t, timer.Start())

		timer.Cancel()
		timer.Cancel()

		assert.Len(t, bus.eventsOf(events.TimerCancelled), 1)
	})
}

func TestTimer_Finish(t *testing.T) {
	t.Run("手动完成恰好发出一次 finished 事件", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)
		mgr.Register(timer)
		require.NoError(t, timer.Start())

		timer.Finish()
		timer.Finish()

		assert.Equal(t, StateFinalized, timer.State())
		assert.Len(t, bus.eventsOf(events.TimerFinished), 1)

		// 原有的到期回调已失效
		sched.Advance(time.Hour)
		assert.Len(t, bus.eventsOf(events.TimerFinished), 1)
	})

	t.Run("手动完成与自然到期不叠加", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)
		mgr.Register(timer)
		require.NoError(t, timer.Start())

		sched.Advance(3 * time.Minute)
		timer.Finish()

		assert.Len(t, bus.eventsOf(events.TimerFinished), 1)
	})
}

func TestTimer_SetDuration(t *testing.T) {
	t.Run("修改时长发出 duration_changed 事件", func(t *testing.T) {
		mgr, _, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)
		mgr.Register(timer)

		timer.SetDuration(5 * time.Minute)

		changed := bus.eventsOf(events.TimerDurationChanged)
		require.Len(t, changed, 1)
		assert.Equal(t, "0:03:00", changed[0].OldDuration)
		assert.Equal(t, "0:05:00", changed[0].Duration)
		assert.Equal(t, 5*time.Minute, timer.Duration())
	})

	t.Run("修改时长后启动按新时长计时", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)
		mgr.Register(timer)

		timer.SetDuration(5 * time.Minute)
		require.NoError(t, timer.Start())

		sched.Advance(3 * time.Minute)
		assert.Empty(t, bus.eventsOf(events.TimerFinished))
		sched.Advance(2 * time.Minute)
		assert.Len(t, bus.eventsOf(events.TimerFinished), 1)
	})
}

func TestTimer_Restore(t *testing.T) {
	t.Run("恢复未到期的运行中计时器并重新武装", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)

		end := sched.Now().Add(90 * time.Second)
		timer.Restore(&Snapshot{
			ID:         "timer_1",
			Name:       "泡茶",
			State:      "active",
			CreatedAt:  sched.Now().Add(-time.Minute).Format(time.RFC3339Nano),
			Duration:   "0:03:00",
			FinishesAt: end.Format(time.RFC3339Nano),
		})
		mgr.Register(timer)

		assert.Equal(t, StateActive, timer.State())
		// 恢复路径不发 created 事件
		assert.Empty(t, bus.eventsOf(events.TimerCreated))

		sched.Advance(90 * time.Second)
		assert.Len(t, bus.eventsOf(events.TimerFinished), 1)
	})

	t.Run("停机期间已到期的计时器立即补发 finished 事件", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)

		end := sched.Now().Add(-10 * time.Second)
		timer.Restore(&Snapshot{
			ID:         "timer_1",
			Name:       "泡茶",
			State:      "active",
			Duration:   "0:03:00",
			FinishesAt: end.Format(time.RFC3339Nano),
		})
		mgr.Register(timer)

		assert.Equal(t, StateFinalized, timer.State())
		assert.Len(t, bus.eventsOf(events.TimerFinished), 1)
		assert.Zero(t, sched.pendingCount())

		// 不会再次触发
		sched.Advance(time.Hour)
		assert.Len(t, bus.eventsOf(events.TimerFinished), 1)
	})

	t.Run("恢复暂停的计时器不自动启动", func(t *testing.T) {
		mgr, sched, _, _ := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "专注", 25*time.Minute)

		timer.Restore(&Snapshot{
			ID:        "timer_1",
			Name:      "专注",
			State:     "paused",
			Duration:  "0:25:00",
			Remaining: "0:01:30",
		})
		mgr.Register(timer)

		assert.Equal(t, StatePaused, timer.State())
		assert.Zero(t, sched.pendingCount())

		snap, err := mgr.SnapshotOf("timer_1")
		require.NoError(t, err)
		assert.Equal(t, "0:01:30", snap.Remaining)
	})

	t.Run("历史快照的纯数字剩余秒数可恢复", func(t *testing.T) {
		mgr, _, _, _ := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "专注", 25*time.Minute)

		timer.Restore(&Snapshot{
			ID:        "timer_1",
			State:     "paused",
			Duration:  "1500",
			Remaining: "90",
		})
		mgr.Register(timer)

		snap, err := mgr.SnapshotOf("timer_1")
		require.NoError(t, err)
		assert.Equal(t, "0:01:30", snap.Remaining)
		assert.Equal(t, "0:25:00", snap.Duration)
	})

	t.Run("含终结时间的 idle 快照恢复为终结态", func(t *testing.T) {
		mgr, sched, _, bus := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)

		timer.Restore(&Snapshot{
			ID:          "timer_1",
			State:       "idle",
			FinalizedAt: sched.Now().Add(-10 * time.Second).Format(time.RFC3339Nano),
		})
		mgr.Register(timer)

		assert.Equal(t, StateFinalized, timer.State())
		// 已终结的恢复不补发任何事件
		assert.Empty(t, bus.events)
	})

	t.Run("无终结时间的 idle 快照恢复为未启动", func(t *testing.T) {
		mgr, sched, _, _ := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)

		timer.Restore(&Snapshot{
			ID:    "timer_1",
			State: "idle",
		})
		mgr.Register(timer)

		assert.Equal(t, StateIdle, timer.State())
		assert.Zero(t, sched.pendingCount())
	})

	t.Run("无法识别的状态按 active 宽松处理", func(t *testing.T) {
		mgr, sched, _, _ := newTestManager(DefaultConfig())
		timer := NewTimer(mgr, "timer_1", "泡茶", 3*time.Minute)

		end := sched.Now().Add(time.Minute)
		timer.Restore(&Snapshot{
			ID:         "timer_1",
			State:      "bogus",
			Duration:   "0:03:00",
			FinishesAt: end.Format(time.RFC3339Nano),
		})
		mgr.Register(timer)

		assert.Equal(t, StateActive, timer.State())
		assert.Equal(t, 1, sched.pendingCount())
	})
}
