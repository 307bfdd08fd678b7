package temporary

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/tempod/backend/internal/domain/temporary"
)

// manualClock 手动推进的调度器，只实现服务测试所需的最小能力
type manualClock struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*clockTask
}

type clockTask struct {
	at        time.Time
	fn        func()
	every     time.Duration
	cancelled bool
}

type clockHandle struct {
	c    *manualClock
	task *clockTask
}

func (h *clockHandle) Cancel() {
	h.c.mu.Lock()
	defer h.c.mu.Unlock()
	h.task.cancelled = true
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) ScheduleAt(at time.Time, fn func()) (domain.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	task := &clockTask{at: at, fn: fn}
	c.tasks = append(c.tasks, task)
	return &clockHandle{c: c, task: task}, nil
}

func (c *manualClock) ScheduleEvery(every time.Duration, fn func()) (domain.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	task := &clockTask{at: c.now.Add(every), fn: fn, every: every}
	c.tasks = append(c.tasks, task)
	return &clockHandle{c: c, task: task}, nil
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *clockTask
		for _, task := range c.tasks {
			if task.cancelled || task.at.After(target) {
				continue
			}
			if next == nil || task.at.Before(next.at) {
				next = task
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.at
		fn := next.fn
		if next.every > 0 {
			next.at = next.at.Add(next.every)
		} else {
			next.cancelled = true
		}
		c.mu.Unlock()
		fn()
	}
}

// mapStore 内存快照仓储
type mapStore struct {
	mu    sync.Mutex
	snaps map[string]*domain.Snapshot
}

func newMapStore() *mapStore {
	return &mapStore{snaps: make(map[string]*domain.Snapshot)}
}

func (s *mapStore) Save(snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *snap
	s.snaps[snap.ID] = &copied
	return nil
}

func (s *mapStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, id)
	return nil
}

func (s *mapStore) FindAll() ([]*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.Snapshot, 0, len(s.snaps))
	for _, snap := range s.snaps {
		copied := *snap
		result = append(result, &copied)
	}
	return result, nil
}

func newTestService() (*TimerService, *manualClock, *mapStore, *domain.Manager) {
	clock := newManualClock()
	store := newMapStore()
	mgr := domain.NewManager(domain.DefaultConfig(), clock, store, nil)
	return NewTimerService(mgr, store), clock, store, mgr
}

func TestTimerService_Create(t *testing.T) {
	t.Run("创建后立即运行", func(t *testing.T) {
		svc, clock, _, _ := newTestService()

		snap, err := svc.Create("泡茶", 120)
		require.NoError(t, err)
		require.NotNil(t, snap)

		assert.Equal(t, "active", snap.State)
		assert.Equal(t, "0:02:00", snap.Duration)
		assert.Equal(t, "0:02:00", snap.Remaining)
		assert.NotEmpty(t, snap.ID)

		// 到期后对外呈现为 idle
		clock.Advance(130 * time.Second)
		got, err := svc.Get(snap.ID)
		require.NoError(t, err)
		assert.Equal(t, "idle", got.State)
	})

	t.Run("每次创建生成唯一标识", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		first, err := svc.Create("一", 120)
		require.NoError(t, err)
		second, err := svc.Create("二", 120)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Len(t, svc.List(), 2)
	})
}

func TestTimerService_Operations(t *testing.T) {
	t.Run("完整的暂停恢复流程", func(t *testing.T) {
		svc, clock, _, _ := newTestService()
		snap, err := svc.Create("专注", 1500)
		require.NoError(t, err)

		clock.Advance(10 * time.Minute)
		require.NoError(t, svc.Pause(snap.ID))

		got, err := svc.Get(snap.ID)
		require.NoError(t, err)
		assert.Equal(t, "paused", got.State)
		assert.Equal(t, "0:15:00", got.Remaining)

		require.NoError(t, svc.Resume(snap.ID))
		got, err = svc.Get(snap.ID)
		require.NoError(t, err)
		assert.Equal(t, "active", got.State)
	})

	t.Run("启动时更新时长", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		snap, err := svc.Create("泡茶", 120)
		require.NoError(t, err)

		newDuration := 300
		require.NoError(t, svc.Start(snap.ID, &newDuration))

		got, err := svc.Get(snap.ID)
		require.NoError(t, err)
		assert.Equal(t, "0:05:00", got.Duration)
		assert.Equal(t, "0:05:00", got.Remaining)
	})

	t.Run("取消后的计时器不再完成", func(t *testing.T) {
		svc, clock, _, _ := newTestService()
		snap, err := svc.Create("泡茶", 120)
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(snap.ID))
		clock.Advance(time.Hour)

		got, err := svc.Get(snap.ID)
		require.NoError(t, err)
		assert.Equal(t, "idle", got.State)
	})

	t.Run("未知标识返回 ErrNotFound", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		assert.ErrorIs(t, svc.Pause("missing"), domain.ErrNotFound)
		assert.ErrorIs(t, svc.Resume("missing"), domain.ErrNotFound)
		assert.ErrorIs(t, svc.Cancel("missing"), domain.ErrNotFound)
		assert.ErrorIs(t, svc.Finish("missing"), domain.ErrNotFound)
		assert.ErrorIs(t, svc.Delete("missing"), domain.ErrNotFound)
		assert.ErrorIs(t, svc.Start("missing", nil), domain.ErrNotFound)
		_, err := svc.Get("missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("删除后列表与仓储同时清空", func(t *testing.T) {
		svc, _, store, _ := newTestService()
		snap, err := svc.Create("泡茶", 120)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(snap.ID))
		assert.Empty(t, svc.List())

		persisted, err := store.FindAll()
		require.NoError(t, err)
		assert.Empty(t, persisted)
	})
}

func TestTimerService_RestoreAll(t *testing.T) {
	t.Run("重启后恢复运行中与暂停的计时器", func(t *testing.T) {
		svc, clock, store, mgr := newTestService()

		end := clock.Now().Add(90 * time.Second)
		require.NoError(t, store.Save(&domain.Snapshot{
			ID:         "timer_running",
			Name:       "泡茶",
			State:      "active",
			Duration:   "0:03:00",
			FinishesAt: end.Format(time.RFC3339Nano),
		}))
		require.NoError(t, store.Save(&domain.Snapshot{
			ID:        "timer_paused",
			Name:      "专注",
			State:     "paused",
			Duration:  "0:25:00",
			Remaining: "0:01:30",
		}))

		require.NoError(t, svc.RestoreAll())
		assert.Equal(t, 2, mgr.Count())

		running, err := svc.Get("timer_running")
		require.NoError(t, err)
		assert.Equal(t, "active", running.State)

		paused, err := svc.Get("timer_paused")
		require.NoError(t, err)
		assert.Equal(t, "paused", paused.State)
		assert.Equal(t, "0:01:30", paused.Remaining)

		// 恢复的运行中计时器在剩余时长耗尽后完成
		clock.Advance(2 * time.Minute)
		running, err = svc.Get("timer_running")
		require.NoError(t, err)
		assert.Equal(t, "idle", running.State)
	})

	t.Run("缺失标识的快照被跳过", func(t *testing.T) {
		svc, _, store, mgr := newTestService()

		require.NoError(t, store.Save(&domain.Snapshot{
			ID:    "",
			State: "paused",
		}))

		require.NoError(t, svc.RestoreAll())
		assert.Zero(t, mgr.Count())
	})

	t.Run("缺失名称时回退为标识", func(t *testing.T) {
		svc, _, store, _ := newTestService()

		require.NoError(t, store.Save(&domain.Snapshot{
			ID:       "timer_anon",
			State:    "paused",
			Duration: "0:05:00",
		}))

		require.NoError(t, svc.RestoreAll())
		snap, err := svc.Get("timer_anon")
		require.NoError(t, err)
		assert.Equal(t, "timer_anon", snap.Name)
	})
}
