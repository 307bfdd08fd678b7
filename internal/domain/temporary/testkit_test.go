package temporary

import (
	"sort"
	"sync"
	"time"

	"github.com/tempod/backend/internal/domain/events"
)

// fakeTask 模拟时钟中的一个待触发任务
type fakeTask struct {
	at        time.Time
	fn        func()
	every     time.Duration // >0 表示周期任务
	cancelled bool
}

// fakeHandle 模拟任务的取消句柄
type fakeHandle struct {
	s    *fakeScheduler
	task *fakeTask
}

func (h *fakeHandle) Cancel() {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	h.task.cancelled = true
}

// fakeScheduler 手动推进的模拟时钟
// Advance 按时间顺序触发到期任务，触发时不持有内部锁
type fakeScheduler struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*fakeTask

	// scheduleErr 非 nil 时 ScheduleAt/ScheduleEvery 直接失败
	scheduleErr error
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *fakeScheduler) ScheduleAt(at time.Time, fn func()) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduleErr != nil {
		return nil, s.scheduleErr
	}

	task := &fakeTask{at: at, fn: fn}
	s.tasks = append(s.tasks, task)
	return &fakeHandle{s: s, task: task}, nil
}

func (s *fakeScheduler) ScheduleEvery(every time.Duration, fn func()) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduleErr != nil {
		return nil, s.scheduleErr
	}

	task := &fakeTask{at: s.now.Add(every), fn: fn, every: every}
	s.tasks = append(s.tasks, task)
	return &fakeHandle{s: s, task: task}, nil
}

// Advance 将时钟推进 d，依次触发期间到期的任务
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var next *fakeTask
		for _, task := range s.tasks {
			if task.cancelled || task.at.After(target) {
				continue
			}
			if next == nil || task.at.Before(next.at) {
				next = task
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		fn := next.fn
		if next.every > 0 {
			next.at = next.at.Add(next.every)
		} else {
			next.cancelled = true
		}
		s.mu.Unlock()

		// 在不持锁的情况下触发，允许回调重入调度器
		fn()
	}
}

// pendingCount 返回未取消任务数量
func (s *fakeScheduler) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, task := range s.tasks {
		if !task.cancelled {
			count++
		}
	}
	return count
}

// recordingBus 同步记录所有已发布事件的事件总线
type recordingBus struct {
	mu     sync.Mutex
	events []*events.TimerEvent
}

func newRecordingBus() *recordingBus {
	return &recordingBus{}
}

func (b *recordingBus) Subscribe(eventType events.EventType, handler events.Handler) func() {
	return func() {}
}

func (b *recordingBus) SubscribeMultiple(eventTypes []events.EventType, handler events.Handler) func() {
	return func() {}
}

func (b *recordingBus) Publish(event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if te, ok := event.(*events.TimerEvent); ok {
		b.events = append(b.events, te)
	}
}

func (b *recordingBus) Close() {}

// eventsOf 返回指定类型的事件列表
func (b *recordingBus) eventsOf(eventType events.EventType) []*events.TimerEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	var result []*events.TimerEvent
	for _, e := range b.events {
		if e.EventType == eventType {
			result = append(result, e)
		}
	}
	return result
}

// memoryStore 内存快照仓储
type memoryStore struct {
	mu    sync.Mutex
	snaps map[string]*Snapshot
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snaps: make(map[string]*Snapshot)}
}

func (s *memoryStore) Save(snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *snap
	s.snaps[snap.ID] = &copied
	return nil
}

func (s *memoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, id)
	return nil
}

func (s *memoryStore) FindAll() ([]*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.snaps))
	for id := range s.snaps {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]*Snapshot, 0, len(ids))
	for _, id := range ids {
		copied := *s.snaps[id]
		result = append(result, &copied)
	}
	return result, nil
}

func (s *memoryStore) get(id string) (*Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[id]
	return snap, ok
}

// newTestManager 构建使用模拟时钟的管理器
func newTestManager(cfg Config) (*Manager, *fakeScheduler, *memoryStore, *recordingBus) {
	sched := newFakeScheduler()
	store := newMemoryStore()
	bus := newRecordingBus()
	return NewManager(cfg, sched, store, bus), sched, store, bus
}
