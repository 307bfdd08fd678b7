package temporary

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tempod/backend/internal/domain/events"
	applog "github.com/tempod/backend/internal/infrastructure/log"
)

// ErrNotFound 操作引用了注册表中不存在的实体
// 仅记录日志并向调用方报告，不会导致进程退出
var ErrNotFound = errors.New("temporary entity not found")

// Manager 短生命周期实体管理器
// 持有实体注册表并周期性清理过期实体
// 注册表与所有实体状态由同一把互斥锁保护：
// 同一实体的生命周期转换之间、转换与清理扫描之间不会交错
type Manager struct {
	cfg       Config
	scheduler Scheduler
	store     SnapshotStore
	bus       events.EventBus
	logger    *slog.Logger

	mu       sync.Mutex
	entities map[string]Temporary
	sweep    Handle
}

// Status 管理器运行状态（用于状态接口与调试）
type Status struct {
	// Total 注册实体总数
	Total int `json:"total"`
	// ByState 各内部状态的实体数量
	ByState map[string]int `json:"by_state"`
	// CleanupIntervalSeconds 清理扫描间隔
	CleanupIntervalSeconds float64 `json:"cleanup_interval_seconds"`
	// FinalizedGraceSeconds 终结后宽限期
	FinalizedGraceSeconds float64 `json:"finalized_grace_seconds"`
	// InactiveMaxAgeSeconds 暂停实体最大存活时长
	InactiveMaxAgeSeconds float64 `json:"inactive_max_age_seconds"`
	// SweepRunning 周期清理是否已启动
	SweepRunning bool `json:"sweep_running"`
}

// NewManager 创建实体管理器
// store 与 bus 允许为 nil（纯内存、无通知的运行方式，主要用于测试）
func NewManager(cfg Config, scheduler Scheduler, store SnapshotStore, bus events.EventBus) *Manager {
	return &Manager{
		cfg:       cfg,
		scheduler: scheduler,
		store:     store,
		bus:       bus,
		logger:    applog.NewModuleLogger("temporary", "manager"),
		entities:  make(map[string]Temporary),
	}
}

// Start 启动周期清理任务，幂等
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sweep != nil {
		return nil
	}

	handle, err := m.scheduler.ScheduleEvery(m.cfg.CleanupInterval, m.runSweep)
	if err != nil {
		return fmt.Errorf("schedule cleanup task: %w", err)
	}
	m.sweep = handle

	m.logger.Info("temporary entity cleanup task started",
		"interval", m.cfg.CleanupInterval.String(),
	)
	return nil
}

// Stop 停止周期清理任务，未启动时为空操作
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sweep != nil {
		m.sweep.Cancel()
		m.sweep = nil
		m.logger.Info("temporary entity cleanup task stopped")
	}
}

// Register 注册实体
// 同一标识同一时刻至多注册一个实体
func (m *Manager) Register(e Temporary) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entities[e.ID()] = e
	if !e.ShouldPersist() {
		m.logger.Debug("entity will not persist to disk", "id", e.ID())
	}
	m.logger.Debug("registered temporary entity", "id", e.ID())
}

// Unregister 将实体从注册表摘除
// 纯映射变更，不触碰实体状态与持久化快照；实体不存在时为空操作
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unregisterLocked(id)
}

// unregisterLocked 摘除注册表项，要求已持有锁
func (m *Manager) unregisterLocked(id string) {
	delete(m.entities, id)
	m.logger.Debug("unregistered temporary entity", "id", id)
}

// Get 按标识查找实体
func (m *Manager) Get(id string) (Temporary, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entities[id]
	return e, ok
}

// Count 返回注册实体数量
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entities)
}

// Remove 移除实体：释放其调度句柄、删除持久化快照、从注册表摘除
// 实体不存在时返回 ErrNotFound（记录日志，调用方决定是否向外暴露）
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(id)
}

// SnapshotOf 返回指定实体的当前属性包
func (m *Manager) SnapshotOf(id string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e.Snapshot(), nil
}

// Snapshots 返回所有注册实体的当前属性包
func (m *Manager) Snapshots() []*Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*Snapshot, 0, len(m.entities))
	for _, e := range m.entities {
		result = append(result, e.Snapshot())
	}
	return result
}

// Status 返回管理器运行状态
func (m *Manager) Status() *Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	byState := make(map[string]int)
	for _, e := range m.entities {
		byState[string(e.State())]++
	}
	return &Status{
		Total:                  len(m.entities),
		ByState:                byState,
		CleanupIntervalSeconds: m.cfg.CleanupInterval.Seconds(),
		FinalizedGraceSeconds:  m.cfg.FinalizedGracePeriod.Seconds(),
		InactiveMaxAgeSeconds:  m.cfg.InactiveMaxAge.Seconds(),
		SweepRunning:           m.sweep != nil,
	}
}

// runSweep 周期清理任务
// 先快照符合条件的标识集合，扫描结束后再逐个移除，避免边遍历边改表
func (m *Manager) runSweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.scheduler.Now()

	var toRemove []string
	for id, e := range m.entities {
		if e.ShouldCleanup(now) {
			toRemove = append(toRemove, id)
		}
	}

	for _, id := range toRemove {
		_ = m.removeLocked(id)
	}

	if len(toRemove) > 0 {
		m.logger.Info("cleaned up temporary entities", "count", len(toRemove))
	}
}

// removeLocked 移除实体，要求已持有锁
func (m *Manager) removeLocked(id string) error {
	e, ok := m.entities[id]
	if !ok {
		m.logger.Warn("entity not found for removal", "id", id)
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}

	e.teardown()

	if m.store != nil {
		if err := m.store.Delete(id); err != nil {
			m.logger.Error("failed to delete persisted snapshot",
				"id", id,
				"error", err,
			)
		}
	}

	m.unregisterLocked(id)
	m.logger.Debug("removed temporary entity", "id", id)
	return nil
}

// publishStateLocked 状态转换后发布实体的最新属性包
// 由 ShouldPersist 决定是否落盘；存储失败仅记录日志
func (m *Manager) publishStateLocked(e Temporary) {
	if m.store == nil || !e.ShouldPersist() {
		return
	}
	if err := m.store.Save(e.Snapshot()); err != nil {
		m.logger.Error("failed to persist entity snapshot",
			"id", e.ID(),
			"error", err,
		)
	}
}

// emitLocked 发布计时器生命周期事件
// 恢复快照期间的调用方不会走到这里（事件抑制在 Timer 内完成）
func (m *Manager) emitLocked(eventType events.EventType, t *Timer, oldDuration string) {
	if m.bus == nil {
		return
	}
	snap := t.Snapshot()
	m.bus.Publish(&events.TimerEvent{
		EventType:   eventType,
		TimerID:     snap.ID,
		Name:        snap.Name,
		State:       snap.State,
		Duration:    snap.Duration,
		Remaining:   snap.Remaining,
		FinishesAt:  snap.FinishesAt,
		OldDuration: oldDuration,
		EventTime:   m.scheduler.Now(),
	})
}
