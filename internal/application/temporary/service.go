// Package temporary 提供计时器的应用服务（操作面）
package temporary

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domain "github.com/tempod/backend/internal/domain/temporary"
	applog "github.com/tempod/backend/internal/infrastructure/log"
)

// TimerService 计时器应用服务
// 封装创建/启动/暂停/恢复/取消/完成/删除等操作，并负责启动时的快照恢复
// 未知标识与不适用的操作按幂等命令语义处理：记录日志，不使进程崩溃
type TimerService struct {
	mgr    *domain.Manager
	store  domain.SnapshotStore
	logger *slog.Logger
}

// NewTimerService 创建计时器服务
func NewTimerService(mgr *domain.Manager, store domain.SnapshotStore) *TimerService {
	return &TimerService{
		mgr:    mgr,
		store:  store,
		logger: applog.NewModuleLogger("temporary", "service"),
	}
}

// Create 创建并启动一个计时器
// 返回新计时器的属性包；调度失败时计时器保持未启动状态但仍然注册
func (s *TimerService) Create(name string, durationSeconds int) (*domain.Snapshot, error) {
	id := "timer_" + uuid.NewString()
	timer := domain.NewTimer(s.mgr, id, name, time.Duration(durationSeconds)*time.Second)
	s.mgr.Register(timer)

	if err := timer.Start(); err != nil {
		s.logger.Error("created timer failed to start",
			"id", id,
			"error", err,
		)
		snap, _ := s.mgr.SnapshotOf(id)
		return snap, err
	}

	s.logger.Info("created and started temporary timer",
		"id", id,
		"name", name,
		"duration_seconds", durationSeconds,
	)
	return s.mgr.SnapshotOf(id)
}

// Start 启动指定计时器
// durationSeconds 非 nil 时先更新时长再启动
func (s *TimerService) Start(id string, durationSeconds *int) error {
	timer, err := s.lookupTimer(id)
	if err != nil {
		return err
	}

	if durationSeconds != nil {
		timer.SetDuration(time.Duration(*durationSeconds) * time.Second)
	}
	return timer.Start()
}

// Pause 暂停指定计时器（非运行状态为空操作）
func (s *TimerService) Pause(id string) error {
	timer, err := s.lookupTimer(id)
	if err != nil {
		return err
	}
	timer.Pause()
	return nil
}

// Resume 恢复指定计时器（非暂停状态为空操作）
func (s *TimerService) Resume(id string) error {
	timer, err := s.lookupTimer(id)
	if err != nil {
		return err
	}
	return timer.Resume()
}

// Cancel 取消指定计时器
func (s *TimerService) Cancel(id string) error {
	timer, err := s.lookupTimer(id)
	if err != nil {
		return err
	}
	timer.Cancel()
	return nil
}

// Finish 手动完成指定计时器
func (s *TimerService) Finish(id string) error {
	timer, err := s.lookupTimer(id)
	if err != nil {
		return err
	}
	timer.Finish()
	return nil
}

// Delete 删除指定计时器（释放调度句柄并清除持久化快照）
func (s *TimerService) Delete(id string) error {
	if err := s.mgr.Remove(id); err != nil {
		s.logger.Warn("failed to delete timer", "id", id, "error", err)
		return err
	}
	return nil
}

// Get 返回指定计时器的属性包
func (s *TimerService) Get(id string) (*domain.Snapshot, error) {
	return s.mgr.SnapshotOf(id)
}

// List 返回全部计时器的属性包
func (s *TimerService) List() []*domain.Snapshot {
	return s.mgr.Snapshots()
}

// Status 返回管理器运行状态
func (s *TimerService) Status() *domain.Status {
	return s.mgr.Status()
}

// RestoreAll 启动时从持久化仓储恢复所有存活的计时器
// 每个实体恢复一次：先恢复快照，再注册到管理器
// 单个快照损坏不影响其余实体的恢复
func (s *TimerService) RestoreAll() error {
	snaps, err := s.store.FindAll()
	if err != nil {
		return fmt.Errorf("load persisted snapshots: %w", err)
	}

	for _, snap := range snaps {
		if snap.ID == "" {
			s.logger.Warn("skipping persisted snapshot without id")
			continue
		}
		name := snap.Name
		if name == "" {
			name = snap.ID
		}

		timer := domain.NewTimer(s.mgr, snap.ID, name, domain.DefaultMinPersistDuration)
		timer.Restore(snap)
		s.mgr.Register(timer)
	}

	if len(snaps) > 0 {
		s.logger.Info("restored temporary timers", "count", len(snaps))
	}
	return nil
}

// lookupTimer 按标识查找计时器
func (s *TimerService) lookupTimer(id string) (*domain.Timer, error) {
	entity, ok := s.mgr.Get(id)
	if !ok {
		s.logger.Warn("timer not found", "id", id)
		return nil, fmt.Errorf("timer %s: %w", id, domain.ErrNotFound)
	}

	timer, ok := entity.(*domain.Timer)
	if !ok {
		s.logger.Warn("entity is not a timer", "id", id)
		return nil, fmt.Errorf("timer %s: %w", id, domain.ErrNotFound)
	}
	return timer, nil
}
