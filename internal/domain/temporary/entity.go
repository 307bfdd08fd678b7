package temporary

import (
	"log/slog"
	"time"

	applog "github.com/tempod/backend/internal/infrastructure/log"
)

// Temporary 受管短生命周期实体的统一接口
// 管理器通过此接口驱动清理与持久化，不感知具体实体种类
type Temporary interface {
	// ID 返回稳定的注册表键
	ID() string
	// Name 返回显示名称
	Name() string
	// State 返回内部生命周期状态
	State() State
	// ShouldPersist 返回实体是否值得落盘
	ShouldPersist() bool
	// ShouldCleanup 返回实体在 now 时刻是否应被清理
	ShouldCleanup(now time.Time) bool
	// Snapshot 构造当前的对外属性包
	Snapshot() *Snapshot

	// teardown 实体被移除前释放持有的调度句柄
	// 仅由管理器在持锁状态下调用
	teardown()
}

// Entity 短生命周期实体的基础实现
// 承载生命周期状态机与老化判定，具体实体（Timer）内嵌此结构
// 所有状态变更方法都要求调用方已持有管理器互斥锁
type Entity struct {
	mgr    *Manager
	logger *slog.Logger

	id   string
	name string

	createdAt   time.Time
	finalizedAt *time.Time
	// expectedDuration 预期时长，nil 表示未知（未知时出于安全考虑总是持久化）
	expectedDuration *time.Duration

	state State
}

// newEntity 创建基础实体，初始状态为 Active
func newEntity(mgr *Manager, id, name string, expected *time.Duration) Entity {
	return Entity{
		mgr:              mgr,
		logger:           applog.NewModuleLogger("temporary", "entity"),
		id:               id,
		name:             name,
		createdAt:        mgr.scheduler.Now(),
		expectedDuration: expected,
		state:            StateActive,
	}
}

// ID 返回实体标识
func (e *Entity) ID() string {
	return e.id
}

// Name 返回显示名称
func (e *Entity) Name() string {
	return e.name
}

// State 返回内部状态
func (e *Entity) State() State {
	return e.state
}

// CreatedAt 返回创建时间
func (e *Entity) CreatedAt() time.Time {
	return e.createdAt
}

// FinalizedAt 返回终结时间，未终结时为 nil
func (e *Entity) FinalizedAt() *time.Time {
	return e.finalizedAt
}

// IsActive 是否运行中
func (e *Entity) IsActive() bool {
	return e.state == StateActive
}

// IsPaused 是否已暂停
func (e *Entity) IsPaused() bool {
	return e.state == StatePaused
}

// IsFinalized 是否已终结
func (e *Entity) IsFinalized() bool {
	return e.state == StateFinalized
}

// ShouldPersist 判断实体是否值得落盘
// 预期时长未知时总是持久化（宁可多存不丢数据）
func (e *Entity) ShouldPersist() bool {
	if e.expectedDuration == nil {
		return true
	}
	return *e.expectedDuration >= e.mgr.cfg.MinPersistDuration
}

// ShouldCleanup 判断实体在 now 时刻是否应被清理
// 终结实体：超过宽限期后清理
// 暂停实体：自创建起超过最大存活时长后清理
// 运行中实体：永不清理，由自身的到期回调终结
func (e *Entity) ShouldCleanup(now time.Time) bool {
	if e.state == StateFinalized && e.finalizedAt != nil {
		return now.Sub(*e.finalizedAt) >= e.mgr.cfg.FinalizedGracePeriod
	}
	if e.state == StatePaused {
		return now.Sub(e.createdAt) >= e.mgr.cfg.InactiveMaxAge
	}
	return false
}

// markActive 进入运行状态
func (e *Entity) markActive() {
	e.state = StateActive
}

// markPaused 进入暂停状态
func (e *Entity) markPaused() {
	e.state = StatePaused
}

// markFinalized 进入终结状态并记录终结时间
// 终态：此后不再发生任何状态转换
func (e *Entity) markFinalized() {
	e.state = StateFinalized
	now := e.mgr.scheduler.Now()
	e.finalizedAt = &now
}

// baseSnapshot 构造基础属性包
func (e *Entity) baseSnapshot() *Snapshot {
	snap := &Snapshot{
		ID:        e.id,
		Name:      e.name,
		State:     ExternalState(e.state),
		CreatedAt: e.createdAt.Format(time.RFC3339Nano),
	}
	if e.finalizedAt != nil {
		snap.FinalizedAt = e.finalizedAt.Format(time.RFC3339Nano)
	}
	if e.expectedDuration != nil {
		seconds := e.expectedDuration.Seconds()
		snap.ExpectedDuration = &seconds
	}
	return snap
}

// restoreBase 从持久化快照恢复基础字段
// 字段缺失或格式错误时回退到默认值，不中断整体恢复
func (e *Entity) restoreBase(snap *Snapshot) {
	if t, ok := parseTime(snap.CreatedAt); ok {
		e.createdAt = t
	}
	if t, ok := parseTime(snap.FinalizedAt); ok {
		e.finalizedAt = &t
	}
	if snap.ExpectedDuration != nil && *snap.ExpectedDuration >= 0 {
		d := time.Duration(*snap.ExpectedDuration * float64(time.Second))
		e.expectedDuration = &d
	}

	// 对外状态映射回内部状态
	// idle 快照含终结时间时恢复为终结态，否则视为从未启动
	// 无法识别的状态按 active 处理（宽松失败）
	switch snap.State {
	case string(StateIdle):
		if e.finalizedAt != nil {
			e.state = StateFinalized
		} else {
			e.state = StateIdle
		}
	case string(StatePaused):
		e.state = StatePaused
	case string(StateActive):
		e.state = StateActive
	default:
		e.logger.Warn("unrecognized persisted state, falling back to active",
			"id", e.id,
			"state", snap.State,
		)
		e.state = StateActive
	}
}
