// Package temporary 实现短生命周期实体的核心领域模型
// 包含生命周期状态机（Entity）、计时器（Timer）与注册表/清理管理器（Manager）
package temporary

import "time"

// State 实体内部生命周期状态
type State string

const (
	// StateIdle 未启动的静止状态（计时器创建后、首次启动前）
	StateIdle State = "idle"
	// StateActive 运行中
	StateActive State = "active"
	// StatePaused 已暂停
	StatePaused State = "paused"
	// StateFinalized 已终结（取消或完成），终态，仅对内使用
	StateFinalized State = "finalized"
)

// ExternalState 内部状态到对外状态的映射
// finalized 是内部生命周期概念，对外统一呈现为 idle
func ExternalState(s State) string {
	if s == StateFinalized {
		return string(StateIdle)
	}
	return string(s)
}

// 配置默认值（单位：秒）
const (
	// DefaultMinPersistDuration 低于此时长的实体不落盘
	DefaultMinPersistDuration = 60 * time.Second
	// DefaultCleanupInterval 过期实体扫描周期
	DefaultCleanupInterval = 300 * time.Second
	// DefaultFinalizedGracePeriod 终结后保留的宽限期
	DefaultFinalizedGracePeriod = 30 * time.Second
	// DefaultInactiveMaxAge 暂停实体的最大保留时长
	DefaultInactiveMaxAge = 24 * time.Hour
)

// Config 管理器配置
// 每个 Manager 实例构建后不可变
type Config struct {
	// MinPersistDuration 持久化门槛：预期时长短于该值的实体不值得落盘
	MinPersistDuration time.Duration
	// CleanupInterval 周期清理扫描间隔
	CleanupInterval time.Duration
	// FinalizedGracePeriod 终结后到可清理的宽限期
	FinalizedGracePeriod time.Duration
	// InactiveMaxAge 暂停实体自创建起的最大存活时长
	InactiveMaxAge time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MinPersistDuration:   DefaultMinPersistDuration,
		CleanupInterval:      DefaultCleanupInterval,
		FinalizedGracePeriod: DefaultFinalizedGracePeriod,
		InactiveMaxAge:       DefaultInactiveMaxAge,
	}
}

// Snapshot 实体对外发布的属性包
// 每次状态转换后发布，同时作为持久化与重启恢复的载体
// 时间戳使用 RFC3339 字符串，时长使用 H:MM:SS 字符串
// 恢复时时长字段同时接受纯数字秒数（历史快照兼容）
type Snapshot struct {
	// ID 实体标识
	ID string `json:"id"`
	// Name 显示名称
	Name string `json:"name"`
	// State 对外状态（idle/active/paused）
	State string `json:"state"`
	// CreatedAt 创建时间
	CreatedAt string `json:"created_at"`
	// FinalizedAt 终结时间（未终结为空）
	FinalizedAt string `json:"finalized_at,omitempty"`
	// ExpectedDuration 预期时长（秒），nil 表示未知
	ExpectedDuration *float64 `json:"expected_duration,omitempty"`
	// Duration 配置的完整时长
	Duration string `json:"duration"`
	// Remaining 剩余时长
	Remaining string `json:"remaining"`
	// StartTime 本次启动时间（运行中时有值）
	StartTime string `json:"start_time,omitempty"`
	// FinishesAt 预计完成时间（运行中时有值）
	FinishesAt string `json:"finishes_at,omitempty"`
}

// SnapshotStore 快照持久化仓储接口
// 由基础设施层实现（SQLite）
type SnapshotStore interface {
	// Save 保存（upsert）一条快照
	Save(snap *Snapshot) error
	// Delete 删除指定实体的快照，不存在时不报错
	Delete(id string) error
	// FindAll 返回所有已持久化的快照
	FindAll() ([]*Snapshot, error)
}
