// Package config 提供应用配置：默认值、YAML 配置文件与环境变量覆盖
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tempod/backend/internal/domain/temporary"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Log       LogConfig       `yaml:"log"`
	Temporal  TemporalConfig  `yaml:"temporal"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// HTTPPort 固定端口，同时用于单例锁
	HTTPPort string `yaml:"http_port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Path 数据库文件路径，留空表示使用默认路径（~/.tempod/tempod.db）
	Path string `yaml:"path"`
}

// WebSocketConfig WebSocket 配置
type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size"`
	WriteBufferSize int `yaml:"write_buffer_size"`
}

// LogConfig 日志配置（配置文件热更新时只有级别会被重新应用）
type LogConfig struct {
	// Level 日志级别：debug, info, warn, error
	Level string `yaml:"level"`
}

// TemporalConfig 临时实体管理配置（单位：秒）
// 管理器实例构建后这些值不再变化
type TemporalConfig struct {
	// MinPersistDurationSeconds 低于此时长的实体不落盘
	MinPersistDurationSeconds int `yaml:"min_persist_duration"`
	// CleanupIntervalSeconds 过期实体扫描周期
	CleanupIntervalSeconds int `yaml:"cleanup_interval"`
	// FinalizedGracePeriodSeconds 终结后保留的宽限期
	FinalizedGracePeriodSeconds int `yaml:"finalized_grace_period"`
	// InactiveMaxAgeSeconds 暂停实体的最大保留时长
	InactiveMaxAgeSeconds int `yaml:"inactive_max_age"`
}

// NewConfig 创建配置（默认值）
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: ":19970",
		},
		Database: DatabaseConfig{
			Path: "",
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Log: LogConfig{
			Level: "info",
		},
		Temporal: TemporalConfig{
			MinPersistDurationSeconds:   int(temporary.DefaultMinPersistDuration.Seconds()),
			CleanupIntervalSeconds:      int(temporary.DefaultCleanupInterval.Seconds()),
			FinalizedGracePeriodSeconds: int(temporary.DefaultFinalizedGracePeriod.Seconds()),
			InactiveMaxAgeSeconds:       int(temporary.DefaultInactiveMaxAge.Seconds()),
		},
	}
}

// Load 加载配置：默认值 + 配置文件（存在时）+ 环境变量覆盖
func Load() *Config {
	cfg := NewConfig()

	if path, err := DefaultConfigPath(); err == nil {
		_ = cfg.MergeFile(path)
	}

	cfg.applyEnv()
	return cfg
}

// MergeFile 读取 YAML 配置文件并合并到当前配置
// 文件不存在时不报错，解析失败时返回错误且当前配置不变
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	merged := *c
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	*c = merged
	return nil
}

// applyEnv 应用环境变量覆盖
func (c *Config) applyEnv() {
	if port := os.Getenv("TEMPOD_HTTP_PORT"); port != "" {
		c.Server.HTTPPort = port
	}
	if path := os.Getenv("TEMPOD_DB_PATH"); path != "" {
		c.Database.Path = path
	}
}

// DataDir 返回 tempod 数据目录（~/.tempod）
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tempod"), nil
}

// DefaultConfigPath 返回默认配置文件路径（~/.tempod/config.yaml）
func DefaultConfigPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewDatabaseConfig 创建数据库配置
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewWebSocketConfig 创建 WebSocket 配置
func NewWebSocketConfig(cfg *Config) *WebSocketConfig {
	return &cfg.WebSocket
}

// NewTemporalConfig 将秒数配置转换为领域配置
// 非正值回退到默认值
func NewTemporalConfig(cfg *Config) temporary.Config {
	result := temporary.DefaultConfig()
	t := cfg.Temporal
	if t.MinPersistDurationSeconds > 0 {
		result.MinPersistDuration = time.Duration(t.MinPersistDurationSeconds) * time.Second
	}
	if t.CleanupIntervalSeconds > 0 {
		result.CleanupInterval = time.Duration(t.CleanupIntervalSeconds) * time.Second
	}
	if t.FinalizedGracePeriodSeconds > 0 {
		result.FinalizedGracePeriod = time.Duration(t.FinalizedGracePeriodSeconds) * time.Second
	}
	if t.InactiveMaxAgeSeconds > 0 {
		result.InactiveMaxAge = time.Duration(t.InactiveMaxAgeSeconds) * time.Second
	}
	return result
}
