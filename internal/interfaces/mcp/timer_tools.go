package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	domainTemporary "github.com/tempod/backend/internal/domain/temporary"
)

// DaemonStatusInput 守护进程状态工具输入（空输入）
type DaemonStatusInput struct{}

// DaemonStatusOutput 守护进程状态工具输出
type DaemonStatusOutput struct {
	Status                 string         `json:"status" jsonschema:"运行状态"`
	Version                string         `json:"version" jsonschema:"版本号"`
	TotalTimers            int            `json:"total_timers" jsonschema:"计时器总数"`
	ByState                map[string]int `json:"by_state" jsonschema:"按状态统计"`
	CleanupIntervalSeconds float64        `json:"cleanup_interval_seconds" jsonschema:"清理扫描间隔（秒）"`
	SweepRunning           bool           `json:"sweep_running" jsonschema:"周期清理是否已启动"`
}

// getDaemonStatusTool 获取守护进程状态工具
func (s *MCPServer) getDaemonStatusTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input DaemonStatusInput,
) (*mcp.CallToolResult, DaemonStatusOutput, error) {
	status := s.service.Status()

	output := DaemonStatusOutput{
		Status:                 "running",
		Version:                "v0.1.0",
		TotalTimers:            status.Total,
		ByState:                status.ByState,
		CleanupIntervalSeconds: status.CleanupIntervalSeconds,
		SweepRunning:           status.SweepRunning,
	}

	// 返回 nil result，SDK 会自动处理输出
	return nil, output, nil
}

// CreateTimerInput 创建计时器工具输入
type CreateTimerInput struct {
	Name     string `json:"name" jsonschema:"计时器显示名称"`
	Duration int    `json:"duration" jsonschema:"计时时长（秒）"`
}

// TimerOutput 计时器工具输出
type TimerOutput struct {
	Timer *domainTemporary.Snapshot `json:"timer" jsonschema:"计时器属性包"`
}

// createTimerTool 创建并启动计时器工具
func (s *MCPServer) createTimerTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input CreateTimerInput,
) (*mcp.CallToolResult, TimerOutput, error) {
	if input.Name == "" {
		return nil, TimerOutput{}, fmt.Errorf("name 不能为空")
	}
	if input.Duration <= 0 {
		return nil, TimerOutput{}, fmt.Errorf("duration 必须为正数")
	}

	snap, err := s.service.Create(input.Name, input.Duration)
	if err != nil {
		return nil, TimerOutput{}, fmt.Errorf("创建计时器失败: %w", err)
	}

	return nil, TimerOutput{Timer: snap}, nil
}

// GetTimerInput 查询计时器工具输入
type GetTimerInput struct {
	ID string `json:"id" jsonschema:"计时器 ID"`
}

// getTimerTool 查询单个计时器工具
func (s *MCPServer) getTimerTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetTimerInput,
) (*mcp.CallToolResult, TimerOutput, error) {
	snap, err := s.service.Get(input.ID)
	if err != nil {
		return nil, TimerOutput{}, fmt.Errorf("查询计时器失败: %w", err)
	}

	return nil, TimerOutput{Timer: snap}, nil
}

// ListTimersInput 计时器列表工具输入（空输入）
type ListTimersInput struct{}

// ListTimersOutput 计时器列表工具输出
type ListTimersOutput struct {
	Timers []*domainTemporary.Snapshot `json:"timers" jsonschema:"计时器列表"`
	Total  int                         `json:"total" jsonschema:"计时器总数"`
}

// listTimersTool 计时器列表工具
func (s *MCPServer) listTimersTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ListTimersInput,
) (*mcp.CallToolResult, ListTimersOutput, error) {
	timers := s.service.List()

	return nil, ListTimersOutput{
		Timers: timers,
		Total:  len(timers),
	}, nil
}
