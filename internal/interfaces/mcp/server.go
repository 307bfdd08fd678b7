package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appTemporary "github.com/tempod/backend/internal/application/temporary"
)

// MCPServer MCP 服务器
type MCPServer struct {
	server  *mcp.Server
	handler http.Handler
	service *appTemporary.TimerService
}

// NewServer 创建 MCP 服务器
func NewServer(service *appTemporary.TimerService) *MCPServer {
	// 创建 MCP 服务器实例
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "tempod-daemon",
			Version: "0.1.0",
		},
		nil, // 使用默认能力
	)

	// 创建服务器实例（用于闭包捕获依赖）
	mcpServer := &MCPServer{
		server:  server,
		service: service,
	}

	// 注册工具：get_daemon_status
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_daemon_status",
		Description: "Get the status information of the tempod daemon, including running status, version number, entity counts by state, and cleanup scheduler configuration. No parameters required.",
	}, mcpServer.getDaemonStatusTool)

	// 注册工具：create_timer
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_timer",
		Description: "Create and start a new timer. Parameters: name (string, required) - display name; duration (int, required) - duration in seconds. Returns: the full timer snapshot including id, state, remaining time in H:MM:SS format, and finish time.",
	}, mcpServer.createTimerTool)

	// 注册工具：get_timer
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_timer",
		Description: "Get a single timer by id. Parameters: id (string, required) - timer id, e.g., timer_5f3a.... Returns: the timer snapshot; finalized timers are reported with state \"idle\".",
	}, mcpServer.getTimerTool)

	// 注册工具：list_timers
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_timers",
		Description: "List all registered timers. No parameters required. Returns: timers array and total count.",
	}, mcpServer.listTimersTool)

	// 创建 SSE Handler
	handler := mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			// 每个请求返回同一个服务器实例
			return server
		},
		nil, // SSEOptions，使用默认值
	)

	mcpServer.handler = handler
	return mcpServer
}

// GetHandler 获取 HTTP Handler（用于集成到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}

// Start 启动服务器（HTTP/SSE 模式）
// 注意：MCP 服务器通过 HTTP Handler 提供服务，不需要单独启动
func (s *MCPServer) Start() error {
	return nil
}

// Stop 停止服务器
func (s *MCPServer) Stop() error {
	// HTTP/SSE 模式下，由 HTTP 服务器统一管理生命周期
	return nil
}
