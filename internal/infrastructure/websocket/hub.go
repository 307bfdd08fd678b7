// Package websocket 提供 WebSocket 连接管理与事件广播
package websocket

import (
	"encoding/json"
	"sync"
)

// Hub WebSocket 连接管理中心
// 所有已连接的客户端都会收到计时器生命周期事件的推送
type Hub struct {
	// clients 已注册的连接
	clients map[*Client]bool
	// register 注册连接
	register chan *Client
	// unregister 注销连接
	unregister chan *Client
	// broadcast 广播消息
	broadcast chan []byte
	mu        sync.RWMutex
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run 运行 Hub（需要在 goroutine 中运行）
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			// 广播路径可能摘除失效连接，需要写锁
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// 发送缓冲已满的连接视为失效
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Start 启动 Hub（启动后台 goroutine）
func (h *Hub) Start() {
	go h.Run()
}

// Register 注册连接
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister 注销连接
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast 向所有连接广播消息
func (h *Hub) Broadcast(data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	h.broadcast <- jsonData
	return nil
}

// ClientCount 返回当前连接数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
