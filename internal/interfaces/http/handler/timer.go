package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appTemporary "github.com/tempod/backend/internal/application/temporary"
	domainTemporary "github.com/tempod/backend/internal/domain/temporary"
	"github.com/tempod/backend/internal/interfaces/http/response"
)

// TimerHandler 计时器 API 处理器
type TimerHandler struct {
	service *appTemporary.TimerService
}

// NewTimerHandler 创建计时器处理器
func NewTimerHandler(service *appTemporary.TimerService) *TimerHandler {
	return &TimerHandler{
		service: service,
	}
}

// CreateTimerRequest 创建计时器请求
type CreateTimerRequest struct {
	// Name 计时器显示名称
	Name string `json:"name" binding:"required"`
	// Duration 计时时长（秒）
	Duration int `json:"duration" binding:"required,min=1"`
}

// StartTimerRequest 启动计时器请求
type StartTimerRequest struct {
	// Duration 新的计时时长（秒），省略时沿用当前时长
	Duration *int `json:"duration,omitempty" binding:"omitempty,min=1"`
}

// Create 创建并启动计时器
// @Summary 创建计时器
// @Description 创建一个新的临时计时器并立即启动
// @Tags 计时器
// @Accept json
// @Produce json
// @Param request body CreateTimerRequest true "创建请求"
// @Success 200 {object} response.Response{data=temporary.Snapshot}
// @Router /api/v1/timers [post]
func (h *TimerHandler) Create(c *gin.Context) {
	var req CreateTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	snap, err := h.service.Create(req.Name, req.Duration)
	if err != nil {
		response.ErrorWithDetail(c, http.StatusInternalServerError, 500, "failed to start timer", err.Error())
		return
	}
	response.Success(c, snap)
}

// List 列出所有计时器
// @Summary 计时器列表
// @Tags 计时器
// @Produce json
// @Success 200 {object} response.Response{data=[]temporary.Snapshot}
// @Router /api/v1/timers [get]
func (h *TimerHandler) List(c *gin.Context) {
	response.Success(c, h.service.List())
}

// Get 查询单个计时器
// @Summary 计时器详情
// @Tags 计时器
// @Produce json
// @Param id path string true "计时器 ID"
// @Success 200 {object} response.Response{data=temporary.Snapshot}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/timers/{id} [get]
func (h *TimerHandler) Get(c *gin.Context) {
	snap, err := h.service.Get(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, snap)
}

// Start 启动计时器
// @Summary 启动计时器
// @Description 启动指定计时器，可同时更新时长；已终结的计时器不会重新启动
// @Tags 计时器
// @Accept json
// @Produce json
// @Param id path string true "计时器 ID"
// @Param request body StartTimerRequest false "启动请求"
// @Success 200 {object} response.Response{data=temporary.Snapshot}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/timers/{id}/start [post]
func (h *TimerHandler) Start(c *gin.Context) {
	var req StartTimerRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, 400, err.Error())
			return
		}
	}

	id := c.Param("id")
	if err := h.service.Start(id, req.Duration); err != nil {
		h.renderError(c, err)
		return
	}
	h.renderSnapshot(c, id)
}

// Pause 暂停计时器
// @Summary 暂停计时器
// @Description 暂停运行中的计时器；非运行状态为空操作
// @Tags 计时器
// @Produce json
// @Param id path string true "计时器 ID"
// @Success 200 {object} response.Response{data=temporary.Snapshot}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/timers/{id}/pause [post]
func (h *TimerHandler) Pause(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Pause(id); err != nil {
		h.renderError(c, err)
		return
	}
	h.renderSnapshot(c, id)
}

// Resume 恢复计时器
// @Summary 恢复计时器
// @Description 恢复已暂停的计时器；非暂停状态为空操作
// @Tags 计时器
// @Produce json
// @Param id path string true "计时器 ID"
// @Success 200 {object} response.Response{data=temporary.Snapshot}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/timers/{id}/resume [post]
func (h *TimerHandler) Resume(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Resume(id); err != nil {
		h.renderError(c, err)
		return
	}
	h.renderSnapshot(c, id)
}

// Cancel 取消计时器
// @Summary 取消计时器
// @Description 用户主动放弃计时，进入终结状态，不发出完成事件
// @Tags 计时器
// @Produce json
// @Param id path string true "计时器 ID"
// @Success 200 {object} response.Response{data=temporary.Snapshot}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/timers/{id}/cancel [post]
func (h *TimerHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Cancel(id); err != nil {
		h.renderError(c, err)
		return
	}
	h.renderSnapshot(c, id)
}

// Finish 手动完成计时器
// @Summary 完成计时器
// @Description 立即完成计时器并发出完成事件（每个计时器恰好一次）
// @Tags 计时器
// @Produce json
// @Param id path string true "计时器 ID"
// @Success 200 {object} response.Response{data=temporary.Snapshot}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/timers/{id}/finish [post]
func (h *TimerHandler) Finish(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Finish(id); err != nil {
		h.renderError(c, err)
		return
	}
	h.renderSnapshot(c, id)
}

// Delete 删除计时器
// @Summary 删除计时器
// @Tags 计时器
// @Produce json
// @Param id path string true "计时器 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/timers/{id} [delete]
func (h *TimerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, nil)
}

// renderSnapshot 返回指定计时器的最新属性包
func (h *TimerHandler) renderSnapshot(c *gin.Context, id string) {
	snap, err := h.service.Get(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, snap)
}

// renderError 将服务层错误映射为 HTTP 响应
func (h *TimerHandler) renderError(c *gin.Context, err error) {
	if errors.Is(err, domainTemporary.ErrNotFound) {
		response.Error(c, http.StatusNotFound, 404, err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, 500, err.Error())
}
