package handler

import (
	"github.com/gin-gonic/gin"

	appTemporary "github.com/tempod/backend/internal/application/temporary"
	"github.com/tempod/backend/internal/interfaces/http/response"
)

// TemporalHandler 临时实体运行状态处理器
type TemporalHandler struct {
	service *appTemporary.TimerService
}

// NewTemporalHandler 创建运行状态处理器
func NewTemporalHandler(service *appTemporary.TimerService) *TemporalHandler {
	return &TemporalHandler{
		service: service,
	}
}

// Status 查询管理器运行状态
// @Summary 运行状态
// @Description 返回实体总数、按状态分布以及清理调度配置
// @Tags 临时实体
// @Produce json
// @Success 200 {object} response.Response{data=temporary.Status}
// @Router /api/v1/temporal/status [get]
func (h *TemporalHandler) Status(c *gin.Context) {
	response.Success(c, h.service.Status())
}
