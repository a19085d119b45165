package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/accel-parser/internal/api/middleware"
	"github.com/taoyao-code/accel-parser/internal/protocol/g4"
	"github.com/taoyao-code/accel-parser/internal/session"
)

// SessionHandler 解码会话API处理器
type SessionHandler struct {
	ctrl   session.Controller
	logger *zap.Logger
}

// NewSessionHandler 创建会话API处理器
func NewSessionHandler(ctrl session.Controller, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{ctrl: ctrl, logger: logger}
}

// StatsResponse 统计快照响应
type StatsResponse struct {
	Session string        `json:"session"`
	Running bool          `json:"running"`
	Stats   g4.Statistics `json:"stats"`
	Percent PercentBlock  `json:"percent"`
}

// PercentBlock 各计数占总帧数的百分比
type PercentBlock struct {
	Valid           float64 `json:"valid"`
	InvalidChecksum float64 `json:"invalid_checksum"`
	Alerts          float64 `json:"alerts"`
}

// GetStats 查询当前统计
func (h *SessionHandler) GetStats(c *gin.Context) {
	st := h.ctrl.Stats()
	c.JSON(http.StatusOK, StatsResponse{
		Session: h.ctrl.ID(),
		Running: h.ctrl.Running(),
		Stats:   st,
		Percent: PercentBlock{
			Valid:           st.Ratio(st.ValidMessages) * 100,
			InvalidChecksum: st.Ratio(st.InvalidChecksumMessages) * 100,
			Alerts:          st.Ratio(st.AlertCount) * 100,
		},
	})
}

// ToggleZAxisOffset 切换Z轴校准，从下一帧开始生效
func (h *SessionHandler) ToggleZAxisOffset(c *gin.Context) {
	enabled := h.ctrl.ToggleZAxisOffset()
	h.logger.Info("z-axis offset toggled via api",
		zap.Bool("enabled", enabled),
		zap.String("api_key_prefix", c.GetString(middleware.APIKeyPrefixKey)),
		zap.String("remote_addr", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{
		"session":               h.ctrl.ID(),
		"z_axis_offset_enabled": enabled,
	})
}
