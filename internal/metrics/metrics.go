package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 帧处理结果标签
const (
	ResultOK        = "ok"
	ResultMalformed = "malformed"
	ResultChecksum  = "checksum"
	ResultPayload   = "payload"
)

// NewRegistry 创建自定义 Prometheus Registry，并注册常用采集器
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler 返回 Prometheus 指标 HTTP 处理器
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// AppMetrics 解码业务指标
type AppMetrics struct {
	BytesReceived prometheus.Counter
	FramesTotal   *prometheus.CounterVec // labels: result=ok|malformed|checksum|payload
	AlertsTotal   prometheus.Counter
	AxisMax       *prometheus.GaugeVec // labels: axis=x|y|z
	ZAxisOffset   prometheus.Gauge     // 1=开启
}

// NewAppMetrics 注册并返回业务指标
func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	m := &AppMetrics{
		BytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "g4_bytes_received_total",
			Help: "Total frame bytes read from the input source.",
		}),
		FramesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "g4_frames_total",
			Help: "G4 frames processed by result.",
		}, []string{"result"}),
		AlertsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "g4_alerts_total",
			Help: "Frames that raised a lateral acceleration alert.",
		}),
		AxisMax: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "g4_axis_max_g",
			Help: "Running maximum acceleration per axis in g.",
		}, []string{"axis"}),
		ZAxisOffset: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "g4_z_offset_enabled",
			Help: "Whether the 1g Z axis calibration offset is applied.",
		}),
	}
	reg.MustRegister(m.BytesReceived, m.FramesTotal, m.AlertsTotal, m.AxisMax, m.ZAxisOffset)
	return m
}

// SetZAxisOffset 更新Z轴校准状态
func (m *AppMetrics) SetZAxisOffset(enabled bool) {
	if m == nil {
		return
	}
	if enabled {
		m.ZAxisOffset.Set(1)
	} else {
		m.ZAxisOffset.Set(0)
	}
}
