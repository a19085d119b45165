package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/taoyao-code/accel-parser/internal/metrics"
	"github.com/taoyao-code/accel-parser/internal/protocol/g4"
)

// Session 一次解码会话：独占一个 Decoder，按到达顺序串行处理帧
// 外部控制（切换校准、读取统计）与帧处理共用同一把锁，只会在两帧之间生效
type Session struct {
	id      string
	log     *zap.Logger
	metrics *metrics.AppMetrics

	mu  sync.Mutex
	dec *g4.Decoder

	running atomic.Bool
}

// New 创建会话
func New(id string, dec *g4.Decoder, log *zap.Logger, m *metrics.AppMetrics) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if dec == nil {
		dec = g4.NewDecoder(g4.WithLogger(log))
	}
	s := &Session{id: id, dec: dec, log: log, metrics: m}
	m.SetZAxisOffset(dec.ZAxisOffsetEnabled())
	return s
}

// ID 会话ID
func (s *Session) ID() string { return s.id }

// Running 解码循环是否在运行
func (s *Session) Running() bool { return s.running.Load() }

// Run 在当前 goroutine 上运行解码循环，直到输入耗尽、ctx 取消或输出失败
// 单帧错误只计数，不会结束会话
func (s *Session) Run(ctx context.Context, src LineSource, sink Sink) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("session already running")
	}
	defer s.running.Store(false)

	s.log.Info("session started", zap.String("session", s.id))
	defer func() {
		st := s.Stats()
		s.log.Info("session finished",
			zap.String("session", s.id),
			zap.Int("total", st.TotalMessages),
			zap.Int("valid", st.ValidMessages),
			zap.Int("invalid_checksum", st.InvalidChecksumMessages),
			zap.Int("alerts", st.AlertCount))
	}()

	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("read frame: %w", err)
		}

		r, perr := s.parse(line)
		if perr != nil {
			continue
		}
		if sink != nil {
			if err := sink.WriteReading(r); err != nil {
				return fmt.Errorf("write reading: %w", err)
			}
		}
	}
}

// parse 在锁内处理一帧并更新指标
func (s *Session) parse(line string) (g4.Reading, error) {
	s.mu.Lock()
	r, err := s.dec.ParseLine(line)
	st := s.dec.Stats()
	s.mu.Unlock()

	s.observe(len(line), r, err, st)
	return r, err
}

func (s *Session) observe(n int, r g4.Reading, err error, st g4.Statistics) {
	m := s.metrics
	if m == nil {
		return
	}
	m.BytesReceived.Add(float64(n))
	switch {
	case err == nil:
		m.FramesTotal.WithLabelValues(metrics.ResultOK).Inc()
		if r.Alert {
			m.AlertsTotal.Inc()
		}
		m.AxisMax.WithLabelValues("x").Set(st.MaxX)
		m.AxisMax.WithLabelValues("y").Set(st.MaxY)
		m.AxisMax.WithLabelValues("z").Set(st.MaxZ)
	case errors.Is(err, g4.ErrStructural):
		m.FramesTotal.WithLabelValues(metrics.ResultMalformed).Inc()
	case errors.Is(err, g4.ErrPayload):
		m.FramesTotal.WithLabelValues(metrics.ResultPayload).Inc()
	default:
		// 校验和不匹配、字段非法、非 ASCII
		m.FramesTotal.WithLabelValues(metrics.ResultChecksum).Inc()
	}
}

// ToggleZAxisOffset 切换Z轴校准，从下一帧开始生效
func (s *Session) ToggleZAxisOffset() bool {
	s.mu.Lock()
	enabled := s.dec.ToggleZAxisOffset()
	s.mu.Unlock()

	s.metrics.SetZAxisOffset(enabled)
	s.log.Info("z-axis offset toggled", zap.String("session", s.id), zap.Bool("enabled", enabled))
	return enabled
}

// Stats 当前统计快照
func (s *Session) Stats() g4.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.Stats()
}
