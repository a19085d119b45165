package g4

import (
	"errors"
	"strconv"

	"go.uber.org/zap"
)

const (
	// AlertThreshold Y轴加速度告警阈值（g），严格大于才计数
	AlertThreshold = 0.2
	// AlertTrigger 连续超阈值帧数达到该值即告警
	AlertTrigger = 3
	// ZAxisOffset Z轴校准偏移（g），固定值
	ZAxisOffset = 1.0
)

// Decoder 单数据流的有状态解码器
// 状态只属于一个会话，调用方必须保证串行调用（不做并发保护）
type Decoder struct {
	log *zap.Logger

	total           int
	valid           int
	invalidChecksum int
	invalidPayload  int

	maxX, maxY, maxZ float64

	zOffset     bool
	alertStreak int
	alerts      int
}

// Option 解码器选项
type Option func(*Decoder)

// WithLogger 设置日志器
func WithLogger(l *zap.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.log = l
		}
	}
}

// WithZAxisOffset 设置Z轴校准初始状态
func WithZAxisOffset(enabled bool) Option {
	return func(d *Decoder) { d.zOffset = enabled }
}

// NewDecoder 创建解码器，统计与告警状态从零开始
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{log: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ParseLine 处理一帧候选数据
// 顺序：计数 → 结构校验 → 校验和 → 载荷解码 → 校准 → 最大值 → 告警
// 任一步失败只丢弃本帧并返回错误，不影响后续帧
func (d *Decoder) ParseLine(line string) (Reading, error) {
	d.total++

	if err := ValidateStructure(line); err != nil {
		d.log.Debug("invalid message", zap.String("frame", strconv.Quote(line)), zap.Error(err))
		return Reading{}, err
	}

	if err := VerifyChecksum(line); err != nil {
		d.invalidChecksum++
		if errors.Is(err, ErrDecodeType) {
			d.log.Error("invalid string for checksum computation", zap.String("frame", strconv.Quote(line)))
		} else {
			d.log.Warn("checksum not valid", zap.String("frame", strconv.Quote(line)), zap.Error(err))
		}
		return Reading{}, err
	}

	rx, ry, rz, err := decodeAxes(line)
	if err != nil {
		d.invalidPayload++
		d.log.Warn("invalid axis payload", zap.String("frame", strconv.Quote(line)), zap.Error(err))
		return Reading{}, err
	}
	d.valid++

	r := Reading{
		X:    float64(rx) / GScale,
		Y:    float64(ry) / GScale,
		Z:    float64(rz) / GScale,
		RawX: int16(rx),
		RawY: int16(ry),
		RawZ: int16(rz),
	}
	if d.zOffset {
		r.Z -= ZAxisOffset
	}

	if r.X > d.maxX {
		d.maxX = r.X
	}
	if r.Y > d.maxY {
		d.maxY = r.Y
	}
	if r.Z > d.maxZ {
		d.maxZ = r.Z
	}

	if r.Y > AlertThreshold {
		d.alertStreak++
	} else {
		d.alertStreak = 0
	}
	// 达到阈值后不清零：之后每个连续超阈值帧都会再次告警
	if d.alertStreak >= AlertTrigger {
		r.Alert = true
		d.alerts++
	}

	d.log.Info(r.String())
	return r, nil
}

// ToggleZAxisOffset 切换Z轴校准，只影响之后解码的帧，返回切换后的状态
func (d *Decoder) ToggleZAxisOffset() bool {
	d.zOffset = !d.zOffset
	if d.zOffset {
		d.log.Debug("z-axis offset enabled")
	} else {
		d.log.Debug("z-axis offset disabled")
	}
	return d.zOffset
}

// ZAxisOffsetEnabled Z轴校准是否开启
func (d *Decoder) ZAxisOffsetEnabled() bool {
	return d.zOffset
}

// Stats 返回当前统计快照
func (d *Decoder) Stats() Statistics {
	return Statistics{
		TotalMessages:           d.total,
		ValidMessages:           d.valid,
		InvalidChecksumMessages: d.invalidChecksum,
		InvalidPayloadMessages:  d.invalidPayload,
		AlertCount:              d.alerts,
		AlertThresholdCounter:   d.alertStreak,
		MaxX:                    d.maxX,
		MaxY:                    d.maxY,
		MaxZ:                    d.maxZ,
		ZAxisOffsetEnabled:      d.zOffset,
	}
}
