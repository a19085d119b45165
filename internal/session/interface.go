package session

import (
	"context"

	"github.com/taoyao-code/accel-parser/internal/protocol/g4"
)

// LineSource 帧候选来源，读完返回 io.EOF
type LineSource interface {
	Next(ctx context.Context) (string, error)
}

// Sink 解码成功的读数输出
type Sink interface {
	WriteReading(r g4.Reading) error
}

// Controller 会话运行期间的外部控制接口（供运维 API 使用）
type Controller interface {
	// ID 会话ID
	ID() string

	// Running 解码循环是否在运行
	Running() bool

	// ToggleZAxisOffset 切换Z轴校准，返回切换后的状态
	ToggleZAxisOffset() bool

	// Stats 当前统计快照
	Stats() g4.Statistics
}
