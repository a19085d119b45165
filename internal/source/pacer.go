package source

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer 基于 Token Bucket 的回放限速器，用于按传感器速率回放采集文件
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer 创建限速器
// perSec: 每秒帧数，<=0 返回 nil（不限速）
// burst: 突发容量，<=0 时取 1
func NewPacer(perSec float64, burst int) *Pacer {
	if perSec <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Limit(perSec), burst)}
}

// Wait 阻塞直到允许读取下一帧（nil 接收者直接放行）
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
