package g4

import "fmt"

// AlertMarker 触发告警时追加在读数后的标记
const AlertMarker = " [ALERT]"

// Reading 单帧解码结果（已应用Z轴校准）
type Reading struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Alert bool    `json:"alert"`

	RawX int16 `json:"raw_x"`
	RawY int16 `json:"raw_y"`
	RawZ int16 `json:"raw_z"`
}

// String 输出格式：X=<v>, Y=<v>, Z=<v>（两位小数），告警时追加标记
func (r Reading) String() string {
	s := fmt.Sprintf("X=%.2f, Y=%.2f, Z=%.2f", r.X, r.Y, r.Z)
	if r.Alert {
		s += AlertMarker
	}
	return s
}
