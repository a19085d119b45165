package g4

// Statistics 解码会话统计快照（值拷贝，只读）
type Statistics struct {
	TotalMessages           int `json:"total_messages"`
	ValidMessages           int `json:"valid_messages"`
	InvalidChecksumMessages int `json:"invalid_checksum_messages"`
	InvalidPayloadMessages  int `json:"invalid_payload_messages"`
	AlertCount              int `json:"alert_count"`
	AlertThresholdCounter   int `json:"alert_threshold_counter"`

	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
	MaxZ float64 `json:"max_z"`

	ZAxisOffsetEnabled bool `json:"z_axis_offset_enabled"`
}

// Ratio 返回 n 占总帧数的比例，总帧数为0时返回0
func (s Statistics) Ratio(n int) float64 {
	if s.TotalMessages == 0 {
		return 0
	}
	return float64(n) / float64(s.TotalMessages)
}

// MalformedMessages 结构非法被丢弃的帧数
func (s Statistics) MalformedMessages() int {
	return s.TotalMessages - s.ValidMessages - s.InvalidChecksumMessages - s.InvalidPayloadMessages
}
