package g4

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Frame G4 加速度计帧（定长 ASCII）
// 布局：
// "#G4"[3] | X[3 hex] | Y[3 hex] | Z[3 hex] | checksum[2 hex] | "\r\n"[2]
const (
	FrameLen        = 16
	FramePrefix     = "#G4"
	FrameTerminator = "\r\n"

	offX     = 3
	offY     = 6
	offZ     = 9
	fieldLen = 3
)

var (
	// ErrStructural 帧结构非法（空、长度、前缀、结束符）
	ErrStructural      = errors.New("malformed frame")
	ErrEmptyFrame      = fmt.Errorf("%w: empty input", ErrStructural)
	ErrFrameLength     = fmt.Errorf("%w: invalid length", ErrStructural)
	ErrFramePrefix     = fmt.Errorf("%w: invalid prefix", ErrStructural)
	ErrFrameTerminator = fmt.Errorf("%w: invalid terminator", ErrStructural)

	// ErrPayload 轴数据字段不是合法的3位十六进制
	ErrPayload = errors.New("invalid axis payload")
	// ErrRawRange 原始值超出12位有符号范围
	ErrRawRange = errors.New("raw value out of 12-bit range")
)

// ValidateStructure 校验帧结构，返回具体的失败原因
// 不检查载荷与校验和，只保证后续按固定偏移取值是安全的
// 长度按字符计：含多字节 UTF-8 字符的候选即使恰好 16 字节也视为长度错误，
// 无法解码的单个字节按一个字符计（留给校验和阶段报 ErrDecodeType）
func ValidateStructure(s string) error {
	if s == "" {
		return ErrEmptyFrame
	}
	if len(s) != FrameLen || utf8.RuneCountInString(s) != FrameLen {
		return ErrFrameLength
	}
	if !strings.HasPrefix(s, FramePrefix) {
		return ErrFramePrefix
	}
	if !strings.HasSuffix(s, FrameTerminator) {
		return ErrFrameTerminator
	}
	return nil
}

// IsStructurallyValid 帧结构是否合法（任何一项不满足即整体拒绝）
func IsStructurallyValid(s string) bool {
	return ValidateStructure(s) == nil
}

// BuildFrame 按原始12位有符号值构造一帧（自动计算校验和）
func BuildFrame(x, y, z int) (string, error) {
	var b strings.Builder
	b.Grow(FrameLen)
	b.WriteString(FramePrefix)
	for _, v := range []int{x, y, z} {
		if v < minRaw || v > maxRaw {
			return "", fmt.Errorf("%w: %d", ErrRawRange, v)
		}
		fmt.Fprintf(&b, "%03X", v&0xFFF)
	}
	body := b.String()
	sum, err := computeSpan(body)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%02X%s", body, uint8(sum), FrameTerminator), nil
}
