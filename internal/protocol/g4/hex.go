package g4

import (
	"fmt"
	"strconv"
)

const (
	minRaw = -2048 // 0x800
	maxRaw = 2047  // 0x7FF

	// GScale 原始值到 g 的换算除数
	GScale = 64.0
)

// HexToSigned12 将3位十六进制串按12位补码解析为有符号整数
// "000"→0, "7FF"→2047, "800"→-2048, "FFF"→-1
func HexToSigned12(field string) (int, error) {
	if len(field) != fieldLen || !isHex(field) {
		return 0, fmt.Errorf("%w: %q", ErrPayload, field)
	}
	u, err := strconv.ParseUint(field, 16, 12)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrPayload, field)
	}
	v := int(u)
	if v > maxRaw {
		// 最高位为1，负数
		return v - 4096, nil
	}
	return v, nil
}

// decodeAxes 从已通过结构校验的帧中取出三轴原始值
func decodeAxes(frame string) (x, y, z int, err error) {
	if x, err = HexToSigned12(frame[offX : offX+fieldLen]); err != nil {
		return 0, 0, 0, err
	}
	if y, err = HexToSigned12(frame[offY : offY+fieldLen]); err != nil {
		return 0, 0, 0, err
	}
	if z, err = HexToSigned12(frame[offZ : offZ+fieldLen]); err != nil {
		return 0, 0, 0, err
	}
	return x, y, z, nil
}
