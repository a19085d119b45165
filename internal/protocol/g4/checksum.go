package g4

import (
	"errors"
	"fmt"
	"strconv"
)

// Checksum 8位累加校验和
type Checksum uint8

// checksumTrailer 校验和字段(2) + 结束符(2)，不参与计算
const checksumTrailer = 4

var (
	// ErrChecksum 校验和校验失败（字段非法或不匹配）
	ErrChecksum         = errors.New("checksum invalid")
	ErrChecksumField    = fmt.Errorf("%w: field is not 2 hex digits", ErrChecksum)
	ErrChecksumMismatch = fmt.Errorf("%w: mismatch", ErrChecksum)

	// ErrDecodeType 计算范围内含非 ASCII 字符，无法按字符编码求和
	ErrDecodeType = errors.New("checksum input is not ASCII text")
)

// ComputeChecksum 计算帧校验和
// 范围：从 '#'（含）到校验和字段之前，即 [0, len-4)
// 每次累加都按 8 位溢出（uint8 自然回绕）
func ComputeChecksum(s string) (Checksum, error) {
	if len(s) < checksumTrailer {
		return 0, nil
	}
	return computeSpan(s[:len(s)-checksumTrailer])
}

func computeSpan(span string) (Checksum, error) {
	var sum Checksum
	for i := 0; i < len(span); i++ {
		c := span[i]
		if c >= 0x80 {
			return 0, ErrDecodeType
		}
		sum += Checksum(c)
	}
	return sum, nil
}

// VerifyChecksum 校验帧内嵌的校验和
// 字段位置：[len-4, len-2)，帧内即偏移 12~13
func VerifyChecksum(s string) error {
	if len(s) < checksumTrailer {
		return ErrChecksumField
	}
	field := s[len(s)-checksumTrailer : len(s)-checksumTrailer+2]
	if !isHex(field) {
		return ErrChecksumField
	}
	want, err := strconv.ParseUint(field, 16, 8)
	if err != nil {
		return ErrChecksumField
	}
	got, err := ComputeChecksum(s)
	if err != nil {
		return err
	}
	if Checksum(want) != got {
		return ErrChecksumMismatch
	}
	return nil
}

// IsChecksumValid 内嵌校验和是否与计算值一致
// 字段解析失败、输入过短、非 ASCII 均视为校验失败
func IsChecksumValid(s string) bool {
	return VerifyChecksum(s) == nil
}

// isHex 严格十六进制判断（不接受符号、空白、0x 前缀）
func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
