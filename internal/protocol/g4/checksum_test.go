package g4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeChecksum(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Checksum
	}{
		{"示例帧", sampleFrame, 168},
		{"空输入", "", 0},
		{"短于尾部长度", "#G4", 0},
		{"仅尾部", "A8\r\n", 0},
		{"单字符", "#A8\r\n", '#'},
		{"8位回绕", "\x7f\x7f\x7fXX\r\n", Checksum((0x7f * 3) & 0xff)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeChecksum(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestComputeChecksum_IgnoresTrailer(t *testing.T) {
	// 校验和字段与结束符不参与计算
	a, err := ComputeChecksum("#G4001FFF03DA8\r\n")
	require.NoError(t, err)
	b, err := ComputeChecksum("#G4001FFF03D00zz")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeChecksum_DecodeType(t *testing.T) {
	_, err := ComputeChecksum("#G4\xff01FFF03DA8\r\n")
	assert.ErrorIs(t, err, ErrDecodeType)

	// 非 ASCII 只出现在尾部时不影响计算
	_, err = ComputeChecksum("#G4001FFF03D\xff\xff\r\n")
	assert.NoError(t, err)
}

func TestIsChecksumValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"校验和错误", "#G4001AFF03DA8\r\n", false},
		{"示例帧", sampleFrame, true},
		{"小写十六进制", "#G4001FFF03Da8\r\n", true},
		{"字段非十六进制", "#G4001FFF03DZ8\r\n", false},
		{"字段带符号", "#G4001FFF03D+8\r\n", false},
		{"输入过短", "A8\r", false},
		{"空输入", "", false},
		{"非ASCII", "#G4\xff01FFF03DA8\r\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsChecksumValid(tt.input))
		})
	}
}

func TestVerifyChecksum_Errors(t *testing.T) {
	err := VerifyChecksum("#G4001AFF03DA8\r\n")
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	assert.ErrorIs(t, err, ErrChecksum)

	err = VerifyChecksum("#G4001FFF03DZ8\r\n")
	assert.ErrorIs(t, err, ErrChecksumField)
	assert.ErrorIs(t, err, ErrChecksum)

	err = VerifyChecksum("#G4\xff01FFF03DA8\r\n")
	assert.ErrorIs(t, err, ErrDecodeType)
	assert.NotErrorIs(t, err, ErrChecksum)
}

func TestChecksumRoundTrip(t *testing.T) {
	raws := [][3]int{{0, 0, 0}, {1, -1, 61}, {2047, -2048, 13}, {-700, 300, 64}}
	for _, r := range raws {
		f, err := BuildFrame(r[0], r[1], r[2])
		require.NoError(t, err)
		assert.True(t, IsChecksumValid(f), "%q", f)
	}
}
