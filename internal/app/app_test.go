package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/accel-parser/internal/config"
	"github.com/taoyao-code/accel-parser/internal/source"
)

func TestGenerateSessionID(t *testing.T) {
	t.Run("环境变量优先", func(t *testing.T) {
		t.Setenv("ACCEL_SESSION_ID", "fixed-id")
		assert.Equal(t, "fixed-id", GenerateSessionID("ttyUSB0"))
	})

	t.Run("自动生成", func(t *testing.T) {
		t.Setenv("ACCEL_SESSION_ID", "")
		a, b := GenerateSessionID("sample_data"), GenerateSessionID("sample_data")
		assert.True(t, strings.HasPrefix(a, "accel-"))
		assert.Contains(t, a, "-sample_data-")
		assert.NotEqual(t, a, b)
	})
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		name string
		cfg  cfgpkg.InputConfig
		want string
	}{
		{"文件", cfgpkg.InputConfig{File: "data/sample_data.txt"}, "sample_data"},
		{"串口优先", cfgpkg.InputConfig{File: "a.txt", Serial: cfgpkg.SerialConfig{Port: "/dev/ttyUSB0"}}, "ttyUSB0"},
		{"Windows串口", cfgpkg.InputConfig{Serial: cfgpkg.SerialConfig{Port: "COM3"}}, "COM3"},
		{"非法字符替换", cfgpkg.InputConfig{File: "run 1 (bench).log"}, "run-1-bench"},
		{"空", cfgpkg.InputConfig{}, "input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SourceName(tt.cfg))
		})
	}
}

func TestNewSession(t *testing.T) {
	_, m := NewMetrics()
	s := NewSession("s-1", cfgpkg.DecoderConfig{ZAxisOffset: true}, zap.NewNop(), m)
	assert.Equal(t, "s-1", s.ID())
	assert.True(t, s.Stats().ZAxisOffsetEnabled)
}

func TestOpenSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("#G4001FFF03DA8\r\n"), 0o644))

	r, err := OpenSource(context.Background(), cfgpkg.InputConfig{File: path, ReplayRate: 1000, ReplayBurst: 1}, nil, zap.NewNop())
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, path, r.Name())
	line, err := r.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "#G4001FFF03DA8\r\n", line)
}

func TestOpenSource_MissingFile(t *testing.T) {
	_, err := OpenSource(context.Background(), cfgpkg.InputConfig{File: filepath.Join(t.TempDir(), "nope")}, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenSource_SerialPreferred(t *testing.T) {
	var opened string
	open := func(name string, _ *serial.Mode, _ cfgpkg.SerialConfig) (source.Port, error) {
		opened = name
		return nil, os.ErrNotExist
	}
	cfg := cfgpkg.InputConfig{File: "ignored.txt", Serial: cfgpkg.SerialConfig{Port: "/dev/ttyUSB0", BaudRate: 115200}}

	_, err := OpenSource(context.Background(), cfg, open, zap.NewNop())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "/dev/ttyUSB0", opened)
}
