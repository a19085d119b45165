package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("ACCEL_CONFIG", "")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "accel-parser", cfg.App.Name)
	assert.Equal(t, "sample_data.txt", cfg.Input.File)
	assert.Equal(t, "sample_out.txt", cfg.Output.Report)
	assert.True(t, cfg.Output.Statistics)
	assert.False(t, cfg.Decoder.ZAxisOffset)
	assert.Equal(t, 115200, cfg.Input.Serial.BaudRate)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.False(t, cfg.HTTP.Enable)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accel.yaml")
	content := `
input:
  file: capture.txt
  replayRate: 50
output:
  report: out.txt
decoder:
  zAxisOffset: true
http:
  enable: true
  addr: ":9100"
api:
  auth:
    enabled: true
    apiKeys: ["k1", "k2"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Run("配置文件", func(t *testing.T) {
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "capture.txt", cfg.Input.File)
		assert.Equal(t, 50.0, cfg.Input.ReplayRate)
		assert.Equal(t, "out.txt", cfg.Output.Report)
		assert.True(t, cfg.Decoder.ZAxisOffset)
		assert.True(t, cfg.HTTP.Enable)
		assert.Equal(t, ":9100", cfg.HTTP.Addr)
		assert.Equal(t, []string{"k1", "k2"}, cfg.API.Auth.APIKeys)
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		t.Setenv("ACCEL_OUTPUT_REPORT", "env_out.txt")
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "env_out.txt", cfg.Output.Report)
	})

	t.Run("命令行参数优先", func(t *testing.T) {
		t.Setenv("ACCEL_OUTPUT_REPORT", "env_out.txt")
		fs := Flags("test")
		require.NoError(t, fs.Parse([]string{"--output", "flag_out.txt", "--z-offset=false", "--serial", "/dev/ttyUSB0"}))
		cfg, err := Load(path, fs)
		require.NoError(t, err)
		assert.Equal(t, "flag_out.txt", cfg.Output.Report)
		assert.False(t, cfg.Decoder.ZAxisOffset)
		assert.Equal(t, "/dev/ttyUSB0", cfg.Input.Serial.Port)
		// 未显式设置的参数不覆盖配置文件
		assert.Equal(t, "capture.txt", cfg.Input.File)
	})
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Input:  InputConfig{File: "in.txt", Serial: SerialConfig{Parity: "none", StopBits: 1}},
			Output: OutputConfig{Report: "out.txt"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"合法", func(c *Config) {}, false},
		{"仅串口输入", func(c *Config) { c.Input.File = ""; c.Input.Serial.Port = "/dev/ttyS0" }, false},
		{"缺少输入", func(c *Config) { c.Input.File = "" }, true},
		{"缺少输出", func(c *Config) { c.Output.Report = "" }, true},
		{"负回放速率", func(c *Config) { c.Input.ReplayRate = -1 }, true},
		{"非法校验位", func(c *Config) { c.Input.Serial.Parity = "mark" }, true},
		{"非法停止位", func(c *Config) { c.Input.Serial.StopBits = 3 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
