package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppConfig 应用基础信息
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// SerialConfig 串口输入配置（port 为空表示不使用串口）
type SerialConfig struct {
	Port        string        `mapstructure:"port"`
	BaudRate    int           `mapstructure:"baudRate"`
	DataBits    int           `mapstructure:"dataBits"`
	Parity      string        `mapstructure:"parity"` // none|odd|even
	StopBits    int           `mapstructure:"stopBits"`
	ReadTimeout time.Duration `mapstructure:"readTimeout"`
}

// InputConfig 帧输入配置
type InputConfig struct {
	File   string       `mapstructure:"file"`
	Serial SerialConfig `mapstructure:"serial"`
	// ReplayRate 文件回放速率（帧/秒），0 表示不限速
	ReplayRate  float64 `mapstructure:"replayRate"`
	ReplayBurst int     `mapstructure:"replayBurst"`
}

// OutputConfig 报告输出配置
type OutputConfig struct {
	Report     string `mapstructure:"report"`
	Statistics bool   `mapstructure:"statistics"`
}

// DecoderConfig 解码器配置
type DecoderConfig struct {
	ZAxisOffset bool `mapstructure:"zAxisOffset"`
}

// HTTPConfig 运维 HTTP 服务配置
type HTTPConfig struct {
	Enable       bool          `mapstructure:"enable"`
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

// APIAuthConfig API 认证配置
type APIAuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	APIKeys []string `mapstructure:"apiKeys"`
}

// APIConfig 运维 API 配置
type APIConfig struct {
	Auth APIAuthConfig `mapstructure:"auth"`
}

// LumberjackConfig 日志滚动（lumberjack）配置
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig 日志级别与输出配置
type LoggingConfig struct {
	Level  string           `mapstructure:"level"`
	Format string           `mapstructure:"format"`
	File   LumberjackConfig `mapstructure:"file"`
}

// MetricsConfig Prometheus 指标暴露配置
type MetricsConfig struct {
	Enable bool   `mapstructure:"enable"`
	Path   string `mapstructure:"path"`
}

// Config 顶层配置结构
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Input   InputConfig   `mapstructure:"input"`
	Output  OutputConfig  `mapstructure:"output"`
	Decoder DecoderConfig `mapstructure:"decoder"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// flagKeys 命令行参数 → 配置键
var flagKeys = map[string]string{
	"input":       "input.file",
	"output":      "output.report",
	"serial":      "input.serial.port",
	"baud":        "input.serial.baudRate",
	"z-offset":    "decoder.zAxisOffset",
	"replay-rate": "input.replayRate",
	"http":        "http.enable",
	"http-addr":   "http.addr",
	"log-level":   "logging.level",
}

// Flags 返回与配置键绑定的命令行参数集合
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "config file path (yaml/toml/json)")
	fs.String("input", "", "input file with \\r\\n delimited frames")
	fs.String("output", "", "output report file")
	fs.String("serial", "", "serial port to read frames from (overrides --input)")
	fs.Int("baud", 0, "serial baud rate")
	fs.Bool("z-offset", false, "subtract 1g from the Z axis")
	fs.Float64("replay-rate", 0, "file replay rate in frames per second (0 = unlimited)")
	fs.Bool("http", false, "enable the ops HTTP server")
	fs.String("http-addr", "", "ops HTTP listen address")
	fs.String("log-level", "", "log level (debug|info|warn|error)")
	return fs
}

// Load 从 YAML/TOML/JSON 文件、环境变量与命令行参数加载配置。
// 优先级：命令行参数 > 环境变量（ACCEL_ 前缀）> 配置文件 > 默认值。
// 若 path 为空，则尝试从环境变量 ACCEL_CONFIG 读取；否则查找 ./configs/accel.yaml。
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if path == "" {
		path = os.Getenv("ACCEL_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("accel")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	// 环境变量覆盖：前缀 ACCEL_，并将点号替换为下划线
	v.SetEnvPrefix("ACCEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// 允许缺少配置文件，依赖默认值、环境变量与命令行参数
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "accel-parser")
	v.SetDefault("app.env", "dev")

	v.SetDefault("input.file", "sample_data.txt")
	v.SetDefault("input.replayRate", 0)
	v.SetDefault("input.replayBurst", 1)
	v.SetDefault("input.serial.port", "")
	v.SetDefault("input.serial.baudRate", 115200)
	v.SetDefault("input.serial.dataBits", 8)
	v.SetDefault("input.serial.parity", "none")
	v.SetDefault("input.serial.stopBits", 1)
	v.SetDefault("input.serial.readTimeout", "200ms")

	v.SetDefault("output.report", "sample_out.txt")
	v.SetDefault("output.statistics", true)

	v.SetDefault("decoder.zAxisOffset", false)

	v.SetDefault("http.enable", false)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.readTimeout", "5s")
	v.SetDefault("http.writeTimeout", "10s")

	v.SetDefault("api.auth.enabled", false)
	v.SetDefault("api.auth.apiKeys", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "logs/accel-parser.log")
	v.SetDefault("logging.file.maxSize", 100)
	v.SetDefault("logging.file.maxBackups", 7)
	v.SetDefault("logging.file.maxAge", 30)
	v.SetDefault("logging.file.compress", true)

	v.SetDefault("metrics.enable", true)
	v.SetDefault("metrics.path", "/metrics")
}

// validate 校验必填项与取值范围
func (c *Config) validate() error {
	if c.Input.File == "" && c.Input.Serial.Port == "" {
		return errors.New("input.file or input.serial.port is required")
	}
	if c.Output.Report == "" {
		return errors.New("output.report is required")
	}
	if c.Input.ReplayRate < 0 {
		return fmt.Errorf("input.replayRate must be >= 0, got %v", c.Input.ReplayRate)
	}
	switch strings.ToLower(c.Input.Serial.Parity) {
	case "", "none", "odd", "even":
	default:
		return fmt.Errorf("input.serial.parity must be none|odd|even, got %q", c.Input.Serial.Parity)
	}
	if s := c.Input.Serial.StopBits; s != 0 && s != 1 && s != 2 {
		return fmt.Errorf("input.serial.stopBits must be 1 or 2, got %d", s)
	}
	return nil
}
