package app

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	cfgpkg "github.com/taoyao-code/accel-parser/internal/config"
)

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SourceName 输入源的短名称：串口取设备名，文件取去扩展名的文件名
func SourceName(cfg cfgpkg.InputConfig) string {
	name := cfg.File
	if cfg.Serial.Port != "" {
		name = cfg.Serial.Port
	}
	base := filepath.Base(filepath.ToSlash(name))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Trim(unsafeIDChars.ReplaceAllString(base, "-"), "-")
	if base == "" || base == "." {
		return "input"
	}
	return base
}

// GenerateSessionID 生成解码会话ID
// 优先使用环境变量ACCEL_SESSION_ID，否则为 accel-{hostname}-{source}-{uuid8}
func GenerateSessionID(source string) string {
	if id := os.Getenv("ACCEL_SESSION_ID"); id != "" {
		return id
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	shortUUID := uuid.New().String()[:8]
	return fmt.Sprintf("accel-%s-%s-%s", hostname, source, shortUUID)
}
