package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.bug.st/serial"

	cfgpkg "github.com/taoyao-code/accel-parser/internal/config"
)

// Port 串口最小接口，便于无硬件测试
type Port interface {
	io.Reader
	io.Closer
}

// PortOpener 串口打开函数
type PortOpener func(name string, mode *serial.Mode, cfg cfgpkg.SerialConfig) (Port, error)

// OpenPort 使用 go.bug.st/serial 打开真实串口
func OpenPort(name string, mode *serial.Mode, cfg cfgpkg.SerialConfig) (Port, error) {
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	if cfg.ReadTimeout > 0 {
		if err := p.SetReadTimeout(cfg.ReadTimeout); err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("set read timeout: %w", err)
		}
	}
	return p, nil
}

// SerialMode 由配置生成串口参数
func SerialMode(cfg cfgpkg.SerialConfig) (*serial.Mode, error) {
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	if mode.BaudRate <= 0 {
		mode.BaudRate = 115200
	}
	if mode.DataBits == 0 {
		mode.DataBits = 8
	}
	switch strings.ToLower(cfg.Parity) {
	case "", "none":
	case "odd":
		mode.Parity = serial.OddParity
	case "even":
		mode.Parity = serial.EvenParity
	default:
		return nil, fmt.Errorf("unsupported parity %q", cfg.Parity)
	}
	switch cfg.StopBits {
	case 0, 1:
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("unsupported stop bits %d", cfg.StopBits)
	}
	return mode, nil
}

// OpenSerial 打开串口并返回行读取器；ctx 取消后读取返回
func OpenSerial(ctx context.Context, cfg cfgpkg.SerialConfig, open PortOpener) (*LineReader, error) {
	if open == nil {
		open = OpenPort
	}
	mode, err := SerialMode(cfg)
	if err != nil {
		return nil, err
	}
	p, err := open(cfg.Port, mode, cfg)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Port, err)
	}
	return NewLineReader(cfg.Port, &portReader{port: p, done: ctx.Done()}), nil
}

// portReader 串口读超时返回 (0, nil)，这里循环重读以免 bufio.Scanner 判定无进展
type portReader struct {
	port Port
	done <-chan struct{}
}

func (r *portReader) Read(p []byte) (int, error) {
	for {
		n, err := r.port.Read(p)
		if n > 0 || err != nil {
			return n, err
		}
		select {
		case <-r.done:
			return 0, context.Canceled
		default:
		}
	}
}

func (r *portReader) Close() error {
	return r.port.Close()
}
