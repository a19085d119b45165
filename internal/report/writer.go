// Package report 平面文本报告：时间戳表头 + 每帧读数，以及会话统计输出
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/taoyao-code/accel-parser/internal/protocol/g4"
)

// Writer 读数报告写入器
type Writer struct {
	bw     *bufio.Writer
	closer io.Closer
	lines  int
}

// NewWriter 写入表头（UTC ISO-8601 时间戳）并返回写入器
func NewWriter(w io.Writer, now time.Time) (*Writer, error) {
	rw := &Writer{bw: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		rw.closer = c
	}
	if _, err := fmt.Fprintln(rw.bw, now.UTC().Format(time.RFC3339Nano)); err != nil {
		return nil, fmt.Errorf("write report header: %w", err)
	}
	return rw, nil
}

// Create 创建（覆盖）报告文件
func Create(path string, now time.Time) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report %s: %w", path, err)
	}
	w, err := NewWriter(f, now)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

// WriteReading 写入一条读数
func (w *Writer) WriteReading(r g4.Reading) error {
	if _, err := fmt.Fprintln(w.bw, r.String()); err != nil {
		return fmt.Errorf("write report line: %w", err)
	}
	w.lines++
	return nil
}

// Lines 已写入的读数行数
func (w *Writer) Lines() int { return w.lines }

// Close 刷新缓冲并关闭底层文件
func (w *Writer) Close() error {
	err := w.bw.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
