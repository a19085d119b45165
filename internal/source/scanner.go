// Package source 帧输入源：按 \r\n 切分的行读取器，文件/串口两种来源，可选回放限速
package source

import (
	"bufio"
	"bytes"
	"context"
	"io"
)

// MaxLineLen 单个帧候选的最大长度，超出部分按噪声处理
const MaxLineLen = 64 * 1024

var terminator = []byte("\r\n")

// ScanFrames 返回 bufio.SplitFunc：按 \r\n 切分并保留结束符（帧布局包含结束符）
// 单独的 \n 不视为分隔；流末尾不带结束符的残片也作为最后一行返回。
// 超过 MaxLineLen 仍无结束符时，已缓冲部分作为一行返回，其余直到下一个 \r\n 丢弃，
// 读取不会因 bufio.ErrTooLong 中断
func ScanFrames() bufio.SplitFunc {
	discarding := false
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		i := bytes.Index(data, terminator)
		if discarding {
			if i >= 0 {
				discarding = false
				return i + len(terminator), nil, nil
			}
			// 末尾的 \r 可能是下一次读取中结束符的前半
			n := len(data)
			if !atEOF && data[n-1] == '\r' {
				n--
			}
			return n, nil, nil
		}
		if i >= 0 {
			return i + len(terminator), data[:i+len(terminator)], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		if len(data) >= MaxLineLen {
			n := len(data)
			if data[n-1] == '\r' {
				n--
			}
			discarding = true
			return n, data[:n], nil
		}
		return 0, nil, nil
	}
}

// LineReader 逐行读取帧候选
type LineReader struct {
	sc     *bufio.Scanner
	closer io.Closer
	pacer  *Pacer
	name   string
}

// NewLineReader 包装任意 io.Reader；若 r 实现 io.Closer，Close 时一并关闭
func NewLineReader(name string, r io.Reader) *LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxLineLen)
	sc.Split(ScanFrames())
	lr := &LineReader{sc: sc, name: name}
	if c, ok := r.(io.Closer); ok {
		lr.closer = c
	}
	return lr
}

// WithPacer 设置回放限速器（nil 表示不限速）
func (r *LineReader) WithPacer(p *Pacer) *LineReader {
	r.pacer = p
	return r
}

// Name 输入源名称（文件路径或串口名）
func (r *LineReader) Name() string { return r.name }

// Next 返回下一行（含结束符），读完返回 io.EOF
func (r *LineReader) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := r.pacer.Wait(ctx); err != nil {
		return "", err
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			// 取消时底层读取会以各种错误返回，统一报告为 ctx 错误
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

// Close 关闭底层输入
func (r *LineReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
