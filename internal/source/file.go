package source

import (
	"fmt"
	"os"
)

// OpenFile 打开帧文件
func OpenFile(path string) (*LineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	return NewLineReader(path, f), nil
}
