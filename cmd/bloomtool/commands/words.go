package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"gopkg.in/cheggaaa/pb.v1"
)

const maxWordSize = 1 << 20

// loadWords 读取以空白字符分隔的词表。progress 非 nil 时按已读字节显示进度条
func loadWords(path string, progress io.Writer) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开词表失败: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if progress != nil {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("读取词表信息失败: %w", err)
		}
		bar := pb.New64(info.Size()).SetUnits(pb.U_BYTES)
		bar.Output = progress
		bar.Prefix("words ")
		bar.Start()
		defer bar.Finish()
		r = bar.NewProxyReader(f)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxWordSize)
	scanner.Split(bufio.ScanWords)

	var words []string
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取词表失败: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("词表 %s 为空", path)
	}
	return words, nil
}
