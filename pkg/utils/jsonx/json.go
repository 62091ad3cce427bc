// Package jsonx JSON 编解码，底层为 sonic
package jsonx

import (
	"io"

	"github.com/bytedance/sonic"
)

var (
	Marshal   = sonic.Marshal
	Unmarshal = sonic.Unmarshal
)

// WriteLine 把 v 编码为单行 JSON 写入 w，末尾带换行（JSON Lines）
func WriteLine(w io.Writer, v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
