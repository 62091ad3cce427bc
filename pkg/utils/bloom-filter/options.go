package bloomfilter

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

type (
	// HashMode 位下标派生策略，构造时确定，之后不可变
	HashMode uint8

	// Option 构造选项
	Option func(*options)

	options struct {
		mode     HashMode
		encoding encoding.Encoding
		logger   *zap.Logger
	}
)

const (
	// StandardHash 第 i 个哈希为 Murmur32(key + "i")，k 次完整哈希，误判率最低
	StandardHash HashMode = iota
	// FastHash 只对 key 完整哈希一次，其余由 FinalMix 链式派生
	FastHash
)

func (m HashMode) String() string {
	switch m {
	case StandardHash:
		return "standard"
	case FastHash:
		return "fast"
	default:
		return fmt.Sprintf("HashMode(%d)", uint8(m))
	}
}

func (m HashMode) valid() bool {
	return m == StandardHash || m == FastHash
}

// ParseHashMode 解析 "standard" / "fast"
func ParseHashMode(s string) (HashMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return StandardHash, nil
	case "fast":
		return FastHash, nil
	default:
		return 0, fmt.Errorf("%w: unknown hash mode %q", ErrInvalidArgument, s)
	}
}

// WithHashMode 指定哈希派生策略
func WithHashMode(mode HashMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithFastHash 等价于 WithHashMode(FastHash)
func WithFastHash() Option {
	return WithHashMode(FastHash)
}

// WithEncoding 指定 key 的文本编码，默认 UTF-8。
// 编码无法表示的字符会被替换，Insert / MightContain 不会因此失败
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// WithLogger 构造完成时以 Debug 级别记录最终参数
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		mode:   StandardHash,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
