// Package bloomfilter 布隆过滤器实现，基于 Murmur3-32
//
// 只支持插入和查询：不支持删除、扩容和序列化。
// 非并发安全，多个 goroutine 共享同一个过滤器时需要调用方自行加锁
package bloomfilter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/tedwangl/go-bloom/pkg/utils/hashx"
)

var ErrInvalidArgument = errors.New("bloomfilter: invalid argument")

// BloomFilter 布隆过滤器
type BloomFilter struct {
	bits             *bitset.BitSet
	numBits          int
	numHashFunctions int
	mode             HashMode
	encoding         encoding.Encoding
	encoder          *encoding.Encoder // nil 表示 UTF-8，直接使用字符串字节
	scratch          []byte
}

// New 根据预期元素数量和目标误判率创建布隆过滤器
// n: 预期元素数量
// p: 误判率，必须在 (0, 1) 之间
func New(n int, p float64, opts ...Option) (*BloomFilter, error) {
	m, k, err := OptimalParams(n, p)
	if err != nil {
		return nil, err
	}
	return NewWithParams(m, k, opts...)
}

// NewWithParams 使用指定的位数和哈希函数个数创建布隆过滤器
func NewWithParams(numBits, numHashFunctions int, opts ...Option) (*BloomFilter, error) {
	if numBits <= 0 {
		return nil, fmt.Errorf("%w: number of bits must be positive, got %d", ErrInvalidArgument, numBits)
	}
	if numBits > MaxBits {
		return nil, fmt.Errorf("%w: number of bits must not exceed %d, got %d", ErrInvalidArgument, MaxBits, numBits)
	}
	if numHashFunctions <= 0 {
		return nil, fmt.Errorf("%w: number of hash functions must be positive, got %d", ErrInvalidArgument, numHashFunctions)
	}

	o := buildOptions(opts)
	if !o.mode.valid() {
		return nil, fmt.Errorf("%w: unsupported hash mode %s", ErrInvalidArgument, o.mode)
	}

	bf := &BloomFilter{
		bits:             bitset.New(uint(numBits)),
		numBits:          numBits,
		numHashFunctions: numHashFunctions,
		mode:             o.mode,
		encoding:         hashx.DefaultEncoding,
	}
	if o.encoding != nil && o.encoding != unicode.UTF8 {
		bf.encoding = o.encoding
		bf.encoder = encoding.ReplaceUnsupported(o.encoding.NewEncoder())
	}

	o.logger.Debug("bloom filter created",
		zap.Int("num_bits", bf.numBits),
		zap.Int("num_hash_functions", bf.numHashFunctions),
		zap.Stringer("hash_mode", bf.mode),
		zap.String("encoding", hashx.EncodingName(bf.encoding)),
	)
	return bf, nil
}

// Insert 将 key 放入过滤器，有任意一位从 0 变为 1 时返回 true
func (b *BloomFilter) Insert(key string) bool {
	changed := false
	b.forEachPosition(key, func(pos uint) bool {
		if !b.bits.Test(pos) {
			b.bits.Set(pos)
			changed = true
		}
		return true
	})
	return changed
}

// MightContain 返回 false 表示 key 一定没有插入过；返回 true 表示可能插入过
func (b *BloomFilter) MightContain(key string) bool {
	found := true
	b.forEachPosition(key, func(pos uint) bool {
		if !b.bits.Test(pos) {
			found = false
			return false
		}
		return true
	})
	return found
}

// forEachPosition 依次计算 key 的 k 个位下标，fn 返回 false 时提前结束
func (b *BloomFilter) forEachPosition(key string, fn func(pos uint) bool) {
	switch b.mode {
	case FastHash:
		data := b.encode(key, -1)
		h := hashx.Murmur32(data)
		for i := 0; i < b.numHashFunctions; i++ {
			if i > 0 {
				h = hashx.FinalMix(h, len(data))
			}
			if !fn(b.position(h)) {
				return
			}
		}
	default:
		for i := 0; i < b.numHashFunctions; i++ {
			if !fn(b.position(hashx.Murmur32(b.encode(key, i)))) {
				return
			}
		}
	}
}

// encode 返回 key（index >= 0 时拼接十进制 index）的编码字节。
// 返回值复用 scratch，下一次调用前有效
func (b *BloomFilter) encode(key string, index int) []byte {
	b.scratch = append(b.scratch[:0], key...)
	if index >= 0 {
		b.scratch = strconv.AppendInt(b.scratch, int64(index), 10)
	}
	if b.encoder == nil {
		return b.scratch
	}

	out, err := b.encoder.Bytes(b.scratch)
	if err != nil {
		// ReplaceUnsupported 之后不应出现；退回原始字节，保证 key 总能映射到确定的位置
		return b.scratch
	}
	return out
}

func (b *BloomFilter) position(h int32) uint {
	return uint(h&0x7fffffff) % uint(b.numBits)
}

// NumBits 位数组长度 M
func (b *BloomFilter) NumBits() int {
	return b.numBits
}

// NumHashFunctions 哈希函数个数 k
func (b *BloomFilter) NumHashFunctions() int {
	return b.numHashFunctions
}

// FastHash 是否使用快速哈希模式
func (b *BloomFilter) FastHash() bool {
	return b.mode == FastHash
}

// HashMode 返回哈希派生策略
func (b *BloomFilter) HashMode() HashMode {
	return b.mode
}

// Encoding 返回 key 使用的文本编码
func (b *BloomFilter) Encoding() encoding.Encoding {
	return b.encoding
}

// BitCount 已置位的位数
func (b *BloomFilter) BitCount() int {
	return int(b.bits.Count())
}

// FillRatio 已置位比例
func (b *BloomFilter) FillRatio() float64 {
	return float64(b.BitCount()) / float64(b.numBits)
}

// EstimatedFalsePositiveRate 插入 insertions 个不同 key 后的理论误判率
func (b *BloomFilter) EstimatedFalsePositiveRate(insertions int) float64 {
	return EstimateFalsePositiveRate(b.numBits, b.numHashFunctions, insertions)
}
