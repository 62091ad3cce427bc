// Package hashx Murmur3 x86 32 位哈希（seed 为 0），布隆过滤器的哈希原语
package hashx

import (
	"github.com/spaolacci/murmur3"
)

const (
	mix1 uint32 = 0x85ebca6b
	mix2 uint32 = 0xc2b2ae35
)

// Murmur32 returns the Murmur3 x86_32 hash of data as a signed 32-bit value.
// 任意字节序列（包括空切片）都是合法输入
func Murmur32(data []byte) int32 {
	return int32(murmur3.Sum32(data))
}

// Murmur32String 对字符串的 UTF-8 字节求哈希
func Murmur32String(s string) int32 {
	return Murmur32([]byte(s))
}

// FinalMix 单独执行 Murmur3 的收尾混合：先异或 length，再做 avalanche。
// murmur3 包不导出这一步，布隆过滤器的快速模式用它从上一个哈希值派生下一个
func FinalMix(priorHash int32, length int) int32 {
	return int32(fmix(uint32(priorHash), uint32(length)))
}

func fmix(h, length uint32) uint32 {
	h ^= length
	h ^= h >> 16
	h *= mix1
	h ^= h >> 13
	h *= mix2
	h ^= h >> 16
	return h
}
