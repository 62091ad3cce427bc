package hashx

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var ErrUnknownEncoding = errors.New("hashx: unknown text encoding")

// DefaultEncoding 未指定编码时使用 UTF-8，保证跨环境哈希一致
var DefaultEncoding encoding.Encoding = unicode.UTF8

// LookupEncoding 按名称解析文本编码，先查 IANA 名称，再查 WHATWG 标签
// 例如：utf-8、UTF-16LE、windows-1251、ISO-8859-1
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultEncoding, nil
	}

	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// EncodingName 返回编码的规范名称，无法识别时返回 "unknown"
func EncodingName(enc encoding.Encoding) string {
	if enc == nil {
		enc = DefaultEncoding
	}
	if name, err := ianaindex.IANA.Name(enc); err == nil {
		return name
	}
	if name, err := htmlindex.Name(enc); err == nil {
		return name
	}
	return "unknown"
}

// Encode 将字符串按 enc 编码为字节；enc 为 nil 或 UTF-8 时直接返回字符串原始字节
func Encode(s string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil || enc == unicode.UTF8 {
		return []byte(s), nil
	}
	b, err := enc.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("hashx: encode: %w", err)
	}
	return []byte(b), nil
}

// Murmur32StringWithEncoding 先按 enc 编码再求哈希。
// 字符串中有 enc 无法表示的字符时返回错误
func Murmur32StringWithEncoding(s string, enc encoding.Encoding) (int32, error) {
	b, err := Encode(s, enc)
	if err != nil {
		return 0, err
	}
	return Murmur32(b), nil
}
