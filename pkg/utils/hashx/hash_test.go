package hashx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// 参考值表：覆盖空输入、1~3 字节尾部、多字节 UTF-8
var referenceHashes = []struct {
	in   string
	want int32
}{
	{"", 0},
	{"a", 1009084850},
	{"ab", -1681926305},
	{"abc", -1277324294},
	{"abcd", 1139631978},
	{"abcde", -392455434},
	{"abcdef", 1635893381},
	{"abcdefg", -2009294074},
	{"abcdefgh", 1239272644},
	{"hello", 613153351},
	{"Hello, world!", -1070186941},
	{"The quick brown fox jumps over the lazy dog", 776992547},
	{"aardvark", -874218051},
	{"zymurgy", 1527955081},
	{"bloom", 1219308610},
	{"filter0", 1776970337},
	{"filter1", -303755905},
	{"0", -764297089},
	{"12345", 329585043},
	{"été", 865297935},
	{"привет", 993413998},
	{"日本語", -1515949417},
	{"\U0001F600", -1095487750},
}

func TestMurmur32_ReferenceTable(t *testing.T) {
	for _, tc := range referenceHashes {
		assert.Equal(t, tc.want, Murmur32String(tc.in), "input %q", tc.in)
		assert.Equal(t, tc.want, Murmur32([]byte(tc.in)), "input %q", tc.in)
	}
}

func TestMurmur32_Stable(t *testing.T) {
	for i := 0; i < 3; i++ {
		require.Equal(t, int32(0), Murmur32(nil))
		require.Equal(t, int32(613153351), Murmur32String("hello"))
	}
}

// 空输入只经过收尾混合，FinalMix 必须与哈希的最后一步一致
func TestFinalMix_MatchesEmptyHash(t *testing.T) {
	assert.Equal(t, Murmur32(nil), FinalMix(0, 0))
	assert.Equal(t, Murmur32([]byte{}), FinalMix(0, 0))
}

func TestMurmur32_DoesNotMutateInput(t *testing.T) {
	data := []byte("abcdefg")
	Murmur32(data)
	assert.Equal(t, []byte("abcdefg"), data)
}

func TestFinalMix(t *testing.T) {
	assert.Equal(t, int32(0), FinalMix(0, 0))
	assert.Equal(t, int32(822048969), FinalMix(613153351, 5))
	assert.Equal(t, int32(1252017343), FinalMix(-1, 3))
	assert.Equal(t, int32(-104067416), FinalMix(0x7fffffff, 0))

	// 空尾部时整段哈希就是对累加器做收尾混合
	assert.Equal(t, Murmur32(nil), FinalMix(0, 0))
}

func TestMurmur32StringWithEncoding(t *testing.T) {
	got, err := Murmur32StringWithEncoding("привет", charmap.Windows1251)
	require.NoError(t, err)
	assert.Equal(t, int32(-1129668151), got)

	got, err = Murmur32StringWithEncoding("été", charmap.ISO8859_1)
	require.NoError(t, err)
	assert.Equal(t, int32(727614503), got)

	got, err = Murmur32StringWithEncoding("abc", unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM))
	require.NoError(t, err)
	assert.Equal(t, int32(1118836419), got)

	got, err = Murmur32StringWithEncoding("abc", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM))
	require.NoError(t, err)
	assert.Equal(t, int32(2053654379), got)

	// nil 与 UTF-8 等价于默认行为
	got, err = Murmur32StringWithEncoding("été", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(865297935), got)

	got, err = Murmur32StringWithEncoding("été", unicode.UTF8)
	require.NoError(t, err)
	assert.Equal(t, int32(865297935), got)
}

func TestMurmur32StringWithEncoding_Unrepresentable(t *testing.T) {
	_, err := Murmur32StringWithEncoding("日本語", charmap.Windows1251)
	require.Error(t, err)
}

func TestLookupEncoding(t *testing.T) {
	enc, err := LookupEncoding("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEncoding, enc)

	enc, err = LookupEncoding("utf-8")
	require.NoError(t, err)
	got, err := Murmur32StringWithEncoding("日本語", enc)
	require.NoError(t, err)
	assert.Equal(t, int32(-1515949417), got)

	enc, err = LookupEncoding("windows-1251")
	require.NoError(t, err)
	got, err = Murmur32StringWithEncoding("привет", enc)
	require.NoError(t, err)
	assert.Equal(t, int32(-1129668151), got)

	_, err = LookupEncoding("no-such-charset")
	require.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestEncodingName(t *testing.T) {
	assert.Equal(t, "UTF-8", EncodingName(nil))
	assert.Equal(t, "windows-1251", EncodingName(charmap.Windows1251))
}

func BenchmarkMurmur32(b *testing.B) {
	data := []byte("The quick brown fox jumps over the lazy dog")
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		Murmur32(data)
	}
}
