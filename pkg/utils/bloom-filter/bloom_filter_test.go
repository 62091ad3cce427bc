package bloomfilter

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestBloomFilter_Basics(t *testing.T) {
	valid := []struct {
		name string
		fn   func() (*BloomFilter, error)
	}{
		{"estimates", func() (*BloomFilter, error) { return New(1, 0.03) }},
		{"estimates fast", func() (*BloomFilter, error) { return New(1, 0.03, WithFastHash()) }},
		{"params", func() (*BloomFilter, error) { return NewWithParams(1, 1) }},
		{"params fast", func() (*BloomFilter, error) { return NewWithParams(1, 2, WithFastHash()) }},
		{"tiny probability", func() (*BloomFilter, error) { return New(1, 0.999) }},
	}
	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			bf, err := tc.fn()
			require.NoError(t, err)
			require.NotNil(t, bf)
			assert.GreaterOrEqual(t, bf.NumBits(), 1)
			assert.GreaterOrEqual(t, bf.NumHashFunctions(), 1)
		})
	}

	invalid := []struct {
		name string
		fn   func() (*BloomFilter, error)
	}{
		{"zero insertions", func() (*BloomFilter, error) { return New(0, 0.03) }},
		{"negative insertions", func() (*BloomFilter, error) { return New(-1, 0.03) }},
		{"zero probability", func() (*BloomFilter, error) { return New(1, 0.0) }},
		{"probability one", func() (*BloomFilter, error) { return New(1, 1.0) }},
		{"probability above one", func() (*BloomFilter, error) { return New(1, 2.0) }},
		{"negative probability", func() (*BloomFilter, error) { return New(1, -0.1) }},
		{"NaN probability", func() (*BloomFilter, error) { return New(1, math.NaN()) }},
		{"too many bits", func() (*BloomFilter, error) { return New(1<<30, 0.001) }},
		{"zero bits", func() (*BloomFilter, error) { return NewWithParams(0, 2) }},
		{"negative bits", func() (*BloomFilter, error) { return NewWithParams(-1, 1) }},
		{"zero hash functions", func() (*BloomFilter, error) { return NewWithParams(1, 0) }},
		{"negative hash functions", func() (*BloomFilter, error) { return NewWithParams(1, -1) }},
		{"unknown mode", func() (*BloomFilter, error) { return NewWithParams(8, 1, WithHashMode(HashMode(7))) }},
		{"bits above limit", func() (*BloomFilter, error) {
			n := MaxBits
			n++
			return NewWithParams(n, 1)
		}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			bf, err := tc.fn()
			require.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, bf)
		})
	}
}

func TestBloomFilter_Accessors(t *testing.T) {
	bf, err := NewWithParams(1, 2, WithFastHash())
	require.NoError(t, err)
	assert.Equal(t, 1, bf.NumBits())
	assert.Equal(t, 2, bf.NumHashFunctions())
	assert.True(t, bf.FastHash())
	assert.Equal(t, FastHash, bf.HashMode())
	assert.Equal(t, unicode.UTF8, bf.Encoding())

	bf, err = New(1000, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 9586, bf.NumBits())
	assert.Equal(t, 7, bf.NumHashFunctions())
	assert.False(t, bf.FastHash())
	assert.Equal(t, StandardHash, bf.HashMode())
}

func TestBloomFilter_InsertIdempotent(t *testing.T) {
	for _, mode := range []HashMode{StandardHash, FastHash} {
		t.Run(mode.String(), func(t *testing.T) {
			bf, err := New(100, 0.01, WithHashMode(mode))
			require.NoError(t, err)

			require.False(t, bf.MightContain("hello"))
			require.True(t, bf.Insert("hello"))
			require.True(t, bf.MightContain("hello"))
			require.False(t, bf.Insert("hello"))
			require.True(t, bf.MightContain("hello"))
		})
	}
}

func TestBloomFilter_SingleBit(t *testing.T) {
	bf, err := NewWithParams(1, 2, WithFastHash())
	require.NoError(t, err)

	assert.False(t, bf.MightContain("anything"))
	assert.True(t, bf.Insert("x"))
	// 只有一位，之后任何 key 都不会再改变位数组
	assert.False(t, bf.Insert("y"))
	assert.True(t, bf.MightContain("anything"))
	assert.Equal(t, 1, bf.BitCount())
	assert.Equal(t, 1.0, bf.FillRatio())
}

func TestBloomFilter_Positions(t *testing.T) {
	tests := []struct {
		key  string
		mode HashMode
		want []uint
	}{
		{"hello", StandardHash, []uint{677, 613, 691, 891}},
		{"hello", FastHash, []uint{351, 969, 535, 131}},
		{"bloom", StandardHash, []uint{887, 778, 108, 819}},
		{"bloom", FastHash, []uint{610, 202, 800, 585}},
		{"", StandardHash, []uint{559, 291, 71, 300}},
		{"", FastHash, []uint{0, 0, 0, 0}},
		{"привет", StandardHash, []uint{746, 161, 375, 235}},
		{"привет", FastHash, []uint{998, 326, 964, 535}},
	}
	for _, tc := range tests {
		bf, err := NewWithParams(1000, 4, WithHashMode(tc.mode))
		require.NoError(t, err)
		assert.Equal(t, tc.want, collectPositions(bf, tc.key), "key=%q mode=%s", tc.key, tc.mode)
	}

	bf, err := NewWithParams(1<<20, 12)
	require.NoError(t, err)
	assert.Equal(t, []uint{622973, 890629, 503099, 937411, 592713, 27389, 998768, 896421, 343599, 17588, 328772, 80215},
		collectPositions(bf, "hello"))
}

func TestBloomFilter_Encoding(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		key  string
		want []uint
	}{
		{"windows-1251 standard", []Option{WithEncoding(charmap.Windows1251)}, "привет", []uint{984, 328, 442, 374}},
		{"windows-1251 fast", []Option{WithEncoding(charmap.Windows1251), WithFastHash()}, "привет", []uint{497, 183, 713, 153}},
		{"utf-16le standard", []Option{WithEncoding(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM))}, "abc", []uint{315, 485, 338}},
		{"utf-16le fast", []Option{WithEncoding(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)), WithFastHash()}, "abc", []uint{419, 284, 552}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bf, err := NewWithParams(1000, len(tc.want), tc.opts...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, collectPositions(bf, tc.key))

			require.True(t, bf.Insert(tc.key))
			require.True(t, bf.MightContain(tc.key))
		})
	}
}

func TestBloomFilter_EncodingReplacesUnsupported(t *testing.T) {
	bf, err := New(100, 0.01, WithEncoding(charmap.Windows1251))
	require.NoError(t, err)
	assert.Equal(t, charmap.Windows1251, bf.Encoding())

	require.True(t, bf.Insert("日本語"))
	require.True(t, bf.MightContain("日本語"))
}

func TestBloomFilter_NoFalseNegatives(t *testing.T) {
	for _, mode := range []HashMode{StandardHash, FastHash} {
		t.Run(mode.String(), func(t *testing.T) {
			bf, err := New(500, 0.05, WithHashMode(mode))
			require.NoError(t, err)

			// 插入与查询交替进行，已插入的 key 必须一直可见
			for i := 0; i < 2000; i++ {
				bf.Insert(fmt.Sprintf("key-%d", i))
				for j := 0; j <= i; j += 97 {
					require.True(t, bf.MightContain(fmt.Sprintf("key-%d", j)), "key-%d lost after %d inserts", j, i)
				}
			}
			for i := 0; i < 2000; i++ {
				require.True(t, bf.MightContain(fmt.Sprintf("key-%d", i)))
			}
		})
	}
}

func TestBloomFilter_FalsePositiveRate(t *testing.T) {
	const (
		inserted = 5000
		queried  = 20000
	)
	tolerance := map[HashMode]float64{
		StandardHash: 0.01,
		FastHash:     0.02,
	}

	for _, mode := range []HashMode{StandardHash, FastHash} {
		for _, p := range []float64{0.01, 0.03, 0.05, 0.10} {
			t.Run(fmt.Sprintf("%s/p=%.2f", mode, p), func(t *testing.T) {
				bf, err := New(inserted, p, WithHashMode(mode))
				require.NoError(t, err)
				for i := 0; i < inserted; i++ {
					bf.Insert(fmt.Sprintf("member-%d", i))
				}

				falsePositives := 0
				for i := 0; i < queried; i++ {
					if bf.MightContain(fmt.Sprintf("outsider-%d", i)) {
						falsePositives++
					}
				}
				actual := float64(falsePositives) / queried
				t.Logf("desired fpp=%.3f; actual FP rate=%.4f (%d out of %d)", p, actual, falsePositives, queried)
				assert.Less(t, math.Abs(p-actual), tolerance[mode])
			})
		}
	}
}

func TestBloomFilter_Positives(t *testing.T) {
	for _, mode := range []HashMode{StandardHash, FastHash} {
		t.Run(mode.String(), func(t *testing.T) {
			const total = 10000
			bf, err := New(total, 0.01, WithHashMode(mode))
			require.NoError(t, err)

			for i := 0; i < total; i++ {
				bf.Insert(fmt.Sprintf("word-%d", i))
			}
			positives := 0
			for i := 0; i < total; i++ {
				if bf.MightContain(fmt.Sprintf("word-%d", i)) {
					positives++
				}
			}
			assert.Equal(t, total, positives)
			assert.InDelta(t, 0.5, bf.FillRatio(), 0.05)
		})
	}
}

func TestBloomFilter_BitCount(t *testing.T) {
	bf, err := NewWithParams(1000, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, bf.BitCount())

	bf.Insert("hello")
	assert.Equal(t, 4, bf.BitCount())
	assert.InDelta(t, 0.004, bf.FillRatio(), 1e-12)

	bf.Insert("hello")
	assert.Equal(t, 4, bf.BitCount())
}

func TestBloomFilter_Logger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := New(1000, 0.01, WithLogger(zap.New(core)), WithFastHash())
	require.NoError(t, err)

	entries := logs.FilterMessage("bloom filter created").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 9586, fields["num_bits"])
	assert.EqualValues(t, 7, fields["num_hash_functions"])
	assert.Equal(t, "fast", fields["hash_mode"])
	assert.Equal(t, "UTF-8", fields["encoding"])

	// 校验失败不输出日志
	_, err = NewWithParams(0, 1, WithLogger(zap.New(core)))
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, logs.Len())
}

func TestHashMode(t *testing.T) {
	assert.Equal(t, "standard", StandardHash.String())
	assert.Equal(t, "fast", FastHash.String())
	assert.Equal(t, "HashMode(9)", HashMode(9).String())

	for in, want := range map[string]HashMode{"": StandardHash, "standard": StandardHash, " Fast ": FastHash} {
		got, err := ParseHashMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseHashMode("double")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func collectPositions(bf *BloomFilter, key string) []uint {
	var out []uint
	bf.forEachPosition(key, func(pos uint) bool {
		out = append(out, pos)
		return true
	})
	return out
}

func BenchmarkInsert(b *testing.B) {
	for _, mode := range []HashMode{StandardHash, FastHash} {
		b.Run(mode.String(), func(b *testing.B) {
			bf, err := New(b.N+1, 0.01, WithHashMode(mode))
			if err != nil {
				b.Fatal(err)
			}
			keys := make([]string, 1024)
			for i := range keys {
				keys[i] = fmt.Sprintf("bench-%d", i)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				bf.Insert(keys[i%len(keys)])
			}
		})
	}
}
