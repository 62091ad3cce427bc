package bloomfilter

import (
	"fmt"
	"math"
)

/*
最优参数：

	m = ceil(-n * ln(p) / (ln 2)^2)
	k = max(1, round(m / n * ln 2))

n 为预期插入数量，p 为目标误判率，m 为位数，k 为哈希函数个数
*/

// MaxBits 位下标由去掉符号位的 32 位哈希取模得到，超过 2^31-1 的位永远用不到
const MaxBits = math.MaxInt32

// OptimalParams 根据预期插入数量和目标误判率计算位数与哈希函数个数
func OptimalParams(expectedInsertions int, falsePositiveProbability float64) (m, k int, err error) {
	if expectedInsertions <= 0 {
		return 0, 0, fmt.Errorf("%w: expected insertions must be positive, got %d",
			ErrInvalidArgument, expectedInsertions)
	}
	// NaN 在两个比较中都为 false，同样被拒绝
	if !(falsePositiveProbability > 0.0 && falsePositiveProbability < 1.0) {
		return 0, 0, fmt.Errorf("%w: false positive probability must be in (0, 1), got %v",
			ErrInvalidArgument, falsePositiveProbability)
	}

	n := float64(expectedInsertions)
	bitsF := math.Ceil(-n * math.Log(falsePositiveProbability) / (math.Ln2 * math.Ln2))
	if bitsF > MaxBits {
		return 0, 0, fmt.Errorf("%w: %d insertions at p=%v need %.0f bits, limit is %d",
			ErrInvalidArgument, expectedInsertions, falsePositiveProbability, bitsF, MaxBits)
	}
	m = int(bitsF)
	k = max(1, int(math.Round(float64(m)/n*math.Ln2)))
	return m, k, nil
}

// EstimateFalsePositiveRate 插入 n 个不同 key 后的理论误判率 (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(m, k, insertions int) float64 {
	if m <= 0 || k <= 0 || insertions <= 0 {
		return 0
	}
	return math.Pow(1-math.Exp(-float64(k)*float64(insertions)/float64(m)), float64(k))
}
