package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tedwangl/go-bloom/pkg/cobrax"
	bloomfilter "github.com/tedwangl/go-bloom/pkg/utils/bloom-filter"
	"github.com/tedwangl/go-bloom/pkg/utils/jsonx"
)

type paramsResult struct {
	N            int     `json:"n"`
	P            float64 `json:"p"`
	NumBits      int     `json:"bits"`
	Bytes        int     `json:"bytes"`
	K            int     `json:"k"`
	EstimatedFPR float64 `json:"estimated_fpr"`
}

// params - 根据 n、p 计算位数和哈希函数个数
func newParamsCommand(tool *cobrax.Tool) *cobrax.Command {
	cmd := tool.NewCommand(
		"params",
		"计算最优参数",
		"根据预期元素数量 n 和目标误判率 p 计算位数 M、哈希函数个数 k 以及理论误判率",
		cobrax.CmdRunnerFunc(func(cmd *cobra.Command, args []string) error {
			cfg := tool.Config()
			n := cfg.GetInt("n")
			p := cfg.GetFloat64("p")

			m, k, err := bloomfilter.OptimalParams(n, p)
			if err != nil {
				return err
			}

			r := paramsResult{
				N:            n,
				P:            p,
				NumBits:      m,
				Bytes:        (m + 7) / 8,
				K:            k,
				EstimatedFPR: bloomfilter.EstimateFalsePositiveRate(m, k, n),
			}
			if cfg.GetBool("json") {
				return jsonx.WriteLine(cmd.OutOrStdout(), r)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "n=%d p=%v bits=%d bytes=%d k=%d estimated_fpr=%.6f\n",
				r.N, r.P, r.NumBits, r.Bytes, r.K, r.EstimatedFPR)
			return nil
		}),
	)
	cmd.AddFlag("n", "n", 0, "预期元素数量")
	cmd.AddFlag("p", "p", 0.03, "目标误判率，(0, 1)")
	addJSONFlag(cmd)
	cmd.AddParamValidator("n", &cobrax.MinValueValidator{Min: 1, Message: "n 必须为正数"})
	cmd.AddParamValidator("p", &cobrax.OpenRangeValidator{Min: 0, Max: 1})
	return cmd
}
