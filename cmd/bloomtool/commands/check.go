package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tedwangl/go-bloom/pkg/cobrax"
	bloomfilter "github.com/tedwangl/go-bloom/pkg/utils/bloom-filter"
	"github.com/tedwangl/go-bloom/pkg/utils/jsonx"
)

type checkResult struct {
	Words            int     `json:"words"`
	NumBits          int     `json:"bits"`
	NumHashFunctions int     `json:"k"`
	Positives        int     `json:"positives"`
	FalseNegatives   int     `json:"false_negatives"`
	FillRatio        float64 `json:"fill_ratio"`
}

// check - 插入全部词后逐个查询，不允许漏判
func newCheckCommand(tool *cobrax.Tool) *cobrax.Command {
	cmd := tool.NewCommand(
		"check",
		"检查漏判",
		"把词表中的每个词插入过滤器后再逐个查询，所有词都必须返回可能存在",
		cobrax.CmdRunnerFunc(func(cmd *cobra.Command, args []string) error {
			cfg := tool.Config()

			words, err := loadWords(cfg.GetString("file"), progressOutput(tool, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			opts, err := filterOptions(tool)
			if err != nil {
				return err
			}

			r, err := checkPositives(words, cfg.GetFloat64("p"), opts...)
			if err != nil {
				return err
			}
			tool.GetLogger().Info("漏判检查完成",
				zap.Int("words", r.Words),
				zap.Int("false_negatives", r.FalseNegatives),
			)

			if cfg.GetBool("json") {
				if err := jsonx.WriteLine(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			} else {
				writeCheckReport(cmd.OutOrStdout(), r)
			}
			if r.FalseNegatives > 0 {
				return fmt.Errorf("%d 个已插入的词被判定为不存在", r.FalseNegatives)
			}
			return nil
		}),
	)
	addWordsFlags(cmd)
	addFilterFlags(cmd)
	addJSONFlag(cmd)
	cmd.AddFlag("p", "p", 0.01, "目标误判率，(0, 1)")
	cmd.AddParamValidator("p", &cobrax.OpenRangeValidator{Min: 0, Max: 1})
	return cmd
}

func checkPositives(words []string, p float64, opts ...bloomfilter.Option) (checkResult, error) {
	bf, err := bloomfilter.New(len(words), p, opts...)
	if err != nil {
		return checkResult{}, err
	}
	for _, w := range words {
		bf.Insert(w)
	}

	r := checkResult{
		Words:            len(words),
		NumBits:          bf.NumBits(),
		NumHashFunctions: bf.NumHashFunctions(),
		FillRatio:        bf.FillRatio(),
	}
	for _, w := range words {
		if bf.MightContain(w) {
			r.Positives++
		}
	}
	r.FalseNegatives = r.Words - r.Positives
	return r, nil
}

func writeCheckReport(w io.Writer, r checkResult) {
	status := color.GreenString("PASS")
	if r.FalseNegatives > 0 {
		status = color.RedString("FAIL")
	}
	fmt.Fprintf(w, "words=%d bits=%d k=%d positives=%d false_negatives=%d fill_ratio=%.4f %s\n",
		r.Words, r.NumBits, r.NumHashFunctions, r.Positives, r.FalseNegatives, r.FillRatio, status)
}
